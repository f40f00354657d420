// Package economicshdl - Handler cho domain Economics.
package economicshdl

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/base/handler"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
	economicssvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/service"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/utility"
)

// EconomicsHandler xử lý các route của engine economics.
// Embed BaseHandler để có sẵn CRUD routes cho economics_metrics (read-only).
type EconomicsHandler struct {
	basehdl.BaseHandler[models.MetricsDocument, models.MetricsDocument, models.MetricsDocument]
	economicsService *economicssvc.EconomicsService
}

// NewEconomicsHandler tạo mới EconomicsHandler
func NewEconomicsHandler(feedProvider economicssvc.FeedProvider) (*EconomicsHandler, error) {
	economicsService, err := economicssvc.NewEconomicsService(feedProvider)
	if err != nil {
		return nil, err
	}

	handler := &EconomicsHandler{economicsService: economicsService}
	handler.BaseService = economicsService.MetricsService()
	return handler, nil
}

// Service trả về EconomicsService (dùng cho worker)
func (h *EconomicsHandler) Service() *economicssvc.EconomicsService {
	return h.economicsService
}

// HandleRefresh xử lý POST /economics/refresh: chạy một ingestion run cho account.
// Body có async=true thì tạo job chạy nền và trả về job thay vì đợi run xong.
func (h *EconomicsHandler) HandleRefresh(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		accountID := h.GetAccountID(c)

		var req dto.RefreshRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(req); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if req.Async {
			job, err := h.economicsService.EnqueueRefreshJob(c.Context(), accountID, req)
			h.HandleResponse(c, job, err)
			return nil
		}

		doc, err := h.economicsService.Refresh(c.Context(), accountID, req)
		h.HandleResponse(c, doc, err)
		return nil
	})
}

// HandleSummary xử lý GET /economics/summary: totals và rollup theo ngày.
// Có startDate+endDate thì trả snapshot của đúng khoảng đó, không thì snapshot mới nhất.
func (h *EconomicsHandler) HandleSummary(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		doc, err := h.resolveMetrics(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, dto.SummaryResponse{
			MetricsID:       doc.ID.Hex(),
			StartDate:       doc.StartDate,
			EndDate:         doc.EndDate,
			MarketplaceID:   doc.MarketplaceID,
			Currency:        doc.Currency,
			Totals:          doc.Totals,
			Datewise:        doc.Datewise,
			IsLargeDataset:  doc.IsLargeDataset,
			UsingCachedData: doc.UsingCachedData,
		}, nil)
		return nil
	})
}

// HandleAsinTable xử lý GET /economics/asin-table: trang parent/child của bảng ASIN
func (h *EconomicsHandler) HandleAsinTable(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		doc, err := h.resolveMetrics(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		table, err := h.economicsService.BuildAsinTable(c.Context(), doc, page, limit)
		h.HandleResponse(c, table, err)
		return nil
	})
}

// HandleIssues xử lý GET /economics/issues: danh sách issue về lợi nhuận
func (h *EconomicsHandler) HandleIssues(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		doc, err := h.resolveMetrics(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		issues, err := h.economicsService.BuildIssues(c.Context(), doc)
		h.HandleResponse(c, issues, err)
		return nil
	})
}

// HandleIssueSummary xử lý GET /economics/issues/summary: đếm issue theo loại và mức độ
func (h *EconomicsHandler) HandleIssueSummary(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		doc, err := h.resolveMetrics(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		summary, err := h.economicsService.BuildIssueSummary(c.Context(), doc)
		h.HandleResponse(c, summary, err)
		return nil
	})
}

// HandleDeleteMetrics xử lý DELETE /economics/metrics/:id: xóa snapshot kèm shard records
func (h *EconomicsHandler) HandleDeleteMetrics(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		accountID := h.GetAccountID(c)
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		err := h.economicsService.DeleteMetrics(c.Context(), accountID, utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// resolveMetrics chọn MetricsDocument cho request đọc: theo khoảng ngày nếu query
// có startDate+endDate, không thì document mới nhất của account
func (h *EconomicsHandler) resolveMetrics(c fiber.Ctx) (models.MetricsDocument, error) {
	accountID := h.GetAccountID(c)
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if (startDate == "") != (endDate == "") {
		return models.MetricsDocument{}, common.NewError(
			common.ErrCodeValidationInput,
			"startDate và endDate phải đi cùng nhau",
			common.StatusBadRequest,
			nil,
		)
	}

	if startDate != "" {
		return h.economicsService.GetMetricsByRange(c.Context(), accountID, startDate, endDate)
	}

	doc, err := h.economicsService.GetLatestMetrics(c.Context(), accountID)
	if err != nil && errors.Is(err, common.ErrNotFound) {
		return models.MetricsDocument{}, common.NewError(
			common.ErrCodeEconomics,
			"Account chưa có snapshot economics nào, hãy gọi refresh trước",
			common.StatusNotFound,
			nil,
		)
	}
	return doc, err
}
