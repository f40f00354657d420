// Package adshdl - Handler cho domain Ads.
package adshdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/base/handler"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/models"
	adssvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/service"
)

// AdsHandler xử lý các route chi phí quảng cáo.
// Embed BaseHandler để có sẵn CRUD routes cho ads_daily_spend.
type AdsHandler struct {
	basehdl.BaseHandler[models.AdsDailySpend, models.AdsDailySpend, models.AdsDailySpend]
	adsService *adssvc.AdsSpendService
}

// NewAdsHandler tạo mới AdsHandler
func NewAdsHandler() (*AdsHandler, error) {
	adsService, err := adssvc.NewAdsSpendService()
	if err != nil {
		return nil, err
	}

	handler := &AdsHandler{adsService: adsService}
	handler.BaseService = adsService.SpendService()
	return handler, nil
}

// HandleIngest xử lý POST /ads/ingest: upsert các dòng chi phí theo (account, ngày, asin).
// Cache map chi phí của account bị invalidate đồng bộ trong service trước khi response trả về.
func (h *AdsHandler) HandleIngest(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		accountID := h.GetAccountID(c)

		var req dto.IngestSpendRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(req); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		rows := make([]models.AdsDailySpend, 0, len(req.Rows))
		for _, row := range req.Rows {
			rows = append(rows, models.AdsDailySpend{
				Date:     row.Date,
				Asin:     row.Asin,
				Spend:    row.Spend,
				Currency: row.Currency,
			})
		}

		ingested, err := h.adsService.IngestDailySpend(c.Context(), accountID, rows)
		h.HandleResponse(c, dto.IngestSpendResponse{Ingested: ingested}, err)
		return nil
	})
}
