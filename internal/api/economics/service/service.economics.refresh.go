package economicssvc

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
)

// Refresh chạy trọn một ingestion run cho account: validate region/marketplace trước
// khi làm bất cứ việc gì, fan-out các fetch độc lập (feed, chi phí quảng cáo, catalog),
// fold batch, persist theo chiến lược embed/shard rồi trả về document vừa tạo.
// Upstream lỗi thì rơi về snapshot gần nhất với cờ UsingCachedData; chưa có snapshot
// nào thì trả lỗi terminal.
func (s *EconomicsService) Refresh(ctx context.Context, accountID string, req dto.RefreshRequest) (models.MetricsDocument, error) {
	if err := ValidateMarketplace(req.Region, req.MarketplaceID); err != nil {
		return models.MetricsDocument{}, err
	}

	log := logger.GetAppLogger().WithField("accountId", accountID)
	started := time.Now()

	// Fan-out các fetch độc lập, join trước khi tính toán
	var (
		wg sync.WaitGroup

		rawBatch []byte
		feedErr  error

		spendMap map[string]float64
		spendErr error

		parentMap  map[string]string
		catalogErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if s.feedProvider == nil {
			feedErr = common.ErrUpstreamFetch
			return
		}
		rawBatch, feedErr = s.feedProvider.FetchEconomicsBatch(ctx, accountID, req.MarketplaceID, req.StartDate, req.EndDate)
	}()
	go func() {
		defer wg.Done()
		spendMap, spendErr = s.adsService.GetSpendByAsin(ctx, accountID, req.StartDate, req.EndDate)
	}()
	go func() {
		defer wg.Done()
		parentMap, catalogErr = s.catalogService.GetParentMap(ctx, accountID)
	}()
	wg.Wait()

	if feedErr != nil {
		log.WithError(feedErr).Warn("Upstream economics lỗi, thử fallback snapshot gần nhất")
		return s.fallbackToCached(ctx, accountID)
	}

	// Ads/catalog là dữ liệu phụ trợ: lỗi thì chạy tiếp với map rỗng, không fail cả run
	if spendErr != nil {
		log.WithError(spendErr).Warn("Không lấy được map chi phí quảng cáo, run tiếp tục không có overlay")
		spendMap = map[string]float64{}
	}
	if catalogErr != nil {
		log.WithError(catalogErr).Warn("Không lấy được catalog, run tiếp tục không bổ sung parent ASIN")
		parentMap = map[string]string{}
	}

	records := ParseEconomicsBatch(rawBatch)
	enrichParentAsins(records, parentMap)

	agg := AggregateRecords(records)
	overlayAdsSpend(agg, spendMap)

	largeAccount, err := s.isAccountPreFlaggedLarge(ctx, accountID)
	if err != nil {
		return models.MetricsDocument{}, err
	}

	input := PersistInput{
		AccountID:     accountID,
		Region:        req.Region,
		MarketplaceID: req.MarketplaceID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		LargeAccount:  largeAccount,
	}
	doc, err := s.PersistMetrics(ctx, input, agg)
	if err != nil {
		return models.MetricsDocument{}, err
	}

	log.WithField("metricsId", doc.ID.Hex()).
		WithField("records", len(records)).
		WithField("asins", len(agg.AsinWise)).
		WithField("isLargeDataset", doc.IsLargeDataset).
		Info("Hoàn tất refresh economics")
	logger.GetPerformanceLogger().
		WithField("accountId", accountID).
		WithField("metricsId", doc.ID.Hex()).
		WithField("records", len(records)).
		WithField("durationMs", time.Since(started).Milliseconds()).
		Info("Thời gian chạy refresh economics")
	return doc, nil
}

// fallbackToCached trả về snapshot persist gần nhất khi upstream lỗi.
// Không có snapshot nào thì lỗi upstream là terminal.
func (s *EconomicsService) fallbackToCached(ctx context.Context, accountID string) (models.MetricsDocument, error) {
	doc, err := s.GetLatestMetrics(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.MetricsDocument{}, common.ErrNoCachedMetrics
		}
		return models.MetricsDocument{}, err
	}
	doc.UsingCachedData = true
	return doc, nil
}

// enrichParentAsins bổ sung parent ASIN từ catalog cho các record thiếu quan hệ parent/child
func enrichParentAsins(records []models.EconomicsRecord, parentMap map[string]string) {
	if len(parentMap) == 0 {
		return
	}
	for i := range records {
		if records[i].ParentAsin != "" || records[i].ChildAsin == "" {
			continue
		}
		if parent, ok := parentMap[records[i].ChildAsin]; ok {
			records[i].ParentAsin = parent
		}
	}
}

// overlayAdsSpend đắp chi phí quảng cáo từ nguồn ads riêng cho các sản phẩm mà
// batch economics không mang ad entry nào. Sản phẩm đã có spend từ batch giữ nguyên,
// không cộng chồng hai nguồn. Phần đắp thêm được gán vào ngày đầu tiên sản phẩm
// xuất hiện để per-date shards vẫn cộng về đúng tổng toàn khoảng.
func overlayAdsSpend(agg *AggregationResult, spendMap map[string]float64) {
	if len(spendMap) == 0 {
		return
	}

	for asin, spend := range spendMap {
		if spend <= 0 {
			continue
		}
		rollup, ok := agg.AsinWise[asin]
		if !ok || rollup.AdvertisingSpend != 0 {
			continue
		}

		rollup.AdvertisingSpend = spend
		agg.Totals.AdvertisingSpend += spend

		firstDate := ""
		for date, byDate := range agg.AsinByDate {
			if _, ok := byDate[asin]; !ok {
				continue
			}
			if firstDate == "" || date < firstDate {
				firstDate = date
			}
		}
		if firstDate != "" {
			agg.AsinByDate[firstDate][asin].AdvertisingSpend = spend
		}
	}
}

// isAccountPreFlaggedLarge kiểm tra run gần nhất của account có phải dataset lớn không.
// Account đã từng shard thì run sau shard luôn, tránh dao động embed/shard quanh ngưỡng.
func (s *EconomicsService) isAccountPreFlaggedLarge(ctx context.Context, accountID string) (bool, error) {
	doc, err := s.GetLatestMetrics(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return doc.IsLargeDataset, nil
}

// EnqueueRefreshJob tạo một refresh job pending cho worker chạy nền.
// Request vẫn được validate fail-fast tại đây, không đợi tới lúc worker nhặt job.
func (s *EconomicsService) EnqueueRefreshJob(ctx context.Context, accountID string, req dto.RefreshRequest) (models.RefreshJob, error) {
	if err := ValidateMarketplace(req.Region, req.MarketplaceID); err != nil {
		return models.RefreshJob{}, err
	}

	job := models.RefreshJob{
		AccountID:     accountID,
		Region:        req.Region,
		MarketplaceID: req.MarketplaceID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        models.RefreshJobStatusPending,
		ScheduledAt:   time.Now().UnixMilli(),
	}
	return s.jobService.InsertOne(ctx, job)
}

// ClaimPendingJobs nhặt tối đa limit job pending theo thứ tự scheduledAt và đánh dấu running.
// Claim là thao tác atomic theo từng job: job bị worker khác nhặt trước thì bỏ qua.
func (s *EconomicsService) ClaimPendingJobs(ctx context.Context, limit int64) ([]models.RefreshJob, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledAt", Value: 1}}).
		SetLimit(limit)
	pending, err := s.jobService.Find(ctx, bson.M{"status": models.RefreshJobStatusPending}, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []models.RefreshJob{}, nil
		}
		return nil, err
	}

	now := time.Now().UnixMilli()
	claimed := make([]models.RefreshJob, 0, len(pending))
	for _, job := range pending {
		filter := bson.M{"_id": job.ID, "status": models.RefreshJobStatusPending}
		update := bson.M{"$set": bson.M{
			"status":    models.RefreshJobStatusRunning,
			"startedAt": now,
		}}
		updated, err := s.jobService.UpdateOne(ctx, filter, update, nil)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				continue
			}
			return claimed, err
		}
		claimed = append(claimed, updated)
	}

	return claimed, nil
}

// RunJob chạy một refresh job đã claim và ghi kết quả done/failed
func (s *EconomicsService) RunJob(ctx context.Context, job models.RefreshJob) error {
	req := dto.RefreshRequest{
		Region:        job.Region,
		MarketplaceID: job.MarketplaceID,
		StartDate:     job.StartDate,
		EndDate:       job.EndDate,
	}

	_, runErr := s.Refresh(ctx, job.AccountID, req)
	if err := s.completeJob(ctx, job.ID, runErr); err != nil {
		return err
	}
	return runErr
}

// completeJob đánh dấu job done hoặc failed kèm thời điểm kết thúc
func (s *EconomicsService) completeJob(ctx context.Context, jobID primitive.ObjectID, runErr error) error {
	status := models.RefreshJobStatusDone
	errMsg := ""
	if runErr != nil {
		status = models.RefreshJobStatusFailed
		errMsg = runErr.Error()
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"finishedAt": time.Now().UnixMilli(),
		"error":      errMsg,
	}}
	_, err := s.jobService.UpdateOne(ctx, bson.M{"_id": jobID}, update, nil)
	return err
}
