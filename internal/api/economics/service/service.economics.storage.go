package economicssvc

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
)

// shardWriteBatch là số shard record tối đa trong một lần InsertMany
const shardWriteBatch = 100

// PersistInput gom các tham số định danh của một ingestion run
type PersistInput struct {
	AccountID     string
	Region        string
	MarketplaceID string
	StartDate     string
	EndDate       string
	LargeAccount  bool // Account được pre-flag là lớn, bỏ qua threshold
}

// PersistMetrics ghi kết quả aggregate xuống store theo chiến lược embed/shard.
// Số ASIN rollup vượt threshold (hoặc account pre-flag lớn) thì per-date rollups
// được ghi sang economics_asin_shards theo key (metricsId, date) và AsinWise embed để rỗng.
// Ngược lại rollups embed thẳng trong MetricsDocument.
func (s *EconomicsService) PersistMetrics(ctx context.Context, input PersistInput, agg *AggregationResult) (models.MetricsDocument, error) {
	isLarge := input.LargeAccount || len(agg.AsinWise) > s.asinShardThreshold

	doc := models.MetricsDocument{
		AccountID:      input.AccountID,
		Region:         input.Region,
		MarketplaceID:  input.MarketplaceID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Currency:       agg.Currency,
		Totals:         agg.Totals,
		Datewise:       sortedDateRollups(agg.Datewise),
		AsinWise:       []models.AsinRollup{},
		IsLargeDataset: isLarge,
	}
	if !isLarge {
		doc.AsinWise = sortedAsinRollups(agg.AsinWise)
	}

	created, err := s.metricsService.InsertOne(ctx, doc)
	if err != nil {
		return models.MetricsDocument{}, err
	}

	if !isLarge {
		return created, nil
	}

	shards := buildShardRecords(created, agg)
	for start := 0; start < len(shards); start += shardWriteBatch {
		end := start + shardWriteBatch
		if end > len(shards) {
			end = len(shards)
		}
		if _, err := s.shardService.InsertMany(ctx, shards[start:end]); err != nil {
			// Run hỏng giữa chừng: dọn document cha và các shard đã ghi để không
			// để lại snapshot thiếu dữ liệu trông như snapshot hợp lệ
			s.cleanupFailedRun(ctx, created)
			return models.MetricsDocument{}, err
		}
	}

	return created, nil
}

// cleanupFailedRun xóa best-effort các mảnh của một run persist lỗi giữa chừng
func (s *EconomicsService) cleanupFailedRun(ctx context.Context, doc models.MetricsDocument) {
	log := logger.GetAppLogger()
	if _, err := s.shardService.DeleteMany(ctx, bson.M{"metricsId": doc.ID}); err != nil {
		log.WithField("metricsId", doc.ID.Hex()).WithError(err).Error("Không dọn được shard records của run lỗi")
	}
	if err := s.metricsService.DeleteById(ctx, doc.ID); err != nil {
		log.WithField("metricsId", doc.ID.Hex()).WithError(err).Error("Không dọn được metrics document của run lỗi")
	}
}

// buildShardRecords dựng danh sách shard record từ per-date rollups, một record mỗi ngày
func buildShardRecords(doc models.MetricsDocument, agg *AggregationResult) []models.AsinShardRecord {
	dates := make([]string, 0, len(agg.AsinByDate))
	for date := range agg.AsinByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	shards := make([]models.AsinShardRecord, 0, len(dates))
	for _, date := range dates {
		shards = append(shards, models.AsinShardRecord{
			MetricsID: doc.ID,
			AccountID: doc.AccountID,
			Date:      date,
			AsinSales: sortedAsinRollups(agg.AsinByDate[date]),
		})
	}
	return shards
}

// GetAsinRollups là accessor duy nhất cho ASIN rollups của một MetricsDocument.
// Caller không bao giờ tự phân nhánh theo nơi lưu: embedded hay sharded do accessor quyết định
// theo cờ IsLargeDataset. Path sharded đọc theo batch, không load toàn bộ trong một query.
func (s *EconomicsService) GetAsinRollups(ctx context.Context, doc models.MetricsDocument) ([]models.AsinRollup, error) {
	if !doc.IsLargeDataset {
		if doc.AsinWise == nil {
			return []models.AsinRollup{}, nil
		}
		return doc.AsinWise, nil
	}

	merged := make(map[string]*models.AsinRollup)
	filter := bson.M{"metricsId": doc.ID}

	for skip := int64(0); ; skip += int64(s.asinShardReadBatch) {
		opts := options.Find().
			SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}).
			SetSkip(skip).
			SetLimit(int64(s.asinShardReadBatch))

		shards, err := s.shardService.Find(ctx, filter, opts)
		if err != nil {
			return nil, err
		}
		if len(shards) == 0 {
			break
		}

		for _, shard := range shards {
			for i := range shard.AsinSales {
				mergeAsinRollup(merged, &shard.AsinSales[i])
			}
		}

		if len(shards) < s.asinShardReadBatch {
			break
		}
	}

	return sortedAsinRollups(merged), nil
}

// mergeAsinRollup cộng một rollup per-date vào map rollup toàn khoảng
func mergeAsinRollup(merged map[string]*models.AsinRollup, src *models.AsinRollup) {
	dst, ok := merged[src.Asin]
	if !ok {
		dst = &models.AsinRollup{
			Asin:         src.Asin,
			ParentAsin:   src.ParentAsin,
			FeeBreakdown: make(map[string]float64),
		}
		merged[src.Asin] = dst
	}
	if dst.ParentAsin == "" {
		dst.ParentAsin = src.ParentAsin
	}

	dst.Sales += src.Sales
	dst.GrossProfit += src.GrossProfit
	dst.UnitsSold += src.UnitsSold
	dst.Refunds += src.Refunds
	dst.AdvertisingSpend += src.AdvertisingSpend
	addFeeBreakdown(&dst.Fees, &src.Fees)
	for feeType, amount := range src.FeeBreakdown {
		dst.FeeBreakdown[feeType] += amount
	}
}

// sortedDateRollups chuyển map rollup theo ngày thành slice sắp xếp theo ngày tăng dần
func sortedDateRollups(datewise map[string]*models.DateRollup) []models.DateRollup {
	rollups := make([]models.DateRollup, 0, len(datewise))
	for _, rollup := range datewise {
		rollups = append(rollups, *rollup)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Date < rollups[j].Date
	})
	return rollups
}

// sortedAsinRollups chuyển map rollup theo ASIN thành slice sắp xếp theo sales giảm dần,
// tie-break theo ASIN để kết quả ổn định
func sortedAsinRollups(asinWise map[string]*models.AsinRollup) []models.AsinRollup {
	rollups := make([]models.AsinRollup, 0, len(asinWise))
	for _, rollup := range asinWise {
		rollups = append(rollups, *rollup)
	}
	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].Sales != rollups[j].Sales {
			return rollups[i].Sales > rollups[j].Sales
		}
		return rollups[i].Asin < rollups[j].Asin
	})
	return rollups
}
