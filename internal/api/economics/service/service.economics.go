// Package economicssvc - Service cho domain Economics: parse, tổng hợp, lưu trữ
// và truy vấn các snapshot tài chính theo sản phẩm theo ngày.
package economicssvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	adssvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/service"
	basesvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/base/service"
	catalogsvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/service"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
)

// FeedProvider cung cấp batch dữ liệu tài chính thô từ nguồn upstream.
// Mỗi dòng của batch là một JSON object (hoặc wrapper chứa mảng records).
// Implementation phải tự enforce timeout qua ctx; engine không block vô hạn.
type FeedProvider interface {
	FetchEconomicsBatch(ctx context.Context, accountID, marketplaceID, startDate, endDate string) ([]byte, error)
}

// EconomicsService xử lý logic nghiệp vụ cho economics engine
type EconomicsService struct {
	metricsService *basesvc.BaseServiceMongoImpl[models.MetricsDocument]
	shardService   *basesvc.BaseServiceMongoImpl[models.AsinShardRecord]
	jobService     *basesvc.BaseServiceMongoImpl[models.RefreshJob]
	catalogService *catalogsvc.CatalogService
	adsService     *adssvc.AdsSpendService
	feedProvider   FeedProvider

	asinShardThreshold int // Số ASIN rollup tối đa embed trong MetricsDocument
	asinShardReadBatch int // Batch size khi đọc shard records
}

// NewEconomicsService tạo mới EconomicsService.
// feedProvider có thể nil khi chỉ dùng các path truy vấn (không refresh).
func NewEconomicsService(feedProvider FeedProvider) (*EconomicsService, error) {
	metricsColl, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.EconomicsMetrics)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.EconomicsMetrics, common.ErrNotFound)
	}
	shardColl, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.EconomicsAsinShards)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.EconomicsAsinShards, common.ErrNotFound)
	}
	jobColl, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.EconomicsRefreshJobs)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.EconomicsRefreshJobs, common.ErrNotFound)
	}

	catalogService, err := catalogsvc.NewCatalogService()
	if err != nil {
		return nil, err
	}
	adsService, err := adssvc.NewAdsSpendService()
	if err != nil {
		return nil, err
	}

	threshold := 1000
	readBatch := 500
	if global.MongoDB_ServerConfig != nil {
		if global.MongoDB_ServerConfig.AsinShardThreshold > 0 {
			threshold = global.MongoDB_ServerConfig.AsinShardThreshold
		}
		if global.MongoDB_ServerConfig.AsinShardReadBatch > 0 {
			readBatch = global.MongoDB_ServerConfig.AsinShardReadBatch
		}
	}

	return &EconomicsService{
		metricsService:     basesvc.NewBaseServiceMongo[models.MetricsDocument](metricsColl),
		shardService:       basesvc.NewBaseServiceMongo[models.AsinShardRecord](shardColl),
		jobService:         basesvc.NewBaseServiceMongo[models.RefreshJob](jobColl),
		catalogService:     catalogService,
		adsService:         adsService,
		feedProvider:       feedProvider,
		asinShardThreshold: threshold,
		asinShardReadBatch: readBatch,
	}, nil
}

// MetricsService trả về base service của economics_metrics (dùng cho CRUD routes)
func (s *EconomicsService) MetricsService() *basesvc.BaseServiceMongoImpl[models.MetricsDocument] {
	return s.metricsService
}

// JobService trả về base service của economics_refresh_jobs (dùng cho worker)
func (s *EconomicsService) JobService() *basesvc.BaseServiceMongoImpl[models.RefreshJob] {
	return s.jobService
}

// GetLatestMetrics trả về MetricsDocument mới nhất của account
func (s *EconomicsService) GetLatestMetrics(ctx context.Context, accountID string) (models.MetricsDocument, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.metricsService.FindOne(ctx, bson.M{"accountId": accountID}, opts)
}

// GetMetricsByRange trả về MetricsDocument mới nhất của account khớp đúng khoảng ngày
func (s *EconomicsService) GetMetricsByRange(ctx context.Context, accountID, startDate, endDate string) (models.MetricsDocument, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	filter := bson.M{
		"accountId": accountID,
		"startDate": startDate,
		"endDate":   endDate,
	}
	return s.metricsService.FindOne(ctx, filter, opts)
}

// DeleteMetrics xóa một MetricsDocument kèm toàn bộ shard records của nó (cascade)
func (s *EconomicsService) DeleteMetrics(ctx context.Context, accountID string, metricsID primitive.ObjectID) error {
	doc, err := s.metricsService.FindOneById(ctx, metricsID)
	if err != nil {
		return err
	}
	if doc.AccountID != accountID {
		return common.ErrNotFound
	}

	// Xóa shards trước; nếu xóa document cha trước mà shard delete lỗi thì shards thành mồ côi
	if doc.IsLargeDataset {
		if _, err := s.shardService.DeleteMany(ctx, bson.M{"metricsId": metricsID}); err != nil {
			return err
		}
	}

	return s.metricsService.DeleteById(ctx, metricsID)
}
