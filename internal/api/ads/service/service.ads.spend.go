// Package adssvc - Service cho domain Ads: ingest chi phí quảng cáo theo ngày
// và cung cấp map chi phí theo ASIN (có cache) cho engine economics.
package adssvc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/base/service"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/utility"
)

// spendCache là cache process-wide cho map chi phí theo ASIN, share giữa mọi
// instance của service để invalidation ở một nơi có hiệu lực ở mọi nơi
var (
	spendCache     *utility.Cache
	spendCacheOnce sync.Once
)

// getSpendCache khởi tạo lazy cache với TTL từ config
func getSpendCache() *utility.Cache {
	spendCacheOnce.Do(func() {
		ttl := 300 * time.Second
		if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.AdsSpendCacheTTL > 0 {
			ttl = time.Duration(global.MongoDB_ServerConfig.AdsSpendCacheTTL) * time.Second
		}
		spendCache = utility.NewCache(ttl, ttl)
	})
	return spendCache
}

// AdsSpendService xử lý logic nghiệp vụ cho chi phí quảng cáo theo ngày
type AdsSpendService struct {
	spendService *basesvc.BaseServiceMongoImpl[models.AdsDailySpend]
	cache        *utility.Cache
}

// NewAdsSpendService tạo mới AdsSpendService
func NewAdsSpendService() (*AdsSpendService, error) {
	spendColl, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.AdsDailySpend)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.AdsDailySpend, common.ErrNotFound)
	}
	return &AdsSpendService{
		spendService: basesvc.NewBaseServiceMongo[models.AdsDailySpend](spendColl),
		cache:        getSpendCache(),
	}, nil
}

// SpendService trả về base service của ads_daily_spend (dùng cho CRUD routes)
func (s *AdsSpendService) SpendService() *basesvc.BaseServiceMongoImpl[models.AdsDailySpend] {
	return s.spendService
}

// IngestDailySpend upsert các dòng chi phí quảng cáo theo key (accountId, date, asin)
// rồi invalidate cache của account một cách đồng bộ, trước khi trả về,
// để request đọc tiếp theo không thấy aggregate cũ.
func (s *AdsSpendService) IngestDailySpend(ctx context.Context, accountID string, rows []models.AdsDailySpend) (int64, error) {
	var ingested int64
	for i := range rows {
		rows[i].AccountID = accountID
		filter := bson.M{
			"accountId": accountID,
			"date":      rows[i].Date,
			"asin":      rows[i].Asin,
		}
		if _, err := s.spendService.Upsert(ctx, filter, rows[i]); err != nil {
			return ingested, err
		}
		ingested++
	}

	s.cache.DeletePrefix(accountID + "|")
	return ingested, nil
}

// GetSpendByAsin trả về map asin → tổng chi phí quảng cáo của account trong khoảng ngày.
// Cache theo (account, khoảng ngày); cache miss hay lỗi đều rơi về tính lại từ store.
func (s *AdsSpendService) GetSpendByAsin(ctx context.Context, accountID, startDate, endDate string) (map[string]float64, error) {
	cacheKey := accountID + "|" + startDate + "|" + endDate
	if cached, ok := s.cache.Get(cacheKey); ok {
		if spendMap, ok := cached.(map[string]float64); ok {
			return spendMap, nil
		}
		// Entry sai kiểu: bỏ và tính lại
		s.cache.Delete(cacheKey)
		logger.GetAppLogger().WithField("key", cacheKey).Warn("Cache chi phí quảng cáo chứa entry sai kiểu, tính lại từ store")
	}

	pipeline := []bson.M{
		{"$match": bson.M{
			"accountId": accountID,
			"date":      bson.M{"$gte": startDate, "$lte": endDate},
		}},
		{"$group": bson.M{
			"_id":   "$asin",
			"spend": bson.M{"$sum": "$spend"},
		}},
	}

	cursor, err := s.spendService.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Asin  string  `bson:"_id"`
		Spend float64 `bson:"spend"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	spendMap := make(map[string]float64, len(results))
	for _, result := range results {
		spendMap[result.Asin] = result.Spend
	}

	s.cache.Set(cacheKey, spendMap)
	return spendMap, nil
}
