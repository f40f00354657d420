// Package database - Index cho các collection economics (compound, nested) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
)

// CreateEconomicsIndexes tạo các index cho economics collections.
// Gọi một lần lúc khởi động server, sau khi đăng ký collections vào registry.
func CreateEconomicsIndexes(ctx context.Context, db *mongo.Database) error {
	// economics_metrics: (accountId, createdAt desc) — query "snapshot mới nhất của account"
	metrics := db.Collection(global.MongoDB_ColNames.EconomicsMetrics)
	if _, err := metrics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("economics_metrics_account_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// economics_metrics: (accountId, startDate, endDate) — query snapshot theo khoảng ngày
	if _, err := metrics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
			{Key: "startDate", Value: 1},
			{Key: "endDate", Value: 1},
		},
		Options: options.Index().SetName("economics_metrics_account_range"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// economics_asin_shards: (metricsId, date) — đọc shard theo snapshot, tuần tự theo ngày
	shards := db.Collection(global.MongoDB_ColNames.EconomicsAsinShards)
	if _, err := shards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "metricsId", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetName("economics_shard_metrics_date"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// economics_asin_shards: (accountId) — cascade delete theo account
	if _, err := shards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
		},
		Options: options.Index().SetName("economics_shard_account"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// catalog_products: (accountId, asin) unique — lookup parentAsin theo asin
	catalog := db.Collection(global.MongoDB_ColNames.CatalogProducts)
	if _, err := catalog.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
			{Key: "asin", Value: 1},
		},
		Options: options.Index().SetName("catalog_product_account_asin").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// ads_daily_spend: (accountId, date, asin) unique — upsert ingest theo ngày
	ads := db.Collection(global.MongoDB_ColNames.AdsDailySpend)
	if _, err := ads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "asin", Value: 1},
		},
		Options: options.Index().SetName("ads_spend_account_date_asin").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// economics_refresh_jobs: (status, scheduledAt) — worker quét job pending
	jobs := db.Collection(global.MongoDB_ColNames.EconomicsRefreshJobs)
	if _, err := jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "scheduledAt", Value: 1},
		},
		Options: options.Index().SetName("refresh_job_status_scheduled"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
