// Package models - AsinShardRecord thuộc domain Economics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AsinShardRecord là một shard theo ngày của AsinRollup cho account lớn (economics_asin_shards).
// Chỉ tồn tại khi MetricsDocument.IsLargeDataset = true; read-only sau khi tạo;
// bị xóa hàng loạt khi MetricsDocument cha bị xóa.
type AsinShardRecord struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // MongoDB _id
	MetricsID primitive.ObjectID `json:"metricsId" bson:"metricsId"`        // MetricsDocument cha
	AccountID string             `json:"accountId" bson:"accountId"`        // Seller account (cascade delete theo account)
	Date      string             `json:"date" bson:"date"`                  // Ngày của shard (YYYY-MM-DD)
	AsinSales []AsinRollup       `json:"asinSales" bson:"asinSales"`        // Các AsinRollup của ngày này
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`        // Unix millis
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`        // Unix millis
}
