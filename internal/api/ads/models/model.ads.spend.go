// Package models chứa các model thuộc domain Ads.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AdsDailySpend là chi phí quảng cáo theo sản phẩm theo ngày (ads_daily_spend).
// Upsert theo (accountId, date, asin) khi ingest dữ liệu mới.
type AdsDailySpend struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // MongoDB _id
	AccountID string             `json:"accountId" bson:"accountId"`        // Seller account
	Date      string             `json:"date" bson:"date"`                  // Ngày (YYYY-MM-DD)
	Asin      string             `json:"asin" bson:"asin"`                  // Product id
	Spend     float64            `json:"spend" bson:"spend"`                // Chi phí quảng cáo trong ngày
	Currency  string             `json:"currency,omitempty" bson:"currency,omitempty"` // Mã tiền tệ
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`        // Unix millis
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`        // Unix millis
}
