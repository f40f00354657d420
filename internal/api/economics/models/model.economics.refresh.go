// Package models - RefreshJob thuộc domain Economics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái của refresh job
const (
	RefreshJobStatusPending = "pending" // Chờ worker xử lý
	RefreshJobStatusRunning = "running" // Đang xử lý
	RefreshJobStatusDone    = "done"    // Hoàn tất
	RefreshJobStatusFailed  = "failed"  // Thất bại (Error chứa lý do)
)

// RefreshJob là một yêu cầu refresh economics chạy nền (economics_refresh_jobs)
type RefreshJob struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`            // MongoDB _id
	AccountID     string             `json:"accountId" bson:"accountId"`                   // Seller account cần refresh
	Region        string             `json:"region" bson:"region"`                         // Region (NA | EU | FE)
	MarketplaceID string             `json:"marketplaceId" bson:"marketplaceId"`           // Marketplace cần refresh
	StartDate     string             `json:"startDate" bson:"startDate"`                   // Đầu khoảng ngày
	EndDate       string             `json:"endDate" bson:"endDate"`                       // Cuối khoảng ngày
	Status        string             `json:"status" bson:"status"`                         // pending | running | done | failed
	ScheduledAt   int64              `json:"scheduledAt" bson:"scheduledAt"`               // Unix millis — worker quét theo thứ tự này
	StartedAt     *int64             `json:"startedAt,omitempty" bson:"startedAt,omitempty"`   // Unix millis, null = chưa chạy
	FinishedAt    *int64             `json:"finishedAt,omitempty" bson:"finishedAt,omitempty"` // Unix millis, null = chưa xong
	Error         string             `json:"error,omitempty" bson:"error,omitempty"`       // Lý do thất bại nếu có
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`                   // Unix millis
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`                   // Unix millis
}
