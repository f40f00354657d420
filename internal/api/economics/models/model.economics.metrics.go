// Package models - MetricsDocument và các rollup persist trong economics_metrics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// FeeBreakdown là tổng phí theo từng category chuẩn.
// Chỉ cộng các charge dương; credit (âm) bị loại khỏi tổng, không trừ vào.
type FeeBreakdown struct {
	Fulfillment   float64 `json:"fulfillment" bson:"fulfillment"`     // Phí fulfillment (FBA)
	Storage       float64 `json:"storage" bson:"storage"`             // Phí lưu kho
	Referral      float64 `json:"referral" bson:"referral"`           // Phí giới thiệu/hoa hồng
	Refund        float64 `json:"refund" bson:"refund"`               // Phí liên quan hoàn trả
	Reimbursement float64 `json:"reimbursement" bson:"reimbursement"` // Khoản bồi hoàn (không tính vào Total)
	Disposal      float64 `json:"disposal" bson:"disposal"`           // Phí hủy/thanh lý hàng
	Other         float64 `json:"other" bson:"other"`                 // Phí khác
	Total         float64 `json:"total" bson:"total"`                 // Tổng platform fees (loại trừ reimbursement)
}

// GlobalTotals là tổng toàn cục của một ingestion run
type GlobalTotals struct {
	Sales            float64 `json:"sales" bson:"sales"`                       // Tổng doanh số (ordered)
	GrossProfit      float64 `json:"grossProfit" bson:"grossProfit"`           // Tổng net proceeds do nguồn báo cáo
	UnitsSold        int64   `json:"unitsSold" bson:"unitsSold"`               // Tổng đơn vị bán
	Refunds          float64 `json:"refunds" bson:"refunds"`                   // Tổng refund (luôn >= 0)
	AdvertisingSpend float64 `json:"advertisingSpend" bson:"advertisingSpend"` // Tổng chi phí quảng cáo
	Fees             float64 `json:"fees" bson:"fees"`                         // Tổng platform fees
}

// DateRollup là rollup theo ngày: một entry cho mỗi ngày xuất hiện trong run
type DateRollup struct {
	Date        string  `json:"date" bson:"date"`               // Ngày (YYYY-MM-DD)
	Sales       float64 `json:"sales" bson:"sales"`             // Doanh số trong ngày
	GrossProfit float64 `json:"grossProfit" bson:"grossProfit"` // Net proceeds trong ngày
}

// AsinRollup là rollup theo sản phẩm (child ASIN, fallback parent ASIN)
type AsinRollup struct {
	Asin             string             `json:"asin" bson:"asin"`                         // Product id của rollup
	ParentAsin       string             `json:"parentAsin" bson:"parentAsin"`             // ASIN cha (rỗng = tự là parent)
	Sales            float64            `json:"sales" bson:"sales"`                       // Tổng doanh số
	GrossProfit      float64            `json:"grossProfit" bson:"grossProfit"`           // Tổng net proceeds do nguồn báo cáo
	UnitsSold        int64              `json:"unitsSold" bson:"unitsSold"`               // Tổng đơn vị bán
	Refunds          float64            `json:"refunds" bson:"refunds"`                   // Tổng refund (luôn >= 0)
	AdvertisingSpend float64            `json:"advertisingSpend" bson:"advertisingSpend"` // Tổng chi phí quảng cáo
	Fees             FeeBreakdown       `json:"fees" bson:"fees"`                         // Tổng phí theo category
	FeeBreakdown     map[string]float64 `json:"feeBreakdown" bson:"feeBreakdown"`         // Raw fee-type name → amount
}

// MetricsDocument là kết quả của một ingestion run (economics_metrics).
// Immutable sau khi tạo, trừ IsLargeDataset và AsinWise (bị làm rỗng khi chuyển sang shard store).
type MetricsDocument struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`        // MongoDB _id
	AccountID      string             `json:"accountId" bson:"accountId"`               // Seller account sở hữu
	Region         string             `json:"region" bson:"region"`                     // Region (NA | EU | FE)
	MarketplaceID  string             `json:"marketplaceId" bson:"marketplaceId"`       // Marketplace của run
	StartDate      string             `json:"startDate" bson:"startDate"`               // Đầu khoảng ngày (YYYY-MM-DD)
	EndDate        string             `json:"endDate" bson:"endDate"`                   // Cuối khoảng ngày (YYYY-MM-DD)
	Currency       string             `json:"currency" bson:"currency"`                 // Mã tiền tệ đầu tiên gặp, cố định cho cả run
	Totals         GlobalTotals       `json:"totals" bson:"totals"`                     // Tổng toàn cục
	Datewise       []DateRollup       `json:"datewise" bson:"datewise"`                 // Rollup theo ngày
	AsinWise       []AsinRollup       `json:"asinWise" bson:"asinWise"`                 // Rollup theo sản phẩm; rỗng nếu sharded
	IsLargeDataset bool               `json:"isLargeDataset" bson:"isLargeDataset"`     // true = AsinWise nằm ở economics_asin_shards
	UsingCachedData bool              `json:"usingCachedData" bson:"-"`                 // Cờ response-level: fallback từ snapshot cũ do upstream lỗi; không persist
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`               // Unix millis
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`               // Unix millis
}
