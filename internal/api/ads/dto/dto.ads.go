// Package dto chứa các DTO cho domain Ads.
package dto

// SpendRow là một dòng chi phí quảng cáo theo ngày trong request ingest
type SpendRow struct {
	Date     string  `json:"date" validate:"required"` // Ngày (YYYY-MM-DD)
	Asin     string  `json:"asin" validate:"required"` // Product id
	Spend    float64 `json:"spend" validate:"gte=0"`   // Chi phí quảng cáo trong ngày
	Currency string  `json:"currency"`                 // Mã tiền tệ
}

// IngestSpendRequest là request body cho POST /ads/ingest
type IngestSpendRequest struct {
	Rows []SpendRow `json:"rows" validate:"required,min=1,dive"` // Các dòng chi phí cần upsert
}

// IngestSpendResponse là response của POST /ads/ingest
type IngestSpendResponse struct {
	Ingested int64 `json:"ingested"` // Số dòng đã upsert thành công
}
