// Package dto chứa các DTO cho domain Economics.
package dto

import "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"

// RefreshRequest là request body cho POST /economics/refresh
type RefreshRequest struct {
	Region        string `json:"region" validate:"required,oneof=NA EU FE"` // Region của account
	MarketplaceID string `json:"marketplaceId" validate:"required"`         // Marketplace cần tổng hợp
	StartDate     string `json:"startDate" validate:"required"`             // Đầu khoảng ngày (YYYY-MM-DD)
	EndDate       string `json:"endDate" validate:"required"`               // Cuối khoảng ngày (YYYY-MM-DD)
	Async         bool   `json:"async"`                                     // true = tạo job chạy nền thay vì chạy ngay
}

// AsinTableRow là một dòng trong bảng ASIN (parent row hoặc child row)
type AsinTableRow struct {
	Asin             string              `json:"asin"`               // Product id
	ParentAsin       string              `json:"parentAsin"`         // ASIN cha (rỗng = tự là parent)
	Sales            float64             `json:"sales"`              // Tổng doanh số
	UnitsSold        int64               `json:"unitsSold"`          // Tổng đơn vị bán
	Refunds          float64             `json:"refunds"`            // Tổng refund
	AdvertisingSpend float64             `json:"advertisingSpend"`   // Tổng chi phí quảng cáo
	Fees             models.FeeBreakdown `json:"fees"`               // Phí theo category
	GrossProfit      float64             `json:"grossProfit"`        // Net proceeds do nguồn báo cáo
	NetProfit        float64             `json:"netProfit"`          // sales − ads − fees, tính tại tầng bảng
	Margin           float64             `json:"margin"`             // netProfit / sales × 100 (0 khi sales = 0)
	IsExpandable     bool                `json:"isExpandable"`       // true = có children
	Children         []AsinTableRow      `json:"children,omitempty"` // Child rows của parent group
}

// Pagination là thông tin phân trang của bảng ASIN.
// TotalItems đếm theo parent group, không theo dòng con.
type Pagination struct {
	Page       int64 `json:"page"`       // Trang hiện tại
	Limit      int64 `json:"limit"`      // Số parent group mỗi trang
	TotalItems int64 `json:"totalItems"` // Tổng số parent group
	TotalPages int64 `json:"totalPages"` // Tổng số trang
	HasMore    bool  `json:"hasMore"`    // Còn trang sau hay không
}

// AsinTableResponse là response của GET /economics/asin-table
type AsinTableResponse struct {
	Rows       []AsinTableRow `json:"rows"`       // Các parent row của trang, sort theo sales giảm dần
	Pagination Pagination     `json:"pagination"` // Thông tin phân trang
	Currency   string         `json:"currency"`   // Mã tiền tệ của run
}

// Mức độ nghiêm trọng của issue
const (
	IssueSeverityCritical = "critical" // Net profit < 0
	IssueSeverityHigh     = "high"     // Margin < 5%
	IssueSeverityMedium   = "medium"   // Margin < 10%
)

// Loại issue
const (
	IssueTypeNegativeProfit = "negativeProfit" // Net profit âm
	IssueTypeLowMargin      = "lowMargin"      // Margin thấp nhưng profit dương
)

// ProfitabilityIssue là một issue về lợi nhuận của một sản phẩm (tính mỗi request, không persist)
type ProfitabilityIssue struct {
	Asin             string  `json:"asin"`             // Product id
	ParentAsin       string  `json:"parentAsin"`       // ASIN cha
	Sales            float64 `json:"sales"`            // Doanh số
	AdvertisingSpend float64 `json:"advertisingSpend"` // Chi phí quảng cáo
	Fees             float64 `json:"fees"`             // Tổng platform fees
	NetProfit        float64 `json:"netProfit"`        // sales − ads − fees
	Margin           float64 `json:"margin"`           // netProfit / sales × 100
	Type             string  `json:"type"`             // negativeProfit | lowMargin
	Severity         string  `json:"severity"`         // critical | high | medium
	Recommendation   string  `json:"recommendation"`   // Khuyến nghị theo cost ratio chiếm ưu thế
}

// IssueCountByType đếm issue theo loại
type IssueCountByType struct {
	NegativeProfit int64 `json:"negativeProfit"` // Số sản phẩm net profit âm
	LowMargin      int64 `json:"lowMargin"`      // Số sản phẩm margin thấp
}

// IssueCountBySeverity đếm issue theo mức độ
type IssueCountBySeverity struct {
	Critical int64 `json:"critical"` // Số issue critical
	High     int64 `json:"high"`     // Số issue high
	Medium   int64 `json:"medium"`   // Số issue medium
}

// IssueSummary là response của GET /economics/issues/summary
type IssueSummary struct {
	TotalIssues int64                `json:"totalIssues"` // Tổng số issue
	ByType      IssueCountByType     `json:"byType"`      // Đếm theo loại
	BySeverity  IssueCountBySeverity `json:"bySeverity"`  // Đếm theo mức độ
}

// SummaryResponse là response của GET /economics/summary
type SummaryResponse struct {
	MetricsID       string              `json:"metricsId"`       // Id của MetricsDocument
	StartDate       string              `json:"startDate"`       // Đầu khoảng ngày
	EndDate         string              `json:"endDate"`         // Cuối khoảng ngày
	MarketplaceID   string              `json:"marketplaceId"`   // Marketplace của run
	Currency        string              `json:"currency"`        // Mã tiền tệ
	Totals          models.GlobalTotals `json:"totals"`          // Tổng toàn cục
	Datewise        []models.DateRollup `json:"datewise"`        // Rollup theo ngày
	IsLargeDataset  bool                `json:"isLargeDataset"`  // true = asinWise nằm ở shard store
	UsingCachedData bool                `json:"usingCachedData"` // true = dữ liệu fallback từ snapshot cũ
}
