// Package models chứa các model thuộc domain Economics.
package models

// MoneyAmount là một giá trị tiền tệ kèm mã tiền tệ
type MoneyAmount struct {
	Amount       float64 `json:"amount"`                 // Số tiền (mặc định 0 nếu thiếu)
	CurrencyCode string  `json:"currencyCode,omitempty"` // Mã tiền tệ (vd: USD)
}

// RecordSales chứa số liệu bán hàng của một line record
type RecordSales struct {
	OrderedProductSales MoneyAmount `json:"orderedProductSales"` // Doanh số đặt hàng
	NetProductSales     MoneyAmount `json:"netProductSales"`     // Doanh số thuần (sau refund)
	UnitsOrdered        int64       `json:"unitsOrdered"`        // Số đơn vị đặt hàng
	UnitsRefunded       int64       `json:"unitsRefunded"`       // Số đơn vị hoàn trả
	NetUnitsSold        int64       `json:"netUnitsSold"`        // Số đơn vị bán thuần
}

// ChargeDetail chứa số tiền của một charge, nested theo schema của nguồn.
// TotalAmount là đường chính; Amount là fallback khi nguồn không gửi totalAmount.
type ChargeDetail struct {
	TotalAmount MoneyAmount `json:"totalAmount"` // Tổng tiền charge
	Amount      MoneyAmount `json:"amount"`      // Fallback khi thiếu totalAmount
}

// FeeCharge là một charge trong một fee entry
type FeeCharge struct {
	AggregatedDetail ChargeDetail `json:"aggregatedDetail"` // Chi tiết đã gộp
}

// FeeEntry là một loại phí trên record, tên phí do vendor cung cấp nên không nhất quán
type FeeEntry struct {
	FeeTypeName string      `json:"feeTypeName"` // Tên loại phí free-text (vd: FbaFulfilmentFee)
	Charges     []FeeCharge `json:"charges"`     // Danh sách charges của loại phí này
}

// AdCharge là chi phí quảng cáo trên record.
// Đường chính: charge.aggregatedDetail.totalAmount.amount; các fallback:
// charge.aggregatedDetail.amount.amount, rồi charge.totalAmount.amount, rồi charge.amount.amount.
type AdCharge struct {
	AggregatedDetail ChargeDetail `json:"aggregatedDetail"` // Chi tiết đã gộp
	TotalAmount      MoneyAmount  `json:"totalAmount"`      // Fallback cấp charge
	Amount           MoneyAmount  `json:"amount"`           // Fallback cuối
}

// AdEntry là một advertising charge entry trên record
type AdEntry struct {
	Charge AdCharge `json:"charge"` // Chi phí quảng cáo
}

// NetProceeds chứa net proceeds do nguồn báo cáo (authoritative, không tính lại)
type NetProceeds struct {
	Total MoneyAmount `json:"total"` // Tổng net proceeds của record
}

// EconomicsRecord là một line record tài chính theo sản phẩm theo ngày (ephemeral, không persist).
// Trường thiếu mặc định về 0, không bao giờ propagate null vào phép tính.
type EconomicsRecord struct {
	StartDate     string      `json:"startDate"`     // Ngày bắt đầu (YYYY-MM-DD)
	EndDate       string      `json:"endDate"`       // Ngày kết thúc (YYYY-MM-DD)
	MarketplaceID string      `json:"marketplaceId"` // Marketplace của record
	ParentAsin    string      `json:"parentAsin"`    // ASIN sản phẩm cha
	ChildAsin     string      `json:"childAsin"`     // ASIN sản phẩm con
	Sales         RecordSales `json:"sales"`         // Số liệu bán hàng
	Fees          []FeeEntry  `json:"fees"`          // Danh sách phí
	Ads           []AdEntry   `json:"ads"`           // Danh sách chi phí quảng cáo
	NetProceeds   NetProceeds `json:"netProceeds"`   // Net proceeds do nguồn báo cáo
}
