package economicssvc

import (
	"runtime"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
)

// yieldEvery là số iteration giữa hai lần nhường scheduler trong các vòng fold lớn,
// để không starve các goroutine housekeeping (keep-alive, timers) khi fold hàng chục nghìn entries.
const yieldEvery = 500

// unknownAsin là key fallback khi record không có child lẫn parent ASIN.
// Các record này vẫn tính vào global/date totals nhưng bị loại khỏi rollup theo sản phẩm.
const unknownAsin = "UNKNOWN"

// AggregationResult là kết quả fold của một run. Các map là run-scoped,
// thuộc sở hữu của lần gọi Aggregate và bị bỏ sau khi persist, không phải state process-wide.
// AsinByDate giữ rollup theo từng ngày, là nguồn ghi shard records khi dataset lớn.
type AggregationResult struct {
	Currency   string                                   // Mã tiền tệ đầu tiên gặp, cố định cho cả run
	Totals     models.GlobalTotals                      // Tổng toàn cục
	Datewise   map[string]*models.DateRollup            // date → rollup
	AsinWise   map[string]*models.AsinRollup            // productId → rollup toàn khoảng (không chứa UNKNOWN)
	AsinByDate map[string]map[string]*models.AsinRollup // date → productId → rollup của ngày đó
}

// AggregateRecords fold danh sách EconomicsRecord thành totals, date rollups và ASIN rollups.
// Batch rỗng trả về kết quả zero-valued hợp lệ, không lỗi.
func AggregateRecords(records []models.EconomicsRecord) *AggregationResult {
	result := &AggregationResult{
		Datewise:   make(map[string]*models.DateRollup),
		AsinWise:   make(map[string]*models.AsinRollup),
		AsinByDate: make(map[string]map[string]*models.AsinRollup),
	}

	for i, record := range records {
		// Nhường scheduler định kỳ trong vòng fold lớn
		if i > 0 && i%yieldEvery == 0 {
			runtime.Gosched()
		}

		foldRecord(result, &record)
	}

	return result
}

// foldRecord cộng dồn một record vào kết quả
func foldRecord(result *AggregationResult, record *models.EconomicsRecord) {
	// Currency: first non-empty wins, cố định cho cả run.
	// Batch nhiều loại tiền tệ không được convert, chỉ báo cáo dưới một mã.
	if result.Currency == "" && record.Sales.OrderedProductSales.CurrencyCode != "" {
		result.Currency = record.Sales.OrderedProductSales.CurrencyCode
	}

	ordered := record.Sales.OrderedProductSales.Amount
	net := record.Sales.NetProductSales.Amount

	// Refund luôn >= 0, không bao giờ mang giá trị âm
	refund := ordered - net
	if refund < 0 {
		refund = 0
	}

	// Gross profit lấy từ net proceeds do nguồn báo cáo (authoritative),
	// không tính lại từ sales trừ fees vì nguồn có thể gồm các adjustment engine không thấy
	grossProfit := record.NetProceeds.Total.Amount

	adSpend := sumAdCharges(record.Ads)
	fees, feeBreakdown := sumFeeCharges(record.Fees)

	// Global totals: mọi record đều được tính, kể cả không có product id
	result.Totals.Sales += ordered
	result.Totals.GrossProfit += grossProfit
	result.Totals.UnitsSold += record.Sales.NetUnitsSold
	result.Totals.Refunds += refund
	result.Totals.AdvertisingSpend += adSpend
	result.Totals.Fees += fees.Total

	// Date rollup
	date := record.StartDate
	dateRollup, ok := result.Datewise[date]
	if !ok {
		dateRollup = &models.DateRollup{Date: date}
		result.Datewise[date] = dateRollup
	}
	dateRollup.Sales += ordered
	dateRollup.GrossProfit += grossProfit

	// ASIN rollup: fallback child → parent; không có cả hai thì loại khỏi per-product
	asin := record.ChildAsin
	if asin == "" {
		asin = record.ParentAsin
	}
	if asin == "" {
		asin = unknownAsin
	}
	if asin == unknownAsin {
		return
	}

	asinRollup := getOrCreateAsinRollup(result.AsinWise, asin, record.ParentAsin)
	applyToAsinRollup(asinRollup, record, ordered, grossProfit, refund, adSpend, &fees, feeBreakdown)

	// Rollup theo ngày cho shard store
	byDate, ok := result.AsinByDate[date]
	if !ok {
		byDate = make(map[string]*models.AsinRollup)
		result.AsinByDate[date] = byDate
	}
	dateAsinRollup := getOrCreateAsinRollup(byDate, asin, record.ParentAsin)
	applyToAsinRollup(dateAsinRollup, record, ordered, grossProfit, refund, adSpend, &fees, feeBreakdown)
}

// getOrCreateAsinRollup lấy hoặc khởi tạo rollup cho một product id trong map
func getOrCreateAsinRollup(rollups map[string]*models.AsinRollup, asin, parentAsin string) *models.AsinRollup {
	rollup, ok := rollups[asin]
	if !ok {
		rollup = &models.AsinRollup{
			Asin:         asin,
			FeeBreakdown: make(map[string]float64),
		}
		rollups[asin] = rollup
	}
	if rollup.ParentAsin == "" && parentAsin != asin {
		rollup.ParentAsin = parentAsin
	}
	return rollup
}

// applyToAsinRollup cộng dồn các giá trị đã tính của một record vào rollup
func applyToAsinRollup(rollup *models.AsinRollup, record *models.EconomicsRecord, ordered, grossProfit, refund, adSpend float64, fees *models.FeeBreakdown, feeBreakdown map[string]float64) {
	rollup.Sales += ordered
	rollup.GrossProfit += grossProfit
	rollup.UnitsSold += record.Sales.NetUnitsSold
	rollup.Refunds += refund
	rollup.AdvertisingSpend += adSpend
	addFeeBreakdown(&rollup.Fees, fees)
	for feeType, amount := range feeBreakdown {
		rollup.FeeBreakdown[feeType] += amount
	}
}

// sumAdCharges cộng chi phí quảng cáo trên record, theo thứ tự fallback path
func sumAdCharges(ads []models.AdEntry) float64 {
	var total float64
	for _, entry := range ads {
		total += adChargeAmount(&entry.Charge)
	}
	return total
}

// adChargeAmount lấy số tiền của một ad charge theo thứ tự fallback:
// aggregatedDetail.totalAmount → aggregatedDetail.amount → totalAmount → amount
func adChargeAmount(charge *models.AdCharge) float64 {
	if charge.AggregatedDetail.TotalAmount.Amount != 0 {
		return charge.AggregatedDetail.TotalAmount.Amount
	}
	if charge.AggregatedDetail.Amount.Amount != 0 {
		return charge.AggregatedDetail.Amount.Amount
	}
	if charge.TotalAmount.Amount != 0 {
		return charge.TotalAmount.Amount
	}
	return charge.Amount.Amount
}

// sumFeeCharges phân loại và cộng các fee entries của record.
// Chỉ cộng charge dương: credit (âm) bị loại, không trừ vào tổng.
// Trả về breakdown theo category và map raw fee-type → amount.
func sumFeeCharges(fees []models.FeeEntry) (models.FeeBreakdown, map[string]float64) {
	var breakdown models.FeeBreakdown
	rawBreakdown := make(map[string]float64)

	for _, entry := range fees {
		category := ClassifyFeeType(entry.FeeTypeName)
		for _, charge := range entry.Charges {
			amount := charge.AggregatedDetail.TotalAmount.Amount
			if amount == 0 {
				amount = charge.AggregatedDetail.Amount.Amount
			}
			if amount <= 0 {
				continue
			}

			rawBreakdown[entry.FeeTypeName] += amount

			switch category {
			case FeeCategoryFulfillment:
				breakdown.Fulfillment += amount
			case FeeCategoryStorage:
				breakdown.Storage += amount
			case FeeCategoryReferral:
				breakdown.Referral += amount
			case FeeCategoryRefund:
				breakdown.Refund += amount
			case FeeCategoryReimbursement:
				breakdown.Reimbursement += amount
			case FeeCategoryDisposal:
				breakdown.Disposal += amount
			default:
				breakdown.Other += amount
			}

			if IsPlatformFee(category) {
				breakdown.Total += amount
			}
		}
	}

	return breakdown, rawBreakdown
}

// addFeeBreakdown cộng dồn một breakdown vào breakdown đích
func addFeeBreakdown(dst *models.FeeBreakdown, src *models.FeeBreakdown) {
	dst.Fulfillment += src.Fulfillment
	dst.Storage += src.Storage
	dst.Referral += src.Referral
	dst.Refund += src.Refund
	dst.Reimbursement += src.Reimbursement
	dst.Disposal += src.Disposal
	dst.Other += src.Other
	dst.Total += src.Total
}
