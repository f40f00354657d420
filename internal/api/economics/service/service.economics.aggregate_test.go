package economicssvc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
)

// makeRecord dựng một record bán hàng chuẩn cho test
func makeRecord(date, childAsin, parentAsin string, ordered, net float64, units int64) models.EconomicsRecord {
	return models.EconomicsRecord{
		StartDate:  date,
		EndDate:    date,
		ChildAsin:  childAsin,
		ParentAsin: parentAsin,
		Sales: models.RecordSales{
			OrderedProductSales: models.MoneyAmount{Amount: ordered, CurrencyCode: "USD"},
			NetProductSales:     models.MoneyAmount{Amount: net},
			NetUnitsSold:        units,
		},
	}
}

func feeEntry(feeTypeName string, amount float64) models.FeeEntry {
	return models.FeeEntry{
		FeeTypeName: feeTypeName,
		Charges: []models.FeeCharge{
			{AggregatedDetail: models.ChargeDetail{TotalAmount: models.MoneyAmount{Amount: amount}}},
		},
	}
}

func adEntry(amount float64) models.AdEntry {
	return models.AdEntry{
		Charge: models.AdCharge{
			AggregatedDetail: models.ChargeDetail{TotalAmount: models.MoneyAmount{Amount: amount}},
		},
	}
}

func TestAggregateRecords_SingleRecordTotals(t *testing.T) {
	record := makeRecord("2025-07-01", "B0CHILD001", "B0PARENT01", 150, 140, 10)
	record.Fees = []models.FeeEntry{
		feeEntry("FBA_FULFILLMENT_FEES", 10),
		feeEntry("FBA_STORAGE_FEE", 5),
	}
	record.Ads = []models.AdEntry{adEntry(20)}
	record.NetProceeds = models.NetProceeds{Total: models.MoneyAmount{Amount: 115}}

	agg := AggregateRecords([]models.EconomicsRecord{record})

	assert.Equal(t, "USD", agg.Currency)
	assert.Equal(t, 150.0, agg.Totals.Sales)
	assert.Equal(t, 10.0, agg.Totals.Refunds) // ordered 150 − net 140
	assert.Equal(t, 115.0, agg.Totals.GrossProfit)
	assert.Equal(t, 20.0, agg.Totals.AdvertisingSpend)
	assert.Equal(t, 15.0, agg.Totals.Fees)
	assert.Equal(t, int64(10), agg.Totals.UnitsSold)

	require.Contains(t, agg.AsinWise, "B0CHILD001")
	rollup := agg.AsinWise["B0CHILD001"]
	assert.Equal(t, "B0PARENT01", rollup.ParentAsin)
	assert.Equal(t, 10.0, rollup.Fees.Fulfillment)
	assert.Equal(t, 5.0, rollup.Fees.Storage)
	assert.Equal(t, 15.0, rollup.Fees.Total)
	assert.Equal(t, 10.0, rollup.FeeBreakdown["FBA_FULFILLMENT_FEES"])

	require.Contains(t, agg.Datewise, "2025-07-01")
	assert.Equal(t, 150.0, agg.Datewise["2025-07-01"].Sales)
}

// Tổng sales theo ASIN phải bằng tổng sales theo ngày (cùng một tập record, không double-count)
func TestAggregateRecords_SumEquality(t *testing.T) {
	records := []models.EconomicsRecord{
		makeRecord("2025-07-01", "B0A", "B0P", 100, 95, 5),
		makeRecord("2025-07-01", "B0B", "B0P", 40, 40, 2),
		makeRecord("2025-07-02", "B0A", "B0P", 60, 55, 3),
		makeRecord("2025-07-03", "B0C", "", 25, 25, 1),
	}

	agg := AggregateRecords(records)

	var asinSum, dateSum float64
	for _, rollup := range agg.AsinWise {
		asinSum += rollup.Sales
	}
	for _, rollup := range agg.Datewise {
		dateSum += rollup.Sales
	}
	assert.InDelta(t, dateSum, asinSum, 1e-9)
	assert.InDelta(t, agg.Totals.Sales, dateSum, 1e-9)

	// Per-date rollups cộng lại phải bằng rollup toàn khoảng
	var byDateSum float64
	for _, byDate := range agg.AsinByDate {
		for _, rollup := range byDate {
			byDateSum += rollup.Sales
		}
	}
	assert.InDelta(t, asinSum, byDateSum, 1e-9)
}

func TestAggregateRecords_RefundNeverNegative(t *testing.T) {
	// Net lớn hơn ordered (điều chỉnh từ nguồn): refund phải clamp về 0
	record := makeRecord("2025-07-01", "B0CLAMP001", "", 100, 120, 4)
	agg := AggregateRecords([]models.EconomicsRecord{record})

	assert.Equal(t, 0.0, agg.Totals.Refunds)
	assert.Equal(t, 0.0, agg.AsinWise["B0CLAMP001"].Refunds)
}

func TestAggregateRecords_CurrencyFirstWins(t *testing.T) {
	first := makeRecord("2025-07-01", "B0A", "", 10, 10, 1)
	second := makeRecord("2025-07-01", "B0B", "", 20, 20, 1)
	second.Sales.OrderedProductSales.CurrencyCode = "EUR"

	agg := AggregateRecords([]models.EconomicsRecord{first, second})
	assert.Equal(t, "USD", agg.Currency)

	// Record đầu không có currency thì lấy của record sau
	first.Sales.OrderedProductSales.CurrencyCode = ""
	agg = AggregateRecords([]models.EconomicsRecord{first, second})
	assert.Equal(t, "EUR", agg.Currency)
}

func TestAggregateRecords_UnknownProductExcludedFromAsinWise(t *testing.T) {
	noID := makeRecord("2025-07-01", "", "", 30, 30, 2)
	withID := makeRecord("2025-07-01", "B0KNOWN001", "", 70, 70, 3)

	agg := AggregateRecords([]models.EconomicsRecord{noID, withID})

	// Không có product id: loại khỏi per-product nhưng vẫn tính global/date
	assert.NotContains(t, agg.AsinWise, unknownAsin)
	assert.Len(t, agg.AsinWise, 1)
	assert.Equal(t, 100.0, agg.Totals.Sales)
	assert.Equal(t, 100.0, agg.Datewise["2025-07-01"].Sales)
}

func TestAggregateRecords_ParentFallback(t *testing.T) {
	// Không có child: rollup theo parent id
	record := makeRecord("2025-07-01", "", "B0PARENT09", 45, 45, 2)
	agg := AggregateRecords([]models.EconomicsRecord{record})

	require.Contains(t, agg.AsinWise, "B0PARENT09")
	// Parent tự là rollup thì không tự nhận mình làm parent
	assert.Equal(t, "", agg.AsinWise["B0PARENT09"].ParentAsin)
}

func TestAggregateRecords_NegativeFeeChargesExcluded(t *testing.T) {
	record := makeRecord("2025-07-01", "B0CREDIT01", "", 50, 50, 1)
	record.Fees = []models.FeeEntry{
		feeEntry("FBA_FULFILLMENT_FEES", 8),
		feeEntry("FBA_FULFILLMENT_FEES", -3), // credit: loại, không trừ
		feeEntry("REVERSAL_REIMBURSEMENT", 4),
	}

	agg := AggregateRecords([]models.EconomicsRecord{record})
	rollup := agg.AsinWise["B0CREDIT01"]

	assert.Equal(t, 8.0, rollup.Fees.Fulfillment)
	assert.Equal(t, 4.0, rollup.Fees.Reimbursement)
	// Reimbursement nằm trong breakdown nhưng không vào Total
	assert.Equal(t, 8.0, rollup.Fees.Total)
	assert.Equal(t, 8.0, agg.Totals.Fees)
}

func TestAdChargeAmount_FallbackOrder(t *testing.T) {
	charge := models.AdCharge{
		AggregatedDetail: models.ChargeDetail{
			TotalAmount: models.MoneyAmount{Amount: 7},
			Amount:      models.MoneyAmount{Amount: 5},
		},
		TotalAmount: models.MoneyAmount{Amount: 3},
		Amount:      models.MoneyAmount{Amount: 1},
	}
	assert.Equal(t, 7.0, adChargeAmount(&charge))

	charge.AggregatedDetail.TotalAmount.Amount = 0
	assert.Equal(t, 5.0, adChargeAmount(&charge))

	charge.AggregatedDetail.Amount.Amount = 0
	assert.Equal(t, 3.0, adChargeAmount(&charge))

	charge.TotalAmount.Amount = 0
	assert.Equal(t, 1.0, adChargeAmount(&charge))
}

func TestAggregateRecords_EmptyBatch(t *testing.T) {
	agg := AggregateRecords(nil)

	require.NotNil(t, agg)
	assert.Equal(t, 0.0, agg.Totals.Sales)
	assert.Empty(t, agg.AsinWise)
	assert.Empty(t, agg.Datewise)
	assert.False(t, math.IsNaN(agg.Totals.Sales))
}
