// Package economicssvc - Test parser batch NDJSON: record top-level, wrapper và dòng lỗi.
package economicssvc

import (
	"strings"
	"testing"
)

func TestParseEconomicsBatch_TopLevelRecord(t *testing.T) {
	line := `{"startDate":"2025-07-01","endDate":"2025-07-01","childAsin":"B0TEST1234","sales":{"orderedProductSales":{"amount":150,"currencyCode":"USD"},"netProductSales":{"amount":140},"netUnitsSold":10},"fees":[],"ads":[],"netProceeds":{"total":{"amount":115}}}`

	records := ParseEconomicsBatch([]byte(line))
	if len(records) != 1 {
		t.Fatalf("muốn 1 record, có %d", len(records))
	}
	if records[0].ChildAsin != "B0TEST1234" {
		t.Errorf("childAsin sai: %s", records[0].ChildAsin)
	}
	if records[0].Sales.OrderedProductSales.Amount != 150 {
		t.Errorf("ordered sales sai: %v", records[0].Sales.OrderedProductSales.Amount)
	}
	if records[0].NetProceeds.Total.Amount != 115 {
		t.Errorf("net proceeds sai: %v", records[0].NetProceeds.Total.Amount)
	}
}

func TestParseEconomicsBatch_WrappedRecord(t *testing.T) {
	// Record nằm một cấp dưới một field có tên bất kỳ
	line := `{"payload":{"startDate":"2025-07-02","childAsin":"B0WRAP0001","sales":{"orderedProductSales":{"amount":50,"currencyCode":"EUR"}},"fees":[],"ads":[]}}`

	records := ParseEconomicsBatch([]byte(line))
	if len(records) != 1 {
		t.Fatalf("muốn 1 record từ wrapper, có %d", len(records))
	}
	if records[0].ChildAsin != "B0WRAP0001" {
		t.Errorf("childAsin sai: %s", records[0].ChildAsin)
	}
	if records[0].Sales.OrderedProductSales.CurrencyCode != "EUR" {
		t.Errorf("currency sai: %s", records[0].Sales.OrderedProductSales.CurrencyCode)
	}
}

func TestParseEconomicsBatch_WrappedArray(t *testing.T) {
	line := `{"records":[{"childAsin":"B0ARR00001","sales":{"orderedProductSales":{"amount":10,"currencyCode":"USD"}}},{"childAsin":"B0ARR00002","sales":{"orderedProductSales":{"amount":20,"currencyCode":"USD"}}}]}`

	records := ParseEconomicsBatch([]byte(line))
	if len(records) != 2 {
		t.Fatalf("muốn 2 records từ wrapper mảng, có %d", len(records))
	}
	if records[0].ChildAsin != "B0ARR00001" || records[1].ChildAsin != "B0ARR00002" {
		t.Errorf("thứ tự records sai: %s, %s", records[0].ChildAsin, records[1].ChildAsin)
	}
}

func TestParseEconomicsBatch_BadLineSkipped(t *testing.T) {
	// Dòng lỗi bị bỏ qua, các dòng còn lại vẫn parse bình thường
	batch := strings.Join([]string{
		`{"childAsin":"B0GOOD0001","sales":{"orderedProductSales":{"amount":5,"currencyCode":"USD"}}}`,
		`{not valid json`,
		`{"meta":"không có record nào ở đây"}`,
		`{"childAsin":"B0GOOD0002","sales":{"orderedProductSales":{"amount":7,"currencyCode":"USD"}}}`,
	}, "\n")

	records := ParseEconomicsBatch([]byte(batch))
	if len(records) != 2 {
		t.Fatalf("muốn 2 records hợp lệ, có %d", len(records))
	}
	if records[0].ChildAsin != "B0GOOD0001" || records[1].ChildAsin != "B0GOOD0002" {
		t.Errorf("records giữ lại sai: %s, %s", records[0].ChildAsin, records[1].ChildAsin)
	}
}

func TestParseEconomicsBatch_EmptyBatch(t *testing.T) {
	records := ParseEconomicsBatch(nil)
	if records == nil {
		t.Fatal("batch rỗng phải trả về slice rỗng, không phải nil")
	}
	if len(records) != 0 {
		t.Errorf("batch rỗng phải ra 0 records, có %d", len(records))
	}

	records = ParseEconomicsBatch([]byte("\n\n  \n"))
	if len(records) != 0 {
		t.Errorf("batch toàn dòng trắng phải ra 0 records, có %d", len(records))
	}
}

func TestParseBatchLine_EmptyWrappedArray(t *testing.T) {
	// Mảng records rỗng là input hợp lệ: 0 records, không phải dòng lỗi
	records, err := parseBatchLine([]byte(`{"records":[]}`))
	if err != nil {
		t.Fatalf("mảng rỗng không được tính là dòng lỗi: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("mảng rỗng phải ra 0 records, có %d", len(records))
	}

	// Mảng rỗng nằm cạnh field chứa record thật: record vẫn phải được lấy
	records, err = parseBatchLine([]byte(`{"skipped":[],"payload":{"childAsin":"B0SIDE0001","sales":{"orderedProductSales":{"amount":9,"currencyCode":"USD"}}}}`))
	if err != nil {
		t.Fatalf("dòng có record hợp lệ không được lỗi: %v", err)
	}
	if len(records) != 1 || records[0].ChildAsin != "B0SIDE0001" {
		t.Errorf("record cạnh mảng rỗng bị mất: %+v", records)
	}
}

func TestParseEconomicsBatch_FeesOnlyRecord(t *testing.T) {
	// Record chỉ có key fees vẫn được nhận diện là record
	line := `{"childAsin":"B0FEE00001","fees":[{"feeTypeName":"FBA_FULFILLMENT_FEES","charges":[{"aggregatedDetail":{"totalAmount":{"amount":3.5}}}]}]}`

	records := ParseEconomicsBatch([]byte(line))
	if len(records) != 1 {
		t.Fatalf("muốn 1 record, có %d", len(records))
	}
	if len(records[0].Fees) != 1 {
		t.Fatalf("muốn 1 fee entry, có %d", len(records[0].Fees))
	}
	if records[0].Fees[0].FeeTypeName != "FBA_FULFILLMENT_FEES" {
		t.Errorf("feeTypeName sai: %s", records[0].Fees[0].FeeTypeName)
	}
}
