package economicssvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
)

func makeRollup(asin, parentAsin string, sales, ads, feesTotal float64) models.AsinRollup {
	return models.AsinRollup{
		Asin:             asin,
		ParentAsin:       parentAsin,
		Sales:            sales,
		AdvertisingSpend: ads,
		Fees:             models.FeeBreakdown{Total: feesTotal},
	}
}

func TestBuildTablePageInMemory_ParentGrouping(t *testing.T) {
	rollups := []models.AsinRollup{
		makeRollup("B0CHILD001", "B0PARENT01", 100, 10, 20),
		makeRollup("B0CHILD002", "B0PARENT01", 50, 5, 10),
		makeRollup("B0SOLO0001", "", 30, 0, 5),
	}

	rows, totalGroups, err := buildTablePageInMemory(rollups, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totalGroups)
	require.Len(t, rows, 2)

	// Sort theo sales giảm dần: parent group 150 trước singleton 30
	parent := rows[0]
	assert.Equal(t, "B0PARENT01", parent.Asin)
	assert.Equal(t, 150.0, parent.Sales)
	assert.Equal(t, 15.0, parent.AdvertisingSpend)
	assert.Equal(t, 30.0, parent.Fees.Total)
	assert.Equal(t, 105.0, parent.NetProfit) // 150 − 15 − 30
	assert.True(t, parent.IsExpandable)
	require.Len(t, parent.Children, 2)
	assert.Equal(t, "B0CHILD001", parent.Children[0].Asin)
	assert.Equal(t, "B0CHILD002", parent.Children[1].Asin)

	solo := rows[1]
	assert.Equal(t, "B0SOLO0001", solo.Asin)
	assert.False(t, solo.IsExpandable)
	assert.Empty(t, solo.Children)
}

// Rollup của chính parent cộng vào tổng group nhưng không xuất hiện làm child row
func TestBuildTablePageInMemory_ParentOwnRollupNotChild(t *testing.T) {
	rollups := []models.AsinRollup{
		makeRollup("B0PARENT01", "", 40, 4, 8),
		makeRollup("B0CHILD001", "B0PARENT01", 60, 6, 12),
	}

	rows, totalGroups, err := buildTablePageInMemory(rollups, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totalGroups)
	require.Len(t, rows, 1)

	parent := rows[0]
	assert.Equal(t, 100.0, parent.Sales)
	require.Len(t, parent.Children, 1)
	assert.Equal(t, "B0CHILD001", parent.Children[0].Asin)
}

func TestBuildTablePageInMemory_MarginZeroWhenNoSales(t *testing.T) {
	rollups := []models.AsinRollup{makeRollup("B0ZERO0001", "", 0, 15, 5)}

	rows, _, err := buildTablePageInMemory(rollups, 1, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, -20.0, rows[0].NetProfit)
	assert.Equal(t, 0.0, rows[0].Margin)
}

// Ghép các trang liên tiếp phải ra đúng tập group đầy đủ, không trùng không sót
func TestBuildTablePageInMemory_PagesCoverAllGroups(t *testing.T) {
	rollups := make([]models.AsinRollup, 0, 7)
	for i, sales := range []float64{70, 10, 50, 30, 60, 20, 40} {
		asin := string(rune('A'+i)) + "0TEST00001"
		rollups = append(rollups, makeRollup(asin, "", sales, 0, 0))
	}

	var limit int64 = 3
	seen := make(map[string]bool)
	var prevSales = -1.0
	var collected []dto.AsinTableRow
	for page := int64(1); ; page++ {
		rows, totalGroups, err := buildTablePageInMemory(rollups, page, limit)
		require.NoError(t, err)
		assert.Equal(t, int64(7), totalGroups)
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			assert.False(t, seen[row.Asin], "group %s xuất hiện hai lần", row.Asin)
			seen[row.Asin] = true
			if prevSales >= 0 {
				assert.GreaterOrEqual(t, prevSales, row.Sales, "sort sales giảm dần bị vi phạm")
			}
			prevSales = row.Sales
		}
		collected = append(collected, rows...)
	}

	assert.Len(t, collected, 7)
}

func TestBuildTablePageInMemory_PageBeyondEnd(t *testing.T) {
	rollups := []models.AsinRollup{makeRollup("B0ONLY0001", "", 10, 0, 0)}

	rows, totalGroups, err := buildTablePageInMemory(rollups, 5, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totalGroups)
	assert.Empty(t, rows)
}

// Trang sharded vượt quá cuối: $facet trả rows rỗng nhưng meta vẫn mang tổng
// số group thật, pagination phải giống hệt path in-memory
func TestDecodeFacetPage_EmptyRowsKeepTotal(t *testing.T) {
	facets := []facetPageResult{{
		Meta: []struct {
			Total int64 `bson:"total"`
		}{{Total: 42}},
		Rows: []parentGroupDoc{},
	}}

	rows, totalGroups := decodeFacetPage(facets)
	assert.Empty(t, rows)
	assert.Equal(t, int64(42), totalGroups)
}

func TestDecodeFacetPage_RowsAndTotal(t *testing.T) {
	facets := []facetPageResult{{
		Meta: []struct {
			Total int64 `bson:"total"`
		}{{Total: 3}},
		Rows: []parentGroupDoc{{ID: "B0PARENT01", Sales: 100}, {ID: "B0PARENT02", Sales: 50}},
	}}

	rows, totalGroups := decodeFacetPage(facets)
	require.Len(t, rows, 2)
	assert.Equal(t, "B0PARENT01", rows[0].ID)
	assert.Equal(t, int64(3), totalGroups)

	// Không match shard nào: cursor không trả document $facet nào
	rows, totalGroups = decodeFacetPage(nil)
	assert.Empty(t, rows)
	assert.Equal(t, int64(0), totalGroups)
}

func TestGroupKeyOf(t *testing.T) {
	withParent := makeRollup("B0CHILD001", "B0PARENT01", 0, 0, 0)
	assert.Equal(t, "B0PARENT01", groupKeyOf(&withParent))

	standalone := makeRollup("B0SOLO0001", "", 0, 0, 0)
	assert.Equal(t, "B0SOLO0001", groupKeyOf(&standalone))
}
