package economicssvc

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
)

// Giới hạn phân trang của bảng ASIN (đếm theo parent group)
const (
	defaultTablePageSize = 20
	maxTablePageSize     = 100
)

// BuildAsinTable trả về một trang parent group của bảng ASIN, sort theo sales giảm dần.
// Dataset nhỏ tính in-memory từ rollups embedded; dataset lớn chạy grouped aggregate
// trực tiếp trên shard store, skip/limit ở mức parent group, không load toàn bộ rollups.
// Net profit mỗi dòng = sales − ads − fees, tính lại tại tầng này từ rollup đã persist,
// không dùng lại gross profit của nguồn: hai con số phục vụ hai mục đích khác nhau.
func (s *EconomicsService) BuildAsinTable(ctx context.Context, doc models.MetricsDocument, page, limit int64) (*dto.AsinTableResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultTablePageSize
	}
	if limit > maxTablePageSize {
		limit = maxTablePageSize
	}

	var rows []dto.AsinTableRow
	var totalGroups int64
	var err error

	if doc.IsLargeDataset {
		rows, totalGroups, err = s.buildTablePageSharded(ctx, doc, page, limit)
	} else {
		rows, totalGroups, err = buildTablePageInMemory(doc.AsinWise, page, limit)
	}
	if err != nil {
		return nil, err
	}

	totalPages := int64(0)
	if totalGroups > 0 {
		totalPages = (totalGroups + limit - 1) / limit
	}

	return &dto.AsinTableResponse{
		Rows: rows,
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: totalGroups,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
		Currency: doc.Currency,
	}, nil
}

// groupKeyOf trả về parent group id của một rollup.
// Sản phẩm không có parent riêng là singleton group của chính nó.
func groupKeyOf(rollup *models.AsinRollup) string {
	if rollup.ParentAsin != "" {
		return rollup.ParentAsin
	}
	return rollup.Asin
}

// buildTablePageInMemory dựng trang bảng từ rollups embedded
func buildTablePageInMemory(rollups []models.AsinRollup, page, limit int64) ([]dto.AsinTableRow, int64, error) {
	// Gom rollups theo parent group
	groups := make(map[string][]*models.AsinRollup)
	for i := range rollups {
		key := groupKeyOf(&rollups[i])
		groups[key] = append(groups[key], &rollups[i])
	}

	// Dựng parent row của từng group: tổng của chính nó cộng toàn bộ children
	parentRows := make([]dto.AsinTableRow, 0, len(groups))
	for key, members := range groups {
		parentRows = append(parentRows, buildParentRow(key, members))
	}

	sort.Slice(parentRows, func(i, j int) bool {
		if parentRows[i].Sales != parentRows[j].Sales {
			return parentRows[i].Sales > parentRows[j].Sales
		}
		return parentRows[i].Asin < parentRows[j].Asin
	})

	totalGroups := int64(len(parentRows))
	start := (page - 1) * limit
	if start >= totalGroups {
		return []dto.AsinTableRow{}, totalGroups, nil
	}
	end := start + limit
	if end > totalGroups {
		end = totalGroups
	}

	return parentRows[start:end], totalGroups, nil
}

// buildParentRow tổng hợp một parent group từ các rollup thành viên
func buildParentRow(groupKey string, members []*models.AsinRollup) dto.AsinTableRow {
	row := dto.AsinTableRow{Asin: groupKey}

	for _, member := range members {
		row.Sales += member.Sales
		row.UnitsSold += member.UnitsSold
		row.Refunds += member.Refunds
		row.AdvertisingSpend += member.AdvertisingSpend
		row.GrossProfit += member.GrossProfit
		addFeeBreakdown(&row.Fees, &member.Fees)

		// Rollup của chính parent không thành child row
		if member.Asin == groupKey {
			continue
		}
		row.Children = append(row.Children, buildChildRow(member))
	}

	sort.Slice(row.Children, func(i, j int) bool {
		if row.Children[i].Sales != row.Children[j].Sales {
			return row.Children[i].Sales > row.Children[j].Sales
		}
		return row.Children[i].Asin < row.Children[j].Asin
	})

	row.IsExpandable = len(row.Children) > 0
	row.NetProfit = row.Sales - row.AdvertisingSpend - row.Fees.Total
	row.Margin = marginOf(row.NetProfit, row.Sales)
	return row
}

// buildChildRow chuyển một rollup thành child row với profit/margin tính tại tầng bảng
func buildChildRow(rollup *models.AsinRollup) dto.AsinTableRow {
	netProfit := rollup.Sales - rollup.AdvertisingSpend - rollup.Fees.Total
	return dto.AsinTableRow{
		Asin:             rollup.Asin,
		ParentAsin:       rollup.ParentAsin,
		Sales:            rollup.Sales,
		UnitsSold:        rollup.UnitsSold,
		Refunds:          rollup.Refunds,
		AdvertisingSpend: rollup.AdvertisingSpend,
		Fees:             rollup.Fees,
		GrossProfit:      rollup.GrossProfit,
		NetProfit:        netProfit,
		Margin:           marginOf(netProfit, rollup.Sales),
	}
}

// marginOf tính margin phần trăm, trả 0 khi sales = 0 (không bao giờ NaN)
func marginOf(netProfit, sales float64) float64 {
	if sales == 0 {
		return 0
	}
	return netProfit / sales * 100
}

// parentGroupDoc là kết quả $group theo parent id trên shard store (fee fields phẳng)
type parentGroupDoc struct {
	ID               string  `bson:"_id"`
	Sales            float64 `bson:"sales"`
	GrossProfit      float64 `bson:"grossProfit"`
	UnitsSold        int64   `bson:"unitsSold"`
	Refunds          float64 `bson:"refunds"`
	AdvertisingSpend float64 `bson:"advertisingSpend"`
	FeesFulfillment  float64 `bson:"feesFulfillment"`
	FeesStorage      float64 `bson:"feesStorage"`
	FeesReferral     float64 `bson:"feesReferral"`
	FeesRefund       float64 `bson:"feesRefund"`
	FeesReimburse    float64 `bson:"feesReimbursement"`
	FeesDisposal     float64 `bson:"feesDisposal"`
	FeesOther        float64 `bson:"feesOther"`
	FeesTotal        float64 `bson:"feesTotal"`
}

// feeBreakdownOf ráp lại FeeBreakdown từ các field phẳng của một group doc
func (d *parentGroupDoc) feeBreakdownOf() models.FeeBreakdown {
	return models.FeeBreakdown{
		Fulfillment:   d.FeesFulfillment,
		Storage:       d.FeesStorage,
		Referral:      d.FeesReferral,
		Refund:        d.FeesRefund,
		Reimbursement: d.FeesReimburse,
		Disposal:      d.FeesDisposal,
		Other:         d.FeesOther,
		Total:         d.FeesTotal,
	}
}

// facetPageResult là kết quả $facet: tổng số group và trang group hiện tại
type facetPageResult struct {
	Meta []struct {
		Total int64 `bson:"total"`
	} `bson:"meta"`
	Rows []parentGroupDoc `bson:"rows"`
}

// decodeFacetPage tách trang group và tổng số group từ kết quả $facet.
// $facet luôn trả về một document; rows rỗng (trang vượt cuối) không được
// làm mất tổng số group trong meta.
func decodeFacetPage(facets []facetPageResult) ([]parentGroupDoc, int64) {
	if len(facets) == 0 {
		return nil, 0
	}
	totalGroups := int64(0)
	if len(facets[0].Meta) > 0 {
		totalGroups = facets[0].Meta[0].Total
	}
	return facets[0].Rows, totalGroups
}

// groupKeyExpr là expression Mongo chọn parent group id cho một entry asinSales
var groupKeyExpr = bson.M{"$cond": bson.A{
	bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$asinSales.parentAsin", ""}}, ""}},
	"$asinSales.asin",
	"$asinSales.parentAsin",
}}

// groupSumStage là stage $group cộng metrics của các entry cùng parent group
func groupSumStage(groupKey interface{}) bson.M {
	return bson.M{"$group": bson.M{
		"_id":               groupKey,
		"sales":             bson.M{"$sum": "$asinSales.sales"},
		"grossProfit":       bson.M{"$sum": "$asinSales.grossProfit"},
		"unitsSold":         bson.M{"$sum": "$asinSales.unitsSold"},
		"refunds":           bson.M{"$sum": "$asinSales.refunds"},
		"advertisingSpend":  bson.M{"$sum": "$asinSales.advertisingSpend"},
		"feesFulfillment":   bson.M{"$sum": "$asinSales.fees.fulfillment"},
		"feesStorage":       bson.M{"$sum": "$asinSales.fees.storage"},
		"feesReferral":      bson.M{"$sum": "$asinSales.fees.referral"},
		"feesRefund":        bson.M{"$sum": "$asinSales.fees.refund"},
		"feesReimbursement": bson.M{"$sum": "$asinSales.fees.reimbursement"},
		"feesDisposal":      bson.M{"$sum": "$asinSales.fees.disposal"},
		"feesOther":         bson.M{"$sum": "$asinSales.fees.other"},
		"feesTotal":         bson.M{"$sum": "$asinSales.fees.total"},
	}}
}

// buildTablePageSharded dựng trang bảng bằng grouped aggregate trên shard store.
// Group theo parent id, sort theo sales, skip/limit ở mức group qua $facet,
// rồi fetch riêng children của đúng các group trong trang.
func (s *EconomicsService) buildTablePageSharded(ctx context.Context, doc models.MetricsDocument, page, limit int64) ([]dto.AsinTableRow, int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"metricsId": doc.ID}},
		{"$unwind": "$asinSales"},
		groupSumStage(groupKeyExpr),
		{"$sort": bson.D{{Key: "sales", Value: -1}, {Key: "_id", Value: 1}}},
		{"$facet": bson.M{
			"meta": []bson.M{{"$count": "total"}},
			"rows": []bson.M{
				{"$skip": (page - 1) * limit},
				{"$limit": limit},
			},
		}},
	}

	cursor, err := s.shardService.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var facets []facetPageResult
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, 0, common.ConvertMongoError(err)
	}

	// Trang vượt quá cuối vẫn phải trả về tổng số group thật từ meta,
	// giống hệt path in-memory, chỉ rows là rỗng
	groupRows, totalGroups := decodeFacetPage(facets)
	if len(groupRows) == 0 {
		return []dto.AsinTableRow{}, totalGroups, nil
	}

	parentIDs := make([]string, 0, len(groupRows))
	for _, group := range groupRows {
		parentIDs = append(parentIDs, group.ID)
	}

	childrenByGroup, err := s.fetchGroupMembers(ctx, doc, parentIDs)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]dto.AsinTableRow, 0, len(groupRows))
	for _, group := range groupRows {
		row := dto.AsinTableRow{
			Asin:             group.ID,
			Sales:            group.Sales,
			GrossProfit:      group.GrossProfit,
			UnitsSold:        group.UnitsSold,
			Refunds:          group.Refunds,
			AdvertisingSpend: group.AdvertisingSpend,
			Fees:             group.feeBreakdownOf(),
		}
		row.Children = childrenByGroup[group.ID]
		row.IsExpandable = len(row.Children) > 0
		row.NetProfit = row.Sales - row.AdvertisingSpend - row.Fees.Total
		row.Margin = marginOf(row.NetProfit, row.Sales)
		rows = append(rows, row)
	}

	return rows, totalGroups, nil
}

// memberGroupDoc là kết quả $group theo từng asin khi fetch thành viên của các group trong trang
type memberGroupDoc struct {
	parentGroupDoc `bson:",inline"`
	ParentAsin     string `bson:"parentAsin"`
}

// fetchGroupMembers lấy các child row của đúng các parent group trong trang,
// group theo từng asin (cộng dồn qua các ngày)
func (s *EconomicsService) fetchGroupMembers(ctx context.Context, doc models.MetricsDocument, parentIDs []string) (map[string][]dto.AsinTableRow, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"metricsId": doc.ID}},
		{"$unwind": "$asinSales"},
		{"$match": bson.M{"asinSales.parentAsin": bson.M{"$in": parentIDs}}},
		mergeGroupStage(),
		{"$sort": bson.D{{Key: "sales", Value: -1}, {Key: "_id", Value: 1}}},
	}

	cursor, err := s.shardService.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var members []memberGroupDoc
	if err := cursor.All(ctx, &members); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	childrenByGroup := make(map[string][]dto.AsinTableRow, len(parentIDs))
	for _, member := range members {
		fees := member.feeBreakdownOf()
		netProfit := member.Sales - member.AdvertisingSpend - fees.Total
		childrenByGroup[member.ParentAsin] = append(childrenByGroup[member.ParentAsin], dto.AsinTableRow{
			Asin:             member.ID,
			ParentAsin:       member.ParentAsin,
			Sales:            member.Sales,
			UnitsSold:        member.UnitsSold,
			Refunds:          member.Refunds,
			AdvertisingSpend: member.AdvertisingSpend,
			Fees:             fees,
			GrossProfit:      member.GrossProfit,
			NetProfit:        netProfit,
			Margin:           marginOf(netProfit, member.Sales),
		})
	}

	return childrenByGroup, nil
}

// mergeGroupStage là stage $group theo asin, giữ lại parentAsin để ráp về group
func mergeGroupStage() bson.M {
	stage := groupSumStage("$asinSales.asin")
	group := stage["$group"].(bson.M)
	group["parentAsin"] = bson.M{"$first": "$asinSales.parentAsin"}
	return stage
}
