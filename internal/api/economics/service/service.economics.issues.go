package economicssvc

import (
	"context"
	"runtime"
	"sort"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
)

// Ngưỡng phát hiện issue về lợi nhuận
const (
	lowMarginThreshold  = 10.0 // Margin dưới mức này là issue
	highMarginThreshold = 5.0  // Margin dưới mức này nâng severity lên high
	adsRatioThreshold   = 0.50 // Ads chiếm trên 50% sales → khuyến nghị giảm ads
	feeRatioThreshold   = 0.40 // Fees chiếm trên 40% sales → khuyến nghị tối ưu phí
)

// Khuyến nghị theo cost ratio chiếm ưu thế
const (
	recommendReduceAds = "Chi phí quảng cáo chiếm hơn một nửa doanh số. Giảm bid hoặc tạm dừng các campaign kém hiệu quả cho sản phẩm này."
	recommendFees      = "Phí nền tảng chiếm tỷ trọng lớn trên doanh số. Xem lại kích thước/trọng lượng đóng gói, phí lưu kho dài hạn và mức phí giới thiệu của danh mục."
	recommendPause     = "Sản phẩm không có doanh số nhưng vẫn phát sinh chi phí. Tạm dừng quảng cáo và xem lại tồn kho trước khi tiếp tục đầu tư."
	recommendGeneric   = "Biên lợi nhuận thấp. Xem lại giá bán và cơ cấu chi phí của sản phẩm."
)

// severityRank dùng để sort: critical trước, rồi high, rồi medium
var severityRank = map[string]int{
	dto.IssueSeverityCritical: 0,
	dto.IssueSeverityHigh:     1,
	dto.IssueSeverityMedium:   2,
}

// BuildIssues quét toàn bộ product rows của một MetricsDocument và trả về danh sách
// issue về lợi nhuận, sort theo severity rồi margin tăng dần (âm nặng nhất lên đầu).
// Issue tính mới mỗi request, không persist.
func (s *EconomicsService) BuildIssues(ctx context.Context, doc models.MetricsDocument) ([]dto.ProfitabilityIssue, error) {
	rollups, err := s.GetAsinRollups(ctx, doc)
	if err != nil {
		return nil, err
	}

	issues := make([]dto.ProfitabilityIssue, 0)
	for i := range rollups {
		if i > 0 && i%yieldEvery == 0 {
			runtime.Gosched()
		}

		issue, ok := detectIssue(&rollups[i])
		if !ok {
			continue
		}
		issues = append(issues, issue)
	}

	sortIssues(issues)
	return issues, nil
}

// sortIssues sắp xếp theo severity (critical → high → medium) rồi margin tăng dần,
// tie-break theo ASIN để kết quả ổn định
func sortIssues(issues []dto.ProfitabilityIssue) {
	sort.Slice(issues, func(i, j int) bool {
		if severityRank[issues[i].Severity] != severityRank[issues[j].Severity] {
			return severityRank[issues[i].Severity] < severityRank[issues[j].Severity]
		}
		if issues[i].Margin != issues[j].Margin {
			return issues[i].Margin < issues[j].Margin
		}
		return issues[i].Asin < issues[j].Asin
	})
}

// BuildIssueSummary đếm issue theo loại và mức độ
func (s *EconomicsService) BuildIssueSummary(ctx context.Context, doc models.MetricsDocument) (*dto.IssueSummary, error) {
	issues, err := s.BuildIssues(ctx, doc)
	if err != nil {
		return nil, err
	}

	summary := &dto.IssueSummary{TotalIssues: int64(len(issues))}
	for _, issue := range issues {
		switch issue.Type {
		case dto.IssueTypeNegativeProfit:
			summary.ByType.NegativeProfit++
		case dto.IssueTypeLowMargin:
			summary.ByType.LowMargin++
		}
		switch issue.Severity {
		case dto.IssueSeverityCritical:
			summary.BySeverity.Critical++
		case dto.IssueSeverityHigh:
			summary.BySeverity.High++
		case dto.IssueSeverityMedium:
			summary.BySeverity.Medium++
		}
	}

	return summary, nil
}

// detectIssue kiểm tra một product row; trả về (issue, true) nếu margin < 10% hoặc net profit < 0
func detectIssue(rollup *models.AsinRollup) (dto.ProfitabilityIssue, bool) {
	netProfit := rollup.Sales - rollup.AdvertisingSpend - rollup.Fees.Total
	margin := marginOf(netProfit, rollup.Sales)

	if netProfit >= 0 && margin >= lowMarginThreshold {
		return dto.ProfitabilityIssue{}, false
	}

	issueType := dto.IssueTypeLowMargin
	severity := dto.IssueSeverityMedium
	switch {
	case netProfit < 0:
		issueType = dto.IssueTypeNegativeProfit
		severity = dto.IssueSeverityCritical
	case margin < highMarginThreshold:
		severity = dto.IssueSeverityHigh
	}

	return dto.ProfitabilityIssue{
		Asin:             rollup.Asin,
		ParentAsin:       rollup.ParentAsin,
		Sales:            rollup.Sales,
		AdvertisingSpend: rollup.AdvertisingSpend,
		Fees:             rollup.Fees.Total,
		NetProfit:        netProfit,
		Margin:           margin,
		Type:             issueType,
		Severity:         severity,
		Recommendation:   recommendFor(rollup),
	}, true
}

// recommendFor chọn khuyến nghị theo cost ratio chiếm ưu thế
func recommendFor(rollup *models.AsinRollup) string {
	if rollup.Sales == 0 {
		if rollup.AdvertisingSpend > 0 || rollup.Fees.Total > 0 {
			return recommendPause
		}
		return recommendGeneric
	}
	if rollup.AdvertisingSpend/rollup.Sales > adsRatioThreshold {
		return recommendReduceAds
	}
	if rollup.Fees.Total/rollup.Sales > feeRatioThreshold {
		return recommendFees
	}
	return recommendGeneric
}
