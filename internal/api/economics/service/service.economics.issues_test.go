package economicssvc

import (
	"testing"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/dto"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
)

func issueRollup(asin string, sales, ads, feesTotal float64) models.AsinRollup {
	return models.AsinRollup{
		Asin:             asin,
		Sales:            sales,
		AdvertisingSpend: ads,
		Fees:             models.FeeBreakdown{Total: feesTotal},
	}
}

func TestDetectIssue_HealthyProductSkipped(t *testing.T) {
	// Sales 100, chi phí 50: margin 50%, không phải issue
	rollup := issueRollup("B0HEALTHY1", 100, 30, 20)
	if _, ok := detectIssue(&rollup); ok {
		t.Error("sản phẩm margin 50% không được tính là issue")
	}
}

func TestDetectIssue_NegativeProfitIsCritical(t *testing.T) {
	rollup := issueRollup("B0LOSS0001", 100, 80, 40)
	issue, ok := detectIssue(&rollup)
	if !ok {
		t.Fatal("net profit âm phải là issue")
	}
	if issue.Type != dto.IssueTypeNegativeProfit {
		t.Errorf("type sai: %s", issue.Type)
	}
	if issue.Severity != dto.IssueSeverityCritical {
		t.Errorf("severity sai: %s", issue.Severity)
	}
	if issue.NetProfit != -20 {
		t.Errorf("net profit sai: %v", issue.NetProfit)
	}
}

func TestDetectIssue_LowMarginSeverities(t *testing.T) {
	// Margin 3%: low margin, severity high
	rollup := issueRollup("B0TIGHT001", 100, 50, 47)
	issue, ok := detectIssue(&rollup)
	if !ok {
		t.Fatal("margin 3% phải là issue")
	}
	if issue.Type != dto.IssueTypeLowMargin {
		t.Errorf("type sai: %s", issue.Type)
	}
	if issue.Severity != dto.IssueSeverityHigh {
		t.Errorf("margin dưới 5%% phải là high, có %s", issue.Severity)
	}

	// Margin 7%: low margin, severity medium
	rollup = issueRollup("B0THIN0001", 100, 50, 43)
	issue, ok = detectIssue(&rollup)
	if !ok {
		t.Fatal("margin 7% phải là issue")
	}
	if issue.Severity != dto.IssueSeverityMedium {
		t.Errorf("margin 5-10%% phải là medium, có %s", issue.Severity)
	}
}

func TestRecommendFor_CostRatios(t *testing.T) {
	// Ads chiếm 60% sales
	adsHeavy := issueRollup("B0ADS00001", 100, 60, 10)
	if got := recommendFor(&adsHeavy); got != recommendReduceAds {
		t.Errorf("ads chiếm ưu thế phải khuyến nghị giảm ads, có %q", got)
	}

	// Fees chiếm 45% sales, ads thấp
	feeHeavy := issueRollup("B0FEE00001", 100, 10, 45)
	if got := recommendFor(&feeHeavy); got != recommendFees {
		t.Errorf("fees chiếm ưu thế phải khuyến nghị tối ưu phí, có %q", got)
	}

	// Không có sales nhưng vẫn phát sinh chi phí
	zombie := issueRollup("B0DEAD0001", 0, 12, 3)
	if got := recommendFor(&zombie); got != recommendPause {
		t.Errorf("zero sales có chi phí phải khuyến nghị tạm dừng, có %q", got)
	}

	// Margin thấp nhưng không có cost ratio nào vượt ngưỡng
	generic := issueRollup("B0GEN00001", 100, 40, 35)
	if got := recommendFor(&generic); got != recommendGeneric {
		t.Errorf("trường hợp còn lại phải ra khuyến nghị chung, có %q", got)
	}
}

func TestSortIssues_Ordering(t *testing.T) {
	issues := []dto.ProfitabilityIssue{
		{Asin: "B0MED00001", Severity: dto.IssueSeverityMedium, Margin: 8},
		{Asin: "B0CRIT0002", Severity: dto.IssueSeverityCritical, Margin: -5},
		{Asin: "B0HIGH0001", Severity: dto.IssueSeverityHigh, Margin: 3},
		{Asin: "B0CRIT0001", Severity: dto.IssueSeverityCritical, Margin: -20},
	}

	sortIssues(issues)

	want := []string{"B0CRIT0001", "B0CRIT0002", "B0HIGH0001", "B0MED00001"}
	for i, asin := range want {
		if issues[i].Asin != asin {
			t.Errorf("vị trí %d: muốn %s, có %s", i, asin, issues[i].Asin)
		}
	}
}

func TestSortIssues_TieBreakByAsin(t *testing.T) {
	issues := []dto.ProfitabilityIssue{
		{Asin: "B0ZZZ00001", Severity: dto.IssueSeverityMedium, Margin: 8},
		{Asin: "B0AAA00001", Severity: dto.IssueSeverityMedium, Margin: 8},
	}

	sortIssues(issues)

	if issues[0].Asin != "B0AAA00001" {
		t.Errorf("cùng severity cùng margin phải sort theo ASIN, có %s trước", issues[0].Asin)
	}
}
