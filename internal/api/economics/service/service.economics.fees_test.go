package economicssvc

import "testing"

func TestNormalizeFeeTypeName_Idempotent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FBA_FULFILLMENT_FEES", "fbafulfillmentfees"},
		{"FbaFulfilmentFee", "fbafulfilmentfee"},
		{"refund-commission", "refundcommission"},
		{"", ""},
	}
	for _, tc := range cases {
		got := NormalizeFeeTypeName(tc.in)
		if got != tc.want {
			t.Errorf("NormalizeFeeTypeName(%q) = %q, muốn %q", tc.in, got, tc.want)
		}
		// Normalize hai lần phải cho cùng kết quả
		if again := NormalizeFeeTypeName(got); again != got {
			t.Errorf("normalize không idempotent: %q -> %q", got, again)
		}
	}
}

func TestClassifyFeeType_Categories(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FBA_FULFILLMENT_FEES", FeeCategoryFulfillment},
		{"FbaFulfilmentFee", FeeCategoryFulfillment},
		{"FBA_STORAGE_FEE", FeeCategoryStorage},
		{"LongTermStorage", FeeCategoryStorage},
		{"Commission", FeeCategoryReferral},
		{"REFERRAL_FEE", FeeCategoryReferral},
		{"RefundCommission", FeeCategoryRefund},
		{"REVERSAL_REIMBURSEMENT", FeeCategoryReimbursement},
		{"WAREHOUSE_DAMAGE", FeeCategoryReimbursement},
		{"DISPOSAL_FEE", FeeCategoryDisposal},
		{"RemovalComplete", FeeCategoryDisposal},
		{"SomeBrandNewFee", FeeCategoryOther},
		{"", FeeCategoryOther},
	}
	for _, tc := range cases {
		if got := ClassifyFeeType(tc.in); got != tc.want {
			t.Errorf("ClassifyFeeType(%q) = %q, muốn %q", tc.in, got, tc.want)
		}
	}
}

// Phân loại không phụ thuộc thứ tự gọi: cùng input luôn cho cùng category
func TestClassifyFeeType_OrderIndependent(t *testing.T) {
	inputs := []string{"RefundCommission", "Commission", "FBA_STORAGE_FEE", "RefundCommission", "Commission"}
	first := make(map[string]string)
	for _, in := range inputs {
		got := ClassifyFeeType(in)
		if prev, ok := first[in]; ok && prev != got {
			t.Errorf("ClassifyFeeType(%q) không ổn định: %q rồi %q", in, prev, got)
		}
		first[in] = got
	}
	// Alias chồng lắp: refundcommission phải ra refund, không phải referral
	if got := ClassifyFeeType("refund_commission"); got != FeeCategoryRefund {
		t.Errorf("refund_commission phải ra %q, có %q", FeeCategoryRefund, got)
	}
}

func TestIsPlatformFee_ExcludesReimbursement(t *testing.T) {
	if IsPlatformFee(FeeCategoryReimbursement) {
		t.Error("reimbursement không được tính vào tổng platform fees")
	}
	for _, category := range []string{FeeCategoryFulfillment, FeeCategoryStorage, FeeCategoryReferral, FeeCategoryRefund, FeeCategoryDisposal, FeeCategoryOther} {
		if !IsPlatformFee(category) {
			t.Errorf("category %q phải tính vào platform fees", category)
		}
	}
}
