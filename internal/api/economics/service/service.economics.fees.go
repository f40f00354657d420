package economicssvc

import "strings"

// Các fee category chuẩn
const (
	FeeCategoryFulfillment   = "fulfillment"
	FeeCategoryStorage       = "storage"
	FeeCategoryReferral      = "referral"
	FeeCategoryRefund        = "refund"
	FeeCategoryReimbursement = "reimbursement"
	FeeCategoryDisposal      = "disposal"
	FeeCategoryOther         = "other"
)

// feeAliasTable là bảng alias cố định theo category, key đã được normalize
// (lowercase, bỏ underscore/hyphen). Match theo exact trước, substring sau.
// Thứ tự kiểm tra cố định để kết quả ổn định khi alias chồng lắp
// (vd: "refundcommission" phải ra refund chứ không phải referral).
var feeCategoryOrder = []string{
	FeeCategoryReimbursement,
	FeeCategoryRefund,
	FeeCategoryDisposal,
	FeeCategoryStorage,
	FeeCategoryFulfillment,
	FeeCategoryReferral,
}

var feeAliasTable = map[string][]string{
	FeeCategoryFulfillment: {
		"fbafulfillmentfee",
		"fbafulfilmentfee",
		"fulfillmentfee",
		"fbaperunitfulfillmentfee",
		"fbapickandpack",
		"fbaweighthandling",
		"shippingchargeback",
	},
	FeeCategoryStorage: {
		"fbastoragefee",
		"storagefee",
		"fbalongtermstoragefee",
		"longtermstorage",
		"monthlyinventorystorage",
		"storagerenewal",
	},
	FeeCategoryReferral: {
		"referralfee",
		"commission",
		"salescommission",
		"variableclosingfee",
		"closingfee",
	},
	FeeCategoryRefund: {
		"refundcommission",
		"refundadministrationfee",
		"refundprocessingfee",
		"returnprocessingfee",
		"refundfee",
	},
	FeeCategoryReimbursement: {
		"reimbursement",
		"compensatedclawback",
		"warehousedamage",
		"warehouselost",
		"reversalreimbursement",
	},
	FeeCategoryDisposal: {
		"disposalfee",
		"disposalcomplete",
		"removalfee",
		"removalcomplete",
		"liquidationfee",
	},
}

// NormalizeFeeTypeName normalize tên loại phí: lowercase, bỏ underscore/hyphen.
// Idempotent: normalize hai lần cho cùng kết quả.
func NormalizeFeeTypeName(feeTypeName string) string {
	normalized := strings.ToLower(feeTypeName)
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return normalized
}

// ClassifyFeeType phân loại một tên loại phí free-text vào category chuẩn.
// Match theo exact equality trước, sau đó substring hai chiều với alias table.
// Không match alias nào thì trả về "other".
func ClassifyFeeType(feeTypeName string) string {
	normalized := NormalizeFeeTypeName(feeTypeName)
	if normalized == "" {
		return FeeCategoryOther
	}

	// Exact match trước
	for _, category := range feeCategoryOrder {
		for _, alias := range feeAliasTable[category] {
			if normalized == alias {
				return category
			}
		}
	}

	// Substring match: tên chứa alias hoặc alias chứa tên
	for _, category := range feeCategoryOrder {
		for _, alias := range feeAliasTable[category] {
			if strings.Contains(normalized, alias) || strings.Contains(alias, normalized) {
				return category
			}
		}
	}

	return FeeCategoryOther
}

// IsPlatformFee kiểm tra category có tính vào tổng platform fees không.
// Reimbursement là credit, bị loại khỏi tổng phí (không trừ âm vào).
func IsPlatformFee(category string) bool {
	return category != FeeCategoryReimbursement
}
