package economicssvc

import (
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
)

// marketplacesByRegion là bảng tĩnh region → các marketplace id hợp lệ.
// Validate fail-fast trước khi gọi upstream; region/marketplace lạ trả lỗi ngay.
var marketplacesByRegion = map[string][]string{
	"NA": {
		"ATVPDKIKX0DER",  // US
		"A2EUQ1WTGCTBG2", // CA
		"A1AM78C64UM0Y8", // MX
		"A2Q3Y263D00KWC", // BR
	},
	"EU": {
		"A1F83G8C2ARO7P", // UK
		"A1PA6795UKMFR9", // DE
		"A13V1IB3VIYZZH", // FR
		"APJ6JRA9NG5V4",  // IT
		"A1RKKUPIHCS9HS", // ES
		"A1805IZSGTT6HS", // NL
		"A2NODRKZP88ZB9", // SE
		"A1C3SOZRARQ6R3", // PL
	},
	"FE": {
		"A1VC38T7YXB528", // JP
		"A39IBJ37TRP1C6", // AU
		"A19VAU5U5O7RUS", // SG
	},
}

// ValidateMarketplace kiểm tra region và marketplace id có hợp lệ không.
// Trả về ErrInvalidMarketplace nếu region lạ hoặc marketplace không thuộc region.
func ValidateMarketplace(region, marketplaceID string) error {
	marketplaces, ok := marketplacesByRegion[region]
	if !ok {
		return common.ErrInvalidMarketplace
	}
	for _, id := range marketplaces {
		if id == marketplaceID {
			return nil
		}
	}
	return common.ErrInvalidMarketplace
}
