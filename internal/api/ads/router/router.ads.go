// Package adsrt - Đăng ký route cho domain Ads.
package adsrt

import (
	"github.com/gofiber/fiber/v3"

	adshdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/handler"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/middleware"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/router"
)

// Register trả về hàm đăng ký route của domain Ads cho router.SetupRoutes
func Register(handler *adshdl.AdsHandler) router.RegisterFunc {
	return func(v1 fiber.Router, r *router.Router) error {
		accountContext := middleware.AccountContextMiddleware()

		router.RegisterRouteWithMiddleware(v1, "/ads", "POST", "/ingest", []fiber.Handler{accountContext}, handler.HandleIngest)

		// CRUD read-only trên ads_daily_spend (tra cứu dữ liệu thô)
		r.RegisterCRUDRoutes(v1, "/ads-daily-spend", handler, router.ReadOnlyConfig)

		return nil
	}
}
