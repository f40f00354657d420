// Package economicsrt - Đăng ký route cho domain Economics.
package economicsrt

import (
	"github.com/gofiber/fiber/v3"

	economicshdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/handler"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/middleware"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/router"
)

// Register trả về hàm đăng ký route của domain Economics cho router.SetupRoutes.
// Mọi route đều đi qua AccountContextMiddleware: engine scope dữ liệu theo seller account.
func Register(handler *economicshdl.EconomicsHandler) router.RegisterFunc {
	return func(v1 fiber.Router, r *router.Router) error {
		accountContext := middleware.AccountContextMiddleware()
		middlewares := []fiber.Handler{accountContext}

		// Engine operations
		router.RegisterRouteWithMiddleware(v1, "/economics", "POST", "/refresh", middlewares, handler.HandleRefresh)
		router.RegisterRouteWithMiddleware(v1, "/economics", "GET", "/summary", middlewares, handler.HandleSummary)
		router.RegisterRouteWithMiddleware(v1, "/economics", "GET", "/asin-table", middlewares, handler.HandleAsinTable)
		router.RegisterRouteWithMiddleware(v1, "/economics", "GET", "/issues", middlewares, handler.HandleIssues)
		router.RegisterRouteWithMiddleware(v1, "/economics", "GET", "/issues/summary", middlewares, handler.HandleIssueSummary)
		router.RegisterRouteWithMiddleware(v1, "/economics", "DELETE", "/metrics/:id", middlewares, handler.HandleDeleteMetrics)

		// CRUD read-only trên economics_metrics (debug/tra cứu)
		r.RegisterCRUDRoutes(v1, "/economics-metrics", handler, router.ReadOnlyConfig)

		return nil
	}
}
