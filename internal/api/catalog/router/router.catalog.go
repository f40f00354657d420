// Package catalogrt - Đăng ký route cho domain Catalog.
package catalogrt

import (
	"github.com/gofiber/fiber/v3"

	cataloghdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/handler"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/router"
)

// Register trả về hàm đăng ký route của domain Catalog cho router.SetupRoutes
func Register(handler *cataloghdl.CatalogHandler) router.RegisterFunc {
	return func(v1 fiber.Router, r *router.Router) error {
		// Danh mục sản phẩm đồng bộ từ nguồn ngoài nên API cho phép ghi để seed/cập nhật
		r.RegisterCRUDRoutes(v1, "/catalog-product", handler, router.ReadWriteConfig)
		return nil
	}
}
