// Package cataloghdl - Handler cho domain Catalog.
package cataloghdl

import (
	basehdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/base/handler"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/models"
	catalogsvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/service"
)

// CatalogHandler xử lý các route danh mục sản phẩm.
// Toàn bộ surface là CRUD qua BaseHandler, không có operation riêng.
type CatalogHandler struct {
	basehdl.BaseHandler[models.CatalogProduct, models.CatalogProduct, models.CatalogProduct]
	catalogService *catalogsvc.CatalogService
}

// NewCatalogHandler tạo mới CatalogHandler
func NewCatalogHandler() (*CatalogHandler, error) {
	catalogService, err := catalogsvc.NewCatalogService()
	if err != nil {
		return nil, err
	}

	handler := &CatalogHandler{catalogService: catalogService}
	handler.BaseService = catalogService.ProductService()
	return handler, nil
}
