// Package catalogsvc - Service cho domain Catalog: danh mục sản phẩm của account
// và map quan hệ child → parent ASIN.
package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/base/service"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
)

// CatalogService xử lý logic nghiệp vụ cho danh mục sản phẩm
type CatalogService struct {
	productService *basesvc.BaseServiceMongoImpl[models.CatalogProduct]
}

// NewCatalogService tạo mới CatalogService
func NewCatalogService() (*CatalogService, error) {
	productColl, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.CatalogProducts)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CatalogProducts, common.ErrNotFound)
	}
	return &CatalogService{
		productService: basesvc.NewBaseServiceMongo[models.CatalogProduct](productColl),
	}, nil
}

// ProductService trả về base service của catalog_products (dùng cho CRUD routes)
func (s *CatalogService) ProductService() *basesvc.BaseServiceMongoImpl[models.CatalogProduct] {
	return s.productService
}

// GetParentMap trả về map asin → parentAsin của account, bổ sung quan hệ
// parent/child cho các record thiếu parent từ nguồn
func (s *CatalogService) GetParentMap(ctx context.Context, accountID string) (map[string]string, error) {
	opts := options.Find().SetProjection(bson.M{"asin": 1, "parentAsin": 1})
	products, err := s.productService.Find(ctx, bson.M{"accountId": accountID}, opts)
	if err != nil {
		return nil, err
	}

	parentMap := make(map[string]string, len(products))
	for _, product := range products {
		if product.ParentAsin != "" && product.ParentAsin != product.Asin {
			parentMap[product.Asin] = product.ParentAsin
		}
	}
	return parentMap, nil
}
