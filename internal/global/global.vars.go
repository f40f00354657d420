package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/EstoreFactory109/SellerQI-sub008/config"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/registry"
)

// MongoDB_Data_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Data_CollectionName struct {
	EconomicsMetrics     string // Tên collection cho snapshot metrics economics theo account
	EconomicsAsinShards  string // Tên collection cho shard ASIN-ngày của account lớn
	EconomicsRefreshJobs string // Tên collection cho job refresh economics chạy nền
	CatalogProducts      string // Tên collection cho catalog sản phẩm (asin -> parentAsin)
	AdsDailySpend        string // Tên collection cho chi phí quảng cáo theo ngày
}

// Các biến toàn cục
var Validate *validator.Validate                               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                 // Cấu hình của server
var MongoDB_ColNames = *new(MongoDB_Data_CollectionName)       // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
