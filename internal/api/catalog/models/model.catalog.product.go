// Package models chứa các model thuộc domain Catalog.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CatalogProduct là một sản phẩm trong catalog của account (catalog_products).
// Unique theo (accountId, asin); dùng để tra parentAsin và thông tin hiển thị.
type CatalogProduct struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`  // MongoDB _id
	AccountID   string             `json:"accountId" bson:"accountId"`         // Seller account
	Asin        string             `json:"asin" bson:"asin"`                   // Product id
	ParentAsin  string             `json:"parentAsin,omitempty" bson:"parentAsin,omitempty"` // ASIN cha (rỗng = tự là parent)
	SKU         string             `json:"sku,omitempty" bson:"sku,omitempty"` // SKU của seller
	DisplayName string             `json:"displayName,omitempty" bson:"displayName,omitempty"` // Tên hiển thị
	Status      string             `json:"status,omitempty" bson:"status,omitempty"`           // active | inactive | ...
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`         // Unix millis
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`         // Unix millis
}
