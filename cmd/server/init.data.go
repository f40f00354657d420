package main

import (
	"context"
	"time"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/database"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
)

// InitDefaultData đảm bảo các index cần cho engine economics tồn tại.
// Index đã tồn tại được bỏ qua, không fatal.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Data)
	if err := database.CreateEconomicsIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create economics indexes: %v", err)
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
