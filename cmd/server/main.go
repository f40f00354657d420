package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	adshdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/handler"
	adsrt "github.com/EstoreFactory109/SellerQI-sub008/internal/api/ads/router"
	cataloghdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/handler"
	catalogrt "github.com/EstoreFactory109/SellerQI-sub008/internal/api/catalog/router"
	economicshdl "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/handler"
	economicsrt "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/router"
	economicssvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/service"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Helper resolve đường dẫn tương đối từ thư mục project
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo dữ liệu mặc định (indexes)
	InitDefaultData()

	log := logger.GetAppLogger()

	// Feed provider là optional: không cấu hình thì refresh chỉ dùng được snapshot cũ.
	// Không gán trực tiếp để tránh typed-nil trong interface.
	var feedProvider economicssvc.FeedProvider
	if provider := economicssvc.NewHTTPFeedProvider(); provider != nil {
		feedProvider = provider
		log.Info("Economics feed provider initialized")
	} else {
		log.Warn("ECONOMICS_FEED_URL chưa cấu hình, refresh sẽ fallback snapshot đã lưu")
	}

	// Khởi tạo các domain handler
	economicsHandler, err := economicshdl.NewEconomicsHandler(feedProvider)
	if err != nil {
		log.Fatalf("Failed to create economics handler: %v", err)
	}
	adsHandler, err := adshdl.NewAdsHandler()
	if err != nil {
		log.Fatalf("Failed to create ads handler: %v", err)
	}
	catalogHandler, err := cataloghdl.NewCatalogHandler()
	if err != nil {
		log.Fatalf("Failed to create catalog handler: %v", err)
	}

	// Khởi tạo app với routes của từng domain
	app := InitFiberApp(
		economicsrt.Register(economicsHandler),
		adsrt.Register(adsHandler),
		catalogrt.Register(catalogHandler),
	)

	// Chạy refresh worker nền xử lý các job async
	refreshWorker := worker.NewRefreshWorker(economicsHandler.Service())
	refreshWorker.Start()

	// Chạy Fiber server trên main thread
	main_thread(app)
}
