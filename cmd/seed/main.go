package main

import (
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	db, err := models.InitDB(models.DBOptions{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
		Pool: models.DBPoolConfig{
			MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
		},
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	created, err := models.SeedProducts(db, models.DefaultProducts())
	if err != nil {
		stdLog.Fatalf("Failed to seed products: %v", err)
	}
	if created == 0 {
		logger.Infow("seed_products_skipped", "reason", "products table not empty")
		return
	}
	logger.Infow("seed_products_created", "count", created)
}
