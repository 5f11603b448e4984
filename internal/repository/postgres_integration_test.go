//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/storefront-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Product{},
		&models.UserLoginLog{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresConcurrentAddQuantityKeepsSingleRow(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	user := createTestUser(t, db, "pg-cart@example.com")
	product := createTestProduct(t, db, "pg-cpu", "299.99")
	repo := NewCartRepository(db)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AddQuantity(context.Background(), user.ID, product.ID, 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("add quantity failed: %v", err)
		}
	}

	lines, err := repo.ListLines(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list lines failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != workers {
		t.Fatalf("want one line with quantity %d got %+v", workers, lines)
	}
}

func TestPostgresLockedCartReadInsideTransaction(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	user := createTestUser(t, db, "pg-lock@example.com")
	product := createTestProduct(t, db, "pg-gpu", "899.00")
	repo := NewCartRepository(db)
	ctx := context.Background()

	if err := repo.AddQuantity(ctx, user.ID, product.ID, 2); err != nil {
		t.Fatalf("add quantity failed: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		lines, err := txRepo.ListLinesForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(lines) != 1 {
			t.Fatalf("want 1 locked line got %d", len(lines))
		}
		ids := []uint{lines[0].ID}
		_, err = txRepo.DeleteByIDs(ctx, user.ID, ids)
		return err
	})
	if err != nil {
		t.Fatalf("locked checkout read failed: %v", err)
	}

	lines, err := repo.ListLines(ctx, user.ID)
	if err != nil {
		t.Fatalf("list lines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart should be empty got %d lines", len(lines))
	}
}
