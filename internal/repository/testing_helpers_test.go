package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storefront-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试使用独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		Phone:        "555-0100",
		Address:      "1 Main St",
		PasswordHash: "hash",
		Status:       "active",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Category: "test",
		Price:    models.MustMoney(price),
		Image:    "/img/" + name + ".png",
		Stock:    10,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
