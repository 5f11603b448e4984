package repository

import (
	"context"
	"testing"

	"github.com/storefront-next/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCartAddQuantityMergesSameProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "cart@example.com")
	product := createTestProduct(t, db, "cpu", "10.00")

	require.NoError(t, repo.AddQuantity(ctx, user.ID, product.ID, 2))
	require.NoError(t, repo.AddQuantity(ctx, user.ID, product.ID, 3))

	lines, err := repo.ListLines(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "cpu", lines[0].Name)
	assert.Equal(t, "10.00", lines[0].Price.String())
	assert.Equal(t, "50.00", lines[0].Subtotal().String())

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartUpdateAndDeleteAreScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	product := createTestProduct(t, db, "gpu", "499.99")

	require.NoError(t, repo.AddQuantity(ctx, owner.ID, product.ID, 1))
	lines, err := repo.ListLines(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	itemID := lines[0].ID

	affected, err := repo.UpdateQuantity(ctx, other.ID, itemID, 9)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, other.ID, itemID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.UpdateQuantity(ctx, owner.ID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	lines, err = repo.ListLines(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)

	affected, err = repo.Delete(ctx, owner.ID, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	lines, err = repo.ListLines(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartDeleteByIDsLeavesOtherRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "ids@example.com")
	first := createTestProduct(t, db, "ram", "89.99")
	second := createTestProduct(t, db, "ssd", "129.00")

	require.NoError(t, repo.AddQuantity(ctx, user.ID, first.ID, 1))
	lines, err := repo.ListLines(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	readIDs := []uint{lines[0].ID}

	require.NoError(t, repo.AddQuantity(ctx, user.ID, second.ID, 2))

	affected, err := repo.DeleteByIDs(ctx, user.ID, readIDs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	lines, err = repo.ListLines(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, second.ID, lines[0].ProductID)

	affected, err = repo.DeleteByIDs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestCartClearByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "clear@example.com")
	other := createTestUser(t, db, "keep@example.com")
	product := createTestProduct(t, db, "psu", "79.00")

	require.NoError(t, repo.AddQuantity(ctx, user.ID, product.ID, 1))
	require.NoError(t, repo.AddQuantity(ctx, other.ID, product.ID, 1))

	affected, err := repo.ClearByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.ClearByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	lines, err := repo.ListLines(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCartListLinesForUpdateInsideTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "lock@example.com")
	product := createTestProduct(t, db, "case", "59.50")
	require.NoError(t, repo.AddQuantity(ctx, user.ID, product.ID, 2))

	var lines []models.CartLine
	err := db.Transaction(func(tx *gorm.DB) error {
		var innerErr error
		lines, innerErr = repo.WithTx(tx).ListLinesForUpdate(ctx, user.ID)
		return innerErr
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}
