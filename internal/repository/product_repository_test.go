package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListOrderedByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	first := createTestProduct(t, db, "cpu", "449.00")
	second := createTestProduct(t, db, "gpu", "599.99")

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)
	assert.Equal(t, "599.99", products[1].Price.String())
}

func TestProductGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "ssd", "169.99")

	got, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ssd", got.Name)

	missing, err := repo.GetByID(context.Background(), product.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
