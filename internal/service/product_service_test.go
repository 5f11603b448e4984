package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductCache struct {
	products []models.Product
	hit      bool
	getErr   error
	sets     int
}

func (c *fakeProductCache) GetProductList(context.Context) ([]models.Product, bool, error) {
	return c.products, c.hit, c.getErr
}

func (c *fakeProductCache) SetProductList(_ context.Context, products []models.Product, _ time.Duration) error {
	c.sets++
	c.products = products
	return nil
}

func TestListProductsOrderedByID(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "c", "3")
	env.createProduct(t, "a", "1")

	products, err := env.products.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Less(t, products[0].ID, products[1].ID)
}

func TestListProductsEmptyIsNotNil(t *testing.T) {
	env := setupTestEnv(t)
	products, err := env.products.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListProductsReadThroughCache(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "cached", "9.99")
	cache := &fakeProductCache{}
	svc := NewProductService(repository.NewProductRepository(env.db), cache, time.Minute)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, cache.sets)

	cache.hit = true
	cache.products = []models.Product{{ID: 77, Name: "from-cache"}}
	products, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "from-cache", products[0].Name)
}

func TestListProductsCacheErrorFallsBackToDatabase(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "db", "1.00")
	cache := &fakeProductCache{getErr: errors.New("redis unavailable")}
	svc := NewProductService(repository.NewProductRepository(env.db), cache, time.Minute)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "db", products[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.products.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	product := env.createProduct(t, "found", "2.00")
	got, err := env.products.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "found", got.Name)
}
