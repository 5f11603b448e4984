package cache

import (
	"context"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
)

// GetProductList 读取商品列表缓存
func (s *Store) GetProductList(ctx context.Context) ([]models.Product, bool, error) {
	var products []models.Product
	hit, err := s.GetJSON(ctx, constants.CacheKeyProductList, &products)
	if err != nil || !hit {
		return nil, false, err
	}
	return products, true, nil
}

// SetProductList 写入商品列表缓存
func (s *Store) SetProductList(ctx context.Context, products []models.Product, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.SetJSON(ctx, constants.CacheKeyProductList, products, ttl)
}

// InvalidateProductList 清除商品列表缓存
func (s *Store) InvalidateProductList(ctx context.Context) error {
	return s.Del(ctx, constants.CacheKeyProductList)
}
