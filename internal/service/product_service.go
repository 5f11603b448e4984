package service

import (
	"context"
	"time"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ProductListCache 商品列表缓存
type ProductListCache interface {
	GetProductList(ctx context.Context) ([]models.Product, bool, error)
	SetProductList(ctx context.Context, products []models.Product, ttl time.Duration) error
}

// ProductService 商品业务服务
type ProductService struct {
	repo     repository.ProductRepository
	cache    ProductListCache
	cacheTTL time.Duration
}

// NewProductService 创建商品服务，cache 可为 nil
func NewProductService(repo repository.ProductRepository, cache ProductListCache, cacheTTL time.Duration) *ProductService {
	return &ProductService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// ListProducts 获取全部商品（按 ID 升序），缓存异常时回源数据库
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil && s.cacheTTL > 0 {
		products, hit, err := s.cache.GetProductList(ctx)
		if err != nil {
			logger.Warnw("catalog_cache_read_failed", "error", err)
		} else if hit {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetProductList(ctx, products, s.cacheTTL); err != nil {
			logger.Warnw("catalog_cache_write_failed", "error", err)
		}
	}
	return products, nil
}

// GetProduct 获取商品详情
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
