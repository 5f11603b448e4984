package service

import (
	"context"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/events"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// CartItemDetail 购物车行（用于响应）
type CartItemDetail struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	Amount    float64 `json:"amount"`
	Img       string  `json:"img"`
	Quantity  int     `json:"quantity"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	publisher   events.Publisher
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, publisher events.Publisher) *CartService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetCart 获取用户购物车
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]CartItemDetail, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, toCartItemDetail(line))
	}
	return details, nil
}

// AddItem 加入购物车，同一商品累加数量
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	if productID == 0 || quantity < 1 {
		return ErrCartItemInvalid
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.cartRepo.AddQuantity(ctx, userID, productID, quantity)
}

// UpdateItem 修改数量，返回受影响行数（不存在或非本人时为 0）
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (int64, error) {
	if quantity < 1 {
		return 0, ErrQuantityInvalid
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
}

// RemoveItem 删除单行，返回受影响行数
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (int64, error) {
	return s.cartRepo.Delete(ctx, userID, itemID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) (int64, error) {
	affected, err := s.cartRepo.ClearByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		event := events.NewEvent(constants.EventCartCleared, userID, map[string]interface{}{"removed": affected})
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Warnw("cart_cleared_publish_failed", "user_id", userID, "error", err)
		}
	}
	return affected, nil
}

func toCartItemDetail(line models.CartLine) CartItemDetail {
	return CartItemDetail{
		ID:        line.ID,
		ProductID: line.ProductID,
		Name:      line.Name,
		Price:     line.Price.Display(),
		Amount:    line.Price.Float64(),
		Img:       line.Image,
		Quantity:  line.Quantity,
	}
}
