package service

import (
	"context"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/events"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const postCommitTimeout = 3 * time.Second

// OrderPlacedEnqueuer 下单成功任务投递
type OrderPlacedEnqueuer interface {
	EnqueueOrderPlaced(ctx context.Context, payload queue.OrderPlacedPayload, opts ...asynq.Option) error
}

// OrderService 订单服务
type OrderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	queue     OrderPlacedEnqueuer
	publisher events.Publisher
}

// NewOrderService 创建订单服务，queue 与 publisher 可为 nil
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	queueClient OrderPlacedEnqueuer,
	publisher events.Publisher,
) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		queue:     queueClient,
		publisher: publisher,
	}
}

// CheckoutResult 下单结果
type CheckoutResult struct {
	OrderID       uint         `json:"order_id"`
	TotalAmount   models.Money `json:"total_amount"`
	ItemCount     int          `json:"item_count"`
	PaymentMethod string       `json:"payment_method"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CreateOrder 将购物车转为订单，订单、订单项与清空购物车在同一事务内完成
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, paymentMethod string) (*CheckoutResult, error) {
	method := strings.TrimSpace(paymentMethod)
	if method == "" {
		return nil, ErrPaymentMethodRequired
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		lines, err := cartRepo.ListLinesForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		lineIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			total = total.Add(line.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Quantity:    line.Quantity,
				Price:       line.Price,
			})
			lineIDs = append(lineIDs, line.ID)
		}

		order = &models.Order{
			UserID:        userID,
			TotalAmount:   models.NewMoneyFromDecimal(total),
			PaymentMethod: method,
		}
		if err := orderRepo.Create(ctx, order, items); err != nil {
			return err
		}
		_, err = cartRepo.DeleteByIDs(ctx, userID, lineIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		OrderID:       order.ID,
		TotalAmount:   order.TotalAmount,
		ItemCount:     len(order.Items),
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
	s.afterOrderPlaced(ctx, order)
	return result, nil
}

// afterOrderPlaced 提交后投递通知任务与领域事件，失败只记录日志
func (s *OrderService) afterOrderPlaced(ctx context.Context, order *models.Order) {
	postCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	payload := queue.OrderPlacedPayload{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount.String(),
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
	}

	if s.queue != nil {
		if user, err := s.userRepo.GetByID(postCtx, order.UserID); err != nil {
			logger.Warnw("order_checkout_load_user_failed", "order_id", order.ID, "error", err)
		} else if user != nil {
			payload.Email = user.Email
			payload.Name = user.Name
			if err := s.queue.EnqueueOrderPlaced(postCtx, payload); err != nil {
				logger.Warnw("order_checkout_enqueue_failed", "order_id", order.ID, "error", err)
			}
		}
	}

	event := events.NewEvent(constants.EventOrderPlaced, order.UserID, payload)
	if err := s.publisher.Publish(postCtx, event); err != nil {
		logger.Warnw("order_checkout_publish_failed", "order_id", order.ID, "error", err)
	}
}

// ListOrders 用户订单列表（新到旧）
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder 获取用户自己的订单详情
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
