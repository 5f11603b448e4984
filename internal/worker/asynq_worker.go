package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
}

func (c *Consumer) handleOrderPlaced(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeOrderPlacedPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if !c.EmailService.Enabled() {
		logger.Debugw("worker_order_placed_skip_email_disabled", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(ctx, payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiver := strings.TrimSpace(payload.Email)
	name := strings.TrimSpace(payload.Name)
	if receiver == "" {
		user, err := c.UserRepo.GetByID(ctx, order.UserID)
		if err != nil {
			logger.Warnw("worker_order_placed_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiver = strings.TrimSpace(user.Email)
			name = user.Name
		}
	}
	if receiver == "" {
		logger.Debugw("worker_order_placed_skip_empty_receiver", "order_id", order.ID)
		return nil
	}

	input := service.OrderPlacedEmailInput{
		OrderID:       order.ID,
		Name:          name,
		TotalAmount:   order.TotalAmount.String(),
		PaymentMethod: order.PaymentMethod,
	}
	if err := c.EmailService.SendOrderPlacedEmail(receiver, input, ""); err != nil {
		logger.Warnw("worker_order_placed_send_failed",
			"order_id", order.ID,
			"receiver_email", receiver,
			"error", err,
		)
		if errors.Is(err, service.ErrEmailRecipientRejected) || errors.Is(err, service.ErrInvalidEmail) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	logger.Infow("worker_order_placed_email_sent", "order_id", order.ID)
	return nil
}
