package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 下单成功通知任务
	TaskOrderPlaced = constants.TaskOrderPlaced
)

// OrderPlacedPayload 下单成功任务载荷
type OrderPlacedPayload struct {
	OrderID       uint      `json:"order_id"`
	UserID        uint      `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	TotalAmount   string    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOrderPlacedTask 创建下单成功任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body, asynq.MaxRetry(5)), nil
}

// OrderPlacedTaskID 下单任务的去重 ID
func OrderPlacedTaskID(orderID uint) string {
	return fmt.Sprintf("%s:%d", TaskOrderPlaced, orderID)
}

// DecodeOrderPlacedPayload 解析下单成功任务载荷
func DecodeOrderPlacedPayload(body []byte) (OrderPlacedPayload, error) {
	var payload OrderPlacedPayload
	err := json.Unmarshal(body, &payload)
	return payload, err
}
