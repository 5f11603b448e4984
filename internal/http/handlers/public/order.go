package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"max=60"`
}

// CreateOrder 购物车结算下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.OrderService.CreateOrder(c.Request.Context(), uid, req.PaymentMethod)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.order_created"), gin.H{
		"order_id":       result.OrderID,
		"total_amount":   result.TotalAmount,
		"item_count":     result.ItemCount,
		"payment_method": result.PaymentMethod,
		"created_at":     result.CreatedAt,
	})
}

// ListOrders 当前用户订单列表（新到旧）
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListOrders(c.Request.Context(), uid)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(c.Request.Context(), uid, orderID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	response.Success(c, order)
}
