package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity" binding:"max=10000"`
}

// CartQuantityRequest 修改数量请求
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"max=10000"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.GetCart(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, items)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.AddItem(c.Request.Context(), uid, req.ProductID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.cart_item_added"), nil)
}

// UpdateCartItem 修改购物车项数量，非本人或不存在的项返回 affected=0
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "id", "error.cart_item_id_invalid")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	affected, err := h.CartService.UpdateItem(c.Request.Context(), uid, itemID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.cart_updated"), gin.H{"affected": affected})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "id", "error.cart_item_id_invalid")
	if !ok {
		return
	}

	affected, err := h.CartService.RemoveItem(c.Request.Context(), uid, itemID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.cart_item_removed"), gin.H{"affected": affected})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	affected, err := h.CartService.Clear(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.cart_cleared"), gin.H{"affected": affected})
}
