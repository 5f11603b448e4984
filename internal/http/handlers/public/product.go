package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（按 id 升序，不分页）
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.ProductService.ListProducts(c.Request.Context())
	if err != nil {
		respondLookupError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "id", "error.product_id_invalid")
	if !ok {
		return
	}
	product, err := h.ProductService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	response.Success(c, product)
}
