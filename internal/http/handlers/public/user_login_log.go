package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMyLoginLogs 获取当前用户登录日志
func (h *Handler) GetMyLoginLogs(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := handlershared.QueryPagination(c)
	logs, total, err := h.UserLoginLogService.ListByUser(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.server", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
