package public

import (
	"context"
	"net/http"
	"time"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Health 健康检查，数据库不可达时返回 503
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		handlershared.RequestLog(c).Warnw("health_db_ping_failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	response.Success(c, gin.H{"status": "ok"})
}
