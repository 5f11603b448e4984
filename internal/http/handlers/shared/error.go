package shared

import (
	"net/http"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if id := GetRequestID(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应
// 5xx 的原始错误按 error 级别记录，客户端只拿到通用消息
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		log := RequestLog(c).With(
			"status", code,
			"message", msg,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		if code >= http.StatusInternalServerError {
			log.Error("handler_error")
		} else {
			log.Debug("handler_rejected")
		}
	}
	response.Error(c, code, msg)
}
