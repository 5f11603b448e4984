package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// LimitDecision 单次限流判定结果
type LimitDecision struct {
	Allowed    bool
	Count      int64
	RetryAfter time.Duration
}

// Limiter 限流器
type Limiter interface {
	Allow(ctx context.Context, key string) (LimitDecision, error)
}

// fixedWindowScript 固定窗口计数，首次命中时设置过期
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RedisFixedWindow 基于 Redis 的固定窗口限流器，可跨实例共享计数
type RedisFixedWindow struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int64
}

// NewRedisFixedWindow 创建固定窗口限流器
// client 为 nil 或参数无效时返回 nil，中间件对 nil 限流器直接放行
func NewRedisFixedWindow(client *redis.Client, prefix string, window time.Duration, max int) Limiter {
	if client == nil || window < time.Second || max <= 0 {
		return nil
	}
	return &RedisFixedWindow{client: client, prefix: prefix, window: window, max: int64(max)}
}

// Allow 计数并判断是否超限
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) (LimitDecision, error) {
	if l.prefix != "" {
		key = l.prefix + ":" + key
	}
	windowSeconds := int64(l.window / time.Second)
	values, err := fixedWindowScript.Run(ctx, l.client, []string{key}, windowSeconds).Int64Slice()
	if err != nil {
		return LimitDecision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(values) < 2 {
		return LimitDecision{}, fmt.Errorf("rate limit script: unexpected reply %v", values)
	}
	decision := LimitDecision{Count: values[0], Allowed: values[0] <= l.max}
	if !decision.Allowed {
		ttl := values[1]
		if ttl < 1 {
			ttl = windowSeconds
		}
		decision.RetryAfter = time.Duration(ttl) * time.Second
	}
	return decision, nil
}

// RateLimitMiddleware 限流中间件
// limiter 为 nil 时直接放行；限流器出错时拒绝请求
func RateLimitMiddleware(limiter Limiter, keyFunc RateLimitKeyFunc, messageKey string) gin.HandlerFunc {
	if strings.TrimSpace(messageKey) == "" {
		messageKey = "error.rate_limited"
	}
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		locale := i18n.ResolveLocale(c)
		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			handlershared.RequestLog(c).Errorw("rate_limit_check_failed", "key", key, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if !decision.Allowed {
			waitSeconds := int(decision.RetryAfter / time.Second)
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			handlershared.RequestLog(c).Warnw("rate_limited", "key", key, "count", decision.Count)
			c.Header("Retry-After", strconv.Itoa(waitSeconds))
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(locale, messageKey, waitSeconds))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 JSON 字段 + IP 作为限流 key，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(readJSONStringField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func readJSONStringField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
