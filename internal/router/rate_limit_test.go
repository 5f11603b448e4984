package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	keys     []string
	decision LimitDecision
	err      error
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (LimitDecision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func newRateLimitedEngine(limiter Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(limiter, KeyByIPAndJSONField("email"), "error.login_too_many"), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{"echo": string(body)})
	})
	return r
}

func postLogin(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "1.2.3.4:5678"
	r.ServeHTTP(w, req)
	return w
}

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.RemoteAddr = "1.2.3.4:5678"

	assert.Equal(t, "test@example.com|1.2.3.4", KeyByIPAndJSONField("email")(c))

	body, err := io.ReadAll(c.Request.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Test@Example.com")
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, body := range []string{``, `not json`, `{"email":42}`, `{"other":"x"}`} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		c.Request.RemoteAddr = "1.2.3.4:5678"
		assert.Equal(t, "1.2.3.4", KeyByIPAndJSONField("email")(c), "body %q", body)
	}
}

func TestRateLimitMiddlewareWithoutLimiter(t *testing.T) {
	w := postLogin(newRateLimitedEngine(nil), `{"email":"a@b.c"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.c")
}

func TestNewRedisFixedWindowWithoutClientIsNil(t *testing.T) {
	assert.Nil(t, NewRedisFixedWindow(nil, "rate:login", time.Minute, 5))
}

func TestRateLimitMiddlewareAllowsUnderLimit(t *testing.T) {
	limiter := &fakeLimiter{decision: LimitDecision{Allowed: true, Count: 1}}
	w := postLogin(newRateLimitedEngine(limiter), `{"email":"Buyer@Example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Buyer@Example.com", "handler must still see the body")
	assert.Equal(t, []string{"buyer@example.com|1.2.3.4"}, limiter.keys)
}

func TestRateLimitMiddlewareRejectsOverLimit(t *testing.T) {
	limiter := &fakeLimiter{decision: LimitDecision{Allowed: false, Count: 6, RetryAfter: 42 * time.Second}}
	w := postLogin(newRateLimitedEngine(limiter), `{"email":"buyer@example.com"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestRateLimitMiddlewareFailsClosed(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis down")}
	w := postLogin(newRateLimitedEngine(limiter), `{"email":"buyer@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Retry-After"))
}
