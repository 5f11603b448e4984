package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type strictPayload struct {
	Name     string `json:"name" binding:"max=5"`
	Quantity int    `json:"quantity"`
}

func newJSONContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSONStrict(t *testing.T) {
	var ok strictPayload
	require.NoError(t, BindJSONStrict(newJSONContext(`{"name":"cpu","quantity":2}`), &ok))
	assert.Equal(t, "cpu", ok.Name)
	assert.Equal(t, 2, ok.Quantity)

	cases := map[string]string{
		"unknown field": `{"name":"cpu","price":1}`,
		"malformed":     `{"name":`,
		"empty":         ``,
		"trailing":      `{"name":"cpu"}{"name":"gpu"}`,
		"validation":    `{"name":"too-long-name"}`,
		"wrong type":    `{"quantity":"two"}`,
	}
	for name, body := range cases {
		var payload strictPayload
		assert.Error(t, BindJSONStrict(newJSONContext(body), &payload), name)
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = NormalizePagination(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, size)
}

func TestRespondErrorUsesLocaleAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	c.Set("request_id", "req-1")

	RespondError(c, http.StatusBadRequest, "error.cart_empty", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"购物车为空","request_id":"req-1"}`, w.Body.String())
}

func TestGetUserIDMissingIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
