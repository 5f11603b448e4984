// Package client 是 storefront HTTP 接口的 Go 客户端。
// 注册或登录成功后会话保存在 Client 内，后续请求自动携带 Bearer 令牌。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL 本地开发默认地址
const DefaultBaseURL = "http://localhost:3000/api"

// ErrNotLoggedIn 未登录
var ErrNotLoggedIn = errors.New("client: not logged in")

// APIError 服务端返回的错误
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s (request_id=%s)", e.StatusCode, e.Message, e.RequestID)
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 指定底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSession 使用已保存的会话
func WithSession(session Session) Option {
	return func(c *Client) {
		c.session = &session
	}
}

// Client storefront 接口客户端，可并发使用
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	session *Session
	user    *User
	now     func() time.Time
}

// New 创建客户端，baseURL 为空时使用 DefaultBaseURL
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session 当前会话
func (c *Client) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// CachedUser 最近一次登录、注册或更新资料得到的用户
func (c *Client) CachedUser() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// IsLoggedIn 是否持有未过期会话
func (c *Client) IsLoggedIn() bool {
	session, ok := c.Session()
	return ok && !session.Expired(c.now())
}

// Logout 清除本地会话
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.user = nil
}

func (c *Client) remember(resp *AuthResponse) {
	if resp == nil || resp.Token == "" {
		return
	}
	session := resp.Session
	if session.Token == "" {
		session.Token = resp.Token
	}
	user := resp.User
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &session
	c.user = &user
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, auth bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		session, ok := c.Session()
		if !ok {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Request failed"}
		var payload struct {
			Error     string `json:"error"`
			RequestID string `json:"request_id"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			if payload.Error != "" {
				apiErr.Message = payload.Error
			}
			apiErr.RequestID = payload.RequestID
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// Register 注册并保存会话
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &resp, false); err != nil {
		return nil, err
	}
	c.remember(&resp)
	return &resp, nil
}

// Login 登录并保存会话
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp, false); err != nil {
		return nil, err
	}
	c.remember(&resp)
	return &resp, nil
}

// GetCurrentUser 获取当前用户
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新资料，成功后刷新缓存的用户
func (c *Client) UpdateUser(ctx context.Context, req UpdateUserRequest) (*User, error) {
	var resp struct {
		Message string `json:"message"`
		User    User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/user", req, &resp, true); err != nil {
		return nil, err
	}
	c.mu.Lock()
	user := resp.User
	c.user = &user
	c.mu.Unlock()
	return &resp.User, nil
}

// GetCart 获取购物车
func (c *Client) GetCart(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &lines, true); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddToCart 加入购物车，quantity 小于 1 时按 1 处理
func (c *Client) AddToCart(ctx context.Context, productID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	body := map[string]interface{}{"product_id": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/cart", body, nil, true)
}

// UpdateCartItem 修改购物车项数量
func (c *Client) UpdateCartItem(ctx context.Context, itemID uint, quantity int) (*MutationResult, error) {
	var resp MutationResult
	body := map[string]int{"quantity": quantity}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", itemID), body, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveFromCart 删除购物车项
func (c *Client) RemoveFromCart(ctx context.Context, itemID uint) (*MutationResult, error) {
	var resp MutationResult
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearCart 清空购物车
func (c *Client) ClearCart(ctx context.Context) (*MutationResult, error) {
	var resp MutationResult
	if err := c.do(ctx, http.MethodDelete, "/cart", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProducts 商品列表
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateOrder 结算购物车
func (c *Client) CreateOrder(ctx context.Context, paymentMethod string) (*CheckoutResult, error) {
	var resp CheckoutResult
	body := map[string]string{"payment_method": paymentMethod}
	if err := c.do(ctx, http.MethodPost, "/orders", body, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrders 订单列表
func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}
