package client

import "time"

// User 用户资料
type User struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Status      string     `json:"status"`
	MemberSince time.Time  `json:"member_since"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Session 登录会话
type Session struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 会话是否已过期
func (s Session) Expired(now time.Time) bool {
	return s.Token == "" || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	Session Session `json:"session"`
	User    User    `json:"user"`
}

// RegisterRequest 注册参数
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// UpdateUserRequest 更新资料参数
type UpdateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CartLine 购物车行
type CartLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	Amount    float64 `json:"amount"`
	Img       string  `json:"img"`
	Quantity  int     `json:"quantity"`
}

// Product 商品
type Product struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
}

// OrderItem 订单项
type OrderItem struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// Order 订单
type Order struct {
	ID            uint        `json:"id"`
	UserID        uint        `json:"user_id"`
	TotalAmount   string      `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"items"`
}

// CheckoutResult 下单结果
type CheckoutResult struct {
	Message       string    `json:"message"`
	OrderID       uint      `json:"order_id"`
	TotalAmount   string    `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// MutationResult 写操作结果
type MutationResult struct {
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}
