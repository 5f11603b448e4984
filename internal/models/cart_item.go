package models

import "time"

// CartItem 购物车项，(user_id, product_id) 唯一
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                   // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine 购物车项与商品的联表结果
type CartLine struct {
	ID        uint   // 购物车项ID
	ProductID uint   // 商品ID
	Name      string // 商品名称
	Image     string // 商品图片
	Price     Money  // 当前单价
	Quantity  int    // 数量
}

// Subtotal 单行小计
func (l CartLine) Subtotal() Money {
	return l.Price.Mul(l.Quantity)
}
