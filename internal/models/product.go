package models

import "time"

// Product 商品表，本服务只读
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`             // 名称
	Description string    `gorm:"type:text" json:"description"`                       // 描述
	Category    string    `gorm:"type:varchar(80);index" json:"category"`             // 分类
	Price       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Image       string    `gorm:"type:varchar(500)" json:"image"`                     // 图片地址
	Stock       int       `gorm:"not null;default:0" json:"stock"`                    // 库存（仅展示，不做扣减）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
