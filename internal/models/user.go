package models

import "time"

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                // 主键
	Name         string     `gorm:"type:varchar(120);not null" json:"name"`              // 姓名
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 邮箱（统一小写存储）
	Phone        string     `gorm:"type:varchar(40);not null" json:"phone"`              // 电话
	Address      string     `gorm:"type:text;not null" json:"address"`                   // 收货地址
	PasswordHash string     `gorm:"not null" json:"-"`                                   // 密码哈希（不返回给前端）
	Status       string     `gorm:"type:varchar(20);default:'active'" json:"status"`     // 账号状态
	MemberSince  time.Time  `gorm:"not null" json:"member_since"`                        // 注册时间
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`                             // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"-"`                                      // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
