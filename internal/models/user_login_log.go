package models

import "time"

// UserLoginLog 登录审计记录，成功和失败的尝试都会写入
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index:idx_login_log_user_time,priority:1" json:"user_id"` // 邮箱未匹配到用户时为 0
	Email      string    `gorm:"type:varchar(255);index;not null" json:"email"`
	Status     string    `gorm:"type:varchar(16);not null" json:"status"`
	FailReason string    `gorm:"type:varchar(40)" json:"fail_reason,omitempty"`
	ClientIP   string    `gorm:"type:varchar(64)" json:"client_ip"`
	UserAgent  string    `gorm:"type:varchar(512)" json:"user_agent"`
	Source     string    `gorm:"type:varchar(32)" json:"source"`
	RequestID  string    `gorm:"type:varchar(64)" json:"request_id"`
	CreatedAt  time.Time `gorm:"index:idx_login_log_user_time,priority:2" json:"created_at"`
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
