package repository

import (
	"context"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository 登录日志数据访问接口
type UserLoginLogRepository interface {
	Create(ctx context.Context, log *models.UserLoginLog) error
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error)
}

// GormUserLoginLogRepository GORM 实现
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository 创建登录日志仓库
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

// Create 写入一条登录日志
func (r *GormUserLoginLogRepository) Create(ctx context.Context, log *models.UserLoginLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByUser 按时间倒序分页返回用户自己的登录日志及总数
func (r *GormUserLoginLogRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.UserLoginLog{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	logs := make([]models.UserLoginLog, 0)
	if total == 0 {
		return logs, 0, nil
	}
	err := base.Scopes(paginate(page, pageSize)).
		Order("created_at desc").Order("id desc").
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// paginate 分页 scope，pageSize 非正时不限制条数
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}
