package repository

import (
	"context"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListLines(ctx context.Context, userID uint) ([]models.CartLine, error)
	ListLinesForUpdate(ctx context.Context, userID uint) ([]models.CartLine, error)
	AddQuantity(ctx context.Context, userID, productID uint, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (int64, error)
	Delete(ctx context.Context, userID, itemID uint) (int64, error)
	DeleteByIDs(ctx context.Context, userID uint, ids []uint) (int64, error)
	ClearByUser(ctx context.Context, userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) linesQuery(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.id AS id, ci.product_id AS product_id, p.name AS name, p.image AS image, p.price AS price, ci.quantity AS quantity").
		Joins("JOIN products AS p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.id asc")
}

// ListLines 查询用户购物车（联表商品）
func (r *GormCartRepository) ListLines(ctx context.Context, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.linesQuery(ctx, userID).Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ListLinesForUpdate 在事务内锁定并读取用户购物车行（SQLite 下退化为普通读取）
func (r *GormCartRepository) ListLinesForUpdate(ctx context.Context, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	query := r.linesQuery(ctx, userID).Clauses(clause.Locking{
		Strength: "UPDATE",
		Table:    clause.Table{Name: "ci"},
	})
	if err := query.Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// AddQuantity 原子写入：不存在则插入，存在则累加数量
func (r *GormCartRepository) AddQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

// UpdateQuantity 设置数量，仅作用于属于该用户的行
func (r *GormCartRepository) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Delete 删除单行，仅作用于属于该用户的行
func (r *GormCartRepository) Delete(ctx context.Context, userID, itemID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// DeleteByIDs 删除指定行（下单时只清理已读取的行）
func (r *GormCartRepository) DeleteByIDs(ctx context.Context, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearByUser 清空用户购物车
func (r *GormCartRepository) ClearByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
