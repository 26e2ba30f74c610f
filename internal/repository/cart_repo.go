package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace_dev_v1/internal/model"
)

// ==================== CartRepository 购物车仓库 ====================

// CartRepository 购物车仓储接口
type CartRepository interface {
	// Add 加购，(user, product) 已存在则累加数量
	Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error)
	// SetQuantity 设置绝对数量，返回受影响行数
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) (int64, error)
	// Remove 移除单个商品，返回受影响行数
	Remove(ctx context.Context, userID, productID int64) (int64, error)
	// Clear 清空该用户全部购物车行（可见与不可见一并删除）
	Clear(ctx context.Context, userID int64) error
	// ListLines 购物车行 JOIN 商品实时价格/可见性
	ListLines(ctx context.Context, userID int64) ([]model.CartLine, error)
	// DeleteStale 删除早于 before 的购物车行（后台清理用）
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 实现 ====================

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}

	// ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = quantity + excluded
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
		}),
	}).Create(item).Error
	if err != nil {
		return nil, err
	}

	// 回读累加后的行
	var saved model.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepository) ListLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id AS cart_item_id,
			cart_items.product_id,
			products.seller_id,
			products.name,
			products.price_amount,
			products.image_url,
			cart_items.quantity,
			(products.is_visible AND products.deleted_at IS NULL) AS is_visible,
			cart_items.added_at`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.added_at DESC").
		Scan(&lines).Error
	return lines, err
}

func (r *cartRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("added_at < ?", before).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}
