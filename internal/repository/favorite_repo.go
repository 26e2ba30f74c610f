package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace_dev_v1/internal/model"
)

// ==================== FavoriteRepository 收藏仓库 ====================

// FavoriteRepository 收藏仓储接口
type FavoriteRepository interface {
	// Add 幂等添加（已存在时无副作用）
	Add(ctx context.Context, userID, productID int64) error
	// Remove 取消收藏，返回受影响行数
	Remove(ctx context.Context, userID, productID int64) (int64, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	// FilterFavorited 返回 productIDs 中该用户已收藏的子集（列表页批量标记用）
	FilterFavorited(ctx context.Context, userID int64, productIDs []int64) ([]int64, error)
	// ListVisibleProducts 收藏的当前可见商品
	ListVisibleProducts(ctx context.Context, userID int64) ([]model.Product, error)
}

// ==================== 实现 ====================

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, productID int64) error {
	fav := &model.Favorite{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	// ON CONFLICT DO NOTHING
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(fav).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, productID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) FilterFavorited(ctx context.Context, userID int64, productIDs []int64) ([]int64, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	return ids, err
}

func (r *favoriteRepository) ListVisibleProducts(ctx context.Context, userID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ? AND products.is_visible = ?", userID, true).
		Order("favorites.created_at DESC").
		Preload("Seller").
		Find(&products).Error
	return products, err
}
