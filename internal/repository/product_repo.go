package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace_dev_v1/internal/model"
)

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Keyword  string // 模糊匹配商品名
	Page     int
	PageSize int
}

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	CreateBatch(ctx context.Context, products []model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// GetVisibleByID 仅返回当前可见商品（商城公开详情页）
	GetVisibleByID(ctx context.Context, id int64) (*model.Product, error)
	ListVisible(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error)

	// UpdateOwned / DeleteOwned 带归属校验，返回受影响行数
	UpdateOwned(ctx context.Context, id, sellerID int64, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, sellerID int64) (int64, error)

	// HideBySeller 卖家注销时隐藏其全部商品（级联副作用，非删除）
	HideBySeller(ctx context.Context, sellerID int64) (int64, error)
}

// ==================== 实现 ====================

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) CreateBatch(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(products, 100).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetVisibleByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("id = ? AND is_visible = ?", id, true).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListVisible(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_visible = ?", true)

	if filter.Keyword != "" {
		db = db.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 12
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := db.
		Preload("Seller").
		Order("published_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) UpdateOwned(ctx context.Context, id, sellerID int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *productRepository) DeleteOwned(ctx context.Context, id, sellerID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Delete(&model.Product{})
	return result.RowsAffected, result.Error
}

func (r *productRepository) HideBySeller(ctx context.Context, sellerID int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("seller_id = ?", sellerID).
		Update("is_visible", false)
	return result.RowsAffected, result.Error
}
