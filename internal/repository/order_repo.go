package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace_dev_v1/internal/model"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	// GetByIDForUser 仅返回属于该用户的订单（含订单项）
	GetByIDForUser(ctx context.Context, id, userID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]model.Order, int64, error)
}

// OrderItemRepository 订单项仓储接口
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []model.OrderItem) error
	GetByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// 卖家统计
	SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error)
	TopProduct(ctx context.Context, sellerID int64) (*TopProduct, error)
}

// SellerStats 卖家销售统计
type SellerStats struct {
	TotalProducts int64
	TotalSold     int64
	TotalRevenue  int64 // 分
}

// TopProduct 最畅销商品
type TopProduct struct {
	ProductID int64
	Name      string
	Sold      int64
}

// ==================== OrderRepository 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	err := db.
		Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

// ==================== OrderItemRepository 实现 ====================

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository 创建订单项仓库
func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, 100).Error
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *orderItemRepository) SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error) {
	var stats SellerStats

	// 商品数（含已隐藏，口径与原始报表一致）
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// 销量与营收来自订单项快照
	var result struct {
		Sold    int64
		Revenue int64
	}
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Select("COALESCE(SUM(quantity), 0) AS sold, COALESCE(SUM(quantity * price_amount), 0) AS revenue").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	stats.TotalSold = result.Sold
	stats.TotalRevenue = result.Revenue

	return &stats, nil
}

func (r *orderItemRepository) TopProduct(ctx context.Context, sellerID int64) (*TopProduct, error) {
	var top TopProduct
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Select("product_id, product_name AS name, SUM(quantity) AS sold").
		Group("product_id, product_name").
		Order("sold DESC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if top.ProductID == 0 {
		return nil, nil
	}
	return &top, nil
}

// ==================== CheckoutUnitOfWork 结算工作单元 ====================

// CheckoutUnitOfWork 聚合结算所需仓库，在同一事务内执行
// 读购物车 → 过滤可见 → 建订单/订单项 → 清空购物车，全部成功或全部回滚
type CheckoutUnitOfWork struct {
	db     *gorm.DB
	Orders OrderRepository
	Items  OrderItemRepository
	Cart   CartRepository
}

// NewCheckoutUnitOfWork 创建结算工作单元
func NewCheckoutUnitOfWork(db *gorm.DB) *CheckoutUnitOfWork {
	return &CheckoutUnitOfWork{
		db:     db,
		Orders: NewOrderRepository(db),
		Items:  NewOrderItemRepository(db),
		Cart:   NewCartRepository(db),
	}
}

// Transaction 执行事务
func (u *CheckoutUnitOfWork) Transaction(ctx context.Context, fn func(uow *CheckoutUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CheckoutUnitOfWork{
			db:     tx,
			Orders: NewOrderRepository(tx),
			Items:  NewOrderItemRepository(tx),
			Cart:   NewCartRepository(tx),
		}
		return fn(txUow)
	})
}
