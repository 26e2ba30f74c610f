package model

import "time"

// ==================== CartItem 购物车项 ====================

// CartItem 购物车行，(user_id, product_id) 唯一
// 重复加购同一商品时累加数量，不产生重复行
type CartItem struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int   `gorm:"not null;default:1"`
	AddedAt   time.Time

	// 关联
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ==================== CartLine 购物车行视图 ====================

// CartLine 购物车行 + 商品实时价格/可见性（JOIN products 所得）
// 结算时按 IsVisible 分流：不可见商品不下单，但仍会被清空
type CartLine struct {
	CartItemID  int64
	ProductID   int64
	SellerID    int64
	Name        string
	PriceAmount int64
	ImageURL    string
	Quantity    int
	IsVisible   bool
	AddedAt     time.Time
}

// Subtotal 行小计（分）
func (l *CartLine) Subtotal() int64 {
	return l.PriceAmount * int64(l.Quantity)
}

// GetPrice 单价（元）
func (l *CartLine) GetPrice() float64 {
	return float64(l.PriceAmount) / 100
}

// GetSubtotal 小计（元）
func (l *CartLine) GetSubtotal() float64 {
	return float64(l.Subtotal()) / 100
}
