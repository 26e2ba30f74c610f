package model

import "time"

// ==================== Order 订单主表 ====================

// Order 结算产生的订单快照，创建后不可变
type Order struct {
	ID      int64  `gorm:"primary_key;AUTO_INCREMENT"`
	OrderNo string `gorm:"size:64;uniqueIndex;not null"` // 对外订单号 (uuid)
	UserID  int64  `gorm:"index;not null"`

	// 金额（分为单位存储）
	TotalAmount int64  `gorm:"not null"`
	Currency    string `gorm:"size:10;default:BRL"`

	CreatedAt time.Time

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// GetTotal 获取总金额（元）
func (o *Order) GetTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单行快照
// 下单时复制商品名称/单价/卖家，之后商品的任何编辑或删除都不影响历史订单
type OrderItem struct {
	ID      int64 `gorm:"primary_key;AUTO_INCREMENT"`
	OrderID int64 `gorm:"index;not null"`

	// 商品快照字段（非外键引用当前值）
	ProductID   int64  `gorm:"index"`
	SellerID    int64  `gorm:"index"`
	ProductName string `gorm:"size:255;not null"`
	PriceAmount int64  `gorm:"not null"` // 下单时刻单价（分）
	Quantity    int    `gorm:"not null"`

	CreatedAt time.Time
}

func (OrderItem) TableName() string {
	return "order_items"
}

// GetPrice 获取单价（元）
func (i *OrderItem) GetPrice() float64 {
	return float64(i.PriceAmount) / 100
}

// Subtotal 行小计（分）
func (i *OrderItem) Subtotal() int64 {
	return i.PriceAmount * int64(i.Quantity)
}

// GetSubtotal 行小计（元）
func (i *OrderItem) GetSubtotal() float64 {
	return float64(i.Subtotal()) / 100
}
