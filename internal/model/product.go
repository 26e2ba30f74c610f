package model

import (
	"time"

	"github.com/lib/pq"
)

// ==================== Product 商品 ====================

// Product 卖家商品
// 卖家注销时商品只做隐藏（is_visible=false），从不物理删除历史数据
type Product struct {
	BaseModel
	SellerID int64 `gorm:"index;not null"`
	Seller   *User `gorm:"foreignKey:SellerID"`

	// --- 基本信息 ---
	Name        string `gorm:"size:255;not null;index"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:500"`

	// --- 标签 (Postgres Array) ---
	Tags pq.StringArray `gorm:"type:text[]"`

	// --- 价格（分为单位存储，避免浮点误差） ---
	PriceAmount int64  `gorm:"not null;default:0"`
	Currency    string `gorm:"size:10;default:BRL"`

	// --- 可见性 ---
	// 不加 default 标签：带 default 的零值字段在 Create 时会被 GORM 忽略，
	// 导致 false 写不进库；所有创建路径都显式赋值
	IsVisible   bool `gorm:"index"`
	PublishedAt time.Time
}

func (Product) TableName() string {
	return "products"
}

// GetPrice 获取单价（元）
func (p *Product) GetPrice() float64 {
	return float64(p.PriceAmount) / 100
}
