package dto

import "time"

// ==================== 请求 ====================

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ==================== 响应 ====================

// CartItemVO 购物车行视图
type CartItemVO struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url"`
	Quantity  int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
	AddedAt   time.Time `json:"added_at"`
}

// CartResponse 购物车响应
// Unavailable 为当前不可购买（已下架/已删除）的行数，这些行不计入 Total
type CartResponse struct {
	Items       []CartItemVO `json:"items"`
	Total       float64      `json:"total"`
	Count       int          `json:"count"`
	Unavailable int          `json:"unavailable"`
}
