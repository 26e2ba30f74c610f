package dto

import "time"

// ==================== 请求 ====================

// ListOrdersRequest 订单列表查询
type ListOrdersRequest struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// ==================== 响应 ====================

// OrderItemVO 订单项视图（下单时刻的商品快照）
type OrderItemVO struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderVO 订单视图
type OrderVO struct {
	ID        int64         `json:"id"`
	OrderNo   string        `json:"order_no"`
	Total     float64       `json:"total"`
	Currency  string        `json:"currency"`
	ItemCount int           `json:"item_count"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []OrderItemVO `json:"items,omitempty"`
}

// ListOrdersResponse 订单列表响应
type ListOrdersResponse struct {
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	List  []OrderVO `json:"list"`
}
