package dto

import "time"

// ==================== 请求 ====================

// SaveProductRequest 创建/更新商品请求
type SaveProductRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Price       float64  `json:"price" binding:"gte=0"` // 元，内部转为分
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	Tags        []string `json:"tags"`
}

// ListProductsRequest 商品列表查询
type ListProductsRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"limit,default=12" binding:"omitempty,min=1,max=100"`
}

// BulkProductRow 批量导入的一行商品
type BulkProductRow struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// BulkCreateRequest 批量创建请求（JSON 方式）
type BulkCreateRequest struct {
	Products []BulkProductRow `json:"products" binding:"required"`
}

// ImportCSVRequest 远程 CSV 导入请求
type ImportCSVRequest struct {
	SourceURL string `json:"source_url" binding:"required,url"`
}

// ==================== 响应 ====================

// ProductVO 商品视图
type ProductVO struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	SellerEmail string    `json:"seller_email,omitempty"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Tags        []string  `json:"tags,omitempty"`
	IsVisible   bool      `json:"is_visible"`
	IsFavorited bool      `json:"is_favorited"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListProductsResponse 商品列表响应
type ListProductsResponse struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
	List  []ProductVO `json:"list"`
}

// BulkCreateResponse 批量创建响应
type BulkCreateResponse struct {
	Count    int         `json:"count"`
	Products []ProductVO `json:"products"`
}

// UploadImageResponse 商品图片上传响应
type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}
