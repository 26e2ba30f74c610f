package dto

// ==================== 卖家看板 ====================

// TopProductVO 最畅销商品
type TopProductVO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Sold int64  `json:"sold"`
}

// DashboardResponse 卖家看板响应
type DashboardResponse struct {
	TotalProducts int64         `json:"total_products"`
	TotalSold     int64         `json:"total_sold"`
	TotalRevenue  float64       `json:"total_revenue"`
	TopProduct    *TopProductVO `json:"top_product"`
}

// ==================== AI 文案 ====================

// DescribeRequest 商品描述生成请求
type DescribeRequest struct {
	Name      string `json:"name" binding:"required"`
	StyleHint string `json:"style_hint"`
}

// DescribeResponse 商品描述生成响应
type DescribeResponse struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}
