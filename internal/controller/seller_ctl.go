package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/service"
)

type SellerController struct {
	sellerService *service.SellerService
	aiService     *service.AIService
}

func NewSellerController(sellerService *service.SellerService, aiService *service.AIService) *SellerController {
	return &SellerController{
		sellerService: sellerService,
		aiService:     aiService,
	}
}

// Dashboard 卖家看板
// @Summary 卖家销售看板：商品数、销量、营收、最畅销商品
// @Tags Seller
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /api/seller/dashboard [get]
func (ctrl *SellerController) Dashboard(c *gin.Context) {
	sellerID := middleware.GetUserID(c)

	resp, err := ctrl.sellerService.Dashboard(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, resp)
}

// Describe AI 商品文案
// @Summary 根据商品名生成描述与标签
// @Tags Seller
// @Security BearerAuth
// @Param body body dto.DescribeRequest true "商品名与风格提示"
// @Success 200 {object} dto.DescribeResponse
// @Router /api/seller/describe [post]
func (ctrl *SellerController) Describe(c *gin.Context) {
	if ctrl.aiService == nil || !ctrl.aiService.Enabled() {
		c.JSON(503, gin.H{"code": 503, "message": "AI 文案服务未配置"})
		return
	}

	sellerID := middleware.GetUserID(c)
	result := middleware.GetLimiter().Check(middleware.DescribeKey(sellerID), middleware.DescribeInterval)
	if !result.Allowed {
		c.JSON(429, gin.H{
			"code":    429,
			"message": fmt.Sprintf("请求过于频繁，请 %.0f 秒后重试", result.RetryAfter.Seconds()),
		})
		return
	}

	var req dto.DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.aiService.DescribeProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(502, gin.H{"code": 502, "message": "文案生成失败: " + err.Error()})
		return
	}

	respondOK(c, resp)
}
