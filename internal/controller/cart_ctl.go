package controller

import (
	"github.com/gin-gonic/gin"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/service"
)

type CartController struct {
	cartService *service.CartService
}

func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart 查看购物车
// @Summary 当前用户购物车（实时价格，已下架商品仅计数提示）
// @Tags Cart
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	resp, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, resp)
}

// AddItem 加入购物车
// @Summary 加购，同商品累加数量
// @Tags Cart
// @Security BearerAuth
// @Param body body dto.AddCartItemRequest true "商品与数量"
// @Success 201 {object} gin.H
// @Router /api/cart [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	item, err := ctrl.cartService.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, gin.H{
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
}

// UpdateItem 修改数量
// @Summary 设置购物车内商品的绝对数量
// @Tags Cart
// @Security BearerAuth
// @Param product_id path int true "商品ID"
// @Param body body dto.UpdateCartItemRequest true "数量"
// @Success 200 {object} gin.H
// @Router /api/cart/{product_id} [put]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.cartService.SetQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"product_id": productID, "quantity": req.Quantity})
}

// RemoveItem 移除商品
// @Summary 从购物车移除单个商品
// @Tags Cart
// @Security BearerAuth
// @Param product_id path int true "商品ID"
// @Success 200 {object} gin.H
// @Router /api/cart/{product_id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.cartService.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"removed": true})
}

// ClearCart 清空购物车
// @Summary 清空当前用户购物车
// @Tags Cart
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := ctrl.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"cleared": true})
}
