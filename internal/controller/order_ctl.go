package controller

import (
	"github.com/gin-gonic/gin"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/service"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout 购物车结算
// @Summary 购物车结算为订单（原子事务，成功后购物车清空）
// @Tags Order
// @Security BearerAuth
// @Success 201 {object} dto.OrderVO
// @Router /api/orders/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	order, err := ctrl.orderService.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	vo, err := ctrl.orderService.GetOrder(c.Request.Context(), order.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, vo)
}

// ListOrders 订单列表
// @Summary 当前用户订单列表（按创建时间倒序）
// @Tags Order
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} dto.ListOrdersResponse
// @Router /api/orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	resp, err := ctrl.orderService.ListOrders(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, resp)
}

// GetOrder 订单详情
// @Summary 订单详情（含下单时刻的商品快照）
// @Tags Order
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 200 {object} dto.OrderVO
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的订单ID"})
		return
	}

	userID := middleware.GetUserID(c)
	vo, err := ctrl.orderService.GetOrder(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, vo)
}
