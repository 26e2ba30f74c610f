package controller

import (
	"github.com/gin-gonic/gin"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register 注册
// @Summary 注册新账号 (CLIENT 或 SELLER)
// @Tags Auth
// @Accept json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.AuthResponse
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, resp)
}

// Login 登录
// @Summary 邮箱密码登录
// @Tags Auth
// @Accept json
// @Param body body dto.LoginRequest true "登录凭证"
// @Success 200 {object} dto.AuthResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, resp)
}

// Profile 当前用户信息
// @Summary 获取当前登录用户
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} dto.UserVO
// @Router /api/auth/me [get]
func (ctrl *AuthController) Profile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	vo, err := ctrl.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, vo)
}

// DeleteAccount 删除买家账号
// @Summary 删除当前买家账号（硬删除，仅 CLIENT）
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/auth/me [delete]
func (ctrl *AuthController) DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := ctrl.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// DeactivateAccount 停用卖家账号
// @Summary 停用当前卖家账号并隐藏其全部商品（仅 SELLER）
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/auth/me/deactivate [post]
func (ctrl *AuthController) DeactivateAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := ctrl.authService.DeactivateAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deactivated": true})
}
