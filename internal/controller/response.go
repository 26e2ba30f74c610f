package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"marketplace_dev_v1/internal/service"
)

// ==================== 统一响应 ====================

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

// respondError 业务错误映射 HTTP 状态码，其余一律 500
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == 500 {
		// 内部错误不外泄细节
		message = "服务器内部错误"
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRole):
		return 400
	case errors.Is(err, service.ErrInvalidCredentials):
		return 401
	case errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrNotClient),
		errors.Is(err, service.ErrNotSeller):
		return 403
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrFavoriteNotFound):
		return 404
	case errors.Is(err, service.ErrEmailTaken):
		return 409
	default:
		return 500
	}
}
