package service

import "errors"

// 业务错误，controller 层据此映射 HTTP 状态码
// 其余错误一律按存储故障处理（500，事务已完整回滚，可安全重试）
var (
	// 用户输入拒绝
	ErrEmptyCart       = errors.New("购物车为空或商品均已下架")
	ErrInvalidQuantity = errors.New("数量必须大于零")
	ErrEmailTaken      = errors.New("邮箱已被注册")
	ErrInvalidRole     = errors.New("角色必须为 CLIENT 或 SELLER")
	ErrNotClient       = errors.New("仅买家账号可删除")
	ErrNotSeller       = errors.New("仅卖家账号可停用")

	// 认证
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountDisabled    = errors.New("账号已停用")

	// 引用缺失
	ErrProductNotFound  = errors.New("商品不存在")
	ErrCartItemNotFound = errors.New("购物车中无此商品")
	ErrOrderNotFound    = errors.New("订单不存在")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrFavoriteNotFound = errors.New("收藏不存在")
)
