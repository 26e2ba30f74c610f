package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 注册/登录/账号生命周期
type AuthService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, productRepo repository.ProductRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// ==================== 注册 / 登录 ====================

// Register 注册新用户并签发 Token
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return s.buildAuthResponse(user)
}

// Login 校验凭证并签发 Token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

// Profile 获取当前用户信息
func (s *AuthService) Profile(ctx context.Context, userID int64) (*dto.UserVO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	vo := toUserVO(user)
	return &vo, nil
}

// ==================== 账号生命周期 ====================

// DeleteAccount 删除买家账号（仅 CLIENT）
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	rows, err := s.userRepo.DeleteClient(ctx, userID)
	if err != nil {
		return fmt.Errorf("删除账号失败: %w", err)
	}
	if rows == 0 {
		return ErrNotClient
	}
	return nil
}

// DeactivateAccount 停用卖家账号并隐藏其全部商品（仅 SELLER）
// 商品只做 is_visible=false，历史订单快照不受影响
func (s *AuthService) DeactivateAccount(ctx context.Context, userID int64) error {
	rows, err := s.userRepo.DeactivateSeller(ctx, userID)
	if err != nil {
		return fmt.Errorf("停用账号失败: %w", err)
	}
	if rows == 0 {
		return ErrNotSeller
	}

	if _, err := s.productRepo.HideBySeller(ctx, userID); err != nil {
		return fmt.Errorf("隐藏卖家商品失败: %w", err)
	}
	return nil
}

// ==================== 辅助 ====================

func (s *AuthService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := middleware.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("签发 Token 失败: %w", err)
	}
	return &dto.AuthResponse{
		User:  toUserVO(user),
		Token: token,
	}, nil
}

func toUserVO(user *model.User) dto.UserVO {
	return dto.UserVO{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
