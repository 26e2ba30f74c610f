package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

func newAuthTestService(t *testing.T) (*AuthService, *gorm.DB) {
	db := setupServiceTestDB(t)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewAuthService(userRepo, productRepo), db
}

// ==================== Register 测试 ====================

func TestAuthService_Register(t *testing.T) {
	svc, db := newAuthTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "secret123",
		Role:     model.RoleClient,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.Token == "" {
		t.Error("Token 不应为空")
	}
	if resp.User.Email != "buyer@example.com" {
		t.Errorf("Email = %q", resp.User.Email)
	}

	// Token 可解析且携带角色
	claims, err := middleware.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Role != model.RoleClient {
		t.Errorf("claims.Role = %q, want CLIENT", claims.Role)
	}

	// 明文密码不落库
	var user model.User
	db.Where("email = ?", "buyer@example.com").First(&user)
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("密码应以 bcrypt 哈希存储")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{Email: "dup@example.com", Password: "secret123", Role: model.RoleSeller}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("首次 Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("重复 Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, _ := newAuthTestService(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "x@example.com",
		Password: "secret123",
		Role:     "ADMIN",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Register(ADMIN) error = %v, want ErrInvalidRole", err)
	}
}

// ==================== Login 测试 ====================

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "u@example.com", Password: "secret123", Role: model.RoleClient,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "u@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("Token 不应为空")
	}

	// 密码错误与账号不存在返回同一错误，不泄露账号是否存在
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "u@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(错误密码) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(不存在账号) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	svc, db := newAuthTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "s@example.com", Password: "secret123", Role: model.RoleSeller,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	db.Model(&model.User{}).Where("email = ?", "s@example.com").Update("is_active", false)

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "s@example.com", Password: "secret123"}); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("Login(停用账号) error = %v, want ErrAccountDisabled", err)
	}
}

// ==================== 账号生命周期测试 ====================

func TestAuthService_DeleteAccount_ClientOnly(t *testing.T) {
	svc, db := newAuthTestService(t)
	ctx := context.Background()

	client, _ := svc.Register(ctx, &dto.RegisterRequest{
		Email: "c@example.com", Password: "secret123", Role: model.RoleClient,
	})
	seller, _ := svc.Register(ctx, &dto.RegisterRequest{
		Email: "v@example.com", Password: "secret123", Role: model.RoleSeller,
	})

	// 卖家不能走删除
	if err := svc.DeleteAccount(ctx, seller.User.ID); !errors.Is(err, ErrNotClient) {
		t.Errorf("DeleteAccount(卖家) error = %v, want ErrNotClient", err)
	}

	// 买家删除成功
	if err := svc.DeleteAccount(ctx, client.User.ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	var count int64
	db.Model(&model.User{}).Where("email = ?", "c@example.com").Count(&count)
	if count != 0 {
		t.Errorf("买家账号未被删除")
	}
}

func TestAuthService_DeactivateAccount_HidesProducts(t *testing.T) {
	svc, db := newAuthTestService(t)
	ctx := context.Background()

	seller, _ := svc.Register(ctx, &dto.RegisterRequest{
		Email: "shop@example.com", Password: "secret123", Role: model.RoleSeller,
	})
	client, _ := svc.Register(ctx, &dto.RegisterRequest{
		Email: "buyer2@example.com", Password: "secret123", Role: model.RoleClient,
	})

	seedProduct(t, db, seller.User.ID, "商品A", 100, true)
	seedProduct(t, db, seller.User.ID, "商品B", 200, true)

	// 买家不能走停用
	if err := svc.DeactivateAccount(ctx, client.User.ID); !errors.Is(err, ErrNotSeller) {
		t.Errorf("DeactivateAccount(买家) error = %v, want ErrNotSeller", err)
	}

	if err := svc.DeactivateAccount(ctx, seller.User.ID); err != nil {
		t.Fatalf("DeactivateAccount() error = %v", err)
	}

	// 账号停用且全部商品隐藏（非删除）
	var user model.User
	db.Where("email = ?", "shop@example.com").First(&user)
	if user.IsActive {
		t.Error("卖家账号应为停用状态")
	}

	var visibleCount, totalCount int64
	db.Model(&model.Product{}).Where("seller_id = ?", seller.User.ID).Count(&totalCount)
	db.Model(&model.Product{}).Where("seller_id = ? AND is_visible = ?", seller.User.ID, true).Count(&visibleCount)
	if totalCount != 2 {
		t.Errorf("商品总数 = %d, want 2（不应删除）", totalCount)
	}
	if visibleCount != 0 {
		t.Errorf("可见商品数 = %d, want 0", visibleCount)
	}
}
