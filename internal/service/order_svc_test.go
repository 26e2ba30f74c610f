package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

// ==================== 测试辅助函数 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

func newOrderTestService(t *testing.T) (*OrderService, *gorm.DB) {
	db := setupServiceTestDB(t)
	uow := repository.NewCheckoutUnitOfWork(db)
	orderRepo := repository.NewOrderRepository(db)
	return NewOrderService(uow, orderRepo), db
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID int64, name string, cents int64, visible bool) *model.Product {
	p := &model.Product{
		SellerID:    sellerID,
		Name:        name,
		PriceAmount: cents,
		Currency:    DefaultCurrency,
		IsVisible:   visible,
		PublishedAt: time.Now(),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("创建测试商品失败: %v", err)
	}
	return p
}

func seedCartItem(t *testing.T, db *gorm.DB, userID, productID int64, qty int) {
	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("创建购物车项失败: %v", err)
	}
}

// ==================== PlaceOrder 测试 ====================

func TestOrderService_PlaceOrder_ExactTotal(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	// 7.35 * 2 + 5.30 * 1 = 20.00
	p1 := seedProduct(t, db, 100, "陶瓷杯", 735, true)
	p2 := seedProduct(t, db, 100, "木质杯垫", 530, true)
	seedCartItem(t, db, 1, p1.ID, 2)
	seedCartItem(t, db, 1, p2.ID, 1)

	order, err := svc.PlaceOrder(ctx, 1)
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if order.TotalAmount != 2000 {
		t.Errorf("TotalAmount = %d, want 2000", order.TotalAmount)
	}
	if order.GetTotal() != 20.00 {
		t.Errorf("GetTotal() = %v, want 20.00", order.GetTotal())
	}
	if order.OrderNo == "" {
		t.Error("OrderNo 不应为空")
	}
	if len(order.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(order.Items))
	}

	// 购物车已清空
	var remaining int64
	db.Model(&model.CartItem{}).Where("user_id = ?", 1).Count(&remaining)
	if remaining != 0 {
		t.Errorf("结算后购物车剩余 %d 行, want 0", remaining)
	}
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	svc, _ := newOrderTestService(t)

	_, err := svc.PlaceOrder(context.Background(), 1)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("PlaceOrder() error = %v, want ErrEmptyCart", err)
	}
}

func TestOrderService_PlaceOrder_OnlyInvisibleItems(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "已下架商品", 999, false)
	seedCartItem(t, db, 1, p.ID, 3)

	_, err := svc.PlaceOrder(ctx, 1)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("PlaceOrder() error = %v, want ErrEmptyCart", err)
	}

	// 失败时事务回滚，购物车原样保留
	var remaining int64
	db.Model(&model.CartItem{}).Where("user_id = ?", 1).Count(&remaining)
	if remaining != 1 {
		t.Errorf("失败结算后购物车剩余 %d 行, want 1", remaining)
	}

	// 未产生订单
	var orders int64
	db.Model(&model.Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("失败结算后订单数 = %d, want 0", orders)
	}
}

func TestOrderService_PlaceOrder_DropsInvisibleButClearsAll(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	visible := seedProduct(t, db, 100, "在售商品", 1500, true)
	hidden := seedProduct(t, db, 100, "下架商品", 800, false)
	seedCartItem(t, db, 1, visible.ID, 1)
	seedCartItem(t, db, 1, hidden.ID, 2)

	order, err := svc.PlaceOrder(ctx, 1)
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	// 不可见商品静默排除，不计入总价
	if order.TotalAmount != 1500 {
		t.Errorf("TotalAmount = %d, want 1500", order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(order.Items))
	}
	if order.Items[0].ProductID != visible.ID {
		t.Errorf("Items[0].ProductID = %d, want %d", order.Items[0].ProductID, visible.ID)
	}

	// 不可见行同样被清空
	var remaining int64
	db.Model(&model.CartItem{}).Where("user_id = ?", 1).Count(&remaining)
	if remaining != 0 {
		t.Errorf("结算后购物车剩余 %d 行, want 0", remaining)
	}
}

func TestOrderService_PlaceOrder_SnapshotImmutable(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "原始名称", 1000, true)
	seedCartItem(t, db, 1, p.ID, 1)

	order, err := svc.PlaceOrder(ctx, 1)
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	// 下单后卖家改价、改名、删除商品
	db.Model(&model.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{"name": "改过的名称", "price_amount": 9999})
	db.Delete(&model.Product{}, p.ID)

	// 订单快照不受影响
	got, err := svc.GetOrder(ctx, order.ID, 1)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if got.Total != 10.00 {
		t.Errorf("Total = %v, want 10.00", got.Total)
	}
	if len(got.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(got.Items))
	}
	if got.Items[0].ProductName != "原始名称" {
		t.Errorf("ProductName = %q, want 原始名称", got.Items[0].ProductName)
	}
	if got.Items[0].Price != 10.00 {
		t.Errorf("Price = %v, want 10.00", got.Items[0].Price)
	}
}

func TestOrderService_PlaceOrder_DoesNotTouchOtherUsersCart(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "共同商品", 500, true)
	seedCartItem(t, db, 1, p.ID, 1)
	seedCartItem(t, db, 2, p.ID, 4)

	if _, err := svc.PlaceOrder(ctx, 1); err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	var other model.CartItem
	if err := db.Where("user_id = ?", 2).First(&other).Error; err != nil {
		t.Fatalf("其他用户购物车被误删: %v", err)
	}
	if other.Quantity != 4 {
		t.Errorf("其他用户数量 = %d, want 4", other.Quantity)
	}
}

// ==================== 查询测试 ====================

func TestOrderService_GetOrder_OwnershipScoped(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 100, true)
	seedCartItem(t, db, 1, p.ID, 1)

	order, err := svc.PlaceOrder(ctx, 1)
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	// 其他用户访问 → 订单不存在
	if _, err := svc.GetOrder(ctx, order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("GetOrder(他人订单) error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 250, true)
	for i := 0; i < 3; i++ {
		seedCartItem(t, db, 1, p.ID, 1)
		if _, err := svc.PlaceOrder(ctx, 1); err != nil {
			t.Fatalf("第 %d 次 PlaceOrder() error = %v", i+1, err)
		}
	}

	resp, err := svc.ListOrders(ctx, 1, &dto.ListOrdersRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3", resp.Total)
	}
	if len(resp.List) != 3 {
		t.Errorf("len(List) = %d, want 3", len(resp.List))
	}
	for _, vo := range resp.List {
		if vo.Total != 2.50 {
			t.Errorf("订单 Total = %v, want 2.50", vo.Total)
		}
	}
}
