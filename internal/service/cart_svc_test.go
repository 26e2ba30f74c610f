package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

func newCartTestService(t *testing.T) (*CartService, *gorm.DB) {
	db := setupServiceTestDB(t)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo), db
}

// ==================== AddItem 测试 ====================

func TestCartService_AddItem_AccumulatesQuantity(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 500, true)

	if _, err := svc.AddItem(ctx, 1, p.ID, 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	item, err := svc.AddItem(ctx, 1, p.ID, 3)
	if err != nil {
		t.Fatalf("第二次 AddItem() error = %v", err)
	}

	// 同商品累加，不产生重复行
	if item.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", item.Quantity)
	}

	var count int64
	db.Model(&model.CartItem{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Errorf("购物车行数 = %d, want 1", count)
	}
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 500, true)

	for _, qty := range []int{0, -1} {
		if _, err := svc.AddItem(ctx, 1, p.ID, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("AddItem(qty=%d) error = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc, _ := newCartTestService(t)

	if _, err := svc.AddItem(context.Background(), 1, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("AddItem(不存在商品) error = %v, want ErrProductNotFound", err)
	}
}

// ==================== SetQuantity / Remove 测试 ====================

func TestCartService_SetQuantity(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 500, true)
	if _, err := svc.AddItem(ctx, 1, p.ID, 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if err := svc.SetQuantity(ctx, 1, p.ID, 7); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	var item model.CartItem
	db.Where("user_id = ? AND product_id = ?", 1, p.ID).First(&item)
	if item.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7", item.Quantity)
	}

	// 非法数量拒绝
	if err := svc.SetQuantity(ctx, 1, p.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("SetQuantity(0) error = %v, want ErrInvalidQuantity", err)
	}

	// 不存在的行
	if err := svc.SetQuantity(ctx, 1, 999, 3); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("SetQuantity(不存在) error = %v, want ErrCartItemNotFound", err)
	}
}

func TestCartService_RemoveItem(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 500, true)
	if _, err := svc.AddItem(ctx, 1, p.ID, 1); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if err := svc.RemoveItem(ctx, 1, p.ID); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if err := svc.RemoveItem(ctx, 1, p.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("重复 RemoveItem() error = %v, want ErrCartItemNotFound", err)
	}
}

// ==================== GetCart 测试 ====================

func TestCartService_GetCart_PartitionsByVisibility(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	visible := seedProduct(t, db, 100, "在售", 1050, true)
	hidden := seedProduct(t, db, 100, "下架", 300, false)
	seedCartItem(t, db, 1, visible.ID, 2)
	seedCartItem(t, db, 1, hidden.ID, 1)

	resp, err := svc.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}

	// 只展示可见商品，总价只算可见部分
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
	if resp.Unavailable != 1 {
		t.Errorf("Unavailable = %d, want 1", resp.Unavailable)
	}
	if resp.Total != 21.00 {
		t.Errorf("Total = %v, want 21.00", resp.Total)
	}
	if len(resp.Items) != 1 || resp.Items[0].ProductID != visible.ID {
		t.Errorf("Items 应只含在售商品")
	}
}

func TestCartService_GetCart_ReflectsCurrentPrice(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 1000, true)
	seedCartItem(t, db, 1, p.ID, 1)

	// 卖家改价后读取，展示实时价格
	db.Model(&model.Product{}).Where("id = ?", p.ID).Update("price_amount", 1250)

	resp, err := svc.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if resp.Total != 12.50 {
		t.Errorf("Total = %v, want 12.50", resp.Total)
	}
}

func TestCartService_GetCart_SoftDeletedProductUnavailable(t *testing.T) {
	svc, db := newCartTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, 100, "商品", 700, true)
	seedCartItem(t, db, 1, p.ID, 1)

	// 软删除后按不可购买处理
	db.Delete(&model.Product{}, p.ID)

	resp, err := svc.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if resp.Unavailable != 1 {
		t.Errorf("Unavailable = %d, want 1", resp.Unavailable)
	}
	if resp.Total != 0 {
		t.Errorf("Total = %v, want 0", resp.Total)
	}
}
