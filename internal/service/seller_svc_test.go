package service

import (
	"context"
	"testing"

	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

func TestSellerService_Dashboard(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSellerService(repository.NewOrderItemRepository(db))
	ctx := context.Background()

	// 卖家 201：两个商品，其中一个隐藏（都计入商品数）
	p1 := seedProduct(t, db, 201, "畅销品", 1000, true)
	p2 := seedProduct(t, db, 201, "滞销品", 500, false)

	// 历史订单快照：畅销品卖 5 件，滞销品卖 1 件
	items := []model.OrderItem{
		{OrderID: 1, ProductID: p1.ID, SellerID: 201, ProductName: "畅销品", PriceAmount: 1000, Quantity: 3},
		{OrderID: 2, ProductID: p1.ID, SellerID: 201, ProductName: "畅销品", PriceAmount: 1000, Quantity: 2},
		{OrderID: 2, ProductID: p2.ID, SellerID: 201, ProductName: "滞销品", PriceAmount: 500, Quantity: 1},
		// 其他卖家的销量不计入
		{OrderID: 3, ProductID: 999, SellerID: 202, ProductName: "别家商品", PriceAmount: 9999, Quantity: 10},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("创建订单项失败: %v", err)
	}

	resp, err := svc.Dashboard(ctx, 201)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if resp.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d, want 2", resp.TotalProducts)
	}
	if resp.TotalSold != 6 {
		t.Errorf("TotalSold = %d, want 6", resp.TotalSold)
	}
	// 5*10.00 + 1*5.00 = 55.00
	if resp.TotalRevenue != 55.00 {
		t.Errorf("TotalRevenue = %v, want 55.00", resp.TotalRevenue)
	}
	if resp.TopProduct == nil {
		t.Fatal("TopProduct 不应为空")
	}
	if resp.TopProduct.ID != p1.ID || resp.TopProduct.Sold != 5 {
		t.Errorf("TopProduct = %+v, want (id=%d, sold=5)", resp.TopProduct, p1.ID)
	}
}

func TestSellerService_Dashboard_NoSales(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSellerService(repository.NewOrderItemRepository(db))

	seedProduct(t, db, 301, "无人问津", 100, true)

	resp, err := svc.Dashboard(context.Background(), 301)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if resp.TotalProducts != 1 || resp.TotalSold != 0 || resp.TotalRevenue != 0 {
		t.Errorf("空销量看板 = %+v", resp)
	}
	if resp.TopProduct != nil {
		t.Errorf("无销量时 TopProduct 应为 nil, got %+v", resp.TopProduct)
	}
}
