package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

// ==================== CartService 购物车服务 ====================

// CartService 购物车读写
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ==================== 写操作 ====================

// AddItem 加购，同商品累加数量
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item, err := s.cartRepo.Add(ctx, userID, productID, quantity)
	if err != nil {
		// 并发下商品刚被删除：外键冲突同样按不存在处理
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("加入购物车失败: %w", err)
	}
	return item, nil
}

// SetQuantity 设置绝对数量，qty <= 0 直接拒绝
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	rows, err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("更新购物车失败: %w", err)
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 移除单个商品
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	rows, err := s.cartRepo.Remove(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("移除购物车项失败: %w", err)
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("清空购物车失败: %w", err)
	}
	return nil
}

// ==================== 读操作 ====================

// GetCart 读取购物车，按实时可见性分流
// 已下架商品不展示、不计总价，只以 unavailable 数量提示
func (s *CartService) GetCart(ctx context.Context, userID int64) (*dto.CartResponse, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("读取购物车失败: %w", err)
	}

	resp := &dto.CartResponse{Items: []dto.CartItemVO{}}
	var total int64
	for _, line := range lines {
		if !line.IsVisible {
			resp.Unavailable++
			continue
		}
		total += line.Subtotal()
		resp.Items = append(resp.Items, dto.CartItemVO{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.GetPrice(),
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			Subtotal:  line.GetSubtotal(),
			AddedAt:   line.AddedAt,
		})
	}
	resp.Total = float64(total) / 100
	resp.Count = len(resp.Items)

	return resp, nil
}
