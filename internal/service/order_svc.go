package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

// DefaultCurrency 平台结算币种
const DefaultCurrency = "BRL"

// ==================== OrderService 订单服务 ====================

// OrderService 结算与订单查询
type OrderService struct {
	uow       *repository.CheckoutUnitOfWork
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(uow *repository.CheckoutUnitOfWork, orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
	}
}

// ==================== 结算 ====================

// PlaceOrder 购物车结算，单事务内完成：
//  1. 读购物车 JOIN 商品实时价格/可见性（结算时刻快照，不用任何早先报价）
//  2. 丢弃不可见商品（静默排除，不报错）
//  3. 无可购商品 → ErrEmptyCart，事务回滚
//  4. 总价 = Σ(单价 × 数量)，分为单位的整数运算，无浮点误差
//  5. 写入 Order + 每行一条 OrderItem（复制名称/单价/卖家，后续商品变更不影响回执）
//  6. 清空该用户全部购物车行（含被排除的不可见行）
//
// 任一步失败整体回滚，不产生半个订单、半清的购物车
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	var placed *model.Order

	err := s.uow.Transaction(ctx, func(uow *repository.CheckoutUnitOfWork) error {
		lines, err := uow.Cart.ListLines(ctx, userID)
		if err != nil {
			return fmt.Errorf("读取购物车失败: %w", err)
		}

		var visible []model.CartLine
		for _, line := range lines {
			if line.IsVisible {
				visible = append(visible, line)
			}
		}
		if len(visible) == 0 {
			return ErrEmptyCart
		}

		var total int64
		for _, line := range visible {
			total += line.Subtotal()
		}

		order := &model.Order{
			OrderNo:     uuid.New().String(),
			UserID:      userID,
			TotalAmount: total,
			Currency:    DefaultCurrency,
		}
		if err := uow.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("创建订单失败: %w", err)
		}

		items := make([]model.OrderItem, len(visible))
		for i, line := range visible {
			items[i] = model.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				SellerID:    line.SellerID,
				ProductName: line.Name,
				PriceAmount: line.PriceAmount,
				Quantity:    line.Quantity,
			}
		}
		if err := uow.Items.CreateBatch(ctx, items); err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}

		if err := uow.Cart.Clear(ctx, userID); err != nil {
			return fmt.Errorf("清空购物车失败: %w", err)
		}

		order.Items = items
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return placed, nil
}

// ==================== 查询 ====================

// ListOrders 订单列表（分页）
func (s *OrderService) ListOrders(ctx context.Context, userID int64, req *dto.ListOrdersRequest) (*dto.ListOrdersResponse, error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, req.Page, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("查询订单列表失败: %w", err)
	}

	list := make([]dto.OrderVO, len(orders))
	for i, order := range orders {
		list[i] = toOrderVO(&order, false)
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	return &dto.ListOrdersResponse{
		Total: total,
		Page:  page,
		List:  list,
	}, nil
}

// GetOrder 订单详情（含订单项快照）
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID int64) (*dto.OrderVO, error) {
	order, err := s.orderRepo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	vo := toOrderVO(order, true)
	return &vo, nil
}

// ==================== 辅助 ====================

func toOrderVO(order *model.Order, withItems bool) dto.OrderVO {
	vo := dto.OrderVO{
		ID:        order.ID,
		OrderNo:   order.OrderNo,
		Total:     order.GetTotal(),
		Currency:  order.Currency,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}
	if withItems {
		vo.Items = make([]dto.OrderItemVO, len(order.Items))
		for i, item := range order.Items {
			vo.Items[i] = dto.OrderItemVO{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.GetPrice(),
				Subtotal:    item.GetSubtotal(),
			}
		}
	}
	return vo
}
