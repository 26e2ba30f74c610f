package service

import (
	"context"
	"fmt"
	"time"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/repository"
	"marketplace_dev_v1/pkg/utils"
)

// dashboardCacheTTL 看板数据的缓存时长，聚合查询不必每次打库
const dashboardCacheTTL = 1 * time.Minute

// ==================== SellerService 卖家服务 ====================

// SellerService 卖家看板统计
type SellerService struct {
	orderItemRepo repository.OrderItemRepository
}

// NewSellerService 创建卖家服务
func NewSellerService(orderItemRepo repository.OrderItemRepository) *SellerService {
	return &SellerService{orderItemRepo: orderItemRepo}
}

// Dashboard 卖家销售看板：商品数、累计销量、累计营收、最畅销商品
// 统计口径全部来自订单项快照，商品后续改价/下架不影响历史数字
func (s *SellerService) Dashboard(ctx context.Context, sellerID int64) (*dto.DashboardResponse, error) {
	cacheKey := fmt.Sprintf("seller:dashboard:%d", sellerID)
	if cached, ok := utils.GetCache(cacheKey); ok {
		if resp, ok := cached.(*dto.DashboardResponse); ok {
			return resp, nil
		}
	}

	stats, err := s.orderItemRepo.SellerStats(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("查询卖家统计失败: %w", err)
	}

	top, err := s.orderItemRepo.TopProduct(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("查询畅销商品失败: %w", err)
	}

	resp := &dto.DashboardResponse{
		TotalProducts: stats.TotalProducts,
		TotalSold:     stats.TotalSold,
		TotalRevenue:  float64(stats.TotalRevenue) / 100,
	}
	if top != nil {
		resp.TopProduct = &dto.TopProductVO{
			ID:   top.ProductID,
			Name: top.Name,
			Sold: top.Sold,
		}
	}

	utils.SetCache(cacheKey, resp, dashboardCacheTTL)
	return resp, nil
}
