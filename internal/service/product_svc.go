package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
)

// toCents 元 → 分，四舍五入到分，后续全部整数运算
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// ==================== ProductService 商品服务 ====================

// ProductService 商品目录维护与浏览
type ProductService struct {
	productRepo  repository.ProductRepository
	favoriteRepo repository.FavoriteRepository
	storage      *StorageService
}

// NewProductService 创建商品服务
// storage 可为 nil（未配置对象存储时图片上传不可用）
func NewProductService(
	productRepo repository.ProductRepository,
	favoriteRepo repository.FavoriteRepository,
	storage *StorageService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		storage:      storage,
	}
}

// ==================== 卖家侧 ====================

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, sellerID int64, req *dto.SaveProductRequest) (*model.Product, error) {
	product := &model.Product{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		PriceAmount: toCents(req.Price),
		Currency:    DefaultCurrency,
		IsVisible:   true,
		PublishedAt: time.Now(),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	return product, nil
}

// Update 更新商品（带归属校验）
func (s *ProductService) Update(ctx context.Context, productID, sellerID int64, req *dto.SaveProductRequest) (*model.Product, error) {
	fields := map[string]interface{}{
		"name":         req.Name,
		"price_amount": toCents(req.Price),
		"description":  req.Description,
		"image_url":    req.ImageURL,
		"tags":         pq.StringArray(req.Tags),
	}
	rows, err := s.productRepo.UpdateOwned(ctx, productID, sellerID, fields)
	if err != nil {
		return nil, fmt.Errorf("更新商品失败: %w", err)
	}
	if rows == 0 {
		return nil, ErrProductNotFound
	}
	return s.productRepo.GetByID(ctx, productID)
}

// Delete 删除商品（带归属校验，软删除）
func (s *ProductService) Delete(ctx context.Context, productID, sellerID int64) error {
	rows, err := s.productRepo.DeleteOwned(ctx, productID, sellerID)
	if err != nil {
		return fmt.Errorf("删除商品失败: %w", err)
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListBySeller 卖家自己的商品（含已隐藏）
func (s *ProductService) ListBySeller(ctx context.Context, sellerID int64) ([]dto.ProductVO, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("查询卖家商品失败: %w", err)
	}
	list := make([]dto.ProductVO, len(products))
	for i, p := range products {
		list[i] = toProductVO(&p, false)
	}
	return list, nil
}

// BulkCreate 批量创建（JSON 行）
func (s *ProductService) BulkCreate(ctx context.Context, sellerID int64, rows []dto.BulkProductRow) (*dto.BulkCreateResponse, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("未提供任何商品")
	}

	now := time.Now()
	products := make([]model.Product, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			return nil, fmt.Errorf("第 %d 行: 商品名称不能为空", i+1)
		}
		if row.Price < 0 {
			return nil, fmt.Errorf("第 %d 行: 价格不合法", i+1)
		}
		products[i] = model.Product{
			SellerID:    sellerID,
			Name:        row.Name,
			Description: row.Description,
			ImageURL:    row.ImageURL,
			PriceAmount: toCents(row.Price),
			Currency:    DefaultCurrency,
			IsVisible:   true,
			PublishedAt: now,
		}
	}

	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return nil, fmt.Errorf("批量创建商品失败: %w", err)
	}

	resp := &dto.BulkCreateResponse{Count: len(products)}
	resp.Products = make([]dto.ProductVO, len(products))
	for i, p := range products {
		resp.Products[i] = toProductVO(&p, false)
	}
	return resp, nil
}

// UploadImage 上传商品图并回写 image_url
func (s *ProductService) UploadImage(ctx context.Context, productID, sellerID int64, data []byte, filename string) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("存储服务未配置")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil || product.SellerID != sellerID {
		return "", ErrProductNotFound
	}

	url, err := s.storage.Upload(ctx, data, filename, "")
	if err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}

	if _, err := s.productRepo.UpdateOwned(ctx, productID, sellerID, map[string]interface{}{
		"image_url": url,
	}); err != nil {
		return "", fmt.Errorf("回写图片地址失败: %w", err)
	}
	return url, nil
}

// ==================== 商城侧 ====================

// List 可见商品列表，viewerID > 0 时标记 is_favorited
func (s *ProductService) List(ctx context.Context, req *dto.ListProductsRequest, viewerID int64) (*dto.ListProductsResponse, error) {
	filter := repository.ProductFilter{
		Keyword:  req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	products, total, err := s.productRepo.ListVisible(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	// 批量标记收藏，避免逐行查询
	favorited := map[int64]bool{}
	if viewerID > 0 && len(products) > 0 {
		ids := make([]int64, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		favIDs, err := s.favoriteRepo.FilterFavorited(ctx, viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("查询收藏状态失败: %w", err)
		}
		for _, id := range favIDs {
			favorited[id] = true
		}
	}

	list := make([]dto.ProductVO, len(products))
	for i, p := range products {
		list[i] = toProductVO(&p, true)
		list[i].IsFavorited = favorited[p.ID]
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 12
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.ListProductsResponse{
		Total: total,
		Page:  page,
		Pages: pages,
		List:  list,
	}, nil
}

// GetDetail 可见商品详情，viewerID > 0 时附带收藏状态
func (s *ProductService) GetDetail(ctx context.Context, productID, viewerID int64) (*dto.ProductVO, error) {
	product, err := s.productRepo.GetVisibleByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	vo := toProductVO(product, true)
	if viewerID > 0 {
		favorited, err := s.favoriteRepo.Exists(ctx, viewerID, productID)
		if err != nil {
			return nil, fmt.Errorf("查询收藏状态失败: %w", err)
		}
		vo.IsFavorited = favorited
	}
	return &vo, nil
}

// ==================== 收藏 ====================

// AddFavorite 收藏商品（幂等）
func (s *ProductService) AddFavorite(ctx context.Context, userID, productID int64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.favoriteRepo.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("收藏失败: %w", err)
	}
	return nil
}

// RemoveFavorite 取消收藏
func (s *ProductService) RemoveFavorite(ctx context.Context, userID, productID int64) error {
	rows, err := s.favoriteRepo.Remove(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("取消收藏失败: %w", err)
	}
	if rows == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites 收藏的可见商品
func (s *ProductService) ListFavorites(ctx context.Context, userID int64) ([]dto.ProductVO, error) {
	products, err := s.favoriteRepo.ListVisibleProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询收藏列表失败: %w", err)
	}
	list := make([]dto.ProductVO, len(products))
	for i, p := range products {
		list[i] = toProductVO(&p, true)
		list[i].IsFavorited = true
	}
	return list, nil
}

// ==================== 辅助 ====================

func toProductVO(p *model.Product, withSeller bool) dto.ProductVO {
	vo := dto.ProductVO{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Price:       p.GetPrice(),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Tags:        p.Tags,
		IsVisible:   p.IsVisible,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
	}
	if withSeller && p.Seller != nil {
		vo.SellerEmail = p.Seller.Email
	}
	return vo
}
