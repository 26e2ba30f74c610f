package controller

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace_dev_v1/internal/api/dto"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/service"
)

// maxUploadSize 上传文件大小上限
const maxUploadSize = 10 << 20 // 10MB

type ProductController struct {
	productService *service.ProductService
	csvService     *service.CSVService
}

func NewProductController(productService *service.ProductService, csvService *service.CSVService) *ProductController {
	return &ProductController{
		productService: productService,
		csvService:     csvService,
	}
}

// ==================== 商城侧 ====================

// ListProducts 商品列表
// @Summary 可见商品列表（游客可访问，登录后附带收藏状态）
// @Tags Product
// @Param search query string false "商品名模糊搜索"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(12)
// @Success 200 {object} dto.ListProductsResponse
// @Router /api/products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	viewerID := middleware.GetUserID(c)
	resp, err := ctrl.productService.List(c.Request.Context(), &req, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, resp)
}

// GetProduct 商品详情
// @Summary 可见商品详情
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductVO
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	viewerID := middleware.GetUserID(c)
	vo, err := ctrl.productService.GetDetail(c.Request.Context(), id, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, vo)
}

// ==================== 卖家侧 ====================

// CreateProduct 创建商品
// @Summary 创建商品（仅 SELLER）
// @Tags Product
// @Security BearerAuth
// @Param body body dto.SaveProductRequest true "商品信息"
// @Success 201 {object} dto.ProductVO
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	sellerID := middleware.GetUserID(c)
	product, err := ctrl.productService.Create(c.Request.Context(), sellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, product)
}

// UpdateProduct 更新商品
// @Summary 更新自己的商品（仅 SELLER）
// @Tags Product
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param body body dto.SaveProductRequest true "商品信息"
// @Success 200 {object} dto.ProductVO
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	sellerID := middleware.GetUserID(c)
	product, err := ctrl.productService.Update(c.Request.Context(), id, sellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, product)
}

// DeleteProduct 删除商品
// @Summary 删除自己的商品（仅 SELLER，软删除）
// @Tags Product
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Success 200 {object} gin.H
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	sellerID := middleware.GetUserID(c)
	if err := ctrl.productService.Delete(c.Request.Context(), id, sellerID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// ListMyProducts 卖家自己的商品
// @Summary 当前卖家的商品列表（含已隐藏）
// @Tags Product
// @Security BearerAuth
// @Success 200 {array} dto.ProductVO
// @Router /api/products/mine [get]
func (ctrl *ProductController) ListMyProducts(c *gin.Context) {
	sellerID := middleware.GetUserID(c)

	list, err := ctrl.productService.ListBySeller(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, list)
}

// ==================== 批量导入 ====================

// BulkCreate 批量创建
// @Summary 批量创建商品（JSON）
// @Tags Product
// @Security BearerAuth
// @Param body body dto.BulkCreateRequest true "商品行"
// @Success 201 {object} dto.BulkCreateResponse
// @Router /api/products/bulk [post]
func (ctrl *ProductController) BulkCreate(c *gin.Context) {
	sellerID := middleware.GetUserID(c)
	if !ctrl.allowImport(c, sellerID) {
		return
	}

	var req dto.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.productService.BulkCreate(c.Request.Context(), sellerID, req.Products)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, resp)
}

// ImportCSVFile CSV 文件导入
// @Summary 上传 CSV 批量创建商品
// @Tags Product
// @Security BearerAuth
// @Accept multipart/form-data
// @Param file formData file true "CSV 文件"
// @Success 201 {object} dto.BulkCreateResponse
// @Router /api/products/import [post]
func (ctrl *ProductController) ImportCSVFile(c *gin.Context) {
	sellerID := middleware.GetUserID(c)
	if !ctrl.allowImport(c, sellerID) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "未提供 CSV 文件"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(400, gin.H{"code": 400, "message": "文件过大"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "读取文件失败"})
		return
	}
	defer file.Close()

	rows, err := ctrl.csvService.ParseProducts(file)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	resp, err := ctrl.productService.BulkCreate(c.Request.Context(), sellerID, rows)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, resp)
}

// ImportCSVURL 远程 CSV 导入
// @Summary 从 URL 拉取 CSV 批量创建商品
// @Tags Product
// @Security BearerAuth
// @Param body body dto.ImportCSVRequest true "CSV 来源"
// @Success 201 {object} dto.BulkCreateResponse
// @Router /api/products/import-url [post]
func (ctrl *ProductController) ImportCSVURL(c *gin.Context) {
	sellerID := middleware.GetUserID(c)
	if !ctrl.allowImport(c, sellerID) {
		return
	}

	var req dto.ImportCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	rows, err := ctrl.csvService.FetchAndParse(c.Request.Context(), req.SourceURL)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	resp, err := ctrl.productService.BulkCreate(c.Request.Context(), sellerID, rows)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, resp)
}

// UploadImage 商品图片上传
// @Summary 上传商品主图
// @Tags Product
// @Security BearerAuth
// @Accept multipart/form-data
// @Param id path int true "商品ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} dto.UploadImageResponse
// @Router /api/products/{id}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "未提供图片文件"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(400, gin.H{"code": 400, "message": "文件过大"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "读取文件失败"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "读取文件失败"})
		return
	}

	sellerID := middleware.GetUserID(c)
	url, err := ctrl.productService.UploadImage(c.Request.Context(), id, sellerID, data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.UploadImageResponse{ImageURL: url})
}

// ==================== 收藏 ====================

// AddFavorite 收藏商品
// @Summary 收藏商品（幂等）
// @Tags Favorite
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Success 200 {object} gin.H
// @Router /api/products/{id}/favorite [post]
func (ctrl *ProductController) AddFavorite(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.productService.AddFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"favorited": true})
}

// RemoveFavorite 取消收藏
// @Summary 取消收藏
// @Tags Favorite
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Success 200 {object} gin.H
// @Router /api/products/{id}/favorite [delete]
func (ctrl *ProductController) RemoveFavorite(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.productService.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"favorited": false})
}

// ListFavorites 收藏列表
// @Summary 当前用户收藏的可见商品
// @Tags Favorite
// @Security BearerAuth
// @Success 200 {array} dto.ProductVO
// @Router /api/favorites [get]
func (ctrl *ProductController) ListFavorites(c *gin.Context) {
	userID := middleware.GetUserID(c)

	list, err := ctrl.productService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, list)
}

// ==================== 辅助 ====================

func (ctrl *ProductController) allowImport(c *gin.Context, sellerID int64) bool {
	result := middleware.GetLimiter().Check(middleware.ImportKey(sellerID), middleware.ImportInterval)
	if !result.Allowed {
		c.JSON(429, gin.H{
			"code":    429,
			"message": fmt.Sprintf("导入过于频繁，请 %.0f 秒后重试", result.RetryAfter.Seconds()),
		})
		c.Abort()
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}
