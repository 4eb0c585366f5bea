package controller

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/internal/service"
	"liveops_dev_v1_202608/pkg/logger"
)

type ProductController struct {
	productService *service.ProductService
	logRepo        repository.ActivityLogRepository
}

func NewProductController(productService *service.ProductService, logRepo repository.ActivityLogRepository) *ProductController {
	return &ProductController{productService: productService, logRepo: logRepo}
}

// 上传文件大小上限
const maxUploadSize = 20 << 20 // 20MB

// parseID 解析路径里的商品 ID
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return 0, false
	}
	return id, true
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取商品列表，支持 SKU/名称搜索
// @Tags Product
// @Param keyword query string false "SKU/名称搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {array} model.Product
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var req dto.ProductListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	products, total, err := ctrl.productService.List(c.Request.Context(), req.Keyword, req.Page, req.PageSize)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":      0,
		"message":   "success",
		"data":      products,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品详情
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": product})
}

// GetProductBySKU 按 SKU 查商品
// @Summary 按 SKU 精确查询单个商品
// @Tags Product
// @Param sku path string true "商品SKU"
// @Success 200 {object} model.Product
// @Router /api/products/sku/{sku} [get]
func (ctrl *ProductController) GetProductBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的SKU"})
		return
	}

	product, err := ctrl.productService.GetBySKU(c.Request.Context(), sku)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": product})
}

// ==================== 写入接口 ====================

// CreateProduct 创建商品
// @Summary 创建商品，文案自动翻译为六语
// @Tags Product
// @Param body body dto.CreateProductReq true "商品信息"
// @Success 200 {object} model.Product
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req.SKU, req.Name, req.Size, req.Features)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": product})
}

// UpdateProductField 更新单个文本字段
// @Summary 更新商品的名称/尺寸/特点，重新翻译后覆盖
// @Tags Product
// @Param id path int true "商品ID"
// @Param body body dto.UpdateProductFieldReq true "字段与新值"
// @Success 200 {object} map[string]string
// @Router /api/products/{id}/field [put]
func (ctrl *ProductController) UpdateProductField(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.productService.UpdateField(c.Request.Context(), id, req.Field, req.Value); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]string
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ==================== 批量导入 ====================

// ImportProducts 批量导入商品
// @Summary 上传 xlsx 批量导入，同 SKU 的行自动合并
// @Tags Product
// @Param file formData file true "xlsx 文件"
// @Success 200 {object} service.ImportReport
// @Router /api/products/import [post]
func (ctrl *ProductController) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请上传文件"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(400, gin.H{"code": 400, "message": "文件过大"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败: " + err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败: " + err.Error()})
		return
	}

	rows, err := ctrl.productService.ParseSpreadsheet(data)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	report := ctrl.productService.ImportRows(c.Request.Context(), rows)

	entry := &model.ActivityLog{
		UserID: middleware.GetUserID(c),
		Action: model.ActionImport,
		Detail: fmt.Sprintf("file=%s total=%d succeeded=%d failed=%d",
			fileHeader.Filename, report.Total, report.Succeeded, len(report.Errors)),
		IP: c.ClientIP(),
	}
	if err := ctrl.logRepo.Create(c.Request.Context(), entry); err != nil {
		logger.L().Warnf("写动作流水失败: action=%s err=%v", model.ActionImport, err)
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": report})
}

// ==================== 图片维护 ====================

// UploadImage 上传商品图片
// @Summary 上传主图或花型图
// @Tags Product
// @Param id path int true "商品ID"
// @Param file formData file true "图片文件"
// @Param is_pattern query bool false "是否花型图"
// @Success 200 {object} map[string]string
// @Router /api/products/{id}/images [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请上传文件"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(400, gin.H{"code": 400, "message": "文件过大"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败: " + err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败: " + err.Error()})
		return
	}

	isPattern := c.Query("is_pattern") == "true"
	url, err := ctrl.productService.AttachImage(c.Request.Context(), id, data, fileHeader.Filename, isPattern)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "上传失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{"url": url}})
}

// DeletePatternImage 删除花型图
// @Summary 按下标删除一张花型图
// @Tags Product
// @Param id path int true "商品ID"
// @Param index path int true "图片下标"
// @Success 200 {object} map[string]string
// @Router /api/products/{id}/images/{index} [delete]
func (ctrl *ProductController) DeletePatternImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的图片下标"})
		return
	}

	if err := ctrl.productService.DetachPatternImage(c.Request.Context(), id, index); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ClearMainImage 清除主图
// @Summary 清除商品主图
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]string
// @Router /api/products/{id}/main-image [delete]
func (ctrl *ProductController) ClearMainImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.productService.ClearMainImage(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "清除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
