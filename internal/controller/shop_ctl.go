package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/service"
)

type ShopController struct {
	shopService *service.ShopService
}

func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// ==================== 店铺管理 ====================

// ListShops 店铺列表
// @Summary 店铺列表，支持按国家筛选
// @Tags Shop
// @Param country query string false "国家筛选"
// @Success 200 {array} model.Shop
// @Router /api/shops [get]
func (ctrl *ShopController) ListShops(c *gin.Context) {
	shops, err := ctrl.shopService.List(c.Request.Context(), c.Query("country"))
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": shops})
}

// GetShop 店铺详情
// @Summary 取单个店铺
// @Tags Shop
// @Param id path int true "店铺ID"
// @Success 200 {object} model.Shop
// @Router /api/shops/{id} [get]
func (ctrl *ShopController) GetShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的店铺ID"})
		return
	}

	shop, err := ctrl.shopService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "店铺不存在"})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": shop})
}

// CreateShop 创建店铺
// @Summary 创建店铺
// @Tags Shop
// @Param body body dto.CreateShopReq true "店铺信息"
// @Success 200 {object} model.Shop
// @Router /api/shops [post]
func (ctrl *ShopController) CreateShop(c *gin.Context) {
	var req dto.CreateShopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	shop, err := ctrl.shopService.Create(c.Request.Context(), req.Name, req.Country)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": shop})
}

// UpdateShop 更新店铺
// @Summary 更新店铺名称或国家
// @Tags Shop
// @Param id path int true "店铺ID"
// @Param body body dto.UpdateShopReq true "更新内容"
// @Success 200 {object} model.Shop
// @Router /api/shops/{id} [put]
func (ctrl *ShopController) UpdateShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的店铺ID"})
		return
	}

	var req dto.UpdateShopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	shop, err := ctrl.shopService.Update(c.Request.Context(), id, req.Name, req.Country)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": shop})
}

// DeleteShop 删除店铺
// @Summary 删除店铺及其全部排班
// @Tags Shop
// @Param id path int true "店铺ID"
// @Success 200 {object} map[string]string
// @Router /api/shops/{id} [delete]
func (ctrl *ShopController) DeleteShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的店铺ID"})
		return
	}

	if err := ctrl.shopService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
