package controller

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/service"
)

type LiveHubController struct {
	liveHubService *service.LiveHubService
}

func NewLiveHubController(liveHubService *service.LiveHubService) *LiveHubController {
	return &LiveHubController{liveHubService: liveHubService}
}

// ==================== 内容发布 ====================

// CreateContent 发布内容
// @Summary 发布政策/活动/教程/公告，payload 按分类校验
// @Tags LiveHub
// @Param body body dto.CreateLiveHubReq true "内容"
// @Success 200 {object} model.LiveHubContent
// @Router /api/livehub [post]
func (ctrl *LiveHubController) CreateContent(c *gin.Context) {
	var req dto.CreateLiveHubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	content, err := ctrl.liveHubService.Create(c.Request.Context(), userID, req.Category, req.Title, json.RawMessage(req.Data))
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": content})
}

// ==================== 内容查询 ====================

// ListContents 按分类查询内容
// @Summary 取指定分类的全部内容，损坏的条目会被跳过
// @Tags LiveHub
// @Param category path string true "分类"
// @Success 200 {array} model.LiveHubContent
// @Router /api/livehub/{category} [get]
func (ctrl *LiveHubController) ListContents(c *gin.Context) {
	category := c.Param("category")
	if !model.LiveHubCategories[category] {
		c.JSON(400, gin.H{"code": 400, "message": "无效的分类"})
		return
	}

	contents, err := ctrl.liveHubService.ListByCategory(c.Request.Context(), category)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": contents})
}

// DeleteContent 删除内容
// @Summary 删除一条内容
// @Tags LiveHub
// @Param id path int true "内容ID"
// @Success 200 {object} map[string]string
// @Router /api/livehub/{id} [delete]
func (ctrl *LiveHubController) DeleteContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的内容ID"})
		return
	}

	if err := ctrl.liveHubService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
