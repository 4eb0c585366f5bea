package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/internal/service"
)

type FeedbackController struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// ==================== 反馈提交 ====================

// CreateFeedback 提交反馈
// @Summary 提交反馈，sample 分类必须附商品或图片
// @Tags Feedback
// @Param body body dto.CreateFeedbackReq true "反馈内容"
// @Success 200 {object} model.Feedback
// @Router /api/feedbacks [post]
func (ctrl *FeedbackController) CreateFeedback(c *gin.Context) {
	var req dto.CreateFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	feedback, err := ctrl.feedbackService.Create(c.Request.Context(), userID, &service.CreateInput{
		Category:    req.Category,
		Content:     req.Content,
		Images:      req.Images,
		ProductID:   req.ProductID,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		if errors.Is(err, service.ErrSampleNeedsProof) {
			c.JSON(400, gin.H{"code": 400, "message": "样品反馈需要附商品或图片"})
			return
		}
		if errors.Is(err, service.ErrBadCategory) || errors.Is(err, service.ErrEmptyContent) {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "提交失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": feedback})
}

// ==================== 反馈查询 ====================

// ListFeedbacks 反馈列表
// @Summary 反馈列表，匿名反馈只显示掩码作者
// @Tags Feedback
// @Param category query string false "分类筛选"
// @Param processed query bool false "是否已处理"
// @Param mine query bool false "只看自己的"
// @Success 200 {array} service.FeedbackView
// @Router /api/feedbacks [get]
func (ctrl *FeedbackController) ListFeedbacks(c *gin.Context) {
	var req dto.FeedbackListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	filter := repository.FeedbackFilter{
		Category:  req.Category,
		Country:   req.Country,
		Processed: req.Processed,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.Mine || middleware.GetUserRole(c) != model.RoleAdmin {
		// 非管理员只能看自己提交的
		filter.UserID = middleware.GetUserID(c)
	}

	views, total, err := ctrl.feedbackService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    views,
		"total":   total,
	})
}

// ==================== 反馈处理 ====================

// ReplyFeedback 管理员回复
// @Summary 管理员回复反馈，可附物流信息
// @Tags Feedback
// @Param id path int true "反馈ID"
// @Param body body dto.ReplyFeedbackReq true "回复内容"
// @Success 200 {object} map[string]string
// @Router /api/feedbacks/{id}/reply [post]
func (ctrl *FeedbackController) ReplyFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的反馈ID"})
		return
	}

	var req dto.ReplyFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.feedbackService.Reply(c.Request.Context(), id, req.Reply, req.LogisticsInfo); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "回复失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// DeleteFeedback 删除反馈
// @Summary 删除一条反馈
// @Tags Feedback
// @Param id path int true "反馈ID"
// @Success 200 {object} map[string]string
// @Router /api/feedbacks/{id} [delete]
func (ctrl *FeedbackController) DeleteFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的反馈ID"})
		return
	}

	if err := ctrl.feedbackService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
