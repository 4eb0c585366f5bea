package controller

import (
	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/service"
)

type MarketingController struct {
	marketingService *service.MarketingService
}

func NewMarketingController(marketingService *service.MarketingService) *MarketingController {
	return &MarketingController{marketingService: marketingService}
}

// ==================== 批量邮件 ====================

// SendBulkEmail 批量发送邮件
// @Summary 给指定范围的主播批量发邮件
// @Tags Marketing
// @Param body body dto.BulkEmailReq true "邮件内容与收件范围"
// @Success 200 {object} dto.BulkEmailResp
// @Router /api/marketing/bulk-email [post]
func (ctrl *MarketingController) SendBulkEmail(c *gin.Context) {
	var req dto.BulkEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	result, err := ctrl.marketingService.SendBulk(c.Request.Context(), middleware.GetUserID(c), &service.BulkEmailInput{
		Country: req.Country,
		Keyword: req.Keyword,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "发送失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": dto.BulkEmailResp{
		Total:  result.Total,
		Sent:   result.Sent,
		Failed: result.Failed,
	}})
}
