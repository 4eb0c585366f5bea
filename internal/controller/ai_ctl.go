package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/service"
)

type AIController struct {
	aiService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{aiService: aiService}
}

// ==================== 文案生成 ====================

// Generate 生成直播/短视频文案
// @Summary 按目标市场风格生成直播话术或短视频脚本
// @Tags AI
// @Param body body service.GenerateRequest true "生成请求"
// @Success 200 {object} map[string]string
// @Router /api/ai/generate [post]
func (ctrl *AIController) Generate(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if req.ContentType != service.ContentTypeLiveScript && req.ContentType != service.ContentTypeShortVideo {
		c.JSON(400, gin.H{"code": 400, "message": "无效的内容类型"})
		return
	}

	content, err := ctrl.aiService.Generate(c.Request.Context(), &req)
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(genErr.Status, gin.H{"code": genErr.Status, "message": genErr.Message})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "生成失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{"content": content}})
}

// ==================== 六语翻译 ====================

// BatchTranslate 六语批量翻译
// @Summary 用 AI 一次性把中文文本翻译为六种语言
// @Tags AI
// @Param body body dto.BatchTranslateReq true "翻译请求"
// @Success 200 {object} model.TranslationSet
// @Router /api/ai/batch-translate [post]
func (ctrl *AIController) BatchTranslate(c *gin.Context) {
	var req dto.BatchTranslateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	set, err := ctrl.aiService.BatchTranslate(c.Request.Context(), req.Text)
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(genErr.Status, gin.H{"code": genErr.Status, "message": genErr.Message})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "翻译失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": set})
}
