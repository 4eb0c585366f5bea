package controller

import (
	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/service"
)

type TranslateController struct {
	translateService *service.TranslationService
	deepTranslator   *service.DeepTranslator
	localizeService  *service.LocalizeService
}

func NewTranslateController(
	translateService *service.TranslationService,
	deepTranslator *service.DeepTranslator,
	localizeService *service.LocalizeService,
) *TranslateController {
	return &TranslateController{
		translateService: translateService,
		deepTranslator:   deepTranslator,
		localizeService:  localizeService,
	}
}

// ==================== 文本翻译 ====================

// TranslateText 单条文本翻译
// @Summary 翻译一段文本，后端不可用时原样返回
// @Tags Translate
// @Param body body dto.TranslateTextReq true "翻译请求"
// @Success 200 {object} dto.TranslateTextResp
// @Router /api/translate/text [post]
func (ctrl *TranslateController) TranslateText(c *gin.Context) {
	var req dto.TranslateTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	result := ctrl.translateService.Translate(c.Request.Context(), req.Text, req.TargetLang)

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": dto.TranslateTextResp{
		Text:       req.Text,
		TargetLang: req.TargetLang,
		Result:     result,
	}})
}

// ==================== 对象深度翻译 ====================

// DeepTranslate 任意 JSON 结构翻译
// @Summary 递归翻译 JSON 对象中的文本，保持结构不变
// @Tags Translate
// @Param body body dto.DeepTranslateReq true "翻译请求"
// @Success 200 {object} map[string]interface{}
// @Router /api/translate/deep [post]
func (ctrl *TranslateController) DeepTranslate(c *gin.Context) {
	var req dto.DeepTranslateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	result := ctrl.deepTranslator.TranslateValue(c.Request.Context(), req.Data, req.TargetLang)

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": result})
}

// ==================== 界面文案本地化 ====================

// LocalizeBundle 界面文案包翻译
// @Summary 按当前语言翻译界面文案包，结果按 bundle_key 缓存
// @Tags Translate
// @Param lang query string false "目标语言，缺省时取 Cookie 或 zh"
// @Param body body dto.LocalizeBundleReq true "文案包"
// @Success 200 {object} map[string]interface{}
// @Router /api/translate/bundle [post]
func (ctrl *TranslateController) LocalizeBundle(c *gin.Context) {
	var req dto.LocalizeBundleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	lang := middleware.GetLang(c)
	result := ctrl.localizeService.LocalizeBundle(c.Request.Context(), req.BundleKey, req.Bundle, lang)

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{
		"lang":   lang,
		"bundle": result,
	}})
}
