package dto

// ==================== 文本翻译 ====================

// TranslateTextReq 单条文本翻译请求
type TranslateTextReq struct {
	Text       string `json:"text" binding:"required,max=5000"`
	TargetLang string `json:"target_lang" binding:"required,max=10"`
}

// TranslateTextResp 翻译响应
type TranslateTextResp struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
	Result     string `json:"result"`
}

// ==================== 对象深度翻译 ====================

// DeepTranslateReq 任意 JSON 结构翻译请求
type DeepTranslateReq struct {
	Data       interface{} `json:"data" binding:"required"`
	TargetLang string      `json:"target_lang" binding:"required,max=10"`
}

// ==================== 界面文案本地化 ====================

// LocalizeBundleReq 界面文案包翻译请求
// BundleKey 用于服务端缓存，同一个包同一语言只翻译一次
type LocalizeBundleReq struct {
	BundleKey string                 `json:"bundle_key" binding:"required,max=100"`
	Bundle    map[string]interface{} `json:"bundle" binding:"required"`
}

// ==================== AI 辅助 ====================

// BatchTranslateReq 六语批量翻译请求
type BatchTranslateReq struct {
	Text string `json:"text" binding:"required,max=2000"`
}
