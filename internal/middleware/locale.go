package middleware

import (
	"github.com/gin-gonic/gin"
)

// ==================== 语言解析中间件 ====================

// 语言相关常量
const (
	ContextKeyLang = "lang"         // Context 中的语言 Key
	LangCookieName = "NEXT_LOCALE"  // 语言 Cookie 名称
	DefaultLang    = "zh"           // 默认语言
	langCookieTTL  = 365 * 24 * 3600 // Cookie 有效期（秒）
)

// 支持的语言列表
var supportedLangs = map[string]bool{
	"zh": true,
	"en": true,
	"vi": true,
	"th": true,
	"tl": true,
	"ms": true,
}

// Locale 语言解析中间件
// 优先级: URL 参数 lang > Cookie NEXT_LOCALE > 默认 zh
// URL 参数显式指定语言时回写 Cookie，后续请求无需再带参数
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang != "" && supportedLangs[lang] {
			c.SetCookie(LangCookieName, lang, langCookieTTL, "/", "", false, false)
		} else {
			lang = ""
		}

		if lang == "" {
			if cookie, err := c.Cookie(LangCookieName); err == nil && supportedLangs[cookie] {
				lang = cookie
			}
		}

		if lang == "" {
			lang = DefaultLang
		}

		c.Set(ContextKeyLang, lang)
		c.Next()
	}
}

// GetLang 从 Context 获取当前语言
func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(ContextKeyLang); exists {
		return lang.(string)
	}
	return DefaultLang
}
