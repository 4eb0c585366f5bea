package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// ==================== 测试辅助 ====================

func newLocaleRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Locale())
	r.GET("/ping", func(c *gin.Context) {
		c.String(200, GetLang(c))
	})
	return r
}

// ==================== 单元测试 ====================

func TestLocale_DefaultLang(t *testing.T) {
	r := newLocaleRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Body.String() != "zh" {
		t.Errorf("默认语言 = %q, want zh", w.Body.String())
	}
}

func TestLocale_QueryOverridesCookie(t *testing.T) {
	r := newLocaleRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping?lang=vi", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "th"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "vi" {
		t.Errorf("URL 参数应优先于 Cookie, got %q", w.Body.String())
	}

	// 显式指定语言时回写 Cookie
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == LangCookieName && ck.Value == "vi" {
			found = true
		}
	}
	if !found {
		t.Errorf("URL 参数语言未回写 Cookie")
	}
}

func TestLocale_CookieFallback(t *testing.T) {
	r := newLocaleRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "ms"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "ms" {
		t.Errorf("Cookie 语言未生效, got %q", w.Body.String())
	}
}

func TestLocale_UnsupportedLangIgnored(t *testing.T) {
	r := newLocaleRouter()

	// 不认识的 URL 参数
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?lang=fr", nil))
	if w.Body.String() != "zh" {
		t.Errorf("不支持的语言应回退默认, got %q", w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Errorf("不支持的语言不应回写 Cookie")
	}

	// 不认识的 Cookie
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "jp"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "zh" {
		t.Errorf("不支持的 Cookie 语言应回退默认, got %q", w.Body.String())
	}
}
