package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"liveops_dev_v1_202608/internal/config"
)

// ==================== 测试辅助 ====================

func newTestTranslator(primary, secondary string) *TranslationService {
	return NewTranslationService(&config.TranslateConfig{
		PrimaryEndpoint:   primary,
		SecondaryEndpoint: secondary,
		RequestInterval:   time.Millisecond,
	})
}

// primaryServer DeepLX 兼容接口的假实现
func primaryServer(t *testing.T, data string, calls *int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("解析请求体失败: %v", err)
		}
		if body["source_lang"] != "ZH" || body["target_lang"] != "EN" {
			t.Errorf("语言参数错误: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"data": data})
	}))
}

// secondaryServer Apps Script 兼容接口的假实现，按目标语言返回 "词[lang]"
func secondaryServer(calls *int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		r.ParseForm()
		target := r.PostFormValue("target")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "词[" + target + "]"})
	}))
}

// ==================== 单元测试 ====================

func TestTranslate_SameLanguageNoop(t *testing.T) {
	svc := newTestTranslator("", "")
	ctx := context.Background()

	if got := svc.Translate(ctx, "你好世界", "zh"); got != "你好世界" {
		t.Errorf("Translate(zh->zh) = %q, want 原文", got)
	}
	if got := svc.Translate(ctx, "plain english", "en"); got != "plain english" {
		t.Errorf("Translate(en->en) = %q, want 原文", got)
	}
}

func TestTranslate_EmptyText(t *testing.T) {
	svc := newTestTranslator("", "")
	if got := svc.Translate(context.Background(), "   ", "en"); got != "" {
		t.Errorf("空文本应返回空串, got %q", got)
	}
}

func TestTranslate_PrimaryChannel(t *testing.T) {
	srv := primaryServer(t, "hello world", nil)
	defer srv.Close()

	svc := newTestTranslator(srv.URL, "")
	got := svc.Translate(context.Background(), "主通道测试一", "en")
	if got != "hello world" {
		t.Errorf("Translate = %q, want %q", got, "hello world")
	}
}

func TestTranslate_FallbackToSecondary(t *testing.T) {
	// 主通道 500，应退到备用通道
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer broken.Close()

	secondary := secondaryServer(nil)
	defer secondary.Close()

	svc := newTestTranslator(broken.URL, secondary.URL)
	got := svc.Translate(context.Background(), "备用通道测试一", "en")
	if got != "词[en]" {
		t.Errorf("Translate = %q, want %q", got, "词[en]")
	}
}

func TestTranslate_ErrorBodyTreatedAsFailure(t *testing.T) {
	// 主通道把错误信息塞在正文里，不能当译文用
	srv := primaryServer(t, "Error: too many requests", nil)
	defer srv.Close()

	svc := newTestTranslator(srv.URL, "")
	got := svc.Translate(context.Background(), "错误正文测试一", "en")
	if got != "错误正文测试一" {
		t.Errorf("Translate = %q, want 回退原文", got)
	}
}

func TestTranslate_AllChannelsDownFallsBackToOriginal(t *testing.T) {
	svc := newTestTranslator("", "")
	got := svc.Translate(context.Background(), "全部故障测试一", "vi")
	if got != "全部故障测试一" {
		t.Errorf("Translate = %q, want 回退原文", got)
	}
}

func TestTranslate_CacheHit(t *testing.T) {
	var calls int64
	srv := primaryServer(t, "cached result", &calls)
	defer srv.Close()

	svc := newTestTranslator(srv.URL, "")
	ctx := context.Background()

	first := svc.Translate(ctx, "缓存命中测试一", "en")
	second := svc.Translate(ctx, "缓存命中测试一", "en")

	if first != "cached result" || second != "cached result" {
		t.Fatalf("翻译结果错误: %q / %q", first, second)
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("外呼次数 = %d, want 1（第二次应命中缓存）", n)
	}
}

func TestTranslate_GASLangMapping(t *testing.T) {
	srv := secondaryServer(nil)
	defer srv.Close()

	svc := newTestTranslator("", srv.URL)
	// ph 市场在备用通道用 tl
	got := svc.Translate(context.Background(), "语言映射测试一", "ph")
	if got != "词[tl]" {
		t.Errorf("Translate(ph) = %q, want %q", got, "词[tl]")
	}
}

func TestSmartTranslate_SixLanguages(t *testing.T) {
	primary := primaryServer(t, "english text", nil)
	defer primary.Close()
	secondary := secondaryServer(nil)
	defer secondary.Close()

	svc := newTestTranslator(primary.URL, secondary.URL)
	set := svc.SmartTranslate(context.Background(), "六语扇出测试一")

	if set.CN != "六语扇出测试一" {
		t.Errorf("CN = %q, want 原文", set.CN)
	}
	if set.EN != "english text" {
		t.Errorf("EN = %q, want %q", set.EN, "english text")
	}
	if set.PH != set.EN {
		t.Errorf("PH = %q, want 复用英文 %q", set.PH, set.EN)
	}
	if set.VN != "词[vi]" || set.TH != "词[th]" || set.MY != "词[ms]" {
		t.Errorf("VN/TH/MY = %q/%q/%q, want 词[vi]/词[th]/词[ms]", set.VN, set.TH, set.MY)
	}
}

func TestSmartTranslate_ASCIIPassthrough(t *testing.T) {
	var primaryCalls int64
	primary := primaryServer(t, "should not be used", &primaryCalls)
	defer primary.Close()
	secondary := secondaryServer(nil)
	defer secondary.Close()

	svc := newTestTranslator(primary.URL, secondary.URL)
	set := svc.SmartTranslate(context.Background(), "SKU-1001, size 30")

	if set.EN != "SKU-1001, size 30" {
		t.Errorf("纯 ASCII 的 EN 应保留原文, got %q", set.EN)
	}
	if n := atomic.LoadInt64(&primaryCalls); n != 0 {
		t.Errorf("纯 ASCII 不应走主通道, 调用了 %d 次", n)
	}
}

func TestSmartTranslate_Empty(t *testing.T) {
	svc := newTestTranslator("", "")
	set := svc.SmartTranslate(context.Background(), "  ")
	if set.CN != "" || set.EN != "" {
		t.Errorf("空文本应返回空集合: %+v", set)
	}
}

func TestContainsCJK(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"你好", true},
		{"hello", false},
		{"mix 中 text", true},
		{"123-456", false},
	}
	for _, c := range cases {
		if got := ContainsCJK(c.text); got != c.want {
			t.Errorf("ContainsCJK(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestCleanText(t *testing.T) {
	if got := cleanText("  abc\x00def\t "); got != "abcdef" {
		t.Errorf("cleanText = %q, want %q", got, "abcdef")
	}
}
