package service

import (
	"context"
	"sync/atomic"
	"testing"
)

// ==================== 单元测试 ====================

func TestLocalizeBundle_DefaultLangNoCall(t *testing.T) {
	var calls int64
	srv := echoTranslateServer(&calls)
	defer srv.Close()

	svc := NewLocalizeService(newTestDeepTranslator(srv.URL))
	bundle := map[string]interface{}{"nav.home": "首页甲"}

	out := svc.LocalizeBundle(context.Background(), "common", bundle, "zh")
	if out["nav.home"] != "首页甲" {
		t.Errorf("默认语言应返回原包: %v", out)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("默认语言不应触发外呼")
	}
}

func TestLocalizeBundle_Memoized(t *testing.T) {
	var calls int64
	srv := echoTranslateServer(&calls)
	defer srv.Close()

	svc := NewLocalizeService(newTestDeepTranslator(srv.URL))
	bundle := map[string]interface{}{"nav.products": "记忆商品甲"}
	ctx := context.Background()

	first := svc.LocalizeBundle(ctx, "nav", bundle, "vi")
	if first["nav.products"] != "T:记忆商品甲" {
		t.Fatalf("首次翻译失败: %v", first)
	}

	before := atomic.LoadInt64(&calls)
	second := svc.LocalizeBundle(ctx, "nav", bundle, "vi")
	if second["nav.products"] != "T:记忆商品甲" {
		t.Fatalf("二次获取结果错误: %v", second)
	}
	if after := atomic.LoadInt64(&calls); after != before {
		t.Errorf("命中记忆后不应再外呼: before=%d after=%d", before, after)
	}
}

func TestLocalizeBundle_Invalidate(t *testing.T) {
	srv := echoTranslateServer(nil)
	defer srv.Close()

	svc := NewLocalizeService(newTestDeepTranslator(srv.URL))
	ctx := context.Background()

	old := map[string]interface{}{"btn.save": "失效保存甲"}
	svc.LocalizeBundle(ctx, "btn", old, "th")

	// 不失效时旧记忆生效，新包内容不会被看到
	updated := map[string]interface{}{"btn.save": "失效保存乙"}
	stale := svc.LocalizeBundle(ctx, "btn", updated, "th")
	if stale["btn.save"] != "T:失效保存甲" {
		t.Fatalf("未失效前应返回旧记忆: %v", stale)
	}

	svc.Invalidate("btn")
	fresh := svc.LocalizeBundle(ctx, "btn", updated, "th")
	if fresh["btn.save"] != "T:失效保存乙" {
		t.Errorf("失效后应重新翻译新包: %v", fresh)
	}
}
