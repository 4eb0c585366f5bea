package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"liveops_dev_v1_202608/internal/config"
)

// echoTranslateServer 备用通道假实现，译文 = "T:" + 原文
func echoTranslateServer(calls *int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "T:" + r.PostFormValue("text")})
	}))
}

func newTestDeepTranslator(secondary string) *DeepTranslator {
	return NewDeepTranslator(NewTranslationService(&config.TranslateConfig{
		SecondaryEndpoint: secondary,
		RequestInterval:   time.Millisecond,
	}))
}

// ==================== 单元测试 ====================

func TestDeepTranslate_DefaultLangPassthrough(t *testing.T) {
	var calls int64
	srv := echoTranslateServer(&calls)
	defer srv.Close()

	d := newTestDeepTranslator(srv.URL)
	in := map[string]interface{}{"title": "标题甲"}

	out := d.TranslateValue(context.Background(), in, "zh")
	if !reflect.DeepEqual(out, in) {
		t.Errorf("默认语言应原样返回: %v", out)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("默认语言不应触发外呼")
	}
}

func TestDeepTranslate_NestedStructurePreserved(t *testing.T) {
	srv := echoTranslateServer(nil)
	defer srv.Close()

	d := newTestDeepTranslator(srv.URL)
	in := map[string]interface{}{
		"title": "嵌套标题甲",
		"count": float64(3),
		"ok":    true,
		"meta":  nil,
		"steps": []interface{}{"嵌套步骤甲", "嵌套步骤乙"},
		"inner": map[string]interface{}{
			"desc": "嵌套描述甲",
		},
	}

	out, ok := d.TranslateValue(context.Background(), in, "vi").(map[string]interface{})
	if !ok {
		t.Fatalf("返回类型应为 map")
	}

	if out["title"] != "T:嵌套标题甲" {
		t.Errorf("title = %v", out["title"])
	}
	if out["count"] != float64(3) || out["ok"] != true || out["meta"] != nil {
		t.Errorf("非字符串叶子应原样保留: %v", out)
	}

	steps, _ := out["steps"].([]interface{})
	if len(steps) != 2 || steps[0] != "T:嵌套步骤甲" || steps[1] != "T:嵌套步骤乙" {
		t.Errorf("数组应保持顺序逐项翻译: %v", steps)
	}

	inner, _ := out["inner"].(map[string]interface{})
	if inner == nil || inner["desc"] != "T:嵌套描述甲" {
		t.Errorf("嵌套对象翻译失败: %v", out["inner"])
	}
}

func TestDeepTranslate_ExcludedKeys(t *testing.T) {
	var calls int64
	srv := echoTranslateServer(&calls)
	defer srv.Close()

	d := newTestDeepTranslator(srv.URL)
	in := map[string]interface{}{
		"sku":   "排除键甲号",
		"url":   "https://example.com/页面",
		"email": "someone@example.com",
	}

	out, _ := d.TranslateValue(context.Background(), in, "vi").(map[string]interface{})
	if !reflect.DeepEqual(out, in) {
		t.Errorf("排除键应原样透传: %v", out)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("排除键不应触发外呼, 调用了 %d 次", calls)
	}
}

func TestDeepTranslate_ShortStringSkipped(t *testing.T) {
	var calls int64
	srv := echoTranslateServer(&calls)
	defer srv.Close()

	d := newTestDeepTranslator(srv.URL)
	in := map[string]interface{}{"flag": "ok", "empty": ""}

	out, _ := d.TranslateValue(context.Background(), in, "vi").(map[string]interface{})
	if out["flag"] != "ok" || out["empty"] != "" {
		t.Errorf("短外文串应跳过翻译: %v", out)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("短串不应触发外呼")
	}
}

func TestDeepTranslate_DepthBound(t *testing.T) {
	srv := echoTranslateServer(nil)
	defer srv.Close()

	d := newTestDeepTranslator(srv.URL)

	// 造一棵超过深度上限的链
	leaf := "深度叶子甲"
	var in interface{} = leaf
	for i := 0; i < MaxTranslateDepth+2; i++ {
		in = map[string]interface{}{"child": in}
	}

	out := d.TranslateValue(context.Background(), in, "vi")
	// 一路下钻到最深处，叶子应原样保留
	cur := out
	for {
		m, ok := cur.(map[string]interface{})
		if !ok {
			break
		}
		cur = m["child"]
	}
	if cur != leaf {
		t.Errorf("超深叶子 = %v, want 原样透传 %q", cur, leaf)
	}
}

func TestDeepTranslate_FailurePassthrough(t *testing.T) {
	// 没有可用通道时原文返回，结构不丢
	d := newTestDeepTranslator("")
	in := map[string]interface{}{"title": "故障透传甲"}

	out, _ := d.TranslateValue(context.Background(), in, "vi").(map[string]interface{})
	if out["title"] != "故障透传甲" {
		t.Errorf("翻译失败应回退原文: %v", out["title"])
	}
}
