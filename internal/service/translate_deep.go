package service

import (
	"context"
	"sync"
	"unicode/utf8"
)

// ==================== 深度对象翻译 ====================

// MaxTranslateDepth 递归深度上限，超出部分原样透传
const MaxTranslateDepth = 8

// 不参与翻译的键名：标识符、资源地址、结构字段
var excludedTranslateKeys = map[string]bool{
	"id":       true,
	"sku":      true,
	"image":    true,
	"images":   true,
	"icon":     true,
	"url":      true,
	"link":     true,
	"href":     true,
	"code":     true,
	"category": true,
	"date":     true,
	"author":   true,
	"color":    true,
	"email":    true,
}

// DeepTranslator 对 JSON 树做整体翻译，骨架不动只换叶子
type DeepTranslator struct {
	translator *TranslationService
	// DefaultLang 源语言，目标等于源语言时跳过翻译
	DefaultLang string
}

// NewDeepTranslator 创建深度翻译器
func NewDeepTranslator(translator *TranslationService) *DeepTranslator {
	return &DeepTranslator{
		translator:  translator,
		DefaultLang: "zh",
	}
}

// TranslateValue 翻译任意 JSON 值（map / slice / string 混合树）
// 结构和键保持不变，数组保持顺序；目标语言等于默认语言时原样返回
func (d *DeepTranslator) TranslateValue(ctx context.Context, value interface{}, targetLang string) interface{} {
	if targetLang == "" || targetLang == d.DefaultLang {
		return value
	}
	return d.walk(ctx, value, targetLang, 0)
}

func (d *DeepTranslator) walk(ctx context.Context, value interface{}, targetLang string, depth int) interface{} {
	if depth > MaxTranslateDepth {
		return value
	}
	select {
	case <-ctx.Done():
		return value
	default:
	}

	switch v := value.(type) {
	case string:
		if !d.shouldTranslate(v) {
			return v
		}
		return d.translator.Translate(ctx, v, targetLang)

	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		var mu sync.Mutex
		var wg sync.WaitGroup
		// 同级字段并发翻译，树的总耗时约等于最深链路
		for key, child := range v {
			if excludedTranslateKeys[key] {
				mu.Lock()
				out[key] = child
				mu.Unlock()
				continue
			}
			wg.Add(1)
			go func(k string, c interface{}) {
				defer wg.Done()
				translated := d.walk(ctx, c, targetLang, depth+1)
				mu.Lock()
				out[k] = translated
				mu.Unlock()
			}(key, child)
		}
		wg.Wait()
		return out

	case []interface{}:
		out := make([]interface{}, len(v))
		var wg sync.WaitGroup
		for i, item := range v {
			wg.Add(1)
			go func(idx int, it interface{}) {
				defer wg.Done()
				out[idx] = d.walk(ctx, it, targetLang, depth+1)
			}(i, item)
		}
		wg.Wait()
		return out

	default:
		// 数字 / 布尔 / null 原样保留
		return value
	}
}

// shouldTranslate 含中文必翻；纯外文只有长度超过 3 个字符才值得外呼
func (d *DeepTranslator) shouldTranslate(text string) bool {
	if text == "" {
		return false
	}
	if ContainsCJK(text) {
		return true
	}
	return utf8.RuneCountInString(text) > 3
}
