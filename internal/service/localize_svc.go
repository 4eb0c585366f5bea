package service

import (
	"context"
	"sync"
)

// ==================== 页面文案本地化 ====================

// LocalizeService 页面文案包本地化
// 同一 (bundle, lang) 只翻一次，结果常驻内存
type LocalizeService struct {
	deep *DeepTranslator

	mu    sync.RWMutex
	cache map[string]map[string]interface{} // key = bundleKey + "\x00" + lang
}

// NewLocalizeService 创建本地化服务
func NewLocalizeService(deep *DeepTranslator) *LocalizeService {
	return &LocalizeService{
		deep:  deep,
		cache: make(map[string]map[string]interface{}),
	}
}

// LocalizeBundle 把默认文案包翻成目标语言
// 默认语言直接返回原包，不发任何外呼
func (s *LocalizeService) LocalizeBundle(ctx context.Context, bundleKey string, bundle map[string]interface{}, lang string) map[string]interface{} {
	if lang == "" || lang == s.deep.DefaultLang {
		return bundle
	}

	key := bundleKey + "\x00" + lang

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	translated, _ := s.deep.TranslateValue(ctx, bundle, lang).(map[string]interface{})
	if translated == nil {
		return bundle
	}

	s.mu.Lock()
	s.cache[key] = translated
	s.mu.Unlock()

	return translated
}

// Invalidate 文案包更新后清掉旧翻译
func (s *LocalizeService) Invalidate(bundleKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.cache {
		if len(key) > len(bundleKey) && key[:len(bundleKey)+1] == bundleKey+"\x00" {
			delete(s.cache, key)
		}
	}
}
