package utils

import (
	"sync"
	"time"
)

// 翻译结果缓存，key = 原文 + "\x00" + 目标语言
// 使用 sync.Map 保证并发安全
var (
	translationCache sync.Map
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// TranslationCacheTTL 缓存有效期，翻译结果基本不变，给长一点
const TranslationCacheTTL = 24 * time.Hour

func translationKey(text, targetLang string) string {
	return text + "\x00" + targetLang
}

// SetTranslation 缓存一条翻译结果
func SetTranslation(text, targetLang, translated string) {
	exp := time.Now().Add(TranslationCacheTTL).Unix()
	translationCache.Store(translationKey(text, targetLang), cacheItem{
		value:      translated,
		expiration: exp,
	})
}

// GetTranslation 获取缓存并验证是否过期
func GetTranslation(text, targetLang string) (string, bool) {
	val, ok := translationCache.Load(translationKey(text, targetLang))
	if !ok {
		return "", false
	}

	item := val.(cacheItem)
	if time.Now().Unix() > item.expiration {
		translationCache.Delete(translationKey(text, targetLang)) // 懒删除
		return "", false
	}

	return item.value, true
}

// DeleteTranslation 删除单条缓存
func DeleteTranslation(text, targetLang string) {
	translationCache.Delete(translationKey(text, targetLang))
}

// SweepExpired 清理所有过期条目，返回清理数量，由定时任务调用
func SweepExpired() int {
	now := time.Now().Unix()
	removed := 0
	translationCache.Range(func(key, val interface{}) bool {
		if item, ok := val.(cacheItem); ok && now > item.expiration {
			translationCache.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
