package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"liveops_dev_v1_202608/internal/config"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/pkg/logger"
	"liveops_dev_v1_202608/pkg/utils"
)

// ==================== 配置与构造 ====================

// TranslationService 翻译网关
// 两条免费通道互为备份：主通道 DeepLX 兼容接口（JSON），备用 Apps Script 兼容接口（表单）
// 任何失败都回退原文，翻译挂了不允许拖垮业务
type TranslationService struct {
	cfg    *config.TranslateConfig
	client *resty.Client

	// 相邻外呼之间的间隔，免费通道容易被限流
	interval time.Duration
}

// NewTranslationService 创建翻译网关
func NewTranslationService(cfg *config.TranslateConfig) *TranslationService {
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &TranslationService{
		cfg:      cfg,
		client:   resty.New().SetTimeout(15 * time.Second),
		interval: interval,
	}
}

// ==================== 文本工具 ====================

var (
	cjkPattern   = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	asciiPattern = regexp.MustCompile(`^[a-zA-Z0-9\s,.-]+$`)
	ctrlPattern  = regexp.MustCompile("[\x00-\x09\x0B-\x1F\x7F]")
)

// cleanText 去掉首尾空白和控制字符
func cleanText(text string) string {
	return ctrlPattern.ReplaceAllString(strings.TrimSpace(text), "")
}

// ContainsCJK 是否包含中文字符
func ContainsCJK(text string) bool {
	return cjkPattern.MatchString(text)
}

// normalizeGASLang 备用通道的语言代码映射
func normalizeGASLang(targetLang string) string {
	switch targetLang {
	case "tl", "ph":
		return "tl"
	default:
		return targetLang
	}
}

// ==================== 单文本翻译 ====================

// Translate 单条翻译，源语言按 CJK 探测
// 源语言与目标一致直接返回；两条通道都失败返回原文
func (s *TranslationService) Translate(ctx context.Context, text, targetLang string) string {
	t := cleanText(text)
	if t == "" {
		return ""
	}

	isChinese := ContainsCJK(t)
	sourceLang := "en"
	if isChinese {
		sourceLang = "zh"
	}
	if sourceLang == targetLang {
		return t
	}
	if targetLang == "zh" && isChinese {
		return t
	}

	if cached, ok := utils.GetTranslation(t, targetLang); ok {
		return cached
	}

	var result string
	if targetLang == "en" && isChinese {
		result = s.fetchPrimary(ctx, t)
	}
	if result == "" {
		result = s.fetchSecondary(ctx, t, targetLang)
	}

	if result == "" {
		// 降级：保留原文，只在 debug 级别记一笔
		logger.L().Debugf("翻译失败，回退原文: target=%s len=%d", targetLang, len(t))
		return t
	}

	utils.SetTranslation(t, targetLang, result)
	return result
}

// fetchPrimary 主通道：DeepLX 兼容接口，仅支持 ZH -> EN
func (s *TranslationService) fetchPrimary(ctx context.Context, text string) string {
	if s.cfg.PrimaryEndpoint == "" {
		return ""
	}

	var result struct {
		Data         string `json:"data"`
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"text":        text,
			"source_lang": "ZH",
			"target_lang": "EN",
		}).
		SetResult(&result).
		Post(s.cfg.PrimaryEndpoint)
	if err != nil || !resp.IsSuccess() {
		return ""
	}

	out := result.Data
	if out == "" && len(result.Translations) > 0 {
		out = result.Translations[0].Text
	}
	// 通道偶尔把错误信息塞在正文里
	if strings.Contains(out, "Error") {
		return ""
	}
	return out
}

// fetchSecondary 备用通道：Apps Script 兼容接口，表单提交
func (s *TranslationService) fetchSecondary(ctx context.Context, text, targetLang string) string {
	if s.cfg.SecondaryEndpoint == "" {
		return ""
	}

	var result struct {
		Text   string `json:"text"`
		Result string `json:"result"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"text":   text,
			"target": normalizeGASLang(targetLang),
			"source": "zh-CN",
		}).
		SetResult(&result).
		Post(s.cfg.SecondaryEndpoint)
	if err != nil || !resp.IsSuccess() {
		return ""
	}

	if result.Text != "" {
		return result.Text
	}
	return result.Result
}

// ==================== 六语种扇出 ====================

// SmartTranslate 中文原文扇出为六语种文案
// EN 优先走主通道，失败换備用；VN/TH/MY 走备用通道并留间隔；PH 市场直接复用英文
func (s *TranslationService) SmartTranslate(ctx context.Context, text string) model.TranslationSet {
	t := cleanText(text)
	if t == "" {
		return model.TranslationSet{}
	}

	en := t
	if !asciiPattern.MatchString(t) {
		en = s.fetchPrimary(ctx, t)
		if en == "" {
			s.pause(ctx, 2*s.interval)
			en = s.fetchSecondary(ctx, t, "en")
		}
		if en == "" {
			en = t
		}
	}

	vn := s.fetchSecondary(ctx, t, "vi")
	s.pause(ctx, s.interval)
	th := s.fetchSecondary(ctx, t, "th")
	s.pause(ctx, s.interval)
	my := s.fetchSecondary(ctx, t, "ms")

	return model.TranslationSet{
		CN: t,
		EN: en,
		VN: vn,
		TH: th,
		PH: en, // 菲律宾市场惯用英文
		MY: my,
	}
}

// pause 限流等待，上下文取消时立即返回
func (s *TranslationService) pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
