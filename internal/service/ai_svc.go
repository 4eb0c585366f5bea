package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"liveops_dev_v1_202608/internal/config"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/pkg/logger"
)

// ==================== 错误类型 ====================

// GenerationError 生成链路失败，携带上游状态码，前端整条展示
type GenerationError struct {
	Status  int
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("生成失败 [%d]: %s", e.Status, e.Message)
}

// ==================== 市场配置 ====================

// MarketConfig 每个目标市场的语言、平台和文案风格
type MarketConfig struct {
	Lang     string
	Platform string
	Style    string
}

// marketConfigs 固定市场表，未知市场回退 US
var marketConfigs = map[string]MarketConfig{
	"CN": {
		Lang:     "中文",
		Platform: "抖音/小红书",
		Style:    "种草感强，强调'宿舍神器'、'提升幸福感'。语气亲切，像闺蜜安利。",
	},
	"VN": {
		Lang:     "越南语",
		Platform: "TikTok Vietnam",
		Style:    "极其热情，强调'Biến hình phòng ngủ'(卧室大变身)、'Siêu rẻ'(超便宜)。多用 Emoji🔥😍。",
	},
	"MY": {
		Lang:     "马来语(口语化)",
		Platform: "TikTok Malaysia",
		Style:    "强调'Bilik aesthetic'(氛围感房间)、'Privasi'(隐私)。语气真诚推荐。",
	},
	"TH": {
		Lang:     "泰语",
		Platform: "TikTok Thailand",
		Style:    "强调'Narak'(可爱)、'Sabai'(舒适)。语气温柔，多用 Emoji✨。",
	},
	"US": {
		Lang:     "英语",
		Platform: "TikTok US/Instagram",
		Style:    "强调'Room Makeover'(房间改造)、'Dorm Essentials'(宿舍必备)。语气自信、简短有力。",
	},
	"KR": {
		Lang:     "韩语",
		Platform: "Instagram/TikTok KR",
		Style:    "强调'感性'(Vibe)、'极简风'、'自取向狙击'。语气精致、感性。",
	},
}

// 内容类型
const (
	ContentTypeLiveScript = "live_script"
	ContentTypeShortVideo = "short_video"
)

// ==================== 服务 ====================

// GenerateRequest 文案生成请求
type GenerateRequest struct {
	ProductName   string `json:"product_name" binding:"required"`
	Features      string `json:"features"`
	Size          string `json:"size"`
	PatternName   string `json:"pattern_name"`
	TargetCountry string `json:"target_country" binding:"required"`
	ContentType   string `json:"content_type" binding:"required"`
}

// AIService 直播/短视频文案生成
type AIService struct {
	cfg     *config.GeminiConfig
	logRepo repository.ActivityLogRepository

	// 探测后选定的模型，懒加载一次
	selectedModel string

	// 测试注入点
	BaseURL string
	client  *http.Client
}

// NewAIService 创建 AI 服务
func NewAIService(cfg *config.GeminiConfig, logRepo repository.ActivityLogRepository) *AIService {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-1.5-flash"
	}
	return &AIService{
		cfg:     cfg,
		logRepo: logRepo,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ==================== 模型探测 ====================

// resolveModel 拉一次可用模型列表，优先 gemini-1.5-flash，其次 gemini-pro
// 探测失败就用配置的默认模型，不阻塞生成
func (s *AIService) resolveModel(ctx context.Context) string {
	if s.selectedModel != "" {
		return s.selectedModel
	}
	s.selectedModel = s.cfg.DefaultModel

	if !s.cfg.DiscoverModel {
		return s.selectedModel
	}

	url := fmt.Sprintf("%s/models?key=%s", s.BaseURL, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return s.selectedModel
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return s.selectedModel
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return s.selectedModel
	}

	var listResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return s.selectedModel
	}

	var flash, pro string
	for _, m := range listResp.Models {
		if flash == "" && strings.Contains(m.Name, "gemini-1.5-flash") {
			flash = m.Name
		}
		if pro == "" && strings.Contains(m.Name, "gemini-pro") {
			pro = m.Name
		}
	}
	picked := flash
	if picked == "" {
		picked = pro
	}
	if picked != "" {
		s.selectedModel = strings.TrimPrefix(picked, "models/")
	}
	return s.selectedModel
}

// ==================== 文案生成 ====================

// Generate 生成直播脚本或短视频文案，返回模型原文
func (s *AIService) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if s.cfg.APIKey == "" {
		return "", &GenerationError{Status: 500, Message: "服务器配置错误：未配置 API Key"}
	}

	cfg, ok := marketConfigs[req.TargetCountry]
	if !ok {
		cfg = marketConfigs["US"]
	}

	prompt := s.buildPrompt(req, cfg)
	modelName := s.resolveModel(ctx)

	raw, status, err := s.callGenerate(ctx, modelName, prompt, false)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", &GenerationError{Status: status, Message: "生成失败"}
	}
	return raw, nil
}

// buildPrompt 按内容类型拼提示词
func (s *AIService) buildPrompt(req *GenerateRequest, cfg MarketConfig) string {
	var specific string
	if req.ContentType == ContentTypeShortVideo {
		specific = `
【短视频营销文案要求（非拍摄脚本）】：
1. **角色**：你是一位热衷于分享好物的 ` + cfg.Platform + ` 博主，正在向粉丝强烈安利这款产品。
2. **核心目标**：写一段**直接发布在视频下方的文案（Caption）**，目的是激发购买欲。不要写镜头指导、不要写画面描述！
3. **内容策略**：
   - **痛点/场景切入**：例如"受够了宿舍没有隐私？"或"想低成本改造卧室？"
   - **产品植入**：自然引出产品，强调它如何解决问题（遮光/防蚊/美观）。
   - **情感升华**：描述使用后的美好感觉（"每天醒来心情都变好了"）。
   - **热卖话术**：加入"爆款"、"手慢无"、"提升生活质量神器"等营销词汇。
4. **格式要求**：
   - 总字数控制在 100 字以内。
   - 分 3-4 行显示，每行加一个 Emoji。
   - **必须**在文案最后一行附带 5 个该国家当下最热门的相关 Hashtags。
`
	} else {
		focus := "产品"
		if req.PatternName != "" {
			focus = fmt.Sprintf("花型\"%s\"", req.PatternName)
		}
		specific = fmt.Sprintf(`
【直播带货脚本要求】：
1. **互动感**：模拟真实直播间，包含主播动作指导（如 [拿起枕套揉搓展示面料]）和话术。
2. **结构**：
   - **开场 (30s)**：话术要炸，留住划过的人（"停一下！今天这个价格..."）。
   - **产品介绍 (1min)**：结合%s展示细节。
   - **逼单 (30s)**：强调库存少、限时优惠。
3. **语言**：口语化，不要书面语。
`, focus)
	}

	patternLine := ""
	if req.PatternName != "" {
		patternLine = fmt.Sprintf("- 重点推荐花型：%s (请在文案中着重描述该花型的视觉美感)\n", req.PatternName)
	}

	return fmt.Sprintf(`
请为以下家纺产品创作内容：

【产品信息】：
- 品名：%s
- 尺寸：%s
- 核心卖点：%s
%s
【目标受众】：%s

%s

请直接输出最终内容，不要包含任何解释性文字。
`, req.ProductName, req.Size, req.Features, patternLine, cfg.Style, specific)
}

// callGenerate 调 generateContent，返回首个文本候选
func (s *AIService) callGenerate(ctx context.Context, modelName, prompt string, jsonMode bool) (string, int, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.BaseURL, modelName, s.cfg.APIKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
	}
	if jsonMode {
		reqBody["generationConfig"] = map[string]interface{}{
			"responseMimeType": "application/json",
		}
	}

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", 0, &GenerationError{Status: 500, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", 0, &GenerationError{Status: 502, Message: "请求失败: " + err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		logger.L().Warnf("上游生成接口错误 [%d]: %s", resp.StatusCode, string(respBody))
		return "", resp.StatusCode, &GenerationError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Google API Error: %d", resp.StatusCode),
		}
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", resp.StatusCode, &GenerationError{Status: 500, Message: "解析响应失败"}
	}

	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, resp.StatusCode, nil
			}
		}
	}
	return "", resp.StatusCode, nil
}

// ==================== 批量翻译（JSON 模式） ====================

// BatchTranslate 用生成模型一次产出四语种译文，产品导入的兜底通道
func (s *AIService) BatchTranslate(ctx context.Context, text string) (model.TranslationSet, error) {
	if s.cfg.APIKey == "" {
		return model.TranslationSet{}, &GenerationError{Status: 500, Message: "服务器配置错误：未配置 API Key"}
	}

	prompt := fmt.Sprintf(`把下面的中文商品文案翻译成英语、越南语、泰语、马来语。

原文：%s

只输出 JSON，不要 markdown：
{"EN": "...", "VN": "...", "TH": "...", "MY": "..."}`, text)

	raw, status, err := s.callGenerate(ctx, s.resolveModel(ctx), prompt, true)
	if err != nil {
		return model.TranslationSet{}, err
	}
	if raw == "" {
		return model.TranslationSet{}, &GenerationError{Status: status, Message: "生成失败"}
	}

	var parsed struct {
		EN string `json:"EN"`
		VN string `json:"VN"`
		TH string `json:"TH"`
		MY string `json:"MY"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return model.TranslationSet{}, &GenerationError{Status: 500, Message: "解析生成结果失败"}
	}

	return model.TranslationSet{
		CN: text,
		EN: parsed.EN,
		VN: parsed.VN,
		TH: parsed.TH,
		PH: parsed.EN,
		MY: parsed.MY,
	}, nil
}
