package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"liveops_dev_v1_202608/internal/config"
)

// ==================== 测试辅助 ====================

func newTestAIService(baseURL string, discover bool) *AIService {
	svc := NewAIService(&config.GeminiConfig{
		APIKey:        "test-key",
		DiscoverModel: discover,
	}, nil)
	svc.BaseURL = baseURL
	return svc
}

// geminiText 组装最小的 generateContent 响应
func geminiText(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": text}},
			}},
		},
	}
}

// ==================== 单元测试 ====================

func TestGenerate_MissingAPIKey(t *testing.T) {
	svc := NewAIService(&config.GeminiConfig{}, nil)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		ProductName:   "蚊帐",
		TargetCountry: "VN",
		ContentType:   ContentTypeLiveScript,
	})

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Status != 500 {
		t.Fatalf("未配置 Key 应返回 500 生成错误, got %v", err)
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotPrompt = body.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(geminiText("生成的直播脚本"))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, false)
	content, err := svc.Generate(context.Background(), &GenerateRequest{
		ProductName:   "床帘",
		Features:      "遮光防蚊",
		Size:          "1.2m",
		TargetCountry: "VN",
		ContentType:   ContentTypeLiveScript,
	})
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}
	if content != "生成的直播脚本" {
		t.Errorf("content = %q", content)
	}
	if !strings.Contains(gotPrompt, "床帘") || !strings.Contains(gotPrompt, "TikTok Vietnam") {
		t.Errorf("提示词应包含产品名和市场平台: %s", gotPrompt)
	}
}

func TestGenerate_UnknownMarketFallsBackToUS(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotPrompt = body.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(geminiText("ok"))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, false)
	_, err := svc.Generate(context.Background(), &GenerateRequest{
		ProductName:   "枕套",
		TargetCountry: "BR",
		ContentType:   ContentTypeShortVideo,
	})
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}
	if !strings.Contains(gotPrompt, "Room Makeover") {
		t.Errorf("未知市场应回退 US 风格: %s", gotPrompt)
	}
}

func TestGenerate_UpstreamErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, false)
	_, err := svc.Generate(context.Background(), &GenerateRequest{
		ProductName:   "四件套",
		TargetCountry: "TH",
		ContentType:   ContentTypeLiveScript,
	})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("应返回 GenerationError, got %v", err)
	}
	if genErr.Status != 429 {
		t.Errorf("Status = %d, want 429", genErr.Status)
	}
	if !strings.Contains(genErr.Message, "Google API Error: 429") {
		t.Errorf("Message = %q", genErr.Message)
	}
}

func TestResolveModel_PrefersFlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/models") {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]string{
					{"name": "models/gemini-pro"},
					{"name": "models/gemini-1.5-flash-001"},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(geminiText("ok"))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, true)
	got := svc.resolveModel(context.Background())
	if got != "gemini-1.5-flash-001" {
		t.Errorf("resolveModel = %q, want gemini-1.5-flash-001", got)
	}
}

func TestResolveModel_FallsBackToPro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{
				{"name": "models/gemini-pro"},
			},
		})
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, true)
	if got := svc.resolveModel(context.Background()); got != "gemini-pro" {
		t.Errorf("resolveModel = %q, want gemini-pro", got)
	}
}

func TestResolveModel_DiscoverFailureUsesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, true)
	if got := svc.resolveModel(context.Background()); got != "gemini-1.5-flash" {
		t.Errorf("resolveModel = %q, want 默认模型", got)
	}
}

func TestBatchTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["generationConfig"] == nil {
			t.Errorf("批量翻译应使用 JSON 模式")
		}
		json.NewEncoder(w).Encode(geminiText(`{"EN":"quilt","VN":"chăn","TH":"ผ้าห่ม","MY":"selimut"}`))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, false)
	set, err := svc.BatchTranslate(context.Background(), "被子")
	if err != nil {
		t.Fatalf("BatchTranslate 失败: %v", err)
	}

	if set.CN != "被子" || set.EN != "quilt" || set.VN != "chăn" {
		t.Errorf("翻译结果错误: %+v", set)
	}
	if set.PH != set.EN {
		t.Errorf("PH = %q, want 复用英文", set.PH)
	}
}

func TestBatchTranslate_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiText("这不是 JSON"))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL, false)
	_, err := svc.BatchTranslate(context.Background(), "被套")

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Status != 500 {
		t.Fatalf("坏 JSON 应返回 500 生成错误, got %v", err)
	}
}
