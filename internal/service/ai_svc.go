package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"marketplace_dev_v1/internal/api/dto"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	ApiKey    string
	TextModel string
	BaseURL   string // 测试时可指向本地桩服务
}

// ==================== 服务 ====================

// AIService 商品文案生成，走 Gemini generateContent 接口
type AIService struct {
	config *AIConfig
	client *resty.Client
}

// NewAIService 创建 AI 服务
func NewAIService(cfg *AIConfig) *AIService {
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}

	client := resty.New().SetTimeout(60 * time.Second)

	return &AIService{
		config: cfg,
		client: client,
	}
}

// Enabled API Key 已配置时可用
func (s *AIService) Enabled() bool {
	return s.config.ApiKey != ""
}

// ==================== 文案生成 ====================

// DescribeProduct 根据商品名称生成卖点描述与标签
func (s *AIService) DescribeProduct(ctx context.Context, req *dto.DescribeRequest) (*dto.DescribeResponse, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("Gemini API Key 未配置")
	}

	prompt := fmt.Sprintf(`You are an e-commerce copywriter. Generate listing content for:

Product: %s
Style Hint: %s

Requirements:
1. Description: engaging sales copy, 100-200 words, highlight features and benefits
2. Tags: up to 10 relevant search tags

Output Format (JSON only, no markdown):
{
  "description": "Your engaging description here...",
  "tags": ["tag1", "tag2"]
}`, req.Name, req.StyleHint)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.config.BaseURL, s.config.TextModel, s.config.ApiKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("Gemini API 错误 [%d]: %s", resp.StatusCode(), resp.String())
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
	if err := json.Unmarshal(resp.Body(), &geminiResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %v", err)
	}
	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("无生成结果")
	}

	var jsonText string
	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				jsonText = part.Text
				break
			}
		}
	}

	var result dto.DescribeResponse
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("解析生成结果失败: %v, raw: %s", err, jsonText)
	}

	return &result, nil
}
