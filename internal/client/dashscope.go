package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const dashScopeURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// 医疗场景前置提示：远端生成必须贴合临床指南口径
const medicalPreamble = `You are a clinical assistant for HIV and Advanced HIV Disease (AHD). ` +
	`Answer strictly according to WHO HIV guidelines, keep answers concise and clinically safe, ` +
	`and remind the user to consult a clinician for individual decisions.`

// DashScopeClient 通义千问文本生成客户端。
// 调用是同步且阻塞用户交互的，因此必须设置有界超时，不做重试。
type DashScopeClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDashScopeClient 创建客户端
func NewDashScopeClient(apiKey, model string, timeout time.Duration, logger *zap.Logger) *DashScopeClient {
	return &DashScopeClient{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Message 消息
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatRequest 聊天请求
type ChatRequest struct {
	Model      string     `json:"model"`
	Input      Input      `json:"input"`
	Parameters Parameters `json:"parameters,omitempty"`
}

// Input 输入
type Input struct {
	Messages []Message `json:"messages"`
}

// Parameters 参数
type Parameters struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	Output struct {
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	RequestID string `json:"request_id"`
}

// Chat 调用文本生成接口，返回单条生成文本
func (c *DashScopeClient) Chat(messages []Message) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Input: Input{
			Messages: messages,
		},
		Parameters: Parameters{
			Temperature: 0.3,
			MaxTokens:   1000,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequest("POST", dashScopeURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("API 返回错误: %d, body: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	if chatResp.Output.Text == "" {
		return "", fmt.Errorf("响应中没有生成文本, requestId: %s", chatResp.RequestID)
	}

	return chatResp.Output.Text, nil
}

// GuidelineChat 带医疗前置提示的单轮问答
func (c *DashScopeClient) GuidelineChat(userMessage string) (string, error) {
	messages := []Message{
		{Role: "system", Content: medicalPreamble},
		{Role: "user", Content: userMessage},
	}
	return c.Chat(messages)
}
