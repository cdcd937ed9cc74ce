// Package generation は OpenAI 互換 API (OpenRouter) へのテキスト生成クライアント。
package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// ErrEmptyResponse は応答が空だった場合
var ErrEmptyResponse = fmt.Errorf("%w: empty completion", model.ErrUpstream)

//go:generate mockery --name Generator --output ../service/mocks --outpkg mocks --case=underscore
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request は1回分の生成依頼。Images は data URL。
type Request struct {
	System      string
	Prompt      string
	Images      []string
	MaxTokens   int
	Temperature float32
}

type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	limiter   *rate.Limiter
}

// headerTransport は OpenRouter 用の識別ヘッダーを付与する
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

func NewClient(cfg config.GenerationConfig) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": cfg.SiteURL,
				"X-Title":      cfg.SiteName,
			},
		},
	}

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		client:    openai.NewClientWithConfig(oc),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		limiter:   rate.NewLimiter(limit, burst),
	}
}

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	logger := middleware.GetLogger(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("generation.Generate: rate limit wait: %w", err)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, userMessage(req.Prompt, req.Images))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			logger.Warn("Generation API returned error", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
		} else {
			logger.Warn("Generation request failed", "error", err)
		}
		return "", fmt.Errorf("generation.Generate: %w: %w", model.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		logger.Warn("Generation returned no choices", "model", c.model)
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		logger.Warn("Generation returned empty content", "model", c.model, "finish_reason", resp.Choices[0].FinishReason)
		return "", ErrEmptyResponse
	}

	logger.Debug("Generation completed", "model", c.model, "total_tokens", resp.Usage.TotalTokens)
	return content, nil
}

func userMessage(prompt string, images []string) openai.ChatCompletionMessage {
	if len(images) == 0 {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}
	}
	parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: prompt}}
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: img, Detail: openai.ImageURLDetailAuto},
		})
	}
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, MultiContent: parts}
}
