package groq

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/internal/infrastructure/metrics"
	"ui-spec-web/internal/infrastructure/retry"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/logger"
)

// Client 是 Groq（OpenAI 兼容接口）客户端
type Client struct {
	api         *openai.Client
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	policy      retry.Policy
}

// getProxy 获取代理配置
func getProxy(cfg *config.Config) func(*http.Request) (*url.URL, error) {
	proxyURL := cfg.GetGroqProxyURL()
	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			logger.Warn("无效的代理URL配置，将使用系统代理",
				zap.String("proxy_url", proxyURL),
				zap.Error(err))
			return http.ProxyFromEnvironment
		}
		logger.Info("使用配置的Groq API代理", zap.String("proxy_url", proxyURL))
		return http.ProxyURL(proxy)
	}
	return http.ProxyFromEnvironment
}

// DefaultPolicy 限流错误等待 (attempt+1)*步长，其他错误固定等待
func DefaultPolicy(cfg *config.Config) retry.Policy {
	step, delay := cfg.GetRateLimitStep(), cfg.GetRetryDelay()
	return retry.Policy{
		MaxAttempts: cfg.GetMaxAttempts(),
		Backoff: func(attempt int, err error) time.Duration {
			if IsRateLimit(err) {
				return time.Duration(attempt+1) * step
			}
			return delay
		},
	}
}

// NewClient 创建一个新的 Groq 客户端
func NewClient(cfg *config.Config) *Client {
	transport := &http.Transport{
		Proxy: getProxy(cfg),
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
	}

	apiCfg := openai.DefaultConfig(cfg.GetGroqAPIKey())
	apiCfg.BaseURL = cfg.GetGroqBaseURL()
	apiCfg.HTTPClient = &http.Client{Transport: transport}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		apiKey:      cfg.GetGroqAPIKey(),
		model:       cfg.GetGroqModel(),
		temperature: cfg.GetTemperature(),
		maxTokens:   cfg.GetMaxTokens(),
		timeout:     cfg.GetGenerationTimeout(),
		policy:      DefaultPolicy(cfg),
	}
}

// Model 返回模型名称
func (c *Client) Model() string {
	return c.model
}

// Generate 带重试地发送提示词，重试耗尽时返回 *models.GenerationError
func (c *Client) Generate(ctx context.Context, prompt models.PromptSpec) (string, error) {
	if c.apiKey == "" {
		return "", &models.GenerationError{
			Code:    models.CodeUnavailable,
			Message: "Groq API 密钥未配置",
		}
	}

	logger.Debug("准备发送提示词到 Groq API",
		zap.String("model", c.model),
		zap.Int("prompt_length", len(prompt.User)))

	response, attempts, err := retry.Do(ctx, c.policy, func(ctx context.Context, attempt int) (string, error) {
		content, err := c.complete(ctx, prompt)
		switch {
		case err == nil:
			metrics.GeneratorAttempts.WithLabelValues(metrics.AttemptSuccess).Inc()
		case IsRateLimit(err):
			metrics.GeneratorAttempts.WithLabelValues(metrics.AttemptRateLimited).Inc()
		default:
			metrics.GeneratorAttempts.WithLabelValues(metrics.AttemptError).Inc()
		}
		return content, err
	})
	if err != nil {
		genErr := &models.GenerationError{
			Code:      models.CodeUnavailable,
			Message:   "生成服务请求失败，已达到最大重试次数",
			Attempts:  attempts,
			Retryable: true,
			Cause:     err,
		}
		if IsRateLimit(err) {
			genErr.Code = models.CodeRateLimited
			genErr.Message = "生成服务限流，已达到最大重试次数"
		}
		if errors.Is(err, context.Canceled) {
			genErr.Message = "请求已取消"
			genErr.Retryable = false
		}
		logger.Error("调用Groq API失败",
			zap.String("category", models.CategoryGeneration),
			zap.String("code", genErr.Code),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return "", genErr
	}

	logger.Debug("从 Groq 收到响应",
		zap.Int("response_length", len(response)),
		zap.Int("attempts", attempts))
	return response, nil
}

// complete 单次调用，使用独立的超时
func (c *Client) complete(ctx context.Context, prompt models.PromptSpec) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("API 返回空响应")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// IsRateLimit 判断是否为限流错误（HTTP 429 或错误信息中包含 rate_limit）
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "rate limit")
}
