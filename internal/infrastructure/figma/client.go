package figma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/internal/domain/services"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/logger"
)

const designURLBase = "https://www.figma.com/design"

// Client 复制设计模板并返回新文件链接
type Client struct {
	apiURL      string
	token       string
	templateKey string
	projectID   string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	now         func() time.Time
}

type copyRequest struct {
	Name      string `json:"name"`
	ProjectID int64  `json:"project_id"`
}

type copyResponse struct {
	Key string `json:"key"`
}

// NewClient 创建 Figma 客户端
func NewClient(cfg *config.Config) *Client {
	settings := gobreaker.Settings{
		Name:        "figma-template-copy",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		apiURL:      strings.TrimRight(cfg.GetFigmaAPIURL(), "/"),
		token:       cfg.GetFigmaAccessToken(),
		templateKey: cfg.GetFigmaTemplateFileKey(),
		projectID:   cfg.GetFigmaProjectID(),
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		breaker:     gobreaker.NewCircuitBreaker(settings),
		now:         time.Now,
	}
}

// HasRealAccess 令牌、模板和项目都配置时才能真正复制文件
func (c *Client) HasRealAccess() bool {
	return c.token != "" && c.templateKey != "" && c.projectID != ""
}

// CreateFile 复制模板并返回设计链接，未配置访问权限时返回占位链接
func (c *Client) CreateFile(ctx context.Context, name string) (string, error) {
	if !c.HasRealAccess() {
		link := c.designURL(strings.ReplaceAll(uuid.NewString(), "-", "")[:12], name)
		logger.Debug("未配置Figma访问权限，使用占位链接", zap.String("url", link))
		return link, nil
	}

	projectID, err := strconv.ParseInt(c.projectID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("FIGMA_PROJECT_ID 必须是整数: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.copyTemplate(ctx, copyRequest{Name: name, ProjectID: projectID})
	})
	if err != nil {
		return "", err
	}

	link := c.designURL(result.(string), name)
	logger.Info("已复制Figma模板", zap.String("name", name), zap.String("url", link))
	return link, nil
}

func (c *Client) copyTemplate(ctx context.Context, payload copyRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	endpoint := fmt.Sprintf("%s/files/%s/copy", c.apiURL, c.templateKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("X-FIGMA-TOKEN", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求Figma API失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Figma API 返回错误: %s: %s", resp.Status, string(bodyBytes))
	}

	var out copyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}
	if out.Key == "" {
		return "", fmt.Errorf("Figma API 未返回文件 key")
	}
	return out.Key, nil
}

func (c *Client) designURL(fileKey, name string) string {
	safeName := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return fmt.Sprintf("%s/%s/%s?node-id=0-1&t=%d", designURLBase, fileKey, safeName, c.now().Unix())
}

// UniqueFileName 生成 "[前缀] 名称 - MMDD_HHMM - 六位ID" 格式的文件名
func UniqueFileName(project string, domain models.DomainLabel, now time.Time, id string) string {
	if len(id) > 6 {
		id = id[:6]
	}
	return fmt.Sprintf("[%s] %s - %s - %s", services.UniquePrefix(domain), project, now.Format("0102_1504"), id)
}
