package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/logger"
	"ui-spec-web/pkg/types"
)

// ErrNotFound 会话没有已保存的报告
var ErrNotFound = errors.New("report not found")

// StoredReport 一次成功生成的结果
type StoredReport struct {
	SessionID string         `json:"session_id"`
	Report    types.UIReport `json:"report"`
	Prompt    string         `json:"prompt"`
	FigmaURL  *string        `json:"figma_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ReportStore 按会话保存最近一次报告
type ReportStore interface {
	Save(ctx context.Context, sessionID string, report StoredReport) error
	Latest(ctx context.Context, sessionID string) (*StoredReport, error)
	Close() error
}

// New 配置了 Redis 且可连通时使用 Redis，否则退回内存存储
func New(ctx context.Context, cfg *config.Config) ReportStore {
	ttl := cfg.GetSessionTTL()
	if addr := cfg.GetRedisAddr(); addr != "" {
		rs := NewRedisStore(addr, cfg.Redis.Password, cfg.Redis.DB, ttl)
		if err := rs.Ping(ctx); err != nil {
			logger.Warn("Redis 不可用，使用内存存储", zap.String("addr", addr), zap.Error(err))
			_ = rs.Close()
		} else {
			logger.Info("使用 Redis 保存会话报告", zap.String("addr", addr))
			return rs
		}
	}
	return NewMemoryStore(ttl)
}
