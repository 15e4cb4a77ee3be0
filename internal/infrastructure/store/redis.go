package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "uispec:report:"

// RedisStore 以 JSON 形式保存报告，过期时间为会话 TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisStore{client: rdb, ttl: ttl}
}

func reportKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Ping 检查连接
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, report StoredReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("序列化报告失败: %w", err)
	}
	if err := s.client.Set(ctx, reportKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("保存报告失败: %w", err)
	}
	return nil
}

// Latest 读取时刷新过期时间
func (s *RedisStore) Latest(ctx context.Context, sessionID string) (*StoredReport, error) {
	data, err := s.client.GetEx(ctx, reportKey(sessionID), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取报告失败: %w", err)
	}

	var report StoredReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("解析报告失败: %w", err)
	}
	return &report, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
