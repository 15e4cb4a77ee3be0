package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ui-spec-web/pkg/logger"
)

// Policy 重试策略
type Policy struct {
	// MaxAttempts 最大尝试次数，小于 1 时按 1 处理
	MaxAttempts int

	// Backoff 返回第 attempt 次（从 0 开始）失败后的等待时间
	Backoff func(attempt int, err error) time.Duration

	// IsRetryable 为空时除 context 取消外的错误都重试
	IsRetryable func(err error) bool

	// Sleep 可替换，测试中用于跳过真实等待
	Sleep func(ctx context.Context, d time.Duration) error
}

// Op 单次尝试，attempt 从 0 开始
type Op[T any] func(ctx context.Context, attempt int) (T, error)

// Do 按策略执行 op，返回结果、实际尝试次数和最后一次错误
func Do[T any](ctx context.Context, policy Policy, op Op[T]) (T, int, error) {
	var zero T

	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := op(ctx, attempt)
		if err == nil {
			return result, attempt + 1, nil
		}
		lastErr = err

		if !policy.retryable(err) || attempt == maxAttempts-1 {
			return zero, attempt + 1, lastErr
		}

		var wait time.Duration
		if policy.Backoff != nil {
			wait = policy.Backoff(attempt, err)
		}
		logger.Warn("调用失败，等待重试",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("wait", wait),
			zap.Error(err))

		if err := sleep(ctx, wait); err != nil {
			return zero, attempt + 1, err
		}
	}
	return zero, maxAttempts, lastErr
}

func (p Policy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if p.IsRetryable == nil {
		return true
	}
	return p.IsRetryable(err)
}

// SleepContext 等待 d，ctx 结束时提前返回
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
