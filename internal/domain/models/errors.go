package models

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed 生成服务重试耗尽
var ErrGenerationFailed = errors.New("generation failed")

// 错误分类，用于日志和指标标签
const (
	CategoryExtraction    = "extraction_failure"
	CategoryGeneration    = "generation_failure"
	CategoryParse         = "parse_failure"
	CategoryNormalization = "normalization_gap"
)

// GenerationError 错误码
const (
	CodeRateLimited = "rate_limited"
	CodeUnavailable = "unavailable"
)

// GenerationError 是流水线中唯一会返回给调用方的错误
type GenerationError struct {
	Code      string
	Message   string
	Attempts  int
	Retryable bool
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (attempts=%d): %v", e.Code, e.Message, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("%s: %s (attempts=%d)", e.Code, e.Message, e.Attempts)
}

func (e *GenerationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrGenerationFailed}
	}
	return []error{ErrGenerationFailed, e.Cause}
}

// IsRateLimited 判断是否为限流导致的失败
func (e *GenerationError) IsRateLimited() bool {
	return e.Code == CodeRateLimited
}

// AsGenerationError 从错误链中取出 GenerationError
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}
