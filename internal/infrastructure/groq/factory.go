package groq

import (
	"sync"

	"ui-spec-web/pkg/config"
)

var (
	instance *Client
	once     sync.Once
)

// GetClient 获取Groq客户端单例实例
func GetClient(cfg *config.Config) *Client {
	once.Do(func() {
		instance = NewClient(cfg)
	})
	return instance
}
