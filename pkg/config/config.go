package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 表示应用程序的配置
type Config struct {
	Server struct {
		Addr          string `yaml:"addr"`
		MaxUploadSize int64  `yaml:"max_upload_size"` // MB
	} `yaml:"server"`

	Groq struct {
		APIKey          string  `yaml:"api_key"`
		BaseURL         string  `yaml:"base_url"`
		Model           string  `yaml:"model"`
		ProxyURL        string  `yaml:"proxy_url"`
		Temperature     float32 `yaml:"temperature"`
		MaxTokens       int     `yaml:"max_tokens"`
		TimeoutSeconds  int     `yaml:"timeout_seconds"`
		MaxAttempts     int     `yaml:"max_attempts"`
		RateLimitStepMs int     `yaml:"rate_limit_step_ms"`
		RetryDelayMs    int     `yaml:"retry_delay_ms"`
	} `yaml:"groq"`

	Figma struct {
		AccessToken     string `yaml:"access_token"`
		TemplateFileKey string `yaml:"template_file_key"`
		ProjectID       string `yaml:"project_id"`
		APIURL          string `yaml:"api_url"`
	} `yaml:"figma"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Session struct {
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"session"`

	Pipeline struct {
		// 为空时默认开启
		ForceContentSpecificity *bool  `yaml:"force_content_specificity"`
		SampleDocumentPath      string `yaml:"sample_document_path"`
	} `yaml:"pipeline"`

	Logging struct {
		Level      string `yaml:"level"`       // 日志级别: debug, info, warn, error
		OutputPath string `yaml:"output_path"` // 日志输出路径
	} `yaml:"logging"`
}

var (
	config *Config
	once   sync.Once
)

// Load 加载配置文件，文件不存在时使用默认值
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// .env 可选
		_ = godotenv.Load()

		cfg := &Config{}
		if loadErr := loadConfig(configPath, cfg); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			err = loadErr
			return
		}
		cfg.applyEnv()
		config = cfg
	})
	return err
}

// Get 返回配置实例
func Get() *Config {
	if config == nil {
		return Default()
	}
	return config
}

// Default 返回仅包含环境变量覆盖的默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	return cfg
}

// loadConfig 从文件加载配置
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv 尝试从环境变量读取覆盖项
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Groq.APIKey, "GROQ_API_KEY")
	setString(&c.Groq.Model, "GROQ_MODEL")
	setString(&c.Groq.BaseURL, "GROQ_BASE_URL")
	setString(&c.Figma.AccessToken, "FIGMA_ACCESS_TOKEN")
	setString(&c.Figma.TemplateFileKey, "FIGMA_TEMPLATE_FILE_KEY")
	setString(&c.Figma.ProjectID, "FIGMA_PROJECT_ID")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Pipeline.SampleDocumentPath, "SAMPLE_DOCUMENT_PATH")
	setString(&c.Server.Addr, "SERVER_ADDR")
	setString(&c.Logging.Level, "LOG_LEVEL")

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}

// GetServerAddr 返回监听地址
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return ":8000"
	}
	return c.Server.Addr
}

// GetMaxUploadSize 返回最大上传大小（字节）
func (c *Config) GetMaxUploadSize() int64 {
	if c.Server.MaxUploadSize <= 0 {
		return 20 * 1024 * 1024
	}
	return c.Server.MaxUploadSize * 1024 * 1024
}

// GetGroqAPIKey 返回 Groq API 密钥
func (c *Config) GetGroqAPIKey() string {
	return c.Groq.APIKey
}

// GetGroqBaseURL 返回 OpenAI 兼容接口地址
func (c *Config) GetGroqBaseURL() string {
	if c.Groq.BaseURL == "" {
		return "https://api.groq.com/openai/v1"
	}
	return c.Groq.BaseURL
}

// GetGroqModel 返回模型名称
func (c *Config) GetGroqModel() string {
	if c.Groq.Model == "" {
		return "llama-3.1-8b-instant"
	}
	return c.Groq.Model
}

// GetGroqProxyURL 返回代理地址
func (c *Config) GetGroqProxyURL() string {
	return c.Groq.ProxyURL
}

// GetTemperature 返回采样温度
func (c *Config) GetTemperature() float32 {
	if c.Groq.Temperature <= 0 {
		return 0.2
	}
	return c.Groq.Temperature
}

// GetMaxTokens 返回最大输出 token 数
func (c *Config) GetMaxTokens() int {
	if c.Groq.MaxTokens <= 0 {
		return 3000
	}
	return c.Groq.MaxTokens
}

// GetGenerationTimeout 返回单次调用超时
func (c *Config) GetGenerationTimeout() time.Duration {
	if c.Groq.TimeoutSeconds <= 0 {
		return 45 * time.Second
	}
	return time.Duration(c.Groq.TimeoutSeconds) * time.Second
}

// GetMaxAttempts 返回最大尝试次数
func (c *Config) GetMaxAttempts() int {
	if c.Groq.MaxAttempts <= 0 {
		return 3
	}
	return c.Groq.MaxAttempts
}

// GetRateLimitStep 返回限流退避步长
func (c *Config) GetRateLimitStep() time.Duration {
	if c.Groq.RateLimitStepMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.Groq.RateLimitStepMs) * time.Millisecond
}

// GetRetryDelay 返回普通错误的重试间隔
func (c *Config) GetRetryDelay() time.Duration {
	if c.Groq.RetryDelayMs <= 0 {
		return time.Second
	}
	return time.Duration(c.Groq.RetryDelayMs) * time.Millisecond
}

// GetFigmaAPIURL 返回 Figma API 地址
func (c *Config) GetFigmaAPIURL() string {
	if c.Figma.APIURL == "" {
		return "https://api.figma.com/v1"
	}
	return c.Figma.APIURL
}

// GetFigmaAccessToken 返回 Figma 访问令牌
func (c *Config) GetFigmaAccessToken() string {
	return c.Figma.AccessToken
}

// GetFigmaTemplateFileKey 返回模板文件 key
func (c *Config) GetFigmaTemplateFileKey() string {
	return c.Figma.TemplateFileKey
}

// GetFigmaProjectID 返回目标项目 ID
func (c *Config) GetFigmaProjectID() string {
	return c.Figma.ProjectID
}

// GetRedisAddr 返回 Redis 地址，为空表示使用内存存储
func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr
}

// GetSessionTTL 返回会话保留时间
func (c *Config) GetSessionTTL() time.Duration {
	if c.Session.TTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// ForceContentSpecificity 是否强制使用文档内容覆盖模型输出
func (c *Config) ForceContentSpecificity() bool {
	if c.Pipeline.ForceContentSpecificity == nil {
		return true
	}
	return *c.Pipeline.ForceContentSpecificity
}

// GetSampleDocumentPath 返回示例文档路径
func (c *Config) GetSampleDocumentPath() string {
	if c.Pipeline.SampleDocumentPath == "" {
		return "./sample-data/ecommerce_uiux_report.pdf"
	}
	return c.Pipeline.SampleDocumentPath
}

// GetLogLevel 返回日志级别
func (c *Config) GetLogLevel() string {
	if c.Logging.Level == "" {
		return "info" // 默认日志级别
	}
	return c.Logging.Level
}

// GetLogOutputPath 返回日志输出路径
func (c *Config) GetLogOutputPath() string {
	if c.Logging.OutputPath == "" {
		return "./logs" // 默认日志目录
	}
	return c.Logging.OutputPath
}
