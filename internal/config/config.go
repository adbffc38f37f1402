package config

import (
	"time"

	"seo-ai/pkg/logger"
)

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"`
	Competitor CompetitorConfig `mapstructure:"competitor"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Model      ModelConfig      `mapstructure:"model"`
	Monitor    MonitorConfig    `mapstructure:"monitor"`
	Logger     logger.Config    `mapstructure:"logger"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type FetcherConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
	CacheSize    int           `mapstructure:"cache_size"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type CompetitorConfig struct {
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
}

// LLMConfig selects the provider and tunes the fallback breaker.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"`
	OpenAI          OpenAIConfig  `mapstructure:"openai"`
	Zhipu           ZhipuConfig   `mapstructure:"zhipu"`
	MockLatency     time.Duration `mapstructure:"mock_latency"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures int           `mapstructure:"breaker_failures"`
	BreakerReset    time.Duration `mapstructure:"breaker_reset"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type ZhipuConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ModelConfig locates the saved model and sizes training when it is missing.
type ModelConfig struct {
	Path           string `mapstructure:"path"`
	TrainIfMissing bool   `mapstructure:"train_if_missing"`
	Samples        int    `mapstructure:"samples"`
	Trees          int    `mapstructure:"trees"`
	Seed           int64  `mapstructure:"seed"`
}

// MonitorConfig controls the scheduled monitoring cycle.
type MonitorConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	DataDir     string        `mapstructure:"data_dir"`
	Interval    time.Duration `mapstructure:"interval"`
	Workers     int           `mapstructure:"workers"`
	TaskTimeout time.Duration `mapstructure:"task_timeout"`
	DefaultURLs []string      `mapstructure:"default_urls"`
}

// Manager loads and reloads configuration.
type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
