package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SEOAI"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	loaded bool
}

// NewManager returns a viper-backed Manager.
func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath if it exists and layers environment overrides on top
// of the built-in defaults. An empty path loads defaults and environment only.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	config, err := m.decode()
	if err != nil {
		return nil, err
	}

	m.config = config
	m.loaded = true
	return config, nil
}

// Reload re-reads the file used by Load.
func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return fmt.Errorf("config not loaded")
	}

	if m.viper.ConfigFileUsed() != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) decode() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	// Variable names the old deployment used.
	_ = m.viper.BindEnv("llm.openai.api_key", envPrefix+"_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = m.viper.BindEnv("llm.openai.model", envPrefix+"_LLM_OPENAI_MODEL", "OPENAI_MODEL")
	_ = m.viper.BindEnv("llm.zhipu.api_key", envPrefix+"_LLM_ZHIPU_API_KEY", "ZHIPU_API_KEY")

	setDefaults(m.viper)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("fetcher.user_agent", "SEO-AI/1.0 (+https://example.com)")
	v.SetDefault("fetcher.timeout", 10*time.Second)
	v.SetDefault("fetcher.max_body_bytes", 20<<20)
	v.SetDefault("fetcher.max_retries", 1)
	v.SetDefault("fetcher.retry_delay", 500*time.Millisecond)
	v.SetDefault("fetcher.cache_size", 256)
	v.SetDefault("fetcher.cache_ttl", 5*time.Minute)

	v.SetDefault("competitor.user_agent", "Mozilla/5.0 (seo-agent/1.0)")
	v.SetDefault("competitor.timeout", 8*time.Second)
	v.SetDefault("competitor.max_concurrency", 4)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.openai.model", "gpt-3.5-turbo")
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.zhipu.model", "glm-4-flash")
	v.SetDefault("llm.mock_latency", 250*time.Millisecond)
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.breaker_failures", 3)
	v.SetDefault("llm.breaker_reset", 60*time.Second)

	v.SetDefault("model.path", "data/model.json")
	v.SetDefault("model.train_if_missing", true)
	v.SetDefault("model.samples", 800)
	v.SetDefault("model.trees", 100)
	v.SetDefault("model.seed", 42)

	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.data_dir", "data")
	v.SetDefault("monitor.interval", 30*time.Minute)
	v.SetDefault("monitor.workers", 4)
	v.SetDefault("monitor.task_timeout", 45*time.Second)
	v.SetDefault("monitor.default_urls", []string{"https://example.com"})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Fetcher.Timeout <= 0 || config.Competitor.Timeout <= 0 {
		return fmt.Errorf("fetch timeouts must be positive")
	}

	if config.Competitor.MaxConcurrency <= 0 {
		return fmt.Errorf("competitor.max_concurrency must be positive")
	}

	switch config.LLM.Provider {
	case "openai", "zhipu", "mock":
	default:
		return fmt.Errorf("unknown llm provider: %q", config.LLM.Provider)
	}

	if config.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive")
	}

	if config.Monitor.Workers <= 0 {
		return fmt.Errorf("monitor.workers must be positive")
	}

	if config.Monitor.DataDir == "" {
		return fmt.Errorf("monitor.data_dir cannot be empty")
	}

	if config.Model.Trees <= 0 || config.Model.Samples <= 0 {
		return fmt.Errorf("model.trees and model.samples must be positive")
	}

	return nil
}
