package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	ProviderTimeout    time.Duration
	MaxRequestBodySize int64

	// PipelineConfigPath points at the optional pipeline YAML file
	// (prompt fragments, stage defaults, capability overrides).
	PipelineConfigPath string

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ClaudeAPIKey   string
	ClaudeBaseURL  string
	OllamaBaseURL  string
	EnterpriseBaseURL string
	// EnterpriseAccessToken is a validated bearer token supplied by the
	// external OAuth2 collaborator; the core never refreshes it.
	EnterpriseAccessToken string

	AzureStorageAccount string
	AzureStorageKey     string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 120*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		ProviderTimeout:    parseDurationOrDefault("PROVIDER_TIMEOUT", 60*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB

		PipelineConfigPath: os.Getenv("PIPELINE_CONFIG"),

		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:         getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		ClaudeAPIKey:          os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeBaseURL:         getEnvOrDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		OllamaBaseURL:         getEnvOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
		EnterpriseBaseURL:     os.Getenv("ENTERPRISE_LLM_BASE_URL"),
		EnterpriseAccessToken: os.Getenv("ENTERPRISE_LLM_ACCESS_TOKEN"),

		AzureStorageAccount: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:     os.Getenv("AZURE_STORAGE_KEY"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, provider=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.ProviderTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
