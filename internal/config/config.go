package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Gateway   GatewayConfig
	Directory DirectoryConfig
	Aggregate AggregateConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// GatewayConfig holds the remote calendar backend configuration
type GatewayConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// DirectoryConfig holds the employee directory configuration.
// It defaults to the gateway values because both services share a deployment today.
type DirectoryConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// AggregateConfig holds aggregation tuning knobs
type AggregateConfig struct {
	Concurrency int
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),
	}

	// Calendar gateway configuration
	gatewayTimeout, err := time.ParseDuration(getEnv("GATEWAY_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
	}

	config.Gateway = GatewayConfig{
		BaseURL: getEnv("GATEWAY_BASE_URL", ""),
		Token:   getEnv("GATEWAY_TOKEN", ""),
		Timeout: gatewayTimeout,
	}

	// Employee directory configuration
	directoryTimeout, err := time.ParseDuration(getEnv("DIRECTORY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIRECTORY_TIMEOUT: %w", err)
	}

	config.Directory = DirectoryConfig{
		BaseURL: getEnv("DIRECTORY_BASE_URL", config.Gateway.BaseURL),
		Token:   getEnv("DIRECTORY_TOKEN", config.Gateway.Token),
		Timeout: directoryTimeout,
	}

	// Aggregation configuration
	concurrency, err := strconv.Atoi(getEnv("AGGREGATE_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATE_CONCURRENCY: %w", err)
	}
	config.Aggregate = AggregateConfig{
		Concurrency: concurrency,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("GATEWAY_BASE_URL is required")
	}
	if c.Aggregate.Concurrency < 1 {
		return fmt.Errorf("AGGREGATE_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
