package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DatabaseURL     string `yaml:"database_url"`
	ServerPort      string `yaml:"server_port"`
	BaseURL         string `yaml:"base_url"`
	FrontendURL     string `yaml:"frontend_url"`
	RedisURL        string `yaml:"redis_url"`
	RabbitMQURL     string `yaml:"rabbitmq_url"`
	EnableHSTS      bool   `yaml:"enable_hsts"`
	ServerDebugMode bool   `yaml:"server_debug_mode"`

	OIDCIssuer   string `yaml:"oidc_issuer"`
	OIDCClientID string `yaml:"oidc_client_id"`
	OIDCJWKSURL  string `yaml:"oidc_jwks_url"`

	RateLimit string `yaml:"rate_limit"`

	OTELEnabled  bool   `yaml:"otel_enabled"`
	OTELEndpoint string `yaml:"otel_endpoint"`
}

// Load builds configuration from the environment, with an optional YAML file
// overlay pointed at by TOOLKIT_CONFIG_FILE. Environment variables win over
// file values so deployments can override a checked-in base config.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  "8080",
		BaseURL:     "http://localhost:8080",
		FrontendURL: "http://localhost:3000",
		RedisURL:    "redis://localhost:6379/0",
		RateLimit:   "10-S",
	}

	if path := os.Getenv("TOOLKIT_CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required (mutation notifications are published to RabbitMQ)")
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.DatabaseURL, "DATABASE_URL")
	setEnv(&cfg.ServerPort, "SERVER_PORT")
	setEnv(&cfg.BaseURL, "BASE_URL")
	setEnv(&cfg.FrontendURL, "FRONTEND_URL")
	setEnv(&cfg.RedisURL, "REDIS_URL")
	setEnv(&cfg.RabbitMQURL, "RABBITMQ_URL")
	setEnv(&cfg.OIDCIssuer, "OIDC_ISSUER")
	setEnv(&cfg.OIDCClientID, "OIDC_CLIENT_ID")
	setEnv(&cfg.OIDCJWKSURL, "OIDC_JWKS_URL")
	setEnv(&cfg.RateLimit, "RATE_LIMIT")
	setEnv(&cfg.OTELEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setEnvBool(&cfg.EnableHSTS, "ENABLE_HSTS")
	setEnvBool(&cfg.ServerDebugMode, "SERVER_DEBUG_MODE")
	setEnvBool(&cfg.OTELEnabled, "OTEL_ENABLED")
}

func setEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setEnvBool(dst *bool, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value == "true" || value == "1" || value == "yes"
	}
}
