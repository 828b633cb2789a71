package config

import (
	"os"
	"strconv"
	"time"
)

// Provider supplies string configuration values by key
// Implementations: process environment, secret stores, or a chain of both
type Provider interface {
	// GetString returns the value for key, or defaultValue when the key is unset or empty
	GetString(key, defaultValue string) string
}

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Logger  LoggerConfig
	Secrets SecretsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPPort         int
	MetricsPort      int
	GatewayTimeout   time.Duration // Per-call timeout for the gateway HTTP client
	WebhookRateLimit float64       // Requests per second per IP on the callback endpoint
	WebhookRateBurst int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// SecretsConfig selects where gateway credentials are read from
type SecretsConfig struct {
	Backend         string // env, vault, aws, gcp, local
	Path            string // Secret name/path holding the JSON credential document
	VaultAddress    string
	VaultToken      string
	AWSRegion       string
	AWSEndpoint     string // Custom endpoint (LocalStack)
	GCPProjectID    string
	LocalSecretsDir string
}

// LoadFromEnv loads process-level configuration from environment variables
// Gateway values are resolved separately with LoadGatewayConfig so they can be
// sourced from a secret store
func LoadFromEnv() *Config {
	env := EnvProvider{}
	return &Config{
		Server: ServerConfig{
			HTTPPort:         getEnvAsInt("HTTP_PORT", 8080),
			MetricsPort:      getEnvAsInt("METRICS_PORT", 9090),
			GatewayTimeout:   getEnvAsDuration("GATEWAY_TIMEOUT", 30*time.Second),
			WebhookRateLimit: getEnvAsFloat("WEBHOOK_RATE_LIMIT", 10),
			WebhookRateBurst: getEnvAsInt("WEBHOOK_RATE_BURST", 20),
		},
		Gateway: LoadGatewayConfig(env),
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Secrets: SecretsConfig{
			Backend:         getEnv("SECRETS_BACKEND", "env"),
			Path:            getEnv("SECRETS_PATH", "ussd-push-service/gateway"),
			VaultAddress:    getEnv("VAULT_ADDR", ""),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			AWSEndpoint:     getEnv("AWS_SECRETS_ENDPOINT", ""),
			GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
			LocalSecretsDir: getEnv("LOCAL_SECRETS_DIR", "./secrets"),
		},
	}
}

// EnvProvider reads configuration from the process environment
type EnvProvider struct{}

// GetString implements Provider
func (EnvProvider) GetString(key, defaultValue string) string {
	return getEnv(key, defaultValue)
}

// MapProvider serves values from a fixed map
// Used for secret documents and tests
type MapProvider map[string]string

// GetString implements Provider
func (m MapProvider) GetString(key, defaultValue string) string {
	if value := m[key]; value != "" {
		return value
	}
	return defaultValue
}

// ChainProvider asks each provider in order and returns the first non-empty value
type ChainProvider []Provider

// GetString implements Provider
func (c ChainProvider) GetString(key, defaultValue string) string {
	for _, p := range c {
		if value := p.GetString(key, ""); value != "" {
			return value
		}
	}
	return defaultValue
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
