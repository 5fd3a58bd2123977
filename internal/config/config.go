package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	JWTSecret   string // signing key for session tokens

	// TrustedProxies lists proxy IPs whose X-Forwarded-For headers are
	// honored for client IP extraction.
	TrustedProxies []string
	CatalogPath string // case/skin catalog JSON
	SchemaDir   string // JSON schemas for catalog validation

	// Event publishing retry knobs. Zero values fall back to bootstrap
	// defaults.
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Optional Discord bot for rare-drop announcements. Leaving either
	// value empty disables the announcer.
	DiscordToken     string
	DiscordChannelID string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		LogDir:              getEnv("LOG_DIR", "logs"),
		ServiceName:         getEnv("SERVICE_NAME", "casefall"),
		Version:             getEnv("VERSION", "dev"),
		Environment:         getEnv("ENVIRONMENT", "dev"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", "casefall"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		CatalogPath:         getEnv("CATALOG_PATH", "configs/catalog.json"),
		SchemaDir:           getEnv("SCHEMA_DIR", "configs/schema"),
		DiscordToken:        getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID:    getEnv("DISCORD_CHANNEL_ID", ""),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
	}

	if raw := getEnv("EVENT_MAX_RETRIES", ""); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EVENT_MAX_RETRIES value: %w", err)
		}
		cfg.EventMaxRetries = retries
	}

	if raw := getEnv("EVENT_RETRY_DELAY", ""); raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EVENT_RETRY_DELAY value: %w", err)
		}
		cfg.EventRetryDelay = delay
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, ip := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(ip); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	// Session tokens are unverifiable without a secret
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
