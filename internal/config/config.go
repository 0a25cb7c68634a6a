package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrMissingSessionSecret is returned in production when no signing secret is configured.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set in production")

const devSessionSecret = "focodev-dev-secret-change-me"

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	Debug        bool
	LogDir       string
	DatabaseURL  string
	DatabasePath string
	CORSOrigin   string

	SessionSecret string
	SessionTTL    time.Duration

	UploadDir     string
	UploadBaseURL string

	SMTP               SMTPConfig
	ContactNotifyEmail string
	MessagingURL       string

	Redis RedisConfig

	RateLimits RateLimitConfig

	Admin AdminSeed
}

// SMTPConfig holds the outbound mail server settings.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	Encryption  string // "none", "ssl", "starttls"
}

// RedisConfig points at the optional public page cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig holds per-bucket request budgets for one window.
type RateLimitConfig struct {
	Window  time.Duration
	Auth    int
	Upload  int
	Contact int
}

// AdminSeed is the bootstrap administrator created by cmd/seed.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
func Load() (Config, error) {
	cfg := Config{
		Environment:  getEnv("APP_ENV", "development"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		Debug:        getEnvBool("DEBUG", false),
		LogDir:       getEnv("LOG_DIR", filepath.Join("data", "logs")),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DatabasePath: getEnv("DB_PATH", filepath.Join("data", "focodev.db")),
		CORSOrigin:   getEnv("CORS_ORIGIN", "*"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,

		UploadDir:     getEnv("UPLOAD_DIR", filepath.Join("data", "uploads")),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/uploads"),

		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromAddress: getEnv("SMTP_FROM", ""),
			Encryption:  getEnv("SMTP_ENCRYPTION", "starttls"),
		},
		ContactNotifyEmail: getEnv("CONTACT_NOTIFY_EMAIL", ""),
		MessagingURL:       getEnv("MESSAGING_URL", ""),

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		RateLimits: RateLimitConfig{
			Window:  time.Minute,
			Auth:    getEnvInt("AUTH_RATE_LIMIT", 10),
			Upload:  getEnvInt("UPLOAD_RATE_LIMIT", 20),
			Contact: getEnvInt("CONTACT_RATE_LIMIT", 5),
		},

		Admin: AdminSeed{
			Email:    getEnv("ADMIN_EMAIL", "admin@focodev.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
			Name:     getEnv("ADMIN_NAME", "Administrador"),
		},
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return Config{}, ErrMissingSessionSecret
		}
		cfg.SessionSecret = devSessionSecret
	}

	if cfg.DatabaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return Config{}, fmt.Errorf("ensure data directory: %w", err)
		}
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production semantics.
func (c Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
