package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	Brapi  BrapiConfig
	Gemini GeminiConfig

	// Session store
	Session SessionConfig

	// Background refresh
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// Session backends
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// BrapiConfig holds the quote service (brapi.dev) configuration
type BrapiConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// GeminiConfig holds the generative-text service configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// RatePerMinute caps outbound generation calls
	RatePerMinute int
}

// Enabled reports whether a live Gemini client can be built
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// SessionConfig selects where users and the current session are persisted
type SessionConfig struct {
	Backend            string
	KeyPrefix          string
	ExternalLoginDelay time.Duration
}

// Default refresh schedules (six-field cron, seconds first)
const (
	DefaultMarketSchedule  = "0 * * * * *"
	DefaultContentSchedule = "0 0 * * * *"
)

// SchedulerConfig holds cron expressions for the home feed refresh jobs
type SchedulerConfig struct {
	Enabled         bool
	MarketSchedule  string
	ContentSchedule string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External APIs
		Brapi: BrapiConfig{
			BaseURL: getEnv("BRAPI_BASE_URL", "https://brapi.dev/api"),
			Token:   getEnv("BRAPI_TOKEN", ""),
			Timeout: getEnvAsDuration("BRAPI_TIMEOUT", "5s"),
		},

		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			Model:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:       getEnvAsDuration("GEMINI_TIMEOUT", "20s"),
			RatePerMinute: getEnvAsInt("GEMINI_RATE_PER_MINUTE", 10),
		},

		Session: SessionConfig{
			Backend:            getEnv("SESSION_BACKEND", SessionBackendMemory),
			KeyPrefix:          getEnv("SESSION_KEY_PREFIX", "cartagenes"),
			ExternalLoginDelay: getEnvAsDuration("EXTERNAL_LOGIN_DELAY", "1s"),
		},

		Scheduler: SchedulerConfig{
			Enabled:         getEnvAsBool("SCHEDULER_ENABLED", true),
			MarketSchedule:  getEnv("MARKET_REFRESH_SCHEDULE", DefaultMarketSchedule),
			ContentSchedule: getEnv("CONTENT_REFRESH_SCHEDULE", DefaultContentSchedule),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("SESSION_BACKEND=redis requires REDIS_ENABLED=true")
		}
	case SessionBackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("SESSION_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of: memory, redis, postgres")
	}

	if c.Brapi.Timeout <= 0 {
		return fmt.Errorf("BRAPI_TIMEOUT must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
