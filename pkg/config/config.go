package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Data provider
	Provider ProviderConfig

	// Screening
	Screening ScreeningConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ProviderConfig holds quote/fundamentals provider configuration.
type ProviderConfig struct {
	QuoteBaseURL   string // chart + quoteSummary endpoints
	SearchBaseURL  string
	ScrapeBaseURL  string // HTML fallback for key statistics
	RequestsPerSec float64
	Timeout        time.Duration
	CacheTTL       time.Duration // fundamentals freshness window
}

// ScreeningConfig holds screening engine defaults.
type ScreeningConfig struct {
	Workers       int
	SymbolTimeout time.Duration
}

// SchedulerConfig holds the background refresh job configuration.
type SchedulerConfig struct {
	Enabled     bool
	RefreshCron string
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Provider: ProviderConfig{
			QuoteBaseURL:   getEnv("PROVIDER_QUOTE_URL", "https://query1.finance.yahoo.com"),
			SearchBaseURL:  getEnv("PROVIDER_SEARCH_URL", "https://query2.finance.yahoo.com"),
			ScrapeBaseURL:  getEnv("PROVIDER_SCRAPE_URL", "https://finance.yahoo.com"),
			RequestsPerSec: getEnvAsFloat("PROVIDER_RPS", 4.0),
			Timeout:        getEnvAsDuration("PROVIDER_TIMEOUT", "30s"),
			CacheTTL:       getEnvAsDuration("PROVIDER_CACHE_TTL", "30m"),
		},

		Screening: ScreeningConfig{
			Workers:       getEnvAsInt("SCREEN_WORKERS", 8),
			SymbolTimeout: getEnvAsDuration("SCREEN_SYMBOL_TIMEOUT", "30s"),
		},

		Scheduler: SchedulerConfig{
			Enabled:     getEnvAsBool("SCHEDULER_ENABLED", false),
			RefreshCron: getEnv("SCHEDULER_REFRESH_CRON", "0 30 6 * * MON-FRI"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Screening.Workers <= 0 {
		return fmt.Errorf("SCREEN_WORKERS must be positive")
	}

	if c.Provider.CacheTTL <= 0 {
		return fmt.Errorf("PROVIDER_CACHE_TTL must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
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
