package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Sieg    SiegConfig
	Archive ArchiveConfig
}

// SiegConfig holds SIEG API related configuration
type SiegConfig struct {
	APIKey          string
	BaseURL         string
	Take            int
	RequestInterval time.Duration
	HTTPTimeout     time.Duration
}

// ArchiveConfig holds on-disk archive configuration
type ArchiveConfig struct {
	Root string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Sieg: SiegConfig{
			APIKey:          getEnv("SIEG_API_KEY", ""),
			BaseURL:         getEnv("SIEG_BASE_URL", "https://api.sieg.com/BaixarXmls"),
			Take:            getEnvAsInt("SIEG_TAKE", 50),
			RequestInterval: getEnvAsDuration("SIEG_REQUEST_INTERVAL", 3*time.Second),
			HTTPTimeout:     getEnvAsDuration("SIEG_HTTP_TIMEOUT", 45*time.Second),
		},
		Archive: ArchiveConfig{
			Root: getEnv("ARCHIVE_ROOT", "./temp"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Sieg.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "SIEG_API_KEY is required", ErrInvalidInput)
	}
	if c.Sieg.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "SIEG_BASE_URL is required", ErrInvalidInput)
	}
	if c.Sieg.Take <= 0 || c.Sieg.Take > 50 {
		return NewAppError("CONFIG_ERROR", "SIEG_TAKE must be between 1 and 50", ErrInvalidInput)
	}
	if c.Archive.Root == "" {
		return NewAppError("CONFIG_ERROR", "ARCHIVE_ROOT is required", ErrInvalidInput)
	}
	return nil
}
