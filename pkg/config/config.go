package config

import (
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Insights InsightsConfig
	External ExternalConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Insight generation settings
type InsightsConfig struct {
	WorkerPoolSize     int
	RequestTimeout     time.Duration
	RateLimitPerSecond int
	PerResultValue     float64
}

// External endpoint settings
type ExternalConfig struct {
	PlatformExportURL string
	SinkURL           string
	SinkSecret        string
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Insights: InsightsConfig{
			WorkerPoolSize:     getIntEnv("WORKER_POOL_SIZE", 10),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 100),
			PerResultValue:     getFloatEnv("PER_RESULT_VALUE", 50),
		},
		External: ExternalConfig{
			PlatformExportURL: getEnv("PLATFORM_EXPORT_URL", ""),
			SinkURL:           getEnv("SINK_URL", ""),
			SinkSecret:        getEnv("SINK_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
