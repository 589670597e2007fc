package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Catalog  CatalogConfig
	SerpAPI  SerpAPIConfig
	Redis    RedisConfig
	LogLevel string
}

type CatalogConfig struct {
	Path string
}

type SerpAPIConfig struct {
	APIKey      string
	URL         string
	ResultCount int
	Timeout     int // seconds
}

// RedisConfig holds the optional search result cache settings.
// Without REDIS_ADDR the backfill runs with no cache at all.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Load reads configuration from environment variables.
// A missing SERPAPI_API_KEY is a fatal error before the catalog is touched.
func Load() (*Config, error) {
	apiKey := os.Getenv("SERPAPI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SERPAPI_API_KEY environment variable is not set")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	cacheTTLHours := getEnvInt("IMAGE_CACHE_TTL_HOURS", 24)

	return &Config{
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "products.json"),
		},
		SerpAPI: SerpAPIConfig{
			APIKey:      apiKey,
			URL:         getEnv("SERPAPI_URL", "https://serpapi.com/search"),
			ResultCount: getEnvInt("IMAGE_RESULT_COUNT", 4),
			Timeout:     getEnvInt("SERPAPI_TIMEOUT", 30),
		},
		Redis: RedisConfig{
			Enabled:  redisAddr != "",
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(cacheTTLHours) * time.Hour,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
