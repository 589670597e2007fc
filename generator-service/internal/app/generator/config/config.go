package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"maplemarket/pkg/catalog"
)

// Config содержит все настройки генератора каталога
// Включает конфигурацию OpenAI API, параметров генерации, Kafka и метрик
type Config struct {
	Catalog    CatalogConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	Kafka      KafkaConfig
	Metrics    MetricsConfig
	LogLevel   string
}

// CatalogConfig - расположение файла каталога
type CatalogConfig struct {
	Path string // Путь к products.json
}

// OpenAIConfig - настройки внешнего генерационного API
type OpenAIConfig struct {
	APIKey      string  // API ключ (обязателен, без него запуск невозможен)
	URL         string  // URL chat completions endpoint
	Model       string  // Модель генерации
	Temperature float64 // Температура (фиксированная на весь прогон)
	Timeout     int     // Таймаут запроса в секундах
}

// GenerationConfig - параметры генерационного цикла
type GenerationConfig struct {
	MaxAttempts int           // Попыток на один товар при невалидном ответе
	PacingDelay time.Duration // Пауза после успешной генерации (rate limit API)
	WorkerLimit int           // Размер пула воркеров (по категории на воркер)
}

// KafkaConfig - настройки отправки событий PRODUCT_CREATED
// Kafka опциональна: без KAFKA_BROKERS события не отправляются
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// MetricsConfig - HTTP листенер health/metrics для режима по расписанию
type MetricsConfig struct {
	Addr string
}

// Load загружает конфигурацию из переменных окружения
// Отсутствие OPENAI_API_KEY - фатальная ошибка до любого обращения к каталогу
func Load() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	pacingMs := getEnvInt("GENERATION_PACING_MS", 1000)

	brokers := os.Getenv("KAFKA_BROKERS")

	return &Config{
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "products.json"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      apiKey,
			URL:         getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4"),
			Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
			Timeout:     getEnvInt("OPENAI_TIMEOUT", 120),
		},
		Generation: GenerationConfig{
			MaxAttempts: getEnvInt("GENERATION_MAX_ATTEMPTS", 3),
			PacingDelay: time.Duration(pacingMs) * time.Millisecond,
			WorkerLimit: getEnvInt("GENERATION_WORKERS", runtime.NumCPU()),
		},
		Kafka: KafkaConfig{
			Enabled: brokers != "",
			Brokers: splitNonEmpty(brokers),
			Topic:   getEnv("KAFKA_TOPIC", "product_events"),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ":8080"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// LoadTargets строит карту целей по категориям
// Без файла - одна цель count на каждую известную категорию
// Неизвестная категория в файле - фатальная ошибка до любой мутации каталога
func LoadTargets(configPath string, count int) (map[catalog.Category]int, error) {
	targets := make(map[catalog.Category]int, len(catalog.AllCategories()))
	for _, category := range catalog.AllCategories() {
		targets[category] = count
	}

	if configPath == "" {
		return targets, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}

	// Файл целей задает количества явно, не упомянутые категории не генерируются
	for category := range targets {
		targets[category] = 0
	}
	for key, value := range raw {
		category, err := catalog.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("unknown category %q in targets file: %w", key, err)
		}
		if value < 0 {
			return nil, fmt.Errorf("negative target %d for category %q", value, key)
		}
		targets[category] = value
	}

	return targets, nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает значение переменной окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает значение переменной окружения как float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
