package config

import (
	"fmt"
	"os"
)

// Config содержит настройки HTTP API каталога
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	LogLevel string
}

type ServerConfig struct {
	Host string
	Port string
}

type CatalogConfig struct {
	Path string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "products.json"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Address возвращает адрес для HTTP сервера
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
