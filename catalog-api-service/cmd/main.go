package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maplemarket/catalog-api-service/internal/app/catalogapi/config"
	"maplemarket/catalog-api-service/internal/app/catalogapi/handler"
	"maplemarket/catalog-api-service/internal/app/catalogapi/service"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init("catalog-api-service", cfg.LogLevel)

	// === ИНИЦИАЛИЗАЦИЯ ХРАНИЛИЩА КАТАЛОГА ===
	// Файл перечитывается на каждый запрос, рестарт сервиса не нужен
	// после прогонов генератора или backfill
	store := catalog.NewFileStore(cfg.Catalog.Path)
	logger.Info().Str("path", cfg.Catalog.Path).Msg("Catalog store initialized")

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	queryService := service.NewCatalogQueryService(store)

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	catalogHandler := handler.NewCatalogHandler(queryService)
	router := handler.SetupRoutes(catalogHandler)

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting Catalog API Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog API Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog API Service stopped gracefully")
}
