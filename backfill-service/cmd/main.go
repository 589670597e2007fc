package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maplemarket/backfill-service/internal/app/backfill/config"
	"maplemarket/backfill-service/internal/app/backfill/repository"
	"maplemarket/backfill-service/internal/app/backfill/service"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting Backfill Service...")

	// A missing API key must fail before the catalog is opened
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init("backfill-service", cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Abort the run cleanly on SIGINT/SIGTERM, progress is already saved
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info().Msg("Shutdown signal received, stopping backfill run")
		cancel()
	}()

	store := catalog.NewFileStore(cfg.Catalog.Path)
	logger.Info().Str("path", cfg.Catalog.Path).Msg("Catalog store initialized")

	// Redis is optional, without it every query hits the search API
	var cache repository.ImageCacheRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pingCancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, running without image cache")
		} else {
			cache = repository.NewImageCacheRepository(redisClient, cfg.Redis.TTL)
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("Image search cache enabled")
		}
	}

	searchClient := service.NewSerpAPIClient(
		cfg.SerpAPI.URL,
		cfg.SerpAPI.APIKey,
		cfg.SerpAPI.ResultCount,
		cfg.SerpAPI.Timeout,
	)

	backfillService := service.NewBackfillService(store, searchClient, cache)

	if err := backfillService.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Backfill run failed")
	}

	logger.Info().Msg("Backfill Service finished")
}
