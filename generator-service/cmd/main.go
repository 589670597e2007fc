package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maplemarket/generator-service/internal/app/generator/config"
	"maplemarket/generator-service/internal/app/generator/infrastructure/messaging"
	"maplemarket/generator-service/internal/app/generator/processor"
	"maplemarket/generator-service/internal/app/generator/service"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "путь к JSON файлу с целями по категориям (категория -> количество)")
	count := flag.Int("count", 1, "целевое количество товаров на категорию, если файл целей не задан")
	schedule := flag.String("schedule", "", "cron расписание периодических прогонов (пусто - один прогон и выход)")
	flag.Parse()

	log.Println("Starting Generator Service...")

	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	// Отсутствие API ключа фатально до любого обращения к каталогу
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init("generator-service", cfg.LogLevel)

	// === ЗАГРУЗКА ЦЕЛЕЙ ГЕНЕРАЦИИ ===
	// Неизвестная категория в файле целей фатальна до любой мутации каталога
	targets, err := config.LoadTargets(*configPath, *count)
	if err != nil {
		log.Fatalf("Failed to load generation targets: %v", err)
	}
	logger.Info().Int("categories", len(targets)).Msg("Generation targets loaded")

	// === ИНИЦИАЛИЗАЦИЯ ХРАНИЛИЩА КАТАЛОГА ===
	store := catalog.NewFileStore(cfg.Catalog.Path)
	logger.Info().Str("path", cfg.Catalog.Path).Msg("Catalog store initialized")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// Kafka опциональна: без брокеров события просто не отправляются
	var publisher processor.MessagePublisher
	if cfg.Kafka.Enabled {
		producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Kafka producer initialized")
	}

	// === ИНИЦИАЛИЗАЦИЯ СЕРВИСОВ ===
	completionClient := service.NewChatCompletionClient(
		cfg.OpenAI.URL,
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.Temperature,
		cfg.OpenAI.Timeout,
	)

	synthesizer := service.NewSynthesizer(completionClient, cfg.Generation.MaxAttempts)
	worker := processor.NewCategoryWorker(synthesizer, cfg.Generation.PacingDelay)
	coordinator := processor.NewCoordinator(store, worker, publisher, cfg.Generation.WorkerLimit)
	logger.Info().Int("workers", cfg.Generation.WorkerLimit).Msg("Generation pipeline initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Один прогон и выход, режим по умолчанию
	if *schedule == "" {
		if _, err := coordinator.Run(ctx, targets); err != nil {
			logger.Fatal().Err(err).Msg("Generation run failed")
		}
		logger.Info().Msg("Generation run finished, exiting")
		return
	}

	// === РЕЖИМ ПО РАСПИСАНИЮ ===
	cronScheduler := processor.NewCronScheduler(coordinator, targets)
	if err := cronScheduler.Start(ctx, *schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", *schedule).Msg("Failed to start cron scheduler")
	}
	defer cronScheduler.Stop()

	// === ИНИЦИАЛИЗАЦИЯ HEALTHCHECK HTTP СЕРВЕРА ===
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"healthy","service":"generator-service"}`)
	})
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("addr", cfg.Metrics.Addr).Msg("Starting healthcheck HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	logger.Info().Str("schedule", *schedule).Msg("Generator Service is running")

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Generator Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("Generator Service stopped gracefully")
}
