package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (catalog-api-service, health/metrics листенер генератора)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Генерация каталога (generator-service)
// =============================================================================

// ProductsGenerated - успешно сгенерированные товары по категориям
var ProductsGenerated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_products_generated_total",
		Help: "Total number of products generated and merged into the catalog",
	},
	[]string{"category"},
)

// GenerationAttempts - обращения к генератору по результату
// result: ok, malformed, request_error
var GenerationAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_generation_attempts_total",
		Help: "Total number of generation attempts by result",
	},
	[]string{"category", "result"},
)

// GenerationExhausted - товары, пропущенные после исчерпания попыток
var GenerationExhausted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_generation_exhausted_total",
		Help: "Total number of products skipped after exhausting all generation attempts",
	},
	[]string{"category"},
)

// GenerationDuration - время одной успешной генерации товара
var GenerationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "catalog_generation_duration_seconds",
		Help:    "Duration of a single successful product synthesis",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	},
)

// =============================================================================
// Image backfill (backfill-service)
// =============================================================================

// ImagesBackfilled - товары по результату замены картинок
// result: updated, no_results, skipped
var ImagesBackfilled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_images_backfilled_total",
		Help: "Total number of products processed by the image backfill by result",
	},
	[]string{"result"},
)

// ImageSearchErrors - ошибки поискового API
// kind: rate_limited, http_error
var ImageSearchErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_image_search_errors_total",
		Help: "Total number of image search API errors",
	},
	[]string{"kind"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Redis Метрики (кеш результатов поиска картинок)
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)
