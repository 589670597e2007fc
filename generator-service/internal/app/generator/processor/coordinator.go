package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maplemarket/generator-service/internal/app/generator/entity"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// BatchWorker производит батч новых товаров одной категории
type BatchWorker interface {
	Run(ctx context.Context, category catalog.Category, targetCount int, snapshot *catalog.Catalog) []catalog.Product
}

// MessagePublisher отправляет событие в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
}

// batchResult - батч одного воркера, передается коллектору по каналу
type batchResult struct {
	category catalog.Category
	products []catalog.Product
}

// Coordinator владеет единственным разделяемым каталогом прогона
// Раскидывает категории по пулу воркеров, воркеры возвращают батчи как значения,
// и единственная собирающая горутина вливает их в каталог - общей памяти на запись
// и межворкерных блокировок нет
type Coordinator struct {
	store       *catalog.FileStore
	worker      BatchWorker
	publisher   MessagePublisher // nil если Kafka не настроена
	topic       string
	workerLimit int
}

// NewCoordinator создает координатор генерации каталога
func NewCoordinator(store *catalog.FileStore, worker BatchWorker, publisher MessagePublisher, workerLimit int) *Coordinator {
	if workerLimit < 1 {
		workerLimit = 1
	}
	return &Coordinator{
		store:       store,
		worker:      worker,
		publisher:   publisher,
		workerLimit: workerLimit,
	}
}

// Run выполняет один прогон генерации для карты целей по категориям
// Чекпоинт персистентности один - в самом конце: упавший до него процесс
// теряет только товары этого прогона, уже сохраненный каталог не трогается
// Ошибки отдельных воркеров прогон не прерывают
func (c *Coordinator) Run(ctx context.Context, targets map[catalog.Category]int) (*catalog.Catalog, error) {
	current := c.store.Load()
	initialCount := len(current.Products)

	// Отбрасываем категории с нулевой целью и уже достигнутые
	pending := make([]catalog.Category, 0, len(targets))
	for category, target := range targets {
		if target > 0 && current.CountByCategory(category) < target {
			pending = append(pending, category)
		}
	}

	logger.Info().
		Int("categories", len(pending)).
		Int("existing_products", initialCount).
		Msg("Starting catalog generation run")

	if len(pending) > 0 {
		// Читающий снапшот на момент диспетчеризации: воркеры не видят вливаемых
		// коллектором батчей соседних категорий. Для дефицита это безопасно -
		// категории дизъюнктны, карта целей дает ровно одного воркера на категорию
		snapshot := &catalog.Catalog{Products: make([]catalog.Product, len(current.Products))}
		copy(snapshot.Products, current.Products)

		results := make(chan batchResult)
		collectorDone := make(chan struct{})

		// Единственная точка мутации разделяемого каталога
		go func() {
			defer close(collectorDone)
			for r := range results {
				current.Products = append(current.Products, r.products...)
				metrics.ProductsGenerated.WithLabelValues(string(r.category)).Add(float64(len(r.products)))
			}
		}()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.workerLimit)

		for _, category := range pending {
			g.Go(func() error {
				batch := c.worker.Run(gctx, category, targets[category], snapshot)
				if len(batch) > 0 {
					results <- batchResult{category: category, products: batch}
				}
				return nil
			})
		}

		// Воркеры ошибок не возвращают, Wait только дожидается завершения пула
		_ = g.Wait()
		close(results)
		<-collectorDone
	}

	if err := c.store.Save(current); err != nil {
		logger.Error().Err(err).Msg("Failed to persist generated catalog")
		return current, fmt.Errorf("failed to save catalog: %w", err)
	}

	added := current.Products[initialCount:]
	logger.Info().
		Int("added", len(added)).
		Int("total", len(current.Products)).
		Str("path", c.store.Path()).
		Msg("Catalog generation run finished")

	c.publishCreatedEvents(ctx, added)

	return current, nil
}

// publishCreatedEvents отправляет PRODUCT_CREATED для каждого добавленного товара
// Каталог уже сохранен, проблемы с Kafka не критичны - логируем и продолжаем
func (c *Coordinator) publishCreatedEvents(ctx context.Context, added []catalog.Product) {
	if c.publisher == nil || len(added) == 0 {
		return
	}

	for i := range added {
		event := entity.ProductEvent{
			EventType:  "PRODUCT_CREATED",
			ProductID:  added[i].ID,
			Name:       added[i].Name,
			Price:      added[i].Price,
			CategoryID: added[i].CategoryID,
			Timestamp:  time.Now(),
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			logger.Warn().Err(err).Str("product_id", added[i].ID).Msg("Failed to marshal product event")
			continue
		}

		if err := c.publisher.PublishMessage(ctx, added[i].ID, eventData); err != nil {
			logger.Warn().Err(err).Str("product_id", added[i].ID).Msg("Failed to publish product created event")
		}
	}
}
