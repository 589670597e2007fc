package processor

import (
	"context"
	"time"

	"maplemarket/generator-service/internal/app/generator/service"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"
)

// CategoryWorker генерирует недостающие товары одной категории
// Работает только со снапшотом каталога на момент диспетчеризации,
// общий каталог мутирует исключительно координатор
type CategoryWorker struct {
	synthesizer service.ProductSynthesizer
	pacingDelay time.Duration
}

// NewCategoryWorker создает воркер генерации категории
func NewCategoryWorker(synthesizer service.ProductSynthesizer, pacingDelay time.Duration) *CategoryWorker {
	return &CategoryWorker{
		synthesizer: synthesizer,
		pacingDelay: pacingDelay,
	}
}

// Run доводит категорию до целевого количества товаров
// Дефицит ноль - немедленный выход с пустым батчем (не ошибка)
// Неудача одного товара логируется и пропускается, остальные итерации продолжаются,
// поэтому батч может оказаться короче дефицита
func (w *CategoryWorker) Run(ctx context.Context, category catalog.Category, targetCount int, snapshot *catalog.Catalog) []catalog.Product {
	currentCount := snapshot.CountByCategory(category)
	deficit := targetCount - currentCount
	if deficit <= 0 {
		logger.Info().
			Str("category", string(category)).
			Int("current", currentCount).
			Int("target", targetCount).
			Msg("Category target already met, nothing to generate")
		return nil
	}

	logger.Info().
		Str("category", string(category)).
		Int("current", currentCount).
		Int("target", targetCount).
		Int("deficit", deficit).
		Msg("Generating products for category")

	existing := snapshot.ByCategory(category)

	// Занятые идентификаторы: весь снапшот плюс товары текущего батча,
	// иначе два товара одного прогона могли бы получить один номер
	existingIDs := snapshot.IDs()

	batch := make([]catalog.Product, 0, deficit)
	for i := 0; i < deficit; i++ {
		product, err := w.synthesizer.Synthesize(ctx, category, existing, existingIDs)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("category", string(category)).
				Msg("Failed to generate product, skipping")
			continue
		}

		batch = append(batch, *product)
		existing = append(existing, *product)
		existingIDs[product.ID] = struct{}{}

		logger.Info().
			Str("category", string(category)).
			Str("product_id", product.ID).
			Str("name", product.Name).
			Msg("Generated product")

		// Пауза между обращениями к генератору, блокирует только этот воркер
		select {
		case <-ctx.Done():
			return batch
		case <-time.After(w.pacingDelay):
		}
	}

	return batch
}
