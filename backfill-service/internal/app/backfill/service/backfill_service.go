package service

import (
	"context"
	"errors"
	"fmt"

	"maplemarket/backfill-service/internal/app/backfill/repository"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"
)

// BackfillService replaces placeholder product images with real ones
// found through an image search API. Products are processed strictly
// one at a time and the catalog is saved after every product, so an
// interrupted run resumes at the first product that still carries a
// placeholder.
type BackfillService struct {
	store    *catalog.FileStore
	searcher ImageSearcher
	cache    repository.ImageCacheRepository // nil when Redis is not configured
}

func NewBackfillService(store *catalog.FileStore, searcher ImageSearcher, cache repository.ImageCacheRepository) *BackfillService {
	return &BackfillService{
		store:    store,
		searcher: searcher,
		cache:    cache,
	}
}

// Run walks the catalog from the first product with placeholder images
// and queries the search API for every named product from there on.
// Without a placeholder match the walk covers the whole catalog.
// Any search or save error aborts the run; progress up to that point
// is already persisted.
func (s *BackfillService) Run(ctx context.Context) error {
	cat := s.store.Load()
	if len(cat.Products) == 0 {
		logger.Info().Str("path", s.store.Path()).Msg("Catalog is empty, nothing to backfill")
		return nil
	}

	start, found := cat.PlaceholderIndex(catalog.PlaceholderMarker)
	if !found {
		logger.Info().Int("products", len(cat.Products)).Msg("No placeholder images found, processing from the beginning")
	}

	logger.Info().
		Int("products", len(cat.Products)).
		Int("start_index", start).
		Msg("Starting image backfill run")

	updated := 0
	for i := start; i < len(cat.Products); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		product := &cat.Products[i]
		replaced, err := s.processProduct(ctx, product)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				logger.Error().
					Str("product_id", product.ID).
					Int("updated", updated).
					Msg("Image search API rate limit hit, stopping run")
				return err
			}
			return err
		}
		if replaced {
			updated++
		}

		// Persist after every product, whether its images changed or not
		if err := s.store.Save(cat); err != nil {
			return fmt.Errorf("failed to save catalog after processing %s: %w", product.ID, err)
		}
	}

	logger.Info().Int("updated", updated).Msg("Image backfill run finished")
	return nil
}

// processProduct searches images for one product and swaps them in.
// Nameless products and empty search results leave the product as is.
func (s *BackfillService) processProduct(ctx context.Context, product *catalog.Product) (bool, error) {
	if product.Name == "" {
		metrics.ImagesBackfilled.WithLabelValues("skipped").Inc()
		logger.Warn().Str("product_id", product.ID).Msg("Product has no name, skipping image search")
		return false, nil
	}

	urls, err := s.lookupImages(ctx, product.Name)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			return false, err
		}
		return false, fmt.Errorf("failed to search images for %q: %w", product.Name, err)
	}

	if len(urls) == 0 {
		metrics.ImagesBackfilled.WithLabelValues("no_results").Inc()
		logger.Warn().
			Str("product_id", product.ID).
			Str("query", product.Name).
			Msg("No image results, leaving product as is")
		return false, nil
	}

	product.Image = urls[0]
	if len(urls) > 1 {
		product.AdditionalImages = urls[1:]
	} else {
		product.AdditionalImages = nil
	}

	metrics.ImagesBackfilled.WithLabelValues("updated").Inc()
	logger.Info().
		Str("product_id", product.ID).
		Int("images", len(urls)).
		Msg("Replaced product images")

	return true, nil
}

// lookupImages consults the Redis cache before calling the search API.
// Cache failures are not critical, the search still happens.
func (s *BackfillService) lookupImages(ctx context.Context, query string) ([]string, error) {
	if s.cache != nil {
		urls, err := s.cache.Get(ctx, query)
		if err == nil {
			metrics.RecordCacheHit("backfill-service", "image_search")
			return urls, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			metrics.RecordRedisError("backfill-service", "get")
			logger.Warn().Err(err).Str("query", query).Msg("Image cache lookup failed")
		} else {
			metrics.RecordCacheMiss("backfill-service", "image_search")
		}
	}

	urls, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(urls) > 0 {
		if err := s.cache.Set(ctx, query, urls); err != nil {
			metrics.RecordRedisError("backfill-service", "set")
			logger.Warn().Err(err).Str("query", query).Msg("Failed to cache image search result")
		}
	}

	return urls, nil
}
