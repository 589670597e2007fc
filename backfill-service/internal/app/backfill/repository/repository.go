package repository

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned when a query has no cached result.
var ErrCacheMiss = errors.New("image search result not cached")

// ImageCacheRepository caches image search results in Redis
type ImageCacheRepository interface {
	// Get returns the cached image URLs for a query
	Get(ctx context.Context, query string) ([]string, error)

	// Set stores the image URLs for a query with TTL
	Set(ctx context.Context, query string, urls []string) error
}
