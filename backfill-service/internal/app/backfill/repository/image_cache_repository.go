package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maplemarket/backfill-service/internal/app/backfill/entity"

	"github.com/redis/go-redis/v9"
)

// imageCacheRepository implements ImageCacheRepository on top of Redis
type imageCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewImageCacheRepository creates a new image search result cache
func NewImageCacheRepository(client *redis.Client, ttl time.Duration) ImageCacheRepository {
	return &imageCacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *imageCacheRepository) Get(ctx context.Context, query string) ([]string, error) {
	key := entity.GetCacheKeyForQuery(query)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get image urls from redis: %w", err)
	}

	var urls []string
	if err := json.Unmarshal([]byte(data), &urls); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached image urls: %w", err)
	}

	return urls, nil
}

func (r *imageCacheRepository) Set(ctx context.Context, query string, urls []string) error {
	key := entity.GetCacheKeyForQuery(query)

	data, err := json.Marshal(urls)
	if err != nil {
		return fmt.Errorf("failed to marshal image urls: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set image urls in redis: %w", err)
	}

	return nil
}
