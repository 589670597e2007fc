package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockImageSearcher mocks ImageSearcher
type MockImageSearcher struct {
	mock.Mock
}

func (m *MockImageSearcher) Search(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockImageCacheRepository mocks repository.ImageCacheRepository
type MockImageCacheRepository struct {
	mock.Mock
}

func (m *MockImageCacheRepository) Get(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImageCacheRepository) Set(ctx context.Context, query string, urls []string) error {
	args := m.Called(ctx, query, urls)
	return args.Error(0)
}
