package mocks

import (
	"context"

	"maplemarket/pkg/catalog"

	"github.com/stretchr/testify/mock"
)

// MockBatchWorker мок для BatchWorker
type MockBatchWorker struct {
	mock.Mock
}

func (m *MockBatchWorker) Run(ctx context.Context, category catalog.Category, targetCount int, snapshot *catalog.Catalog) []catalog.Product {
	args := m.Called(ctx, category, targetCount, snapshot)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog.Product)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
