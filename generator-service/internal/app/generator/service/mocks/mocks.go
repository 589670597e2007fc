package mocks

import (
	"context"

	"maplemarket/pkg/catalog"

	"github.com/stretchr/testify/mock"
)

// MockCompletionClient мок для CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockProductSynthesizer мок для ProductSynthesizer
type MockProductSynthesizer struct {
	mock.Mock
}

func (m *MockProductSynthesizer) Synthesize(ctx context.Context, category catalog.Category, existing []catalog.Product, existingIDs map[string]struct{}) (*catalog.Product, error) {
	args := m.Called(ctx, category, existing, existingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}
