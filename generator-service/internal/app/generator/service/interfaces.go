package service

import (
	"context"

	"maplemarket/pkg/catalog"
)

// CompletionClient - клиент внешнего генерационного API
// Возвращает сырой текст ответа модели, возможно обернутый в Markdown code fence
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProductSynthesizer производит один новый товар для категории
// existing - уже существующие товары категории (для антидубликатного дайджеста),
// existingIDs - все занятые идентификаторы каталога
type ProductSynthesizer interface {
	Synthesize(ctx context.Context, category catalog.Category, existing []catalog.Product, existingIDs map[string]struct{}) (*catalog.Product, error)
}
