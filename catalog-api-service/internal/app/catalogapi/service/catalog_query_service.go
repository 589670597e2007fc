package service

import (
	"context"
	"errors"
	"fmt"

	"maplemarket/catalog-api-service/internal/app/catalogapi/entity"
	"maplemarket/pkg/catalog"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogQueryService отдает данные каталога только на чтение
// Каталог перечитывается с диска на каждый запрос: API всегда видит
// результат последнего прогона генератора или backfill
type CatalogQueryService struct {
	store *catalog.FileStore
}

// NewCatalogQueryService создает новый сервис чтения каталога
func NewCatalogQueryService(store *catalog.FileStore) *CatalogQueryService {
	return &CatalogQueryService{store: store}
}

// GetAllProducts возвращает товары каталога, опционально по категории
// Неизвестная категория - ошибка catalog.ErrInvalidCategory
func (s *CatalogQueryService) GetAllProducts(ctx context.Context, categoryFilter string) ([]catalog.Product, error) {
	cat := s.store.Load()

	if categoryFilter == "" {
		return cat.Products, nil
	}

	category, err := catalog.ParseCategory(categoryFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}

	return cat.ByCategory(category), nil
}

// GetProduct возвращает товар по идентификатору
func (s *CatalogQueryService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	cat := s.store.Load()

	product, ok := cat.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	return product, nil
}

// GetAllCategories возвращает закрытый список категорий с количеством товаров
func (s *CatalogQueryService) GetAllCategories(ctx context.Context) ([]entity.CategoryInfo, error) {
	cat := s.store.Load()

	categories := catalog.AllCategories()
	result := make([]entity.CategoryInfo, 0, len(categories))
	for _, category := range categories {
		result = append(result, entity.CategoryInfo{
			ID:           string(category),
			Name:         category.DisplayName(),
			ProductCount: cat.CountByCategory(category),
		})
	}

	return result, nil
}
