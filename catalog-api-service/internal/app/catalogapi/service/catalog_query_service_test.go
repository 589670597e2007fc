package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("catalogapi-test", "error", io.Discard)
	m.Run()
}

func testProduct(id string, category catalog.Category) catalog.Product {
	return catalog.Product{
		ID:          id,
		Name:        "Product " + id,
		Description: "Description for " + id,
		Price:       29.99,
		CategoryID:  string(category),
		Category:    category.DisplayName(),
		Reviews: []catalog.Review{
			{ID: "review-" + id + "-1", Rating: 5, Comment: "Great"},
		},
	}
}

func newTestService(t *testing.T, products ...catalog.Product) *CatalogQueryService {
	t.Helper()
	store := catalog.NewFileStore(filepath.Join(t.TempDir(), "products.json"))
	if len(products) > 0 {
		require.NoError(t, store.Save(&catalog.Catalog{Products: products}))
	}
	return NewCatalogQueryService(store)
}

func TestCatalogQueryService_GetAllProducts(t *testing.T) {
	// Arrange
	svc := newTestService(t,
		testProduct("electronics-00001", catalog.CategoryElectronics),
		testProduct("video-games-00001", catalog.CategoryVideoGames),
	)

	// Act
	products, err := svc.GetAllProducts(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogQueryService_GetAllProducts_CategoryFilter(t *testing.T) {
	// Arrange
	svc := newTestService(t,
		testProduct("electronics-00001", catalog.CategoryElectronics),
		testProduct("electronics-00002", catalog.CategoryElectronics),
		testProduct("video-games-00001", catalog.CategoryVideoGames),
	)

	// Act
	products, err := svc.GetAllProducts(context.Background(), "electronics")

	// Assert
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "electronics-00001", products[0].ID)
	assert.Equal(t, "electronics-00002", products[1].ID)
}

func TestCatalogQueryService_GetAllProducts_UnknownCategory(t *testing.T) {
	// Arrange
	svc := newTestService(t, testProduct("electronics-00001", catalog.CategoryElectronics))

	// Act
	products, err := svc.GetAllProducts(context.Background(), "furniture")

	// Assert
	assert.Nil(t, products)
	assert.ErrorIs(t, err, catalog.ErrInvalidCategory)
}

func TestCatalogQueryService_GetProduct(t *testing.T) {
	// Arrange
	svc := newTestService(t, testProduct("electronics-00001", catalog.CategoryElectronics))

	// Act
	product, err := svc.GetProduct(context.Background(), "electronics-00001")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Product electronics-00001", product.Name)
}

func TestCatalogQueryService_GetProduct_NotFound(t *testing.T) {
	// Arrange
	svc := newTestService(t, testProduct("electronics-00001", catalog.CategoryElectronics))

	// Act
	product, err := svc.GetProduct(context.Background(), "electronics-99999")

	// Assert
	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogQueryService_GetAllCategories(t *testing.T) {
	// Arrange
	svc := newTestService(t,
		testProduct("electronics-00001", catalog.CategoryElectronics),
		testProduct("electronics-00002", catalog.CategoryElectronics),
	)

	// Act
	categories, err := svc.GetAllCategories(context.Background())

	// Assert - закрытый список всегда полный, даже для пустых категорий
	require.NoError(t, err)
	require.Len(t, categories, 12)

	counts := make(map[string]int, len(categories))
	for _, info := range categories {
		counts[info.ID] = info.ProductCount
	}
	assert.Equal(t, 2, counts["electronics"])
	assert.Equal(t, 0, counts["video-games"])
}

func TestCatalogQueryService_SeesCatalogChangesWithoutRestart(t *testing.T) {
	// Arrange - файл перечитывается на каждый запрос
	store := catalog.NewFileStore(filepath.Join(t.TempDir(), "products.json"))
	require.NoError(t, store.Save(&catalog.Catalog{Products: []catalog.Product{
		testProduct("electronics-00001", catalog.CategoryElectronics),
	}}))
	svc := NewCatalogQueryService(store)

	before, err := svc.GetAllProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, before, 1)

	// Act - генератор дописал товар в файл
	require.NoError(t, store.Save(&catalog.Catalog{Products: []catalog.Product{
		testProduct("electronics-00001", catalog.CategoryElectronics),
		testProduct("electronics-00002", catalog.CategoryElectronics),
	}}))

	after, err := svc.GetAllProducts(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Len(t, after, 2)
}
