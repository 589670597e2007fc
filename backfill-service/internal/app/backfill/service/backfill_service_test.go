package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"maplemarket/backfill-service/internal/app/backfill/repository"
	"maplemarket/backfill-service/internal/app/backfill/service/mocks"
	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("backfill-test", "error", io.Discard)
	m.Run()
}

func placeholderProduct(id, name string) catalog.Product {
	return catalog.Product{
		ID:               id,
		Name:             name,
		Description:      "Description for " + id,
		Price:            19.99,
		CategoryID:       "electronics",
		Image:            catalog.ImageURL(id),
		AdditionalImages: catalog.AdditionalImageURLs(id),
		Reviews: []catalog.Review{
			{ID: "review-" + id + "-1", Rating: 4, Comment: "Fine"},
		},
	}
}

func backfilledProduct(id, name string) catalog.Product {
	p := placeholderProduct(id, name)
	p.Image = "https://img.example.com/" + id + ".jpg"
	p.AdditionalImages = []string{"https://img.example.com/" + id + "-alt.jpg"}
	return p
}

func newTestStore(t *testing.T, products ...catalog.Product) *catalog.FileStore {
	t.Helper()
	store := catalog.NewFileStore(filepath.Join(t.TempDir(), "products.json"))
	require.NoError(t, store.Save(&catalog.Catalog{Products: products}))
	return store
}

func TestBackfillService_Run_ReplacesPlaceholders(t *testing.T) {
	// Arrange
	store := newTestStore(t, placeholderProduct("electronics-00001", "USB Microphone"))

	urls := []string{
		"https://img.example.com/mic.jpg",
		"https://img.example.com/mic-side.jpg",
		"https://img.example.com/mic-top.jpg",
	}
	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "USB Microphone").Return(urls, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	persisted := store.Load()
	require.Len(t, persisted.Products, 1)
	assert.Equal(t, "https://img.example.com/mic.jpg", persisted.Products[0].Image)
	assert.Equal(t, urls[1:], persisted.Products[0].AdditionalImages)
}

func TestBackfillService_Run_SingleResultClearsAdditionalImages(t *testing.T) {
	// Arrange
	store := newTestStore(t, placeholderProduct("electronics-00001", "USB Microphone"))

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "USB Microphone").
		Return([]string{"https://img.example.com/mic.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	persisted := store.Load()
	assert.Equal(t, "https://img.example.com/mic.jpg", persisted.Products[0].Image)
	assert.Empty(t, persisted.Products[0].AdditionalImages)
}

func TestBackfillService_Run_ResumesAtFirstPlaceholder(t *testing.T) {
	// Arrange - first three products were already backfilled by an
	// earlier, interrupted run
	store := newTestStore(t,
		backfilledProduct("electronics-00001", "Product One"),
		backfilledProduct("electronics-00002", "Product Two"),
		backfilledProduct("electronics-00003", "Product Three"),
		placeholderProduct("electronics-00004", "Product Four"),
		placeholderProduct("electronics-00005", "Product Five"),
	)

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product Four").
		Return([]string{"https://img.example.com/four.jpg"}, nil)
	mockSearcher.On("Search", mock.Anything, "Product Five").
		Return([]string{"https://img.example.com/five.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert - already backfilled products stay untouched
	require.NoError(t, err)
	mockSearcher.AssertNumberOfCalls(t, "Search", 2)
	mockSearcher.AssertNotCalled(t, "Search", mock.Anything, "Product One")

	persisted := store.Load()
	assert.Equal(t, "https://img.example.com/electronics-00001.jpg", persisted.Products[0].Image)
	assert.Equal(t, "https://img.example.com/four.jpg", persisted.Products[3].Image)
	assert.Equal(t, "https://img.example.com/five.jpg", persisted.Products[4].Image)
}

func TestBackfillService_Run_NoPlaceholderStartsAtIndexZero(t *testing.T) {
	// Arrange - no placeholders at all, the walk covers the whole catalog
	store := newTestStore(t, backfilledProduct("electronics-00001", "Product One"))

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product One").
		Return([]string{"https://img.example.com/fresh.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	mockSearcher.AssertNumberOfCalls(t, "Search", 1)
	assert.Equal(t, "https://img.example.com/fresh.jpg", store.Load().Products[0].Image)
}

func TestBackfillService_Run_SearchesEveryNamedProductAfterStart(t *testing.T) {
	// Arrange - a non-placeholder product sits between two placeholders;
	// everything from the start point onward gets a search query
	store := newTestStore(t,
		backfilledProduct("electronics-00001", "Product One"),
		placeholderProduct("electronics-00002", "Product Two"),
		backfilledProduct("electronics-00003", "Product Three"),
	)

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product Two").
		Return([]string{"https://img.example.com/two.jpg"}, nil)
	mockSearcher.On("Search", mock.Anything, "Product Three").
		Return([]string{"https://img.example.com/three-new.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert - products before the start point stay untouched
	require.NoError(t, err)
	mockSearcher.AssertNumberOfCalls(t, "Search", 2)
	mockSearcher.AssertNotCalled(t, "Search", mock.Anything, "Product One")

	persisted := store.Load()
	assert.Equal(t, "https://img.example.com/electronics-00001.jpg", persisted.Products[0].Image)
	assert.Equal(t, "https://img.example.com/two.jpg", persisted.Products[1].Image)
	assert.Equal(t, "https://img.example.com/three-new.jpg", persisted.Products[2].Image)
}

func TestBackfillService_Run_EmptyCatalog(t *testing.T) {
	// Arrange
	store := catalog.NewFileStore(filepath.Join(t.TempDir(), "products.json"))
	mockSearcher := new(mocks.MockImageSearcher)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	mockSearcher.AssertNotCalled(t, "Search")
}

func TestBackfillService_Run_SkipsNamelessProducts(t *testing.T) {
	// Arrange
	store := newTestStore(t,
		placeholderProduct("electronics-00001", ""),
		placeholderProduct("electronics-00002", "Product Two"),
	)

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product Two").
		Return([]string{"https://img.example.com/two.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert - nameless product keeps its placeholders, run continues
	require.NoError(t, err)
	mockSearcher.AssertNumberOfCalls(t, "Search", 1)

	persisted := store.Load()
	assert.Contains(t, persisted.Products[0].Image, catalog.PlaceholderMarker)
	assert.Equal(t, "https://img.example.com/two.jpg", persisted.Products[1].Image)
}

func TestBackfillService_Run_NoResultsLeavesProductUntouched(t *testing.T) {
	// Arrange
	store := newTestStore(t,
		placeholderProduct("electronics-00001", "Obscure Gadget"),
		placeholderProduct("electronics-00002", "Product Two"),
	)

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Obscure Gadget").Return([]string{}, nil)
	mockSearcher.On("Search", mock.Anything, "Product Two").
		Return([]string{"https://img.example.com/two.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	persisted := store.Load()
	assert.Contains(t, persisted.Products[0].Image, catalog.PlaceholderMarker)
	assert.Equal(t, "https://img.example.com/two.jpg", persisted.Products[1].Image)
}

func TestBackfillService_Run_RateLimitStopsRunButKeepsProgress(t *testing.T) {
	// Arrange - the first product succeeds, the second hits the quota
	store := newTestStore(t,
		placeholderProduct("electronics-00001", "Product One"),
		placeholderProduct("electronics-00002", "Product Two"),
	)

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product One").
		Return([]string{"https://img.example.com/one.jpg"}, nil)
	mockSearcher.On("Search", mock.Anything, "Product Two").
		Return(nil, ErrRateLimited)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert - the run fails but the first replacement is already saved
	assert.ErrorIs(t, err, ErrRateLimited)

	persisted := store.Load()
	assert.Equal(t, "https://img.example.com/one.jpg", persisted.Products[0].Image)
	assert.Contains(t, persisted.Products[1].Image, catalog.PlaceholderMarker)

	// A rerun picks up exactly where the failed one stopped
	start, found := persisted.PlaceholderIndex(catalog.PlaceholderMarker)
	require.True(t, found)
	assert.Equal(t, 1, start)
}

func TestBackfillService_Run_SearchErrorIsFatal(t *testing.T) {
	// Arrange
	store := newTestStore(t, placeholderProduct("electronics-00001", "Product One"))

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product One").
		Return(nil, fmt.Errorf("connection reset"))

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to search images")
}

func TestBackfillService_Run_CacheHitSkipsSearch(t *testing.T) {
	// Arrange
	store := newTestStore(t, placeholderProduct("electronics-00001", "Product One"))

	mockSearcher := new(mocks.MockImageSearcher)
	mockCache := new(mocks.MockImageCacheRepository)
	mockCache.On("Get", mock.Anything, "Product One").
		Return([]string{"https://img.example.com/cached.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, mockCache)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	mockSearcher.AssertNotCalled(t, "Search")
	assert.Equal(t, "https://img.example.com/cached.jpg", store.Load().Products[0].Image)
}

func TestBackfillService_Run_CacheMissSearchesAndStores(t *testing.T) {
	// Arrange
	store := newTestStore(t, placeholderProduct("electronics-00001", "Product One"))

	urls := []string{"https://img.example.com/one.jpg"}
	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product One").Return(urls, nil)

	mockCache := new(mocks.MockImageCacheRepository)
	mockCache.On("Get", mock.Anything, "Product One").Return(nil, repository.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, "Product One", urls).Return(nil)

	svc := NewBackfillService(store, mockSearcher, mockCache)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	mockSearcher.AssertNumberOfCalls(t, "Search", 1)
	mockCache.AssertCalled(t, "Set", mock.Anything, "Product One", urls)
}

func TestBackfillService_Run_SavesAfterEveryProduct(t *testing.T) {
	// Arrange - delete the catalog file mid-run; the per-product save must
	// recreate it even though the no-result product itself did not change
	store := newTestStore(t,
		placeholderProduct("electronics-00001", "Obscure Gadget"),
		placeholderProduct("electronics-00002", "Product Two"),
	)

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Obscure Gadget").
		Run(func(args mock.Arguments) {
			require.NoError(t, os.Remove(store.Path()))
		}).
		Return([]string{}, nil)
	mockSearcher.On("Search", mock.Anything, "Product Two").
		Return([]string{"https://img.example.com/two.jpg"}, nil)

	svc := NewBackfillService(store, mockSearcher, nil)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	_, statErr := os.Stat(store.Path())
	assert.NoError(t, statErr, "catalog must be rewritten after every processed product")
	require.Len(t, store.Load().Products, 2)
}

func TestBackfillService_Run_CacheFailuresAreNotCritical(t *testing.T) {
	// Arrange - both cache operations fail, the run still succeeds
	store := newTestStore(t, placeholderProduct("electronics-00001", "Product One"))

	mockSearcher := new(mocks.MockImageSearcher)
	mockSearcher.On("Search", mock.Anything, "Product One").
		Return([]string{"https://img.example.com/one.jpg"}, nil)

	mockCache := new(mocks.MockImageCacheRepository)
	mockCache.On("Get", mock.Anything, "Product One").Return(nil, fmt.Errorf("redis down"))
	mockCache.On("Set", mock.Anything, "Product One", mock.Anything).Return(fmt.Errorf("redis down"))

	svc := NewBackfillService(store, mockSearcher, mockCache)

	// Act
	err := svc.Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/one.jpg", store.Load().Products[0].Image)
}
