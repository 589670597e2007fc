package handler

import (
	"context"
	"errors"
	"net/http"

	"maplemarket/catalog-api-service/internal/app/catalogapi/entity"
	"maplemarket/catalog-api-service/internal/app/catalogapi/service"
	"maplemarket/pkg/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogQueryServiceInterface interface {
	GetAllProducts(ctx context.Context, categoryFilter string) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	GetAllCategories(ctx context.Context) ([]entity.CategoryInfo, error)
}

// CatalogHandler обрабатывает HTTP запросы к каталогу
type CatalogHandler struct {
	queryService CatalogQueryServiceInterface
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(queryService CatalogQueryServiceInterface) *CatalogHandler {
	return &CatalogHandler{queryService: queryService}
}

// GetAllProducts обрабатывает GET /products?category=
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	categoryFilter := c.Query("category")

	products, err := h.queryService.GetAllProducts(c.Request.Context(), categoryFilter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + categoryFilter})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetProduct обрабатывает GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.queryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetAllCategories обрабатывает GET /categories
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.queryService.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get categories"})
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}
