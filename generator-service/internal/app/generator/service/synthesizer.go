package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"maplemarket/pkg/catalog"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// ErrGenerationExhausted - все попытки генерации дали невалидный ответ
// Для вызывающего это per-item skip, не падение прогона
var ErrGenerationExhausted = errors.New("failed to generate valid product after maximum attempts")

const systemPrompt = "You are a product data generation expert. You must respond ONLY with a valid JSON object, no additional text or explanations."

// Synthesizer генерирует один новый товар через внешний генерационный API
// Не трогает общий каталог: все мутации выполняет координатор
type Synthesizer struct {
	client      CompletionClient
	validate    *validator.Validate
	maxAttempts int
}

// NewSynthesizer создает новый синтезатор товаров
func NewSynthesizer(client CompletionClient, maxAttempts int) *Synthesizer {
	return &Synthesizer{
		client:      client,
		validate:    validator.New(),
		maxAttempts: maxAttempts,
	}
}

// Synthesize производит один финализированный товар категории
// Цикл попыток: запрос -> парсинг -> (валидный | ретрай | исчерпано)
// Невалидный JSON и объект без обязательных полей равнозначны - обе ошибки ретраятся
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	category catalog.Category,
	existing []catalog.Product,
	existingIDs map[string]struct{},
) (*catalog.Product, error) {
	start := time.Now()
	userPrompt := buildPrompt(category, existing)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		raw, err := s.client.Complete(ctx, systemPrompt, userPrompt)
		if err != nil {
			// Ошибка самого вызова не ретраится здесь: для воркера это per-item skip
			metrics.GenerationAttempts.WithLabelValues(string(category), "request_error").Inc()
			return nil, fmt.Errorf("failed to call generation API: %w", err)
		}

		product, err := s.parseProduct(raw)
		if err != nil {
			metrics.GenerationAttempts.WithLabelValues(string(category), "malformed").Inc()
			logger.Warn().
				Err(err).
				Str("category", string(category)).
				Int("attempt", attempt).
				Msg("Generator returned malformed product, retrying")
			continue
		}

		s.finalize(product, category, existingIDs)

		metrics.GenerationAttempts.WithLabelValues(string(category), "ok").Inc()
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())

		return product, nil
	}

	metrics.GenerationExhausted.WithLabelValues(string(category)).Inc()
	return nil, ErrGenerationExhausted
}

// parseProduct снимает Markdown code fence, парсит JSON и проверяет обязательные поля
func (s *Synthesizer) parseProduct(raw string) (*catalog.Product, error) {
	content := stripCodeFence(raw)

	var product catalog.Product
	if err := json.Unmarshal([]byte(content), &product); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	if err := s.validate.Struct(&product); err != nil {
		return nil, fmt.Errorf("missing required fields: %w", err)
	}

	return &product, nil
}

// finalize перештамповывает производные поля сгенерированного товара:
// идентификатор из аллокатора, детерминированные URL картинок,
// идентификаторы отзывов review-{productId}-{n} (нумерация с единицы)
func (s *Synthesizer) finalize(product *catalog.Product, category catalog.Category, existingIDs map[string]struct{}) {
	id := catalog.GenerateProductID(category, existingIDs)

	product.ID = id
	product.CategoryID = string(category)
	product.Category = category.DisplayName()
	product.Image = catalog.ImageURL(id)
	product.AdditionalImages = catalog.AdditionalImageURLs(id)

	for i := range product.Reviews {
		product.Reviews[i].ID = catalog.ReviewID(id, i+1)
	}
}

// stripCodeFence убирает опциональную обертку ```json ... ```
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = content[len("```json"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[len("```"):]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// buildPrompt собирает user-промпт: категория, дайджест существующих товаров
// категории и буквальная схема полей ожидаемого JSON объекта
func buildPrompt(category catalog.Category, existing []catalog.Product) string {
	var digest strings.Builder
	for _, p := range existing {
		fmt.Fprintf(&digest, "- %s: %s... (Tags: %s, Features: %s)\n",
			p.Name,
			truncate(p.Description, 100),
			strings.Join(p.Tags, ", "),
			strings.Join(p.Features, ", "),
		)
	}

	summary := digest.String()
	if summary == "" {
		summary = "No existing products in this category."
	}

	return fmt.Sprintf(`You are a product data generation expert. Generate a single product listing in the category: %[1]s.
IMPORTANT: Generate a completely unique product that is different from these existing products in this category:

Existing %[1]s products:
%[2]s

The product should be in valid JSON format with the following structure:
{
    "id": "%[1]s-#####",
    "name": "Product Name",
    "description": "Detailed product description",
    "price": 99.99,
    "originalPrice": 129.99,
    "image": "https://picsum.photos/seed/[id]/400/400",
    "additionalImages": [
        "https://picsum.photos/seed/[id]-1/400/400",
        "https://picsum.photos/seed/[id]-2/400/400",
        "https://picsum.photos/seed/[id]-3/400/400"
    ],
    "categoryId": "%[1]s",
    "subCategoryId": "relevant-subcategory",
    "category": "Category Display Name",
    "subCategory": "Subcategory Display Name",
    "stock": 100,
    "inStock": true,
    "rating": 4.5,
    "reviewCount": 3,
    "reviews": [
        {
            "id": "review-[product-id]-1",
            "userId": "user-1",
            "userName": "John Doe",
            "rating": 5,
            "title": "Great product",
            "comment": "Detailed review comment",
            "date": "2024-01-01T00:00:00Z",
            "helpful": 10,
            "notHelpful": 2,
            "verifiedPurchase": true
        }
    ],
    "brand": "Brand Name",
    "model": "Model Number",
    "features": ["Feature 1", "Feature 2", "Feature 3"],
    "tags": ["tag1", "tag2", "tag3"],
    "specifications": {
        "Brand": "Brand Name",
        "Model": "Model Number",
        "Color": "Color",
        "Material": "Material"
    },
    "condition": "new",
    "isEcoFriendly": true,
    "createdAt": "2024-01-01T00:00:00Z",
    "updatedAt": "2024-01-01T00:00:00Z",
    "deliveryInfo": {
        "isFreeDelivery": true,
        "estimatedDays": 3,
        "availableLocations": ["United States", "Canada"],
        "expeditedAvailable": true,
        "expeditedCost": 15.99
    },
    "returnPolicy": {
        "daysToReturn": 30,
        "isFreeTurn": true,
        "returnShippingCost": 0
    },
    "warranty": "1 Year Limited Warranty"
}

Generate a complete, realistic product that is DIFFERENT from the existing products shown above. Include at least 3 detailed reviews. Ensure all dates are within the last 6 months.`, category, summary)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
