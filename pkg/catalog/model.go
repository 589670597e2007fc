package catalog

import "strings"

// Catalog - полный каталог товаров, хранится как один JSON документ
// с единственным ключом "products"
type Catalog struct {
	Products []Product `json:"products"`
}

// Product представляет товар каталога
// Имена JSON полей совпадают со схемой данных витрины, менять их нельзя
type Product struct {
	ID               string            `json:"id"`
	Name             string            `json:"name" validate:"required"`
	Description      string            `json:"description" validate:"required"`
	Price            float64           `json:"price" validate:"required,gt=0"`
	OriginalPrice    float64           `json:"originalPrice"`
	Image            string            `json:"image"`
	AdditionalImages []string          `json:"additionalImages"`
	CategoryID       string            `json:"categoryId"`
	SubCategoryID    string            `json:"subCategoryId"`
	Category         string            `json:"category"`
	SubCategory      string            `json:"subCategory"`
	Stock            int               `json:"stock"`
	InStock          bool              `json:"inStock"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"reviewCount"`
	Reviews          []Review          `json:"reviews" validate:"required,min=1,dive"`
	Brand            string            `json:"brand"`
	Model            string            `json:"model"`
	Features         []string          `json:"features"`
	Tags             []string          `json:"tags"`
	Specifications   map[string]string `json:"specifications"`
	Condition        string            `json:"condition"`
	IsEcoFriendly    bool              `json:"isEcoFriendly"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
	DeliveryInfo     DeliveryInfo      `json:"deliveryInfo"`
	ReturnPolicy     ReturnPolicy      `json:"returnPolicy"`
	Warranty         string            `json:"warranty"`
}

// Review - отзыв о товаре, живет только внутри Product
type Review struct {
	ID               string  `json:"id"`
	UserID           string  `json:"userId"`
	UserName         string  `json:"userName"`
	Rating           float64 `json:"rating" validate:"gte=1,lte=5"`
	Title            string  `json:"title"`
	Comment          string  `json:"comment" validate:"required"`
	Date             string  `json:"date"`
	Helpful          int     `json:"helpful"`
	NotHelpful       int     `json:"notHelpful"`
	VerifiedPurchase bool    `json:"verifiedPurchase"`
}

// DeliveryInfo - условия доставки товара
type DeliveryInfo struct {
	IsFreeDelivery     bool     `json:"isFreeDelivery"`
	EstimatedDays      int      `json:"estimatedDays"`
	AvailableLocations []string `json:"availableLocations"`
	ExpeditedAvailable bool     `json:"expeditedAvailable"`
	ExpeditedCost      float64  `json:"expeditedCost"`
}

// ReturnPolicy - условия возврата
// Поле isFreeTurn названо так в схеме витрины (исторически), сохраняем как есть
type ReturnPolicy struct {
	DaysToReturn       int     `json:"daysToReturn"`
	IsFreeTurn         bool    `json:"isFreeTurn"`
	ReturnShippingCost float64 `json:"returnShippingCost"`
}

// CountByCategory возвращает количество товаров в категории
func (c *Catalog) CountByCategory(category Category) int {
	count := 0
	for i := range c.Products {
		if c.Products[i].CategoryID == string(category) {
			count++
		}
	}
	return count
}

// ByCategory возвращает товары указанной категории в порядке каталога
func (c *Catalog) ByCategory(category Category) []Product {
	var products []Product
	for i := range c.Products {
		if c.Products[i].CategoryID == string(category) {
			products = append(products, c.Products[i])
		}
	}
	return products
}

// IDs возвращает множество всех идентификаторов товаров каталога
func (c *Catalog) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.Products))
	for i := range c.Products {
		ids[c.Products[i].ID] = struct{}{}
	}
	return ids
}

// FindByID ищет товар по идентификатору
func (c *Catalog) FindByID(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// HasPlaceholderImages сообщает, остались ли у товара картинки-заглушки
func (p *Product) HasPlaceholderImages(marker string) bool {
	if strings.Contains(p.Image, marker) {
		return true
	}
	for _, img := range p.AdditionalImages {
		if strings.Contains(img, marker) {
			return true
		}
	}
	return false
}

// PlaceholderIndex возвращает индекс первого товара с картинкой-заглушкой
// Используется backfill пайплайном для возобновления прерванного прогона
func (c *Catalog) PlaceholderIndex(marker string) (int, bool) {
	for i := range c.Products {
		if c.Products[i].HasPlaceholderImages(marker) {
			return i, true
		}
	}
	return 0, false
}
