package catalog

import (
	"errors"
	"fmt"
)

var ErrInvalidCategory = errors.New("invalid category")

// Category - категория верхнего уровня из закрытого списка витрины
// Расширяется только изменением кода
type Category string

const (
	CategoryBeautyPersonalCare   Category = "beauty-personal-care"
	CategorySportsOutdoors       Category = "sports-outdoors"
	CategoryClothingShoesJewelry Category = "clothing-shoes-jewelry"
	CategoryHomeKitchen          Category = "home-kitchen"
	CategoryOfficeProducts       Category = "office-products"
	CategoryToolsHomeImprovement Category = "tools-home-improvement"
	CategoryHealthHousehold      Category = "health-household"
	CategoryPatioLawnGarden      Category = "patio-lawn-garden"
	CategoryElectronics          Category = "electronics"
	CategoryCellPhones           Category = "cell-phones-accessories"
	CategoryVideoGames           Category = "video-games"
	CategoryGrocery              Category = "grocery-gourmet-food"
)

var categoryDisplayNames = map[Category]string{
	CategoryBeautyPersonalCare:   "Beauty & Personal Care",
	CategorySportsOutdoors:       "Sports & Outdoors",
	CategoryClothingShoesJewelry: "Clothing, Shoes & Jewelry",
	CategoryHomeKitchen:          "Home & Kitchen",
	CategoryOfficeProducts:       "Office Products",
	CategoryToolsHomeImprovement: "Tools & Home Improvement",
	CategoryHealthHousehold:      "Health & Household",
	CategoryPatioLawnGarden:      "Patio, Lawn & Garden",
	CategoryElectronics:          "Electronics",
	CategoryCellPhones:           "Cell Phones & Accessories",
	CategoryVideoGames:           "Video Games",
	CategoryGrocery:              "Grocery & Gourmet Food",
}

// AllCategories возвращает все категории в стабильном порядке
func AllCategories() []Category {
	return []Category{
		CategoryBeautyPersonalCare,
		CategorySportsOutdoors,
		CategoryClothingShoesJewelry,
		CategoryHomeKitchen,
		CategoryOfficeProducts,
		CategoryToolsHomeImprovement,
		CategoryHealthHousehold,
		CategoryPatioLawnGarden,
		CategoryElectronics,
		CategoryCellPhones,
		CategoryVideoGames,
		CategoryGrocery,
	}
}

// Valid проверяет принадлежность категории закрытому списку
func (c Category) Valid() bool {
	_, ok := categoryDisplayNames[c]
	return ok
}

// DisplayName возвращает человекочитаемое имя категории
func (c Category) DisplayName() string {
	return categoryDisplayNames[c]
}

// ParseCategory парсит строку в Category
// Неизвестное значение - ошибка ErrInvalidCategory
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}
