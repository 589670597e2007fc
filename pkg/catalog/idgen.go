package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

const PlaceholderMarker = "picsum"

// GenerateProductID выдает свободный идентификатор вида {category}-#####
// Пять цифр берутся из UUID, при коллизии с existing тянем новый номер
// Верхней границы попыток нет: пространство идентификаторов на порядки больше
// реального размера каталога
func GenerateProductID(category Category, existing map[string]struct{}) string {
	for {
		u := uuid.New()
		n := binary.BigEndian.Uint32(u[:4]) % 100000
		id := fmt.Sprintf("%s-%05d", category, n)
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}

// ImageURL возвращает URL картинки-заглушки для товара
// Seed - идентификатор товара, чтобы заглушка была детерминированной
func ImageURL(productID string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/400", productID)
}

// AdditionalImageURLs возвращает три дополнительных URL заглушек
func AdditionalImageURLs(productID string) []string {
	urls := make([]string, 0, 3)
	for i := 1; i <= 3; i++ {
		urls = append(urls, fmt.Sprintf("https://picsum.photos/seed/%s-%d/400/400", productID, i))
	}
	return urls
}

// ReviewID возвращает идентификатор отзыва вида review-{productID}-{n}
// Нумерация отзывов с единицы
func ReviewID(productID string, n int) string {
	return fmt.Sprintf("review-%s-%d", productID, n)
}
