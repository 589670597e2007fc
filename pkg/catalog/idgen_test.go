package catalog

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productIDPattern = regexp.MustCompile(`^[a-z-]+-\d{5}$`)

func TestGenerateProductID_Format(t *testing.T) {
	for _, category := range AllCategories() {
		id := GenerateProductID(category, nil)
		assert.Regexp(t, productIDPattern, id)
		assert.Regexp(t, `^`+regexp.QuoteMeta(string(category))+`-\d{5}$`, id)
	}
}

func TestGenerateProductID_NoDuplicates(t *testing.T) {
	// Выдаем много идентификаторов подряд, каждый попадает в existing
	existing := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		id := GenerateProductID(CategoryElectronics, existing)
		_, taken := existing[id]
		require.False(t, taken, "allocator returned duplicate id %s", id)
		existing[id] = struct{}{}
	}
}

func TestGenerateProductID_RedrawsOnCollision(t *testing.T) {
	// Arrange - занимаем всё пространство номеров кроме одного
	existing := make(map[string]struct{}, 100000)
	free := "electronics-04242"
	for n := 0; n < 100000; n++ {
		id := fmt.Sprintf("%s-%05d", CategoryElectronics, n)
		if id != free {
			existing[id] = struct{}{}
		}
	}

	// Act
	id := GenerateProductID(CategoryElectronics, existing)

	// Assert - аллокатор перетягивает номер до первого свободного
	assert.Equal(t, free, id)
}

func TestImageURL_Scheme(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/electronics-00001/400/400", ImageURL("electronics-00001"))

	urls := AdditionalImageURLs("electronics-00001")
	require.Len(t, urls, 3)
	assert.Equal(t, "https://picsum.photos/seed/electronics-00001-1/400/400", urls[0])
	assert.Equal(t, "https://picsum.photos/seed/electronics-00001-3/400/400", urls[2])
}

func TestReviewID_Format(t *testing.T) {
	assert.Equal(t, "review-electronics-00001-1", ReviewID("electronics-00001", 1))
	assert.Equal(t, "review-electronics-00001-3", ReviewID("electronics-00001", 3))
}
