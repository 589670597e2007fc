package entity

// ImageSearchResponse is the subset of the SerpAPI google_images
// response the backfill cares about.
type ImageSearchResponse struct {
	ImagesResults []ImageResult `json:"images_results"`
}

type ImageResult struct {
	Original string `json:"original"`
}

// GetCacheKeyForQuery builds the Redis key for a search query.
func GetCacheKeyForQuery(query string) string {
	return "image_search:" + query
}
