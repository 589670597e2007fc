package service

import "context"

// ImageSearcher looks up real product image URLs for a query
type ImageSearcher interface {
	// Search returns up to the configured number of image URLs.
	// An empty slice with a nil error means the query had no results.
	Search(ctx context.Context, query string) ([]string, error)
}
