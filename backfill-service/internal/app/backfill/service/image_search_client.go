package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"maplemarket/backfill-service/internal/app/backfill/entity"
	"maplemarket/pkg/metrics"
)

// ErrRateLimited is returned when the search API rejects a request
// with HTTP 429. The run cannot continue once the quota is exhausted.
var ErrRateLimited = errors.New("image search API rate limit exceeded")

// SerpAPIClient implements ImageSearcher against the SerpAPI
// google_images engine.
type SerpAPIClient struct {
	apiURL      string
	apiKey      string
	resultCount int
	httpClient  *http.Client
}

func NewSerpAPIClient(apiURL, apiKey string, resultCount int, timeoutSec int) *SerpAPIClient {
	return &SerpAPIClient{
		apiURL:      apiURL,
		apiKey:      apiKey,
		resultCount: resultCount,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

func (c *SerpAPIClient) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("engine", "google_images")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.ImageSearchErrors.WithLabelValues("rate_limited").Inc()
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ImageSearchErrors.WithLabelValues("http_error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var searchResponse entity.ImageSearchResponse
	if err := json.Unmarshal(body, &searchResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	urls := make([]string, 0, c.resultCount)
	for _, result := range searchResponse.ImagesResults {
		if result.Original == "" {
			continue
		}
		urls = append(urls, result.Original)
		if len(urls) == c.resultCount {
			break
		}
	}

	return urls, nil
}
