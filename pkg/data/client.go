package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
)

const defaultUserAgent = "btc-dca-advisor/1.0"

// fetchJSON performs a cached GET and decodes the JSON response body
// into out. Responses are cached by URL for ttl; a cache hit skips the
// network entirely.
func fetchJSON(ctx context.Context, client *http.Client, cache Cache, provider, url string, headers map[string]string, ttl time.Duration, out any) error {
	if body, ok := cache.Get(url); ok {
		monitoring.RecordCacheHit(provider)
		return json.Unmarshal(body, out)
	}
	monitoring.RecordCacheMiss(provider)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		monitoring.RecordProviderRequest(provider, "error")
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		monitoring.RecordProviderRequest(provider, "error")
		return fmt.Errorf("%s returned %s", provider, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.RecordProviderRequest(provider, "error")
		return fmt.Errorf("read response: %w", err)
	}
	monitoring.RecordProviderRequest(provider, "ok")

	cache.Set(url, body, ttl)
	return json.Unmarshal(body, out)
}
