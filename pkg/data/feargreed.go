package data

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

const (
	fearGreedDefaultBase = "https://api.alternative.me/fng"

	fearGreedCacheTTL = 5 * time.Minute
)

// FearGreedProvider implements SentimentProvider against the
// alternative.me Fear & Greed Index API.
type FearGreedProvider struct {
	baseURL string
	client  *http.Client
	cache   Cache
}

// NewFearGreedProvider creates an alternative.me-backed sentiment
// provider. An empty baseURL selects the public API.
func NewFearGreedProvider(baseURL string, cache Cache) *FearGreedProvider {
	if baseURL == "" {
		baseURL = fearGreedDefaultBase
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &FearGreedProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

type fngPayload struct {
	Data []struct {
		Value               string `json:"value"`
		ValueClassification string `json:"value_classification"`
		Timestamp           string `json:"timestamp"`
	} `json:"data"`
}

func (p *FearGreedProvider) fetch(ctx context.Context, limit int) ([]types.FearGreedPoint, error) {
	url := fmt.Sprintf("%s/?limit=%d&format=json", p.baseURL, limit)

	var payload fngPayload
	if err := fetchJSON(ctx, p.client, p.cache, "feargreed", url, nil, fearGreedCacheTTL, &payload); err != nil {
		return nil, err
	}

	points := make([]types.FearGreedPoint, 0, len(payload.Data))
	for _, d := range payload.Data {
		value, err := strconv.Atoi(d.Value)
		if err != nil {
			continue
		}
		unix, err := strconv.ParseInt(d.Timestamp, 10, 64)
		if err != nil {
			continue
		}
		ts := time.Unix(unix, 0).UTC()
		points = append(points, types.FearGreedPoint{
			Value:     value,
			Label:     d.ValueClassification,
			Timestamp: ts,
			Date:      ts.Format(types.DateKeyFormat),
		})
	}
	return points, nil
}

// Current returns the latest FGI sample.
func (p *FearGreedProvider) Current(ctx context.Context) (types.FearGreedPoint, error) {
	points, err := p.fetch(ctx, 1)
	if err != nil {
		return types.FearGreedPoint{}, err
	}
	if len(points) == 0 {
		return types.FearGreedPoint{}, fmt.Errorf("fear & greed API returned no data")
	}
	return points[0], nil
}

// History returns up to n samples, most recent first.
func (p *FearGreedProvider) History(ctx context.Context, n int) ([]types.FearGreedPoint, error) {
	return p.fetch(ctx, n)
}

// Map returns a date-key index over the last days samples.
func (p *FearGreedProvider) Map(ctx context.Context, days int) (map[string]int, error) {
	points, err := p.fetch(ctx, days)
	if err != nil {
		return nil, err
	}

	m := make(map[string]int, len(points))
	for _, pt := range points {
		m[pt.Date] = pt.Value
	}
	return m, nil
}
