package data

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

const (
	yahooDefaultBase = "https://query1.finance.yahoo.com"

	quoteCacheTTL = time.Minute
)

// YahooQuoteProvider implements QuoteProvider against the Yahoo
// Finance quote API. It serves the macro instruments (currency index,
// long yield, rate futures) the liquidity advisor scores.
type YahooQuoteProvider struct {
	baseURL string
	client  *http.Client
	cache   Cache
}

// NewYahooQuoteProvider creates a Yahoo-backed quote provider. An
// empty baseURL selects the public API.
func NewYahooQuoteProvider(baseURL string, cache Cache) *YahooQuoteProvider {
	if baseURL == "" {
		baseURL = yahooDefaultBase
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &YahooQuoteProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

// Quote returns the regular-market quote for symbol.
func (p *YahooQuoteProvider) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	reqURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", p.baseURL, url.QueryEscape(symbol))

	var payload struct {
		QuoteResponse struct {
			Result []struct {
				RegularMarketPrice         float64 `json:"regularMarketPrice"`
				RegularMarketChange        float64 `json:"regularMarketChange"`
				RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
			} `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := fetchJSON(ctx, p.client, p.cache, "yahoo", reqURL, nil, quoteCacheTTL, &payload); err != nil {
		return types.Quote{}, err
	}

	results := payload.QuoteResponse.Result
	if len(results) == 0 {
		return types.Quote{}, fmt.Errorf("no quote data for %s", symbol)
	}

	return types.Quote{
		Value:         results[0].RegularMarketPrice,
		Change:        results[0].RegularMarketChange,
		ChangePercent: results[0].RegularMarketChangePercent,
	}, nil
}
