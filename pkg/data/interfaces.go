package data

import (
	"context"
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Package data defines the provider contracts the engine consumes and
// their live implementations. Engine packages depend only on these
// interfaces; tests substitute deterministic fakes.

// PriceProvider serves historical and current BTC/USD prices.
type PriceProvider interface {
	// DailyPrices returns one sample per calendar day in [from, to],
	// ascending.
	DailyPrices(ctx context.Context, from, to time.Time) ([]types.PricePoint, error)

	// CurrentPrice returns the current spot price with 24h change.
	CurrentPrice(ctx context.Context) (types.SpotPrice, error)

	// Name identifies the provider for logging and metrics.
	Name() string
}

// SentimentProvider serves Fear & Greed Index samples.
type SentimentProvider interface {
	// Current returns the latest FGI sample.
	Current(ctx context.Context) (types.FearGreedPoint, error)

	// History returns up to n samples, most recent first.
	History(ctx context.Context, n int) ([]types.FearGreedPoint, error)

	// Map returns a date-key -> value index covering the last days
	// samples, for fast lookup during backtesting.
	Map(ctx context.Context, days int) (map[string]int, error)
}

// QuoteProvider serves point-in-time quotes for macro instruments.
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (types.Quote, error)
}

// TrendsProvider serves retail search-interest summaries.
type TrendsProvider interface {
	SearchInterest(ctx context.Context, keyword string, windowDays int) (types.SearchInterest, error)
}

// Cache is a bounded-lifetime read-through cache for raw provider
// responses, keyed by request URL. Implementations evict lazily on
// read rather than with a background sweep.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Clear()
	Size() int
}
