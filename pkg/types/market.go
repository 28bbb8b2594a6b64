package types

import "time"

// SpotPrice is the current BTC/USD quote.
type SpotPrice struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
}

// FearGreedPoint is one Fear & Greed Index sample.
type FearGreedPoint struct {
	Value     int       `json:"value"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
}

// Quote is a point-in-time quote for a macro instrument.
type Quote struct {
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// SearchTrend classifies retail search interest over the lookback
// window.
type SearchTrend string

const (
	SearchTrendSpiking SearchTrend = "spiking"
	SearchTrendCooling SearchTrend = "cooling"
	SearchTrendFlat    SearchTrend = "flat"
)

// SearchPoint is one sample of a search-interest timeline.
type SearchPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SearchInterest summarizes retail search interest for a keyword.
type SearchInterest struct {
	Keyword       string        `json:"keyword"`
	RecentAverage float64       `json:"recent_average"`
	PriorAverage  float64       `json:"prior_average"`
	Trend         SearchTrend   `json:"trend"`
	Timeline      []SearchPoint `json:"timeline"`
}
