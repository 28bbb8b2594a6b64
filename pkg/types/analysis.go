package types

import "time"

// Signal is the strategy advisor's discrete recommendation.
type Signal string

const (
	SignalStrongBuy    Signal = "strong_buy"
	SignalBuy          Signal = "buy"
	SignalNeutral      Signal = "neutral"
	SignalReduce       Signal = "reduce"
	SignalStrongReduce Signal = "strong_reduce"
)

// FGITrend is the direction of the Fear & Greed Index over the recent
// window.
type FGITrend string

const (
	TrendRising  FGITrend = "rising"
	TrendFalling FGITrend = "falling"
	TrendStable  FGITrend = "stable"
)

// FGISnapshot is the sentiment portion of a market analysis.
type FGISnapshot struct {
	Value int      `json:"value"`
	Label string   `json:"label"`
	Trend FGITrend `json:"trend"`
	Avg7d int      `json:"avg_7d"`
}

// BTCSnapshot is the price portion of a market analysis.
type BTCSnapshot struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
}

// Suggestion is the recommended smart-DCA parameter set.
type Suggestion struct {
	Frequency       Frequency `json:"frequency"`
	FearThreshold   int       `json:"fear_threshold"`
	GreedThreshold  int       `json:"greed_threshold"`
	FearMultiplier  float64   `json:"fear_multiplier"`
	GreedMultiplier float64   `json:"greed_multiplier"`
	Reasoning       []string  `json:"reasoning"`
}

// MarketAnalysis is the strategy advisor's full output.
type MarketAnalysis struct {
	Signal      Signal      `json:"signal"`
	SignalLabel string      `json:"signal_label"`
	FGI         FGISnapshot `json:"fgi"`
	BTC         BTCSnapshot `json:"btc"`
	Suggestion  Suggestion  `json:"suggestion"`
	Confidence  int         `json:"confidence"`
	Timestamp   time.Time   `json:"timestamp"`
}

// MacroSignal is the macro liquidity advisor's discrete signal.
type MacroSignal string

const (
	MacroEasing     MacroSignal = "easing"
	MacroTightening MacroSignal = "tightening"
	MacroNeutral    MacroSignal = "neutral"
)

// ImpliedRate is the policy rate implied by a short-term rate-futures
// quote.
type ImpliedRate struct {
	Value     float64 `json:"value"`
	ChangeBps float64 `json:"change_bps"`
}

// RetailSentiment is the optional search-interest component of a macro
// analysis.
type RetailSentiment struct {
	RecentAverage float64     `json:"recent_average"`
	Trend         SearchTrend `json:"trend"`
}

// MacroAnalysis is the macro liquidity advisor's full output. The last
// Reasoning entry is always the aggregate summary.
type MacroAnalysis struct {
	Signal         MacroSignal      `json:"signal"`
	SignalLabel    string           `json:"signal_label"`
	CurrencyIndex  Quote            `json:"currency_index"`
	LongYield      Quote            `json:"long_yield"`
	ImpliedFedRate ImpliedRate      `json:"implied_fed_rate"`
	Retail         *RetailSentiment `json:"retail,omitempty"`
	Reasoning      []string         `json:"reasoning"`
	Timestamp      time.Time        `json:"timestamp"`
}

// ValuationZone classifies the Ahr999 value.
type ValuationZone string

const (
	ZoneBottom ValuationZone = "bottom"
	ZoneDCA    ValuationZone = "dca"
	ZoneWait   ValuationZone = "wait"
)

// Ahr999Data is the valuation model output. Value is 0 when either
// input resolved to zero (provider failure).
type Ahr999Data struct {
	Value         float64       `json:"value"`
	Zone          ValuationZone `json:"zone"`
	ZoneLabel     string        `json:"zone_label"`
	Price         float64       `json:"price"`
	MA200         float64       `json:"ma_200"`
	ExpectedPrice float64       `json:"expected_price"`
	CoinAgeDays   int           `json:"coin_age_days"`
	Timestamp     time.Time     `json:"timestamp"`
}

// DipActionKind is the dip-sizing recommendation type.
type DipActionKind string

const (
	DipBuy            DipActionKind = "BUY"
	DipHold           DipActionKind = "HOLD"
	DipAccumulateFiat DipActionKind = "ACCUMULATE_FIAT"
)

// RiskLevel grades a dip-sizing recommendation.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// DipConfig is a dip-sizing request. Zero thresholds fall back to the
// documented defaults (20 extreme fear, 40 fear).
type DipConfig struct {
	AvailableFiat        float64 `json:"available_fiat"`
	BaseAmount           float64 `json:"base_amount"`
	CurrentFGI           int     `json:"current_fgi"`
	CurrentPrice         float64 `json:"current_price"`
	ExtremeFearThreshold int     `json:"extreme_fear_threshold,omitempty"`
	FearThreshold        int     `json:"fear_threshold,omitempty"`
}

// DipAction is a dip-sizing recommendation.
type DipAction struct {
	Action            DipActionKind `json:"action"`
	RecommendedAmount float64       `json:"recommended_amount"`
	Reasoning         []string      `json:"reasoning"`
	RiskLevel         RiskLevel     `json:"risk_level"`
}
