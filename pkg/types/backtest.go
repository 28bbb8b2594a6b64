package types

import "time"

// Frequency controls how often a DCA schedule buys.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// StrategyKind identifies one of the three simulated strategies.
type StrategyKind string

const (
	StrategyStandard StrategyKind = "standard"
	StrategySmart    StrategyKind = "smart"
	StrategyLumpSum  StrategyKind = "lump_sum"
)

// DateKeyFormat is the day-granularity key used to align price and
// sentiment samples.
const DateKeyFormat = "2006-01-02"

// PricePoint is a single daily price sample.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// DateKey returns the UTC calendar-day key for the sample.
func (p PricePoint) DateKey() string {
	return p.Timestamp.UTC().Format(DateKeyFormat)
}

// DCAConfig describes a backtest run.
type DCAConfig struct {
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Frequency       Frequency `json:"frequency"`
	Amount          float64   `json:"amount"`
	SmartDCA        bool      `json:"smart_dca"`
	FearThreshold   int       `json:"fear_threshold"`
	GreedThreshold  int       `json:"greed_threshold"`
	FearMultiplier  float64   `json:"fear_multiplier"`
	GreedMultiplier float64   `json:"greed_multiplier"`
}

// BuyEvent is one simulated purchase. FGIValue is nil when no sentiment
// sample existed for that date; Multiplier is only set by the smart
// strategy.
type BuyEvent struct {
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	AmountUSD      float64 `json:"amount_usd"`
	BTCBought      float64 `json:"btc_bought"`
	TotalBTC       float64 `json:"total_btc"`
	TotalInvested  float64 `json:"total_invested"`
	PortfolioValue float64 `json:"portfolio_value"`
	FGIValue       *int    `json:"fgi_value,omitempty"`
	Multiplier     float64 `json:"multiplier,omitempty"`
}

// BacktestResult is the completed trajectory of one strategy.
type BacktestResult struct {
	Strategy         StrategyKind `json:"strategy"`
	Config           DCAConfig    `json:"config"`
	Buys             []BuyEvent   `json:"buys"`
	TotalInvested    float64      `json:"total_invested"`
	TotalBTC         float64      `json:"total_btc"`
	FinalValue       float64      `json:"final_value"`
	ROI              float64      `json:"roi"`
	AnnualizedReturn float64      `json:"annualized_return"`
	MaxDrawdown      float64      `json:"max_drawdown"`
	AverageCost      float64      `json:"average_cost"`
	CurrentPrice     float64      `json:"current_price"`
}

// ComparisonResult bundles the three strategies run over identical
// inputs.
type ComparisonResult struct {
	Standard *BacktestResult `json:"standard"`
	Smart    *BacktestResult `json:"smart"`
	LumpSum  *BacktestResult `json:"lump_sum"`
}
