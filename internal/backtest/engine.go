package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// ErrNoPriceData is returned when a simulation range contains no price
// samples at all. The lump-sum strategy cannot establish an entry
// price without one.
var ErrNoPriceData = errors.New("no price data available for the specified date range")

// fgiHistoryMargin widens the sentiment fetch beyond the backtest
// range so boundary dates are covered.
const fgiHistoryMargin = 30

// Simulator replays historical prices against a buy schedule.
type Simulator struct {
	prices    data.PriceProvider
	sentiment data.SentimentProvider
}

// NewSimulator creates a Simulator over the given providers. The
// sentiment provider is only consulted by the smart strategy.
func NewSimulator(prices data.PriceProvider, sentiment data.SentimentProvider) *Simulator {
	return &Simulator{prices: prices, sentiment: sentiment}
}

// Simulate runs the strategy identified by kind over cfg.
func (s *Simulator) Simulate(ctx context.Context, cfg types.DCAConfig, kind types.StrategyKind) (*types.BacktestResult, error) {
	switch kind {
	case types.StrategyStandard:
		return s.Run(ctx, cfg)
	case types.StrategySmart:
		return s.RunSmart(ctx, cfg)
	case types.StrategyLumpSum:
		return s.RunLumpSum(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown strategy kind %q", kind)
	}
}

// Run simulates a standard DCA schedule: a fixed amount on every
// qualifying day that has a price sample. Days without a positive
// price sample are skipped silently.
func (s *Simulator) Run(ctx context.Context, cfg types.DCAConfig) (*types.BacktestResult, error) {
	start := truncateDay(cfg.StartDate)
	end := truncateDay(cfg.EndDate)

	prices, err := s.prices.DailyPrices(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily prices: %w", err)
	}
	priceMap := buildPriceMap(prices)

	var buys []types.BuyEvent
	totalBTC := 0.0
	totalInvested := 0.0

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(types.DateKeyFormat)
		price, ok := priceMap[key]
		if !ok || price <= 0 || !ShouldBuy(d, start, cfg.Frequency) {
			continue
		}

		btcBought := cfg.Amount / price
		totalBTC += btcBought
		totalInvested += cfg.Amount

		buys = append(buys, types.BuyEvent{
			Date:           key,
			Price:          price,
			AmountUSD:      cfg.Amount,
			BTCBought:      btcBought,
			TotalBTC:       totalBTC,
			TotalInvested:  totalInvested,
			PortfolioValue: totalBTC * price,
		})
	}

	monitoring.RecordSimulation(string(types.StrategyStandard))
	return finalize(types.StrategyStandard, cfg, buys, totalInvested, totalBTC, prices), nil
}

// RunSmart simulates a sentiment-adjusted DCA schedule: the buy amount
// is scaled by the fear multiplier at or below the fear threshold and
// by the greed multiplier at or above the greed threshold. Days
// without an FGI sample buy at the base amount.
func (s *Simulator) RunSmart(ctx context.Context, cfg types.DCAConfig) (*types.BacktestResult, error) {
	start := truncateDay(cfg.StartDate)
	end := truncateDay(cfg.EndDate)

	prices, err := s.prices.DailyPrices(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily prices: %w", err)
	}
	priceMap := buildPriceMap(prices)

	rangeDays := int(end.Sub(start).Hours() / 24)
	fgiMap, err := s.sentiment.Map(ctx, rangeDays+fgiHistoryMargin)
	if err != nil {
		return nil, fmt.Errorf("fetch fear & greed history: %w", err)
	}

	var buys []types.BuyEvent
	totalBTC := 0.0
	totalInvested := 0.0

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(types.DateKeyFormat)
		price, ok := priceMap[key]
		if !ok || price <= 0 || !ShouldBuy(d, start, cfg.Frequency) {
			continue
		}

		multiplier := 1.0
		var fgiValue *int
		if fgi, found := fgiMap[key]; found {
			fgi := fgi
			fgiValue = &fgi
			if fgi <= cfg.FearThreshold {
				multiplier = cfg.FearMultiplier
			} else if fgi >= cfg.GreedThreshold {
				multiplier = cfg.GreedMultiplier
			}
		}

		amount := cfg.Amount * multiplier
		btcBought := amount / price
		totalBTC += btcBought
		totalInvested += amount

		buys = append(buys, types.BuyEvent{
			Date:           key,
			Price:          price,
			AmountUSD:      amount,
			BTCBought:      btcBought,
			TotalBTC:       totalBTC,
			TotalInvested:  totalInvested,
			PortfolioValue: totalBTC * price,
			FGIValue:       fgiValue,
			Multiplier:     multiplier,
		})
	}

	monitoring.RecordSimulation(string(types.StrategySmart))
	return finalize(types.StrategySmart, cfg, buys, totalInvested, totalBTC, prices), nil
}

// RunLumpSum simulates deploying the full equivalent capital of a
// standard schedule at the first available price. One synthetic event
// is emitted per subsequent price sample so the trajectory has the
// same resolution as the periodic strategies for drawdown purposes.
func (s *Simulator) RunLumpSum(ctx context.Context, cfg types.DCAConfig) (*types.BacktestResult, error) {
	start := truncateDay(cfg.StartDate)
	end := truncateDay(cfg.EndDate)

	prices, err := s.prices.DailyPrices(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily prices: %w", err)
	}
	if len(prices) == 0 {
		return nil, ErrNoPriceData
	}

	buyCount := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if ShouldBuy(d, start, cfg.Frequency) {
			buyCount++
		}
	}

	firstPrice := prices[0].Price
	totalInvested := float64(buyCount) * cfg.Amount
	totalBTC := totalInvested / firstPrice

	buys := make([]types.BuyEvent, 0, len(prices)+1)
	buys = append(buys, types.BuyEvent{
		Date:           start.Format(types.DateKeyFormat),
		Price:          firstPrice,
		AmountUSD:      totalInvested,
		BTCBought:      totalBTC,
		TotalBTC:       totalBTC,
		TotalInvested:  totalInvested,
		PortfolioValue: totalBTC * firstPrice,
	})
	for _, pt := range prices {
		buys = append(buys, types.BuyEvent{
			Date:           pt.DateKey(),
			Price:          pt.Price,
			TotalBTC:       totalBTC,
			TotalInvested:  totalInvested,
			PortfolioValue: totalBTC * pt.Price,
		})
	}

	monitoring.RecordSimulation(string(types.StrategyLumpSum))
	result := finalize(types.StrategyLumpSum, cfg, buys, totalInvested, totalBTC, prices)
	result.AverageCost = firstPrice
	return result, nil
}

// finalize values the trajectory at the last available price sample
// and computes the performance metrics.
func finalize(kind types.StrategyKind, cfg types.DCAConfig, buys []types.BuyEvent, totalInvested, totalBTC float64, prices []types.PricePoint) *types.BacktestResult {
	lastPrice := 0.0
	if len(prices) > 0 {
		lastPrice = prices[len(prices)-1].Price
	} else {
		log.Warn().
			Str("strategy", string(kind)).
			Time("start", cfg.StartDate).
			Time("end", cfg.EndDate).
			Msg("no price samples in range, final value defaults to zero")
	}

	finalValue := totalBTC * lastPrice
	days := int(truncateDay(cfg.EndDate).Sub(truncateDay(cfg.StartDate)).Hours() / 24)

	return &types.BacktestResult{
		Strategy:         kind,
		Config:           cfg,
		Buys:             buys,
		TotalInvested:    totalInvested,
		TotalBTC:         totalBTC,
		FinalValue:       finalValue,
		ROI:              CalcROI(totalInvested, finalValue),
		AnnualizedReturn: CalcAnnualizedReturn(totalInvested, finalValue, days),
		MaxDrawdown:      CalcMaxDrawdown(buys),
		AverageCost:      CalcAverageCost(totalInvested, totalBTC),
		CurrentPrice:     lastPrice,
	}
}

func buildPriceMap(prices []types.PricePoint) map[string]float64 {
	m := make(map[string]float64, len(prices))
	for _, pt := range prices {
		m[pt.DateKey()] = pt.Price
	}
	return m
}
