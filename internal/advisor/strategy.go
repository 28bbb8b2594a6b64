package advisor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// DefaultTimeout bounds each provider fetch before its fallback is
// substituted.
const DefaultTimeout = 8 * time.Second

// trendWindow is the number of recent FGI samples used for trend
// detection.
const trendWindow = 7

// Advisor scores current market sentiment into a discrete signal and a
// recommended smart-DCA parameter set.
type Advisor struct {
	prices    data.PriceProvider
	sentiment data.SentimentProvider
	timeout   time.Duration
}

// New creates an Advisor. A zero timeout selects DefaultTimeout.
func New(prices data.PriceProvider, sentiment data.SentimentProvider, timeout time.Duration) *Advisor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Advisor{prices: prices, sentiment: sentiment, timeout: timeout}
}

// fgiScoreBands maps an FGI value to its base score; the first band
// whose upper bound covers the value applies. Negative scores carry a
// buy bias, positive a reduce bias.
var fgiScoreBands = []struct {
	Max   int
	Score int
}{
	{20, -40},
	{35, -25},
	{45, -10},
	{55, 0},
	{70, 10},
	{80, 25},
	{100, 40},
}

// signalBands maps a composite score to its signal; the first band
// whose upper bound covers the score applies.
var signalBands = []struct {
	Max    int
	Signal types.Signal
}{
	{-30, types.SignalStrongBuy},
	{-10, types.SignalBuy},
	{10, types.SignalNeutral},
	{30, types.SignalReduce},
}

// AnalyzeMarketConditions pulls the current spot price, the current
// FGI and a recent FGI history, each independently guarded by a
// timeout with fallback, and scores them. It never fails: if every
// provider degrades to its fallback a zero-confidence "data
// unavailable" analysis is returned.
func (a *Advisor) AnalyzeMarketConditions(ctx context.Context) *types.MarketAnalysis {
	var (
		wg      sync.WaitGroup
		spot    types.SpotPrice
		current types.FearGreedPoint
		history []types.FearGreedPoint
	)

	now := time.Now().UTC()
	fgiFallback := types.FearGreedPoint{
		Value:     50,
		Label:     "Neutral",
		Timestamp: now,
		Date:      now.Format(types.DateKeyFormat),
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		spot = data.FetchWithFallback(ctx, "btc_spot", a.timeout, types.SpotPrice{}, func(ctx context.Context) (types.SpotPrice, error) {
			return a.prices.CurrentPrice(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		current = data.FetchWithFallback(ctx, "fgi_current", a.timeout, fgiFallback, func(ctx context.Context) (types.FearGreedPoint, error) {
			return a.sentiment.Current(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		history = data.FetchWithFallback(ctx, "fgi_history", a.timeout, nil, func(ctx context.Context) ([]types.FearGreedPoint, error) {
			return a.sentiment.History(ctx, trendWindow)
		})
	}()
	wg.Wait()

	monitoring.RecordAnalysis("market")

	// All three fetches degraded: report unavailability instead of
	// scoring fallback values.
	if spot.Price == 0 && current.Value == fgiFallback.Value && len(history) == 0 {
		return unavailableAnalysis(now)
	}

	trendSource := history
	if len(trendSource) == 0 {
		trendSource = []types.FearGreedPoint{current}
	}
	trend, avg7d := ComputeTrend(trendSource)

	signal, confidence := Score(current.Value, trend, spot.Change24h)
	suggestion := buildSuggestion(signal, current.Value, trend, spot.Change24h)

	return &types.MarketAnalysis{
		Signal:      signal,
		SignalLabel: signalLabels[signal],
		FGI: types.FGISnapshot{
			Value: current.Value,
			Label: current.Label,
			Trend: trend,
			Avg7d: avg7d,
		},
		BTC: types.BTCSnapshot{
			Price:     spot.Price,
			Change24h: spot.Change24h,
		},
		Suggestion: suggestion,
		Confidence: confidence,
		Timestamp:  now,
	}
}

// ComputeTrend classifies the FGI direction over a most-recent-first
// window of up to trendWindow samples. It splits the window in half
// and compares the means; a gap of more than 5 points between the
// halves marks the trend as rising or falling. The second return is
// the rounded window mean.
func ComputeTrend(history []types.FearGreedPoint) (types.FGITrend, int) {
	if len(history) < 2 {
		avg := 50
		if len(history) == 1 {
			avg = history[0].Value
		}
		return types.TrendStable, avg
	}

	recent := history
	if len(recent) > trendWindow {
		recent = recent[:trendWindow]
	}

	sum := 0
	for _, pt := range recent {
		sum += pt.Value
	}
	avg7d := int(math.Round(float64(sum) / float64(len(recent))))

	mid := (len(recent) + 1) / 2
	avgFirst := meanValue(recent[:mid])
	avgSecond := meanValue(recent[mid:])

	diff := avgFirst - avgSecond
	switch {
	case diff < -5:
		return types.TrendRising, avg7d
	case diff > 5:
		return types.TrendFalling, avg7d
	default:
		return types.TrendStable, avg7d
	}
}

// Score combines the FGI base score, the trend modifier and the 24h
// price modifier into a signal and a confidence in [0, 95].
func Score(fgiValue int, trend types.FGITrend, change24h float64) (types.Signal, int) {
	score := 0

	base := fgiScoreBands[len(fgiScoreBands)-1].Score
	for _, band := range fgiScoreBands {
		if fgiValue <= band.Max {
			base = band.Score
			break
		}
	}
	score += base

	switch trend {
	case types.TrendFalling:
		score -= 10
	case types.TrendRising:
		score += 10
	}

	switch {
	case change24h <= -10:
		score -= 15
	case change24h <= -5:
		score -= 8
	case change24h >= 10:
		score += 10
	}

	signal := types.SignalStrongReduce
	for _, band := range signalBands {
		if score <= band.Max {
			signal = band.Signal
			break
		}
	}

	confidence := 50 + abs(score)
	if confidence > 95 {
		confidence = 95
	}
	return signal, confidence
}

func meanValue(points []types.FearGreedPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, pt := range points {
		sum += pt.Value
	}
	return float64(sum) / float64(len(points))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
