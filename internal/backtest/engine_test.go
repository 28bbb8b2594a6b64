package backtest

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// fakePriceProvider serves a fixed set of daily samples.
type fakePriceProvider struct {
	prices []types.PricePoint
	err    error
}

func (f *fakePriceProvider) DailyPrices(ctx context.Context, from, to time.Time) ([]types.PricePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []types.PricePoint
	for _, pt := range f.prices {
		if !pt.Timestamp.Before(from) && !pt.Timestamp.After(to.AddDate(0, 0, 1)) {
			out = append(out, pt)
		}
	}
	return out, nil
}

func (f *fakePriceProvider) CurrentPrice(ctx context.Context) (types.SpotPrice, error) {
	if f.err != nil {
		return types.SpotPrice{}, f.err
	}
	if len(f.prices) == 0 {
		return types.SpotPrice{}, errors.New("no prices")
	}
	return types.SpotPrice{Price: f.prices[len(f.prices)-1].Price}, nil
}

func (f *fakePriceProvider) Name() string { return "fake" }

// fakeSentimentProvider serves a fixed date-key -> FGI map.
type fakeSentimentProvider struct {
	values map[string]int
	err    error
}

func (f *fakeSentimentProvider) Current(ctx context.Context) (types.FearGreedPoint, error) {
	if f.err != nil {
		return types.FearGreedPoint{}, f.err
	}
	return types.FearGreedPoint{Value: 50, Label: "Neutral"}, nil
}

func (f *fakeSentimentProvider) History(ctx context.Context, n int) ([]types.FearGreedPoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func (f *fakeSentimentProvider) Map(ctx context.Context, days int) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.values, nil
}

// constantPrices builds one sample per day at a fixed price.
func constantPrices(start time.Time, days int, price float64) []types.PricePoint {
	out := make([]types.PricePoint, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, types.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: price})
	}
	return out
}

// linearPrices builds one sample per day rising linearly from low to high.
func linearPrices(start time.Time, days int, low, high float64) []types.PricePoint {
	out := make([]types.PricePoint, 0, days)
	step := (high - low) / float64(days-1)
	for i := 0; i < days; i++ {
		out = append(out, types.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: low + step*float64(i)})
	}
	return out
}

func weeklyConfig(start time.Time, days int, amount float64) types.DCAConfig {
	return types.DCAConfig{
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, days-1),
		Frequency:       types.FrequencyWeekly,
		Amount:          amount,
		FearThreshold:   30,
		GreedThreshold:  70,
		FearMultiplier:  2.0,
		GreedMultiplier: 0.5,
	}
}

// TestRun_ConstantPrice tests the standard strategy over a flat market
func TestRun_ConstantPrice(t *testing.T) {
	start := day(2020, time.January, 1)
	sim := NewSimulator(&fakePriceProvider{prices: constantPrices(start, 15, 10000)}, &fakeSentimentProvider{})

	result, err := sim.Run(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)

	assert.Len(t, result.Buys, 3) // Jan 1, 8, 15
	assert.InDelta(t, 300.0, result.TotalInvested, 1e-9)
	assert.InDelta(t, 0.03, result.TotalBTC, 1e-9)
	assert.InDelta(t, 300.0, result.FinalValue, 1e-9)
	assert.InDelta(t, 0.0, result.ROI, 1e-9)
	assert.InDelta(t, 0.0, result.MaxDrawdown, 1e-9)
	assert.InDelta(t, 10000.0, result.AverageCost, 1e-9)
	assert.Equal(t, types.StrategyStandard, result.Strategy)
}

// TestRun_SkipsDaysWithoutPrice tests that schedule days with no price
// sample are skipped without buying
func TestRun_SkipsDaysWithoutPrice(t *testing.T) {
	start := day(2020, time.January, 1)
	prices := constantPrices(start, 15, 10000)
	// drop Jan 8
	trimmed := make([]types.PricePoint, 0, len(prices)-1)
	for _, pt := range prices {
		if pt.Timestamp.Day() != 8 {
			trimmed = append(trimmed, pt)
		}
	}
	sim := NewSimulator(&fakePriceProvider{prices: trimmed}, &fakeSentimentProvider{})

	result, err := sim.Run(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)

	assert.Len(t, result.Buys, 2)
	assert.InDelta(t, 200.0, result.TotalInvested, 1e-9)
}

// TestRun_SkipsZeroPriceSamples tests that a day carrying a zero price
// is treated like a missing sample instead of dividing by it
func TestRun_SkipsZeroPriceSamples(t *testing.T) {
	start := day(2020, time.January, 1)
	prices := constantPrices(start, 15, 10000)
	// zero out Jan 8
	for i := range prices {
		if prices[i].Timestamp.Day() == 8 {
			prices[i].Price = 0
		}
	}
	sim := NewSimulator(&fakePriceProvider{prices: prices}, &fakeSentimentProvider{})

	result, err := sim.Run(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)

	assert.Len(t, result.Buys, 2)
	assert.InDelta(t, 200.0, result.TotalInvested, 1e-9)
	assert.False(t, math.IsInf(result.TotalBTC, 1))
	assert.InDelta(t, 0.02, result.TotalBTC, 1e-9)
}

// TestRun_ProviderError tests that a price fetch failure propagates
func TestRun_ProviderError(t *testing.T) {
	sim := NewSimulator(&fakePriceProvider{err: errors.New("network down")}, &fakeSentimentProvider{})

	_, err := sim.Run(context.Background(), weeklyConfig(day(2020, time.January, 1), 15, 100))
	assert.Error(t, err)
}

// TestRun_EmptyRange tests that a range with no samples produces a
// zero-value result rather than an error
func TestRun_EmptyRange(t *testing.T) {
	sim := NewSimulator(&fakePriceProvider{}, &fakeSentimentProvider{})

	result, err := sim.Run(context.Background(), weeklyConfig(day(2020, time.January, 1), 15, 100))
	require.NoError(t, err)

	assert.Empty(t, result.Buys)
	assert.Equal(t, 0.0, result.TotalInvested)
	assert.Equal(t, 0.0, result.FinalValue)
}

// TestRunSmart_FearMultiplier tests that fearful days buy at the fear
// multiplier
func TestRunSmart_FearMultiplier(t *testing.T) {
	start := day(2020, time.January, 1)
	sentiment := &fakeSentimentProvider{values: map[string]int{
		"2020-01-01": 20, // fear, 2x
		"2020-01-08": 50, // neutral
		"2020-01-15": 80, // greed, 0.5x
	}}
	sim := NewSimulator(&fakePriceProvider{prices: constantPrices(start, 15, 10000)}, sentiment)

	result, err := sim.RunSmart(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)
	require.Len(t, result.Buys, 3)

	assert.InDelta(t, 200.0, result.Buys[0].AmountUSD, 1e-9)
	assert.Equal(t, 2.0, result.Buys[0].Multiplier)
	require.NotNil(t, result.Buys[0].FGIValue)
	assert.Equal(t, 20, *result.Buys[0].FGIValue)

	assert.InDelta(t, 100.0, result.Buys[1].AmountUSD, 1e-9)
	assert.Equal(t, 1.0, result.Buys[1].Multiplier)

	assert.InDelta(t, 50.0, result.Buys[2].AmountUSD, 1e-9)
	assert.Equal(t, 0.5, result.Buys[2].Multiplier)

	assert.InDelta(t, 350.0, result.TotalInvested, 1e-9)
	assert.Equal(t, types.StrategySmart, result.Strategy)
}

// TestRunSmart_MissingSentimentSample tests that days without an FGI
// sample buy at the base amount with no recorded FGI
func TestRunSmart_MissingSentimentSample(t *testing.T) {
	start := day(2020, time.January, 1)
	sim := NewSimulator(&fakePriceProvider{prices: constantPrices(start, 15, 10000)}, &fakeSentimentProvider{values: map[string]int{}})

	result, err := sim.RunSmart(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)
	require.Len(t, result.Buys, 3)

	for _, buy := range result.Buys {
		assert.Nil(t, buy.FGIValue)
		assert.Equal(t, 1.0, buy.Multiplier)
		assert.InDelta(t, 100.0, buy.AmountUSD, 1e-9)
	}
}

// TestRunSmart_ThresholdBoundaries tests that threshold values
// themselves trigger the multipliers
func TestRunSmart_ThresholdBoundaries(t *testing.T) {
	start := day(2020, time.January, 1)
	sentiment := &fakeSentimentProvider{values: map[string]int{
		"2020-01-01": 30, // exactly fear threshold
		"2020-01-08": 70, // exactly greed threshold
	}}
	sim := NewSimulator(&fakePriceProvider{prices: constantPrices(start, 8, 10000)}, sentiment)

	result, err := sim.RunSmart(context.Background(), weeklyConfig(start, 8, 100))
	require.NoError(t, err)
	require.Len(t, result.Buys, 2)

	assert.Equal(t, 2.0, result.Buys[0].Multiplier)
	assert.Equal(t, 0.5, result.Buys[1].Multiplier)
}

// TestRunSmart_SkipsZeroPriceSamples tests that the smart strategy also
// treats a zero price as a missing sample
func TestRunSmart_SkipsZeroPriceSamples(t *testing.T) {
	start := day(2020, time.January, 1)
	prices := constantPrices(start, 15, 10000)
	for i := range prices {
		if prices[i].Timestamp.Day() == 8 {
			prices[i].Price = 0
		}
	}
	sentiment := &fakeSentimentProvider{values: map[string]int{"2020-01-08": 10}}
	sim := NewSimulator(&fakePriceProvider{prices: prices}, sentiment)

	result, err := sim.RunSmart(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)

	require.Len(t, result.Buys, 2)
	assert.InDelta(t, 200.0, result.TotalInvested, 1e-9)
	assert.False(t, math.IsInf(result.TotalBTC, 1))
}

// TestRunSmart_SentimentError tests that a sentiment fetch failure
// propagates instead of degrading to the standard strategy
func TestRunSmart_SentimentError(t *testing.T) {
	start := day(2020, time.January, 1)
	sim := NewSimulator(&fakePriceProvider{prices: constantPrices(start, 15, 10000)}, &fakeSentimentProvider{err: errors.New("fgi down")})

	_, err := sim.RunSmart(context.Background(), weeklyConfig(start, 15, 100))
	assert.Error(t, err)
}

// TestRunLumpSum_RisingMarket tests deploying all capital at the first
// price of a rising market
func TestRunLumpSum_RisingMarket(t *testing.T) {
	start := day(2020, time.January, 1)
	sim := NewSimulator(&fakePriceProvider{prices: linearPrices(start, 15, 10000, 20000)}, &fakeSentimentProvider{})

	result, err := sim.RunLumpSum(context.Background(), weeklyConfig(start, 15, 100))
	require.NoError(t, err)

	// 3 schedule days x $100 all bought at $10k
	assert.InDelta(t, 300.0, result.TotalInvested, 1e-9)
	assert.InDelta(t, 0.03, result.TotalBTC, 1e-9)
	assert.InDelta(t, 600.0, result.FinalValue, 1e-9)
	assert.InDelta(t, 100.0, result.ROI, 1e-9)
	assert.InDelta(t, 10000.0, result.AverageCost, 1e-9)
	assert.Equal(t, types.StrategyLumpSum, result.Strategy)

	// entry event plus one synthetic event per sample
	assert.Len(t, result.Buys, 16)
	assert.InDelta(t, 0.0, result.MaxDrawdown, 1e-9)
}

// TestRunLumpSum_NoPriceData tests the sentinel error for an empty range
func TestRunLumpSum_NoPriceData(t *testing.T) {
	sim := NewSimulator(&fakePriceProvider{}, &fakeSentimentProvider{})

	_, err := sim.RunLumpSum(context.Background(), weeklyConfig(day(2020, time.January, 1), 15, 100))
	assert.ErrorIs(t, err, ErrNoPriceData)
}

// TestSimulate_UnknownKind tests the dispatch guard
func TestSimulate_UnknownKind(t *testing.T) {
	sim := NewSimulator(&fakePriceProvider{}, &fakeSentimentProvider{})

	_, err := sim.Simulate(context.Background(), weeklyConfig(day(2020, time.January, 1), 15, 100), types.StrategyKind("martingale"))
	assert.Error(t, err)
}

// TestSimulate_Dispatch tests that each known kind reaches its strategy
func TestSimulate_Dispatch(t *testing.T) {
	start := day(2020, time.January, 1)
	sim := NewSimulator(&fakePriceProvider{prices: constantPrices(start, 15, 10000)}, &fakeSentimentProvider{values: map[string]int{}})
	cfg := weeklyConfig(start, 15, 100)

	for _, kind := range []types.StrategyKind{types.StrategyStandard, types.StrategySmart, types.StrategyLumpSum} {
		result, err := sim.Simulate(context.Background(), cfg, kind)
		require.NoError(t, err)
		assert.Equal(t, kind, result.Strategy)
	}
}
