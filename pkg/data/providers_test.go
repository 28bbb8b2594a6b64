package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

type fixedPrices struct {
	prices []types.PricePoint
}

func (f *fixedPrices) DailyPrices(ctx context.Context, from, to time.Time) ([]types.PricePoint, error) {
	return f.prices, nil
}

func (f *fixedPrices) CurrentPrice(ctx context.Context) (types.SpotPrice, error) {
	return types.SpotPrice{}, nil
}

func (f *fixedPrices) Name() string { return "fixed" }

// TestDeduplicateDaily_KeepsFirstSamplePerDay tests intra-day sample
// collapsing
func TestDeduplicateDaily_KeepsFirstSamplePerDay(t *testing.T) {
	day1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	input := []types.PricePoint{
		{Timestamp: day1.Add(2 * time.Hour), Price: 100},
		{Timestamp: day1.Add(14 * time.Hour), Price: 110},
		{Timestamp: day1.AddDate(0, 0, 1), Price: 120},
		{Timestamp: day1.AddDate(0, 0, 1).Add(8 * time.Hour), Price: 130},
	}

	daily := DeduplicateDaily(input)

	require.Len(t, daily, 2)
	assert.Equal(t, 100.0, daily[0].Price)
	assert.Equal(t, 120.0, daily[1].Price)
}

// TestDeduplicateDaily_SortsAscending tests output ordering for
// unordered input
func TestDeduplicateDaily_SortsAscending(t *testing.T) {
	day1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	input := []types.PricePoint{
		{Timestamp: day1.AddDate(0, 0, 2), Price: 300},
		{Timestamp: day1, Price: 100},
		{Timestamp: day1.AddDate(0, 0, 1), Price: 200},
	}

	daily := DeduplicateDaily(input)

	require.Len(t, daily, 3)
	assert.True(t, daily[0].Timestamp.Before(daily[1].Timestamp))
	assert.True(t, daily[1].Timestamp.Before(daily[2].Timestamp))
}

// TestDeduplicateDaily_Empty tests the empty input edge
func TestDeduplicateDaily_Empty(t *testing.T) {
	assert.Empty(t, DeduplicateDaily(nil))
}

// TestMovingAverage_FullWindow tests averaging over exactly the window
func TestMovingAverage_FullWindow(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, -10)
	var prices []types.PricePoint
	for i := 0; i < 10; i++ {
		prices = append(prices, types.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: float64(i + 1)})
	}

	avg, err := MovingAverage(context.Background(), &fixedPrices{prices: prices}, 10)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, avg, 1e-9)
}

// TestMovingAverage_TruncatesToWindow tests that only the most recent
// window samples count
func TestMovingAverage_TruncatesToWindow(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, -10)
	var prices []types.PricePoint
	for i := 0; i < 10; i++ {
		prices = append(prices, types.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: float64(i + 1)})
	}

	// last 5 samples are 6..10
	avg, err := MovingAverage(context.Background(), &fixedPrices{prices: prices}, 5)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, avg, 1e-9)
}

// TestMovingAverage_ShortHistory tests averaging whatever is available
func TestMovingAverage_ShortHistory(t *testing.T) {
	prices := []types.PricePoint{
		{Timestamp: time.Now().UTC(), Price: 100},
		{Timestamp: time.Now().UTC().AddDate(0, 0, -1), Price: 200},
	}

	avg, err := MovingAverage(context.Background(), &fixedPrices{prices: prices}, 200)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, avg, 1e-9)
}

// TestMovingAverage_NoHistory tests the zero-sample result
func TestMovingAverage_NoHistory(t *testing.T) {
	avg, err := MovingAverage(context.Background(), &fixedPrices{}, 200)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func searchTimeline(values ...float64) []types.SearchPoint {
	out := make([]types.SearchPoint, 0, len(values))
	for _, v := range values {
		out = append(out, types.SearchPoint{Value: v})
	}
	return out
}

// TestSummarizeSearchInterest_Spiking tests the 1.3x spike threshold
func TestSummarizeSearchInterest_Spiking(t *testing.T) {
	// prior avg 50, recent avg 80
	interest := SummarizeSearchInterest("Bitcoin", searchTimeline(50, 50, 50, 80, 80, 80))

	assert.Equal(t, types.SearchTrendSpiking, interest.Trend)
	assert.InDelta(t, 80.0, interest.RecentAverage, 1e-9)
	assert.InDelta(t, 50.0, interest.PriorAverage, 1e-9)
}

// TestSummarizeSearchInterest_Cooling tests the 0.7x cooling threshold
func TestSummarizeSearchInterest_Cooling(t *testing.T) {
	interest := SummarizeSearchInterest("Bitcoin", searchTimeline(50, 50, 50, 20, 20, 20))

	assert.Equal(t, types.SearchTrendCooling, interest.Trend)
}

// TestSummarizeSearchInterest_Flat tests a steady timeline
func TestSummarizeSearchInterest_Flat(t *testing.T) {
	interest := SummarizeSearchInterest("Bitcoin", searchTimeline(50, 50, 50, 55, 50, 52))

	assert.Equal(t, types.SearchTrendFlat, interest.Trend)
}

// TestSummarizeSearchInterest_ShortTimeline tests a timeline shorter
// than the recent window
func TestSummarizeSearchInterest_ShortTimeline(t *testing.T) {
	interest := SummarizeSearchInterest("Bitcoin", searchTimeline(60, 60))

	// no prior baseline exists, so the trend cannot be classified
	assert.Equal(t, types.SearchTrendFlat, interest.Trend)
	assert.InDelta(t, 60.0, interest.RecentAverage, 1e-9)
	assert.Equal(t, 0.0, interest.PriorAverage)
}

// TestSummarizeSearchInterest_ExactBoundaries tests the ratio edges
func TestSummarizeSearchInterest_ExactBoundaries(t *testing.T) {
	// ratio exactly 1.3 spikes
	spike := SummarizeSearchInterest("Bitcoin", searchTimeline(50, 50, 50, 65, 65, 65))
	assert.Equal(t, types.SearchTrendSpiking, spike.Trend)

	// ratio exactly 0.7 cools
	cool := SummarizeSearchInterest("Bitcoin", searchTimeline(50, 50, 50, 35, 35, 35))
	assert.Equal(t, types.SearchTrendCooling, cool.Trend)
}
