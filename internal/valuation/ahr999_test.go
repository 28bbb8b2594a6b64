package valuation

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

type stubPrices struct {
	spot    types.SpotPrice
	daily   []types.PricePoint
	spotErr error
	dayErr  error
}

func (s *stubPrices) DailyPrices(ctx context.Context, from, to time.Time) ([]types.PricePoint, error) {
	return s.daily, s.dayErr
}

func (s *stubPrices) CurrentPrice(ctx context.Context) (types.SpotPrice, error) {
	return s.spot, s.spotErr
}

func (s *stubPrices) Name() string { return "stub" }

func flatHistory(price float64, days int) []types.PricePoint {
	start := time.Now().UTC().AddDate(0, 0, -days)
	out := make([]types.PricePoint, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, types.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: price})
	}
	return out
}

// TestClassifyZone_Bounds tests the half-open zone boundaries
func TestClassifyZone_Bounds(t *testing.T) {
	assert.Equal(t, types.ZoneBottom, ClassifyZone(0.2))
	assert.Equal(t, types.ZoneBottom, ClassifyZone(0.449))

	assert.Equal(t, types.ZoneDCA, ClassifyZone(0.45))
	assert.Equal(t, types.ZoneDCA, ClassifyZone(1.0))
	assert.Equal(t, types.ZoneDCA, ClassifyZone(1.199))

	assert.Equal(t, types.ZoneWait, ClassifyZone(1.2))
	assert.Equal(t, types.ZoneWait, ClassifyZone(5.0))
}

// TestCoinAgeDays_Genesis tests the age axis origin
func TestCoinAgeDays_Genesis(t *testing.T) {
	assert.Equal(t, 0, CoinAgeDays(Genesis))
	assert.Equal(t, 1, CoinAgeDays(Genesis.AddDate(0, 0, 1)))
	assert.Equal(t, 365, CoinAgeDays(Genesis.AddDate(0, 0, 365)))
}

// TestExpectedPrice_GrowthModel tests the exponential fair-value curve
func TestExpectedPrice_GrowthModel(t *testing.T) {
	// 10^(5.84*log10(5000) - 17.01)
	want := math.Pow(10, 5.84*math.Log10(5000)-17.01)
	assert.InDelta(t, want, ExpectedPrice(5000), 1e-6)

	// the model is strictly increasing in age
	assert.Greater(t, ExpectedPrice(6000), ExpectedPrice(5000))
}

// TestCalculate_Healthy tests the index over live providers
func TestCalculate_Healthy(t *testing.T) {
	prices := &stubPrices{
		spot:  types.SpotPrice{Price: 60000},
		daily: flatHistory(50000, 200),
	}
	calc := New(prices, time.Second)

	result := calc.Calculate(context.Background())

	age := CoinAgeDays(time.Now().UTC())
	want := (60000.0 / 50000.0) * (60000.0 / ExpectedPrice(age))
	assert.InDelta(t, want, result.Value, 0.001)
	assert.Equal(t, 60000.0, result.Price)
	assert.InDelta(t, 50000.0, result.MA200, 0.5)
	assert.Equal(t, age, result.CoinAgeDays)
	assert.Equal(t, ClassifyZone(want), result.Zone)
	assert.NotEmpty(t, result.ZoneLabel)
}

// TestCalculate_SpotUnavailable tests the sentinel result when the
// spot fetch degrades
func TestCalculate_SpotUnavailable(t *testing.T) {
	prices := &stubPrices{
		spotErr: errors.New("spot down"),
		daily:   flatHistory(50000, 200),
	}
	calc := New(prices, time.Second)

	result := calc.Calculate(context.Background())

	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, types.ZoneDCA, result.Zone)
	assert.Equal(t, "⚠️ Data unavailable", result.ZoneLabel)
	assert.Greater(t, result.ExpectedPrice, 0.0)
}

// TestCalculate_HistoryUnavailable tests the sentinel result when the
// moving average cannot be computed
func TestCalculate_HistoryUnavailable(t *testing.T) {
	prices := &stubPrices{
		spot:   types.SpotPrice{Price: 60000},
		dayErr: errors.New("history down"),
	}
	calc := New(prices, time.Second)

	result := calc.Calculate(context.Background())

	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, "⚠️ Data unavailable", result.ZoneLabel)
}

// TestCalculate_ValueRounding tests the three-decimal rounding of the
// index value
func TestCalculate_ValueRounding(t *testing.T) {
	prices := &stubPrices{
		spot:  types.SpotPrice{Price: 60000},
		daily: flatHistory(50000, 200),
	}
	calc := New(prices, time.Second)

	result := calc.Calculate(context.Background())

	require.NotZero(t, result.Value)
	assert.InDelta(t, result.Value, math.Round(result.Value*1000)/1000, 1e-12)
}
