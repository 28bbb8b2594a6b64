package valuation

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Ahr999 combines trend-following (price vs its 200-day average) with
// an exponential growth fair-value model:
//
//	ahr999 = (price / ma200) × (price / expectedPrice)
//	expectedPrice = 10^(5.84 × log10(coinAgeDays) − 17.01)
//
// Values below 0.45 mark the accumulation zone, up to 1.2 the regular
// DCA zone, and above that the wait zone.

// Genesis is the Bitcoin genesis block date, the origin of the growth
// model's age axis.
var Genesis = time.Date(2009, time.January, 3, 0, 0, 0, 0, time.UTC)

const (
	// DefaultTimeout bounds each provider fetch.
	DefaultTimeout = 10 * time.Second

	maWindowDays = 200

	bottomZoneMax = 0.45
	dcaZoneMax    = 1.2
)

var zoneLabels = map[types.ValuationZone]string{
	types.ZoneBottom: "🟢 Accumulation zone",
	types.ZoneDCA:    "🟡 DCA zone",
	types.ZoneWait:   "🔴 Wait zone",
}

// Calculator computes the Ahr999 valuation from a price provider.
type Calculator struct {
	prices  data.PriceProvider
	timeout time.Duration
	now     func() time.Time
}

// New creates a Calculator. A zero timeout selects DefaultTimeout.
func New(prices data.PriceProvider, timeout time.Duration) *Calculator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Calculator{prices: prices, timeout: timeout, now: time.Now}
}

// Calculate fetches the spot price and the 200-day moving average
// concurrently, each guarded by a timeout with fallback. If either
// resolves to zero the result is the "data unavailable" sentinel with
// Value 0 rather than a division error.
func (c *Calculator) Calculate(ctx context.Context) *types.Ahr999Data {
	var (
		wg   sync.WaitGroup
		spot types.SpotPrice
		ma   float64
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		spot = data.FetchWithFallback(ctx, "btc_spot", c.timeout, types.SpotPrice{}, func(ctx context.Context) (types.SpotPrice, error) {
			return c.prices.CurrentPrice(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		ma = data.FetchWithFallback(ctx, "ma200", c.timeout, 0, func(ctx context.Context) (float64, error) {
			return data.MovingAverage(ctx, c.prices, maWindowDays)
		})
	}()
	wg.Wait()

	monitoring.RecordAnalysis("ahr999")

	now := c.now().UTC()
	coinAgeDays := CoinAgeDays(now)
	expectedPrice := ExpectedPrice(coinAgeDays)

	if spot.Price == 0 || ma == 0 {
		return &types.Ahr999Data{
			Zone:          types.ZoneDCA,
			ZoneLabel:     "⚠️ Data unavailable",
			ExpectedPrice: math.Round(expectedPrice),
			CoinAgeDays:   coinAgeDays,
			Timestamp:     now,
		}
	}

	value := (spot.Price / ma) * (spot.Price / expectedPrice)
	zone := ClassifyZone(value)

	return &types.Ahr999Data{
		Value:         math.Round(value*1000) / 1000,
		Zone:          zone,
		ZoneLabel:     zoneLabels[zone],
		Price:         spot.Price,
		MA200:         math.Round(ma),
		ExpectedPrice: math.Round(expectedPrice),
		CoinAgeDays:   coinAgeDays,
		Timestamp:     now,
	}
}

// CoinAgeDays returns the whole days elapsed since the genesis block.
func CoinAgeDays(at time.Time) int {
	return int(at.Sub(Genesis).Hours() / 24)
}

// ExpectedPrice returns the exponential growth model's fair price for
// the given coin age.
func ExpectedPrice(coinAgeDays int) float64 {
	return math.Pow(10, 5.84*math.Log10(float64(coinAgeDays))-17.01)
}

// ClassifyZone maps an Ahr999 value to its accumulation zone. The
// bounds are half-open: 0.45 already classifies as DCA and 1.2 as
// wait.
func ClassifyZone(value float64) types.ValuationZone {
	switch {
	case value < bottomZoneMax:
		return types.ZoneBottom
	case value < dcaZoneMax:
		return types.ZoneDCA
	default:
		return types.ZoneWait
	}
}
