package data

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

const (
	coinGeckoDefaultBase = "https://api.coingecko.com/api/v3"

	spotCacheTTL    = 30 * time.Second
	historyCacheTTL = 5 * time.Minute
)

// CoinGeckoProvider implements PriceProvider against the CoinGecko
// market-chart API.
type CoinGeckoProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   Cache
}

// NewCoinGeckoProvider creates a CoinGecko-backed price provider.
// An empty baseURL selects the public API.
func NewCoinGeckoProvider(baseURL, apiKey string, cache Cache) *CoinGeckoProvider {
	if baseURL == "" {
		baseURL = coinGeckoDefaultBase
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &CoinGeckoProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

// Name identifies the provider.
func (p *CoinGeckoProvider) Name() string { return "coingecko" }

func (p *CoinGeckoProvider) headers() map[string]string {
	if p.apiKey == "" {
		return nil
	}
	return map[string]string{"x-cg-demo-api-key": p.apiKey}
}

// priceHistory returns raw price samples for [from, to], ascending,
// at whatever resolution the API serves for the span.
func (p *CoinGeckoProvider) priceHistory(ctx context.Context, from, to time.Time) ([]types.PricePoint, error) {
	url := fmt.Sprintf("%s/coins/bitcoin/market_chart/range?vs_currency=usd&from=%d&to=%d",
		p.baseURL, from.Unix(), to.Unix())

	var payload struct {
		Prices [][2]float64 `json:"prices"`
	}
	if err := fetchJSON(ctx, p.client, p.cache, p.Name(), url, p.headers(), historyCacheTTL, &payload); err != nil {
		return nil, err
	}

	points := make([]types.PricePoint, 0, len(payload.Prices))
	for _, pair := range payload.Prices {
		points = append(points, types.PricePoint{
			Timestamp: time.UnixMilli(int64(pair[0])).UTC(),
			Price:     pair[1],
		})
	}
	return points, nil
}

// DailyPrices returns the history de-duplicated to the first sample of
// each UTC calendar day, ascending.
func (p *CoinGeckoProvider) DailyPrices(ctx context.Context, from, to time.Time) ([]types.PricePoint, error) {
	prices, err := p.priceHistory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return DeduplicateDaily(prices), nil
}

// CurrentPrice returns the spot price with 24h change and market cap.
func (p *CoinGeckoProvider) CurrentPrice(ctx context.Context) (types.SpotPrice, error) {
	url := p.baseURL + "/simple/price?ids=bitcoin&vs_currencies=usd&include_24hr_change=true&include_market_cap=true"

	var payload struct {
		Bitcoin struct {
			USD          float64 `json:"usd"`
			USD24hChange float64 `json:"usd_24h_change"`
			USDMarketCap float64 `json:"usd_market_cap"`
		} `json:"bitcoin"`
	}
	if err := fetchJSON(ctx, p.client, p.cache, p.Name(), url, p.headers(), spotCacheTTL, &payload); err != nil {
		return types.SpotPrice{}, err
	}

	return types.SpotPrice{
		Price:     payload.Bitcoin.USD,
		Change24h: payload.Bitcoin.USD24hChange,
		MarketCap: payload.Bitcoin.USDMarketCap,
	}, nil
}

// DeduplicateDaily keeps the first sample of each UTC calendar day and
// returns the result in chronological order.
func DeduplicateDaily(prices []types.PricePoint) []types.PricePoint {
	byDay := make(map[string]types.PricePoint, len(prices))
	for _, pt := range prices {
		key := pt.DateKey()
		if _, seen := byDay[key]; !seen {
			byDay[key] = pt
		}
	}

	daily := make([]types.PricePoint, 0, len(byDay))
	for _, pt := range byDay {
		daily = append(daily, pt)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Timestamp.Before(daily[j].Timestamp)
	})
	return daily
}

// MovingAverage computes the simple moving average of the most recent
// days daily samples. If fewer samples exist it averages whatever is
// available; zero samples yield 0.
func MovingAverage(ctx context.Context, p PriceProvider, days int) (float64, error) {
	now := time.Now().UTC()
	// Small buffer for incomplete days at the range edges.
	from := now.AddDate(0, 0, -(days + 10))

	prices, err := p.DailyPrices(ctx, from, now)
	if err != nil {
		return 0, err
	}
	if len(prices) == 0 {
		return 0, nil
	}
	if len(prices) > days {
		prices = prices[len(prices)-days:]
	}

	sum := 0.0
	for _, pt := range prices {
		sum += pt.Price
	}
	return sum / float64(len(prices)), nil
}
