package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// BybitPriceProvider implements PriceProvider against the Bybit v5
// market API using daily spot klines. It is an alternative to the
// CoinGecko provider for deployments already holding Bybit keys; the
// public market endpoints need no authentication.
type BybitPriceProvider struct {
	client *bybit_api.Client
	symbol string
}

// NewBybitPriceProvider creates a Bybit-backed price provider for the
// given spot symbol (e.g. "BTCUSDT").
func NewBybitPriceProvider(apiKey, apiSecret, symbol string) *BybitPriceProvider {
	if symbol == "" {
		symbol = "BTCUSDT"
	}
	client := bybit_api.NewBybitHttpClient(apiKey, apiSecret, bybit_api.WithBaseURL(bybit_api.MAINNET))
	return &BybitPriceProvider{client: client, symbol: symbol}
}

// Name identifies the provider.
func (p *BybitPriceProvider) Name() string { return "bybit" }

// DailyPrices returns one daily-close sample per calendar day in
// [from, to], ascending.
func (p *BybitPriceProvider) DailyPrices(ctx context.Context, from, to time.Time) ([]types.PricePoint, error) {
	params := map[string]interface{}{
		"category": "spot",
		"symbol":   p.symbol,
		"interval": "D",
		"start":    from.UnixMilli(),
		"end":      to.UnixMilli(),
		"limit":    1000,
	}

	result, err := p.client.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx)
	if err != nil {
		return nil, fmt.Errorf("get klines: %w", err)
	}

	klines, err := parseBybitKlines(result)
	if err != nil {
		return nil, fmt.Errorf("parse kline response: %w", err)
	}
	return DeduplicateDaily(klines), nil
}

// CurrentPrice returns the spot ticker for the symbol. Bybit tickers
// carry the 24h change as a ratio; it is converted to percent here.
func (p *BybitPriceProvider) CurrentPrice(ctx context.Context) (types.SpotPrice, error) {
	params := map[string]interface{}{
		"category": "spot",
		"symbol":   p.symbol,
	}

	result, err := p.client.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	if err != nil {
		return types.SpotPrice{}, fmt.Errorf("get tickers: %w", err)
	}

	spot, err := parseBybitTicker(result, p.symbol)
	if err != nil {
		return types.SpotPrice{}, fmt.Errorf("parse ticker response: %w", err)
	}
	return spot, nil
}

func parseBybitTicker(response interface{}, symbol string) (types.SpotPrice, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return types.SpotPrice{}, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return types.SpotPrice{}, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return types.SpotPrice{}, fmt.Errorf("marshal result: %w", err)
	}

	var tickerResult struct {
		List []struct {
			LastPrice    string `json:"lastPrice"`
			Price24hPcnt string `json:"price24hPcnt"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &tickerResult); err != nil {
		return types.SpotPrice{}, fmt.Errorf("unmarshal ticker result: %w", err)
	}
	if len(tickerResult.List) == 0 {
		return types.SpotPrice{}, fmt.Errorf("no ticker data for %s", symbol)
	}

	t := tickerResult.List[0]
	return types.SpotPrice{
		Price:     parseFloat(t.LastPrice),
		Change24h: parseFloat(t.Price24hPcnt) * 100,
	}, nil
}

func parseBybitKlines(response interface{}) ([]types.PricePoint, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	var klineResult struct {
		List [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("unmarshal kline result: %w", err)
	}

	// Bybit kline rows: [startTime, open, high, low, close, volume, turnover],
	// newest first.
	var points []types.PricePoint
	for _, item := range klineResult.List {
		if len(item) < 5 {
			continue
		}
		points = append(points, types.PricePoint{
			Timestamp: time.UnixMilli(parseInt(item[0])).UTC(),
			Price:     parseFloat(item[4]),
		})
	}
	return points, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
