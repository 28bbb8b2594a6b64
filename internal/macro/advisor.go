package macro

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Instrument symbols and their documented fallback levels. A quote
// equal to its fallback with zero change is treated as "data
// unavailable" and contributes nothing to the score.
const (
	SymbolCurrencyIndex = "DX-Y.NYB"
	SymbolLongYield     = "^TNX"
	SymbolRateFutures   = "ZQ=F"

	FallbackCurrencyIndex = 104.0
	FallbackLongYield     = 4.2
	// 95.38 implies a 4.62% short rate.
	FallbackRateFutures = 95.38

	DefaultTimeout = 8 * time.Second

	defaultRetailKeyword = "Bitcoin"
	retailWindowDays     = 30

	// Aggregate score at or beyond which the signal leaves neutral.
	signalThreshold = 3
)

var signalLabels = map[types.MacroSignal]string{
	types.MacroEasing:     "Liquidity Easing (bullish for BTC) 🌊",
	types.MacroTightening: "Liquidity Tightening (bearish for BTC) ⚠️",
	types.MacroNeutral:    "Liquidity Neutral ⚖️",
}

// Advisor scores macro quotes into an easing/neutral/tightening
// signal. The trends provider is optional; a nil one skips the retail
// indicator entirely.
type Advisor struct {
	quotes  data.QuoteProvider
	trends  data.TrendsProvider
	timeout time.Duration
	keyword string
}

// New creates a macro Advisor. A zero timeout selects DefaultTimeout.
func New(quotes data.QuoteProvider, trends data.TrendsProvider, timeout time.Duration) *Advisor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Advisor{
		quotes:  quotes,
		trends:  trends,
		timeout: timeout,
		keyword: defaultRetailKeyword,
	}
}

// changeBand is one row of a declarative scoring table: Op compares
// the observed change against Threshold, and the first matching row
// wins. A value matching no row scores 0.
type changeBand struct {
	Op        string // "<=", "<", ">=", ">"
	Threshold float64
	Score     int
}

func (b changeBand) matches(v float64) bool {
	switch b.Op {
	case "<=":
		return v <= b.Threshold
	case "<":
		return v < b.Threshold
	case ">=":
		return v >= b.Threshold
	case ">":
		return v > b.Threshold
	default:
		return false
	}
}

func scoreChange(bands []changeBand, v float64) int {
	for _, b := range bands {
		if b.matches(v) {
			return b.Score
		}
	}
	return 0
}

// rateBands score the implied short-rate change in basis points.
var rateBands = []changeBand{
	{"<=", -5, -3},
	{"<", -1, -1},
	{">=", 5, 3},
	{">", 1, 1},
}

// yieldBands score the long yield's daily percent change.
var yieldBands = []changeBand{
	{"<", -1.5, -2},
	{"<", -0.5, -1},
	{">", 1.5, 2},
	{">", 0.5, 1},
}

// currencyBands score the currency index's daily percent change.
var currencyBands = []changeBand{
	{"<", -0.5, -2},
	{"<", -0.2, -1},
	{">", 0.5, 2},
	{">", 0.2, 1},
}

// AnalyzeMacroLiquidity fetches the macro quotes concurrently, each
// guarded by a timeout with fallback, and scores them. Reasoning is
// appended per indicator in a fixed order; the last entry is always
// the aggregate summary.
func (a *Advisor) AnalyzeMacroLiquidity(ctx context.Context) *types.MacroAnalysis {
	var (
		wg       sync.WaitGroup
		currency types.Quote
		yield    types.Quote
		futures  types.Quote
		retail   types.SearchInterest
	)

	fetchQuote := func(symbol string, fallbackValue float64, dst *types.Quote) {
		defer wg.Done()
		*dst = data.FetchWithFallback(ctx, symbol, a.timeout, types.Quote{Value: fallbackValue}, func(ctx context.Context) (types.Quote, error) {
			return a.quotes.Quote(ctx, symbol)
		})
	}

	wg.Add(3)
	go fetchQuote(SymbolCurrencyIndex, FallbackCurrencyIndex, &currency)
	go fetchQuote(SymbolLongYield, FallbackLongYield, &yield)
	go fetchQuote(SymbolRateFutures, FallbackRateFutures, &futures)
	if a.trends != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			retail = data.FetchWithFallback(ctx, "search_interest", a.timeout, types.SearchInterest{}, func(ctx context.Context) (types.SearchInterest, error) {
				return a.trends.SearchInterest(ctx, a.keyword, retailWindowDays)
			})
		}()
	}
	wg.Wait()

	monitoring.RecordAnalysis("macro")

	// A rate-futures price of P implies a policy rate of 100-P, so a
	// rising price means the market prices more cuts.
	impliedRate := 100 - futures.Value
	rateChangeBps := -futures.Change * 100

	var reasoning []string
	score := 0

	// 1. Short-rate futures: the most direct read on cut expectations.
	if futures.Value == FallbackRateFutures && futures.ChangePercent == 0 {
		reasoning = append(reasoning, "Rate futures data unavailable or flat, estimating from fallback level")
	} else {
		s := scoreChange(rateBands, rateChangeBps)
		score += s
		reasoning = append(reasoning, rateReasoning(s, impliedRate, rateChangeBps))
	}

	// 2. Long yield: the risk-free benchmark.
	if yield.Value == FallbackLongYield && yield.ChangePercent == 0 {
		reasoning = append(reasoning, "Treasury yield data unavailable or flat, estimating from fallback level")
	} else {
		s := scoreChange(yieldBands, yield.ChangePercent)
		score += s
		reasoning = append(reasoning, yieldReasoning(s, yield))
	}

	// 3. Currency index: a weaker dollar releases global liquidity.
	if currency.Value == FallbackCurrencyIndex && currency.ChangePercent == 0 {
		reasoning = append(reasoning, "Dollar index data unavailable or flat, estimating from fallback level")
	} else {
		s := scoreChange(currencyBands, currency.ChangePercent)
		score += s
		reasoning = append(reasoning, currencyReasoning(s, currency))
	}

	// 4. Retail search interest, when a trends provider is wired.
	var retailOut *types.RetailSentiment
	if a.trends != nil {
		if retail.Trend == "" {
			reasoning = append(reasoning, "Retail search data unavailable, indicator skipped")
		} else {
			s := 0
			if retail.Trend == types.SearchTrendSpiking && retail.RecentAverage > 75 {
				s = 2
			} else if retail.Trend == types.SearchTrendCooling && retail.RecentAverage < 30 {
				s = -2
			}
			score += s
			reasoning = append(reasoning, retailReasoning(s, retail))
			retailOut = &types.RetailSentiment{
				RecentAverage: retail.RecentAverage,
				Trend:         retail.Trend,
			}
		}
	}

	signal := types.MacroNeutral
	switch {
	case score <= -signalThreshold:
		signal = types.MacroEasing
		reasoning = append(reasoning, "Macro summary: front-end cut pricing with a softer long end and dollar is opening the liquidity taps; bitcoin enjoys a strong macro tailwind.")
	case score >= signalThreshold:
		signal = types.MacroTightening
		reasoning = append(reasoning, "Macro summary: rising rate expectations with a firmer long end are pulling liquidity out; bitcoin faces a hostile macro backdrop.")
	default:
		reasoning = append(reasoning, "Macro summary: indicators are mixed or little changed and overall liquidity is neutral; bitcoin direction defers to crypto-native flows.")
	}

	return &types.MacroAnalysis{
		Signal:      signal,
		SignalLabel: signalLabels[signal],
		CurrencyIndex: types.Quote{
			Value:         round(currency.Value, 3),
			Change:        round(currency.Change, 3),
			ChangePercent: round(currency.ChangePercent, 2),
		},
		LongYield: types.Quote{
			Value:         round(yield.Value, 3),
			Change:        round(yield.Change, 3),
			ChangePercent: round(yield.ChangePercent, 2),
		},
		ImpliedFedRate: types.ImpliedRate{
			Value:     round(impliedRate, 3),
			ChangeBps: round(rateChangeBps, 1),
		},
		Retail:    retailOut,
		Reasoning: reasoning,
		Timestamp: time.Now().UTC(),
	}
}

func rateReasoning(score int, impliedRate, changeBps float64) string {
	switch {
	case score <= -3:
		return fmt.Sprintf("Fed funds futures imply the short rate falling to %.2f%% (pricing a %.0fbps cut); the market is rapidly pricing dovish policy, a strong tailwind for bitcoin liquidity.", impliedRate, math.Abs(changeBps))
	case score < 0:
		return fmt.Sprintf("Fed funds futures imply the short rate edging down to %.2f%%; front-end funding is marginally easier.", impliedRate)
	case score >= 3:
		return fmt.Sprintf("Fed funds futures imply the short rate rising to %.2f%% (pricing a %.0fbps hike); cut expectations are being unwound, a meaningful headwind for bitcoin.", impliedRate, changeBps)
	case score > 0:
		return fmt.Sprintf("Fed funds futures imply the short rate ticking up to %.2f%%; front-end funding is marginally tighter.", impliedRate)
	default:
		return fmt.Sprintf("Fed funds futures hold the implied short rate steady at %.2f%%; near-term policy expectations are stable.", impliedRate)
	}
}

func yieldReasoning(score int, q types.Quote) string {
	switch {
	case score <= -2:
		return fmt.Sprintf("10Y Treasury yield dropped sharply to %.2f%% (down %.2f%% on the day); long-end borrowing costs are materially lower.", q.Value, math.Abs(q.ChangePercent))
	case score < 0:
		return fmt.Sprintf("10Y Treasury yield drifted down to %.2f%%; medium-term funding conditions are improving at the margin.", q.Value)
	case score >= 2:
		return fmt.Sprintf("10Y Treasury yield surged to %.2f%% (up %.2f%% on the day); the long end is draining liquidity.", q.Value, q.ChangePercent)
	case score > 0:
		return fmt.Sprintf("10Y Treasury yield rose to %.2f%%; long-end borrowing costs are tightening at the margin.", q.Value)
	default:
		return fmt.Sprintf("10Y Treasury yield steady at %.2f%%; the long end offers no clear direction.", q.Value)
	}
}

func currencyReasoning(score int, q types.Quote) string {
	switch {
	case score <= -2:
		return fmt.Sprintf("Dollar index fell to %.2f (down %.2f%% on the day); a weaker dollar is releasing global liquidity toward risk assets.", q.Value, math.Abs(q.ChangePercent))
	case score < 0:
		return fmt.Sprintf("Dollar index slipped to %.2f; FX conditions are loosening mildly.", q.Value)
	case score >= 2:
		return fmt.Sprintf("Dollar index rallied to %.2f (up %.2f%% on the day); capital is flowing back into dollars and pressuring crypto liquidity.", q.Value, q.ChangePercent)
	case score > 0:
		return fmt.Sprintf("Dollar index firmed to %.2f; dollar strength weighs on bitcoin.", q.Value)
	default:
		return fmt.Sprintf("Dollar index flat at %.2f; FX offers no macro direction.", q.Value)
	}
}

func retailReasoning(score int, r types.SearchInterest) string {
	switch {
	case score > 0:
		return fmt.Sprintf("Retail search interest is spiking (recent average %.0f); late-cycle retail enthusiasm often precedes local tops.", r.RecentAverage)
	case score < 0:
		return fmt.Sprintf("Retail search interest has cooled to a recent average of %.0f; disinterest this deep has historically marked accumulation phases.", r.RecentAverage)
	default:
		return fmt.Sprintf("Retail search interest is %s (recent average %.0f); no score adjustment.", r.Trend, r.RecentAverage)
	}
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
