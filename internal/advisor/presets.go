package advisor

import (
	"fmt"
	"math"
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

var signalLabels = map[types.Signal]string{
	types.SignalStrongBuy:    "Strong Buy 🟢🟢",
	types.SignalBuy:          "Buy 🟢",
	types.SignalNeutral:      "Neutral 🟡",
	types.SignalReduce:       "Reduce 🟠",
	types.SignalStrongReduce: "Pause 🔴",
}

// signalPresets maps each signal to its recommended smart-DCA
// parameter set.
var signalPresets = map[types.Signal]types.Suggestion{
	types.SignalStrongBuy: {
		Frequency:       types.FrequencyDaily,
		FearThreshold:   30,
		GreedThreshold:  75,
		FearMultiplier:  3.0,
		GreedMultiplier: 0.5,
	},
	types.SignalBuy: {
		Frequency:       types.FrequencyWeekly,
		FearThreshold:   25,
		GreedThreshold:  75,
		FearMultiplier:  2.0,
		GreedMultiplier: 0.5,
	},
	types.SignalNeutral: {
		Frequency:       types.FrequencyWeekly,
		FearThreshold:   25,
		GreedThreshold:  75,
		FearMultiplier:  2.0,
		GreedMultiplier: 0.5,
	},
	types.SignalReduce: {
		Frequency:       types.FrequencyBiweekly,
		FearThreshold:   25,
		GreedThreshold:  70,
		FearMultiplier:  1.5,
		GreedMultiplier: 0.3,
	},
	types.SignalStrongReduce: {
		Frequency:       types.FrequencyMonthly,
		FearThreshold:   25,
		GreedThreshold:  65,
		FearMultiplier:  1.0,
		GreedMultiplier: 0.2,
	},
}

// buildSuggestion attaches human-readable reasoning to the preset for
// the given signal.
func buildSuggestion(signal types.Signal, fgiValue int, trend types.FGITrend, change24h float64) types.Suggestion {
	suggestion := signalPresets[signal]
	var reasoning []string

	switch signal {
	case types.SignalStrongBuy:
		reasoning = append(reasoning,
			fmt.Sprintf("Fear & Greed Index at just %d, the market is in extreme fear", fgiValue),
			"Raise DCA frequency to daily and the fear multiplier to 3x")
		if change24h <= -5 {
			reasoning = append(reasoning,
				fmt.Sprintf("BTC is down %.1f%% in 24h; short-term panic like this has historically been a good entry", math.Abs(change24h)))
		}
	case types.SignalBuy:
		reasoning = append(reasoning,
			fmt.Sprintf("FGI at %d, the market is in the fear zone", fgiValue),
			"Keep weekly DCA with a 2x fear multiplier")
		if trend == types.TrendFalling {
			reasoning = append(reasoning,
				"FGI has been falling over the past week; fear is deepening and adding is reasonable")
		}
	case types.SignalNeutral:
		reasoning = append(reasoning,
			fmt.Sprintf("FGI at %d, sentiment is neutral", fgiValue),
			"Keep the default DCA strategy, no adjustment needed")
	case types.SignalReduce:
		reasoning = append(reasoning,
			fmt.Sprintf("FGI at %d, the market is leaning greedy", fgiValue),
			"Lower the frequency to biweekly and cut the greed multiplier to 0.3x")
		if trend == types.TrendRising {
			reasoning = append(reasoning,
				"The FGI trend is rising; greed may intensify further")
		}
	case types.SignalStrongReduce:
		reasoning = append(reasoning,
			fmt.Sprintf("FGI as high as %d, the market is in extreme greed", fgiValue),
			"Drop DCA frequency to monthly, cut the greed multiplier to 0.2x and hold cash for a pullback",
			"Extreme greed has historically accompanied short-term tops")
	}

	suggestion.Reasoning = reasoning
	return suggestion
}

// unavailableAnalysis is returned when every provider degraded to its
// fallback at once.
func unavailableAnalysis(now time.Time) *types.MarketAnalysis {
	suggestion := signalPresets[types.SignalNeutral]
	suggestion.Reasoning = []string{
		"Market data could not be fetched; keep the default DCA strategy",
		"Check connectivity and retry",
	}

	return &types.MarketAnalysis{
		Signal:      types.SignalNeutral,
		SignalLabel: "Data Unavailable ⚠️",
		FGI: types.FGISnapshot{
			Label: "Unknown",
			Trend: types.TrendStable,
		},
		Suggestion: suggestion,
		Confidence: 0,
		Timestamp:  now,
	}
}
