package dip

import (
	"fmt"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Ladder-based dip sizing: the lower the Fear & Greed Index, the
// larger the recommended extra buy, always capped by available fiat.

const (
	// Threshold defaults applied when the request leaves them zero.
	DefaultExtremeFearThreshold = 20
	DefaultFearThreshold        = 40

	// FGI at or above which cash accumulation is recommended instead.
	greedCutoff = 75

	// Extreme fear: up to 5x the base amount, at most 30% of fiat.
	extremeMultiplier = 5
	extremeFiatShare  = 0.30

	// Regular fear: up to 2x the base amount, at most 10% of fiat.
	fearMultiplier = 2
	fearFiatShare  = 0.10

	// Buys below this are downgraded to HOLD; fees make micro
	// purchases inefficient.
	minBuyUSD = 10
)

// Calculate returns a dip-sizing recommendation for the given request.
// It is a pure function over its input.
func Calculate(cfg types.DipConfig) types.DipAction {
	extremeFear := cfg.ExtremeFearThreshold
	if extremeFear == 0 {
		extremeFear = DefaultExtremeFearThreshold
	}
	fear := cfg.FearThreshold
	if fear == 0 {
		fear = DefaultFearThreshold
	}

	if cfg.AvailableFiat <= 0 {
		return types.DipAction{
			Action:    types.DipHold,
			RiskLevel: types.RiskMedium,
			Reasoning: []string{"Available fiat reserve is empty; no extra buying is possible right now."},
		}
	}

	var (
		action    types.DipActionKind
		riskLevel types.RiskLevel
		amount    float64
		reasoning []string
	)

	switch {
	case cfg.CurrentFGI <= extremeFear:
		action = types.DipBuy
		riskLevel = types.RiskExtreme
		amount = min(float64(extremeMultiplier)*cfg.BaseAmount, extremeFiatShare*cfg.AvailableFiat)
		reasoning = append(reasoning,
			fmt.Sprintf("Fear & Greed Index at %d, inside the extreme-fear band (<= %d).", cfg.CurrentFGI, extremeFear),
			fmt.Sprintf("Ladder signal triggered: up to 5x the base amount, buying $%.2f.", amount),
			fmt.Sprintf("Liquidity check: this uses about %.1f%% of the available reserve.", amount/cfg.AvailableFiat*100))

	case cfg.CurrentFGI <= fear:
		action = types.DipBuy
		riskLevel = types.RiskHigh
		amount = min(float64(fearMultiplier)*cfg.BaseAmount, fearFiatShare*cfg.AvailableFiat)
		reasoning = append(reasoning,
			fmt.Sprintf("Fear & Greed Index at %d, inside the fear band (<= %d).", cfg.CurrentFGI, fear),
			fmt.Sprintf("Moderate add signal: up to 2x the base amount, buying $%.2f.", amount))

	case cfg.CurrentFGI >= greedCutoff:
		action = types.DipAccumulateFiat
		riskLevel = types.RiskLow
		reasoning = append(reasoning,
			fmt.Sprintf("Fear & Greed Index at %d, the market is in extreme greed.", cfg.CurrentFGI),
			"Pause extra buying and accumulate fiat for the next pullback.")

	default:
		action = types.DipHold
		riskLevel = types.RiskMedium
		amount = cfg.BaseAmount
		reasoning = append(reasoning,
			fmt.Sprintf("Fear & Greed Index at %d, sentiment is neutral.", cfg.CurrentFGI),
			fmt.Sprintf("Maintain the regular DCA plan ($%.2f).", cfg.BaseAmount))
	}

	if amount > cfg.AvailableFiat {
		amount = cfg.AvailableFiat
	}

	// Fee-inefficient micro purchases are not worth executing.
	if action == types.DipBuy && amount < minBuyUSD {
		reasoning = append(reasoning, "Computed buy amount is too small to be fee-efficient; holding instead.")
		action = types.DipHold
		amount = 0
	}

	return types.DipAction{
		Action:            action,
		RecommendedAmount: amount,
		Reasoning:         reasoning,
		RiskLevel:         riskLevel,
	}
}
