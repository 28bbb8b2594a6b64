package backtest

import (
	"math"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Performance metrics are pure functions over a completed trajectory.
// Division-guard cases (zero invested capital, zero BTC held, zero
// peak) all resolve to 0 rather than propagating a numeric error.

// CalcROI returns the total return on invested capital as a
// percentage.
func CalcROI(totalInvested, finalValue float64) float64 {
	if totalInvested == 0 {
		return 0
	}
	return (finalValue - totalInvested) / totalInvested * 100
}

// CalcAnnualizedReturn returns the constant yearly growth rate implied
// by the total return over days elapsed days, as a percentage.
func CalcAnnualizedReturn(totalInvested, finalValue float64, days int) float64 {
	if totalInvested == 0 || days == 0 {
		return 0
	}
	totalReturn := finalValue / totalInvested
	years := float64(days) / 365
	return (math.Pow(totalReturn, 1/years) - 1) * 100
}

// CalcMaxDrawdown returns the largest peak-to-trough decline in
// portfolio value across the ordered event sequence, as a percentage.
func CalcMaxDrawdown(buys []types.BuyEvent) float64 {
	if len(buys) == 0 {
		return 0
	}

	peak := 0.0
	maxDD := 0.0
	for _, buy := range buys {
		if buy.PortfolioValue > peak {
			peak = buy.PortfolioValue
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - buy.PortfolioValue) / peak * 100
		if drawdown > maxDD {
			maxDD = drawdown
		}
	}
	return maxDD
}

// CalcAverageCost returns the average USD paid per BTC.
func CalcAverageCost(totalInvested, totalBTC float64) float64 {
	if totalBTC == 0 {
		return 0
	}
	return totalInvested / totalBTC
}
