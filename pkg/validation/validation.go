package validation

import (
	"fmt"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// ValidateDCAConfig checks the structural invariants of a backtest
// request before any simulation runs.
func ValidateDCAConfig(cfg types.DCAConfig) error {
	if cfg.StartDate.IsZero() || cfg.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if cfg.StartDate.After(cfg.EndDate) {
		return fmt.Errorf("start date %s is after end date %s",
			cfg.StartDate.Format(types.DateKeyFormat), cfg.EndDate.Format(types.DateKeyFormat))
	}
	if cfg.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %.2f", cfg.Amount)
	}

	switch cfg.Frequency {
	case types.FrequencyDaily, types.FrequencyWeekly, types.FrequencyBiweekly, types.FrequencyMonthly:
	default:
		return fmt.Errorf("unknown frequency %q (use daily, weekly, biweekly, monthly)", cfg.Frequency)
	}

	if cfg.FearThreshold < 0 || cfg.FearThreshold > 100 {
		return fmt.Errorf("fear threshold must be in [0,100], got %d", cfg.FearThreshold)
	}
	if cfg.GreedThreshold < 0 || cfg.GreedThreshold > 100 {
		return fmt.Errorf("greed threshold must be in [0,100], got %d", cfg.GreedThreshold)
	}
	if cfg.FearMultiplier <= 0 {
		return fmt.Errorf("fear multiplier must be positive, got %.2f", cfg.FearMultiplier)
	}
	if cfg.GreedMultiplier <= 0 {
		return fmt.Errorf("greed multiplier must be positive, got %.2f", cfg.GreedMultiplier)
	}
	return nil
}

// ValidateDipConfig checks a dip-sizing request.
func ValidateDipConfig(cfg types.DipConfig) error {
	if cfg.BaseAmount < 0 {
		return fmt.Errorf("base amount must not be negative, got %.2f", cfg.BaseAmount)
	}
	if cfg.CurrentFGI < 0 || cfg.CurrentFGI > 100 {
		return fmt.Errorf("FGI must be in [0,100], got %d", cfg.CurrentFGI)
	}
	if cfg.ExtremeFearThreshold < 0 || cfg.ExtremeFearThreshold > 100 {
		return fmt.Errorf("extreme fear threshold must be in [0,100], got %d", cfg.ExtremeFearThreshold)
	}
	if cfg.FearThreshold < 0 || cfg.FearThreshold > 100 {
		return fmt.Errorf("fear threshold must be in [0,100], got %d", cfg.FearThreshold)
	}
	return nil
}
