package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

func validDCAConfig() types.DCAConfig {
	return types.DCAConfig{
		StartDate:       time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Frequency:       types.FrequencyWeekly,
		Amount:          100,
		FearThreshold:   25,
		GreedThreshold:  75,
		FearMultiplier:  2.0,
		GreedMultiplier: 0.5,
	}
}

// TestValidateDCAConfig_Valid tests a well-formed config
func TestValidateDCAConfig_Valid(t *testing.T) {
	assert.NoError(t, ValidateDCAConfig(validDCAConfig()))
}

// TestValidateDCAConfig_DateOrder tests the start/end ordering check
func TestValidateDCAConfig_DateOrder(t *testing.T) {
	cfg := validDCAConfig()
	cfg.StartDate, cfg.EndDate = cfg.EndDate, cfg.StartDate
	assert.Error(t, ValidateDCAConfig(cfg))
}

// TestValidateDCAConfig_MissingDates tests zero dates
func TestValidateDCAConfig_MissingDates(t *testing.T) {
	cfg := validDCAConfig()
	cfg.StartDate = time.Time{}
	assert.Error(t, ValidateDCAConfig(cfg))
}

// TestValidateDCAConfig_Amount tests the positive amount check
func TestValidateDCAConfig_Amount(t *testing.T) {
	cfg := validDCAConfig()
	cfg.Amount = 0
	assert.Error(t, ValidateDCAConfig(cfg))

	cfg.Amount = -50
	assert.Error(t, ValidateDCAConfig(cfg))
}

// TestValidateDCAConfig_Frequency tests the frequency whitelist
func TestValidateDCAConfig_Frequency(t *testing.T) {
	cfg := validDCAConfig()
	cfg.Frequency = types.Frequency("hourly")
	assert.Error(t, ValidateDCAConfig(cfg))

	for _, f := range []types.Frequency{types.FrequencyDaily, types.FrequencyWeekly, types.FrequencyBiweekly, types.FrequencyMonthly} {
		cfg.Frequency = f
		assert.NoError(t, ValidateDCAConfig(cfg))
	}
}

// TestValidateDCAConfig_ThresholdRange tests the [0,100] threshold range
func TestValidateDCAConfig_ThresholdRange(t *testing.T) {
	cfg := validDCAConfig()
	cfg.FearThreshold = 101
	assert.Error(t, ValidateDCAConfig(cfg))

	cfg = validDCAConfig()
	cfg.GreedThreshold = -1
	assert.Error(t, ValidateDCAConfig(cfg))
}

// TestValidateDCAConfig_Multipliers tests the positive multiplier checks
func TestValidateDCAConfig_Multipliers(t *testing.T) {
	cfg := validDCAConfig()
	cfg.FearMultiplier = 0
	assert.Error(t, ValidateDCAConfig(cfg))

	cfg = validDCAConfig()
	cfg.GreedMultiplier = -0.5
	assert.Error(t, ValidateDCAConfig(cfg))
}

// TestValidateDipConfig_Valid tests a well-formed dip request
func TestValidateDipConfig_Valid(t *testing.T) {
	assert.NoError(t, ValidateDipConfig(types.DipConfig{
		AvailableFiat: 1000,
		BaseAmount:    100,
		CurrentFGI:    50,
	}))
}

// TestValidateDipConfig_FGIRange tests the FGI range check
func TestValidateDipConfig_FGIRange(t *testing.T) {
	assert.Error(t, ValidateDipConfig(types.DipConfig{CurrentFGI: 101}))
	assert.Error(t, ValidateDipConfig(types.DipConfig{CurrentFGI: -1}))
}

// TestValidateDipConfig_NegativeBaseAmount tests the base amount check
func TestValidateDipConfig_NegativeBaseAmount(t *testing.T) {
	assert.Error(t, ValidateDipConfig(types.DipConfig{BaseAmount: -10, CurrentFGI: 50}))
}

// TestValidateDipConfig_ThresholdRange tests the optional threshold
// ranges
func TestValidateDipConfig_ThresholdRange(t *testing.T) {
	assert.Error(t, ValidateDipConfig(types.DipConfig{CurrentFGI: 50, ExtremeFearThreshold: 150}))
	assert.Error(t, ValidateDipConfig(types.DipConfig{CurrentFGI: 50, FearThreshold: -5}))
}
