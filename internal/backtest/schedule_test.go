package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestShouldBuy_Daily tests that daily schedules buy on every day
func TestShouldBuy_Daily(t *testing.T) {
	start := day(2024, time.January, 1)

	for offset := 0; offset < 10; offset++ {
		assert.True(t, ShouldBuy(start.AddDate(0, 0, offset), start, types.FrequencyDaily))
	}
}

// TestShouldBuy_Weekly tests the 7-day cadence over a 30-day window
func TestShouldBuy_Weekly(t *testing.T) {
	start := day(2024, time.January, 1)

	var buyDays []int
	for offset := 0; offset < 30; offset++ {
		d := start.AddDate(0, 0, offset)
		if ShouldBuy(d, start, types.FrequencyWeekly) {
			buyDays = append(buyDays, d.Day())
		}
	}

	assert.Equal(t, []int{1, 8, 15, 22, 29}, buyDays)
}

// TestShouldBuy_Biweekly tests the 14-day cadence
func TestShouldBuy_Biweekly(t *testing.T) {
	start := day(2024, time.January, 1)

	assert.True(t, ShouldBuy(start, start, types.FrequencyBiweekly))
	assert.False(t, ShouldBuy(start.AddDate(0, 0, 7), start, types.FrequencyBiweekly))
	assert.True(t, ShouldBuy(start.AddDate(0, 0, 14), start, types.FrequencyBiweekly))
	assert.True(t, ShouldBuy(start.AddDate(0, 0, 28), start, types.FrequencyBiweekly))
}

// TestShouldBuy_MonthlySameDay tests monthly buys on the start day-of-month
func TestShouldBuy_MonthlySameDay(t *testing.T) {
	start := day(2024, time.January, 15)

	assert.True(t, ShouldBuy(day(2024, time.February, 15), start, types.FrequencyMonthly))
	assert.True(t, ShouldBuy(day(2024, time.March, 15), start, types.FrequencyMonthly))
	assert.False(t, ShouldBuy(day(2024, time.February, 14), start, types.FrequencyMonthly))
	assert.False(t, ShouldBuy(day(2024, time.February, 16), start, types.FrequencyMonthly))
}

// TestShouldBuy_MonthlyEndOfMonthRollover tests that a day-31 schedule
// buys on the last day of shorter months instead of skipping them
func TestShouldBuy_MonthlyEndOfMonthRollover(t *testing.T) {
	start := day(2024, time.January, 31)

	// 2024 is a leap year
	assert.True(t, ShouldBuy(day(2024, time.February, 29), start, types.FrequencyMonthly))
	assert.False(t, ShouldBuy(day(2024, time.February, 28), start, types.FrequencyMonthly))

	assert.True(t, ShouldBuy(day(2024, time.April, 30), start, types.FrequencyMonthly))
	assert.True(t, ShouldBuy(day(2024, time.March, 31), start, types.FrequencyMonthly))

	assert.True(t, ShouldBuy(day(2023, time.February, 28), start, types.FrequencyMonthly))
}

// TestShouldBuy_IgnoresTimeOfDay tests that intra-day timestamps do not
// affect the schedule
func TestShouldBuy_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	date := time.Date(2024, time.January, 8, 0, 1, 0, 0, time.UTC)

	assert.True(t, ShouldBuy(date, start, types.FrequencyWeekly))
}

// TestShouldBuy_UnknownFrequency tests that unrecognized frequencies
// never buy
func TestShouldBuy_UnknownFrequency(t *testing.T) {
	start := day(2024, time.January, 1)

	assert.False(t, ShouldBuy(start, start, types.Frequency("hourly")))
}
