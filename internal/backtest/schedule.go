package backtest

import (
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// ShouldBuy reports whether a schedule with the given start date and
// frequency buys on date. Dates are compared at day granularity in UTC.
//
// Monthly schedules buy on the start day-of-month; when the current
// month is shorter than that day, they buy on the month's last day
// instead so no month is skipped.
func ShouldBuy(date, start time.Time, frequency types.Frequency) bool {
	date = truncateDay(date)
	start = truncateDay(start)
	diffDays := int(date.Sub(start).Hours() / 24)

	switch frequency {
	case types.FrequencyDaily:
		return true
	case types.FrequencyWeekly:
		return diffDays%7 == 0
	case types.FrequencyBiweekly:
		return diffDays%14 == 0
	case types.FrequencyMonthly:
		last := lastDayOfMonth(date)
		return date.Day() == start.Day() ||
			(date.Day() == last && start.Day() > last)
	default:
		return false
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
