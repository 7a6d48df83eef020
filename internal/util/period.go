// Package util holds the period calendar: the component that maps dates to
// period keys and period keys back to date bounds. Periods are calendar
// months; the ledger engine itself treats period keys as opaque strings.
package util

import (
	"fmt"
	"time"

	"github.com/tallyhq/tally-backend/internal/ledger"
)

// monthKeyLayout is the wire format of a period key, e.g. "2026-09".
const monthKeyLayout = "2006-01"

// MonthKey returns the period key for the month containing t.
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthKeyLayout)
}

// MonthKeyOf returns the period key for a year and month.
func MonthKeyOf(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey resolves a period key back to its year and month.
func ParseMonthKey(key string) (year, month int, err error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period key %q: %w", key, err)
	}
	return t.Year(), int(t.Month()), nil
}

// MonthBounds returns the inclusive date bounds of a month, in UTC.
func MonthBounds(year, month int) ledger.PeriodBounds {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return ledger.PeriodBounds{Start: start, End: end}
}

// DateOf truncates t to its calendar date at midnight UTC. Ledger timestamps
// are day-granular; the inclusive bounds from MonthBounds end at midnight on
// the month's last day, so anything stored with a wall-clock time past
// midnight would fall outside its own month.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKeysBetween returns the period keys from (fromYear, fromMonth) through
// (toYear, toMonth) inclusive, in chronological order. An inverted range
// yields an empty slice.
func MonthKeysBetween(fromYear, fromMonth, toYear, toMonth int) []string {
	keys := []string{}
	year, month := fromYear, fromMonth
	for year < toYear || (year == toYear && month <= toMonth) {
		keys = append(keys, MonthKeyOf(year, month))
		month++
		if month > 12 {
			year++
			month = 1
		}
	}
	return keys
}

// PreviousMonth returns the year and month for the previous month.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
