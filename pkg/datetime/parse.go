// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the
	// output date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a scenario date in DateLayout. An empty string yields the
// first day of the month containing now.
func ParseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return FirstOfMonth(now), nil
	}
	return time.Parse(DateLayout, value)
}

// FirstOfMonth truncates t to midnight UTC on the first day of its month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances t by whole calendar months. Days past the end of the
// target month roll over into the following month, e.g. Jan 31 + 1 month
// is Mar 3 (Mar 2 in a leap year).
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// Format renders t in DateLayout.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}
