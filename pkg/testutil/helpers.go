// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
)

// FindScenario returns the "original" or "new" plan of a comparison.
// Returns nil for any other name.
func FindScenario(result *amortization.Comparison, name string) *amortization.ScenarioResult {
	if result == nil {
		return nil
	}
	switch name {
	case "original":
		return &result.Original
	case "new":
		return &result.New
	}
	return nil
}

// FindRow returns the row for a 1-based period, or nil if the schedule
// ended earlier.
func FindRow(schedule amortization.Schedule, period int) *amortization.PaymentRow {
	for i := range schedule {
		if schedule[i].Period == period {
			return &schedule[i]
		}
	}
	return nil
}

// AlmostEqual reports whether a and b differ by at most tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
