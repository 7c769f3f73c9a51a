package amortization

import (
	"math"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/mathutil"
)

// SolveRemainingPeriods finds how many periods a fixed payment needs to repay
// principal at the given periodic rate.
//
// A bounded linear search looks for the first n whose amortizable principal
// lands within SolverMatchTolerance of the target, stopping as soon as it
// overshoots. When the search finds nothing the closed form
// n = -ln(1 - P*r/M) / ln(1+r) is used, rounded up.
//
// The payment must exceed the first period's interest (principal * rate).
// Otherwise the closed form has no real solution and 0 is returned; callers
// are expected to validate this beforehand.
func SolveRemainingPeriods(principal, periodicRate, payment float64) int {
	if periodicRate == 0 {
		return ceilPeriods(principal / payment)
	}

	for n := 1; n < constants.SolverMaxPeriods; n++ {
		calculated := amortizablePrincipal(payment, periodicRate, n)
		if mathutil.WithinTolerance(calculated, principal, constants.SolverMatchTolerance) {
			return n
		}
		// amortizablePrincipal grows with n, so once past the target no
		// later n can match.
		if calculated > principal {
			break
		}
	}

	return ceilPeriods(-math.Log(1-principal*periodicRate/payment) / math.Log(1+periodicRate))
}

// ceilPeriods rounds a fractional period count up, mapping non-finite and
// out of range values to 0 since converting them to int is undefined.
func ceilPeriods(n float64) int {
	if math.IsNaN(n) || math.IsInf(n, 0) || n >= math.MaxInt32 {
		return 0
	}
	return int(math.Ceil(n))
}
