// Package amortization implements the mortgage payoff engine: payment and
// term primitives, the payment-by-payment schedule simulator, and the
// comparison of a baseline plan against one with extra payments.
//
// Everything in this package is a pure computation. Nothing here logs,
// performs I/O or keeps state between calls.
package amortization

import (
	"math"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
)

// PeriodicRate converts an annual percentage rate (e.g. 5.5) into the
// monthly rate applied each period (e.g. 0.004583).
func PeriodicRate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// FixedPayment calculates the level payment that amortizes principal over the
// given number of periods using the standard annuity formula.
// A zero rate falls back to straight-line repayment. periods must be positive;
// the result is not meaningful otherwise.
func FixedPayment(principal, periodicRate float64, periods int) float64 {
	if periodicRate == 0 {
		return principal / float64(periods)
	}

	// P * [r(1+r)^n] / [(1+r)^n - 1]
	power := math.Pow(1+periodicRate, float64(periods))
	return principal * (periodicRate * power) / (power - 1)
}

// InterestFor returns the interest accrued on balance over one period.
func InterestFor(balance, periodicRate float64) float64 {
	return balance * periodicRate
}

// amortizablePrincipal inverts the annuity formula: the principal that the
// payment would fully repay over n periods.
func amortizablePrincipal(payment, periodicRate float64, n int) float64 {
	power := math.Pow(1+periodicRate, float64(n))
	return payment * (power - 1) / (periodicRate * power)
}
