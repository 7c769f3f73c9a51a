package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/mathutil"
)

// ErrInvalidInput is matched by every error describing a rejected loan input.
var ErrInvalidInput = errors.New("invalid loan input")

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every problem found in a loan input.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

func (e *Error) add(field, format string, args ...interface{}) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *Error) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateInput checks that an input satisfies what the calculation engine
// assumes of it: positive amounts, a usable term, non-negative extras and,
// for unknown-term loans, a payment that covers more than the first
// period's interest. All problems are reported together in an *Error.
func ValidateInput(in amortization.Input) error {
	switch v := in.(type) {
	case amortization.KnownTerm:
		return ValidateKnownTerm(v)
	case *amortization.KnownTerm:
		if v != nil {
			return ValidateKnownTerm(*v)
		}
	case amortization.UnknownTerm:
		return ValidateUnknownTerm(v)
	case *amortization.UnknownTerm:
		if v != nil {
			return ValidateUnknownTerm(*v)
		}
	}
	return fmt.Errorf("%w: missing or unsupported calculator input %T", ErrInvalidInput, in)
}

// ValidateKnownTerm validates a known-term input.
func ValidateKnownTerm(k amortization.KnownTerm) error {
	e := &Error{}
	positive(e, "originalLoanAmount", k.OriginalLoanAmount)
	if k.OriginalLoanTermYears <= 0 || k.OriginalLoanTermYears > constants.MaxTermYears {
		e.add("originalLoanTermYears", "must be between 1 and %d, got %d",
			constants.MaxTermYears, k.OriginalLoanTermYears)
	}
	rate(e, k.AnnualInterestRate)
	if k.RemainingTermYears < 0 {
		e.add("remainingTermYears", "must not be negative, got %d", k.RemainingTermYears)
	}
	if k.RemainingTermMonths < 0 {
		e.add("remainingTermMonths", "must not be negative, got %d", k.RemainingTermMonths)
	}
	if k.RemainingTermYears <= 0 && k.RemainingTermMonths <= 0 {
		e.add("remainingTerm", "remaining years or months must be greater than 0")
	}
	if k.OriginalLoanTermYears > 0 && k.RemainingPeriods() > k.OriginalPeriods() {
		e.add("remainingTerm", "remaining term of %d months exceeds the original term of %d months",
			k.RemainingPeriods(), k.OriginalPeriods())
	}
	extras(e, k.ExtraPayments)

	if len(e.Fields) == 0 {
		payment := amortization.FixedPayment(k.OriginalLoanAmount,
			amortization.PeriodicRate(k.AnnualInterestRate), k.OriginalPeriods())
		if !mathutil.IsFinite(payment) || payment <= 0 {
			e.add("annualInterestRate", "loan terms produce an unusable monthly payment of %v", payment)
		}
	}
	return e.errOrNil()
}

// ValidateUnknownTerm validates an unknown-term input.
func ValidateUnknownTerm(u amortization.UnknownTerm) error {
	e := &Error{}
	positive(e, "unpaidPrincipalBalance", u.UnpaidPrincipalBalance)
	positive(e, "monthlyPayment", u.MonthlyPayment)
	rate(e, u.AnnualInterestRate)
	extras(e, u.ExtraPayments)

	if u.UnpaidPrincipalBalance > 0 && u.MonthlyPayment > 0 {
		interest := amortization.InterestFor(u.UnpaidPrincipalBalance, amortization.PeriodicRate(u.AnnualInterestRate))
		if u.MonthlyPayment <= interest {
			e.add("monthlyPayment", "%.2f does not cover the first month's interest of %.2f",
				u.MonthlyPayment, interest)
		} else if len(e.Fields) == 0 {
			periods := amortization.SolveRemainingPeriods(u.UnpaidPrincipalBalance,
				amortization.PeriodicRate(u.AnnualInterestRate), u.MonthlyPayment)
			if periods <= 0 || periods > constants.MaxSchedulePeriods {
				e.add("monthlyPayment", "%.2f does not repay the balance within %d years",
					u.MonthlyPayment, constants.MaxTermYears)
			}
		}
	}
	return e.errOrNil()
}

func positive(e *Error, field string, value float64) {
	if !mathutil.IsFinite(value) || value <= 0 {
		e.add(field, "must be greater than 0, got %v", value)
	}
}

func rate(e *Error, value float64) {
	if !mathutil.IsFinite(value) || value < 0 {
		e.add("annualInterestRate", "must not be negative, got %v", value)
	}
}

func extras(e *Error, extra *amortization.ExtraPayments) {
	if extra == nil {
		return
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"extraPayments.perMonth", extra.PerMonth},
		{"extraPayments.perYear", extra.PerYear},
		{"extraPayments.oneTime", extra.OneTime},
	}
	for _, f := range fields {
		if !mathutil.IsFinite(f.value) || f.value < 0 {
			e.add(f.name, "must not be negative, got %v", f.value)
		}
	}
}
