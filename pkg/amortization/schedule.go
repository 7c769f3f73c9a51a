package amortization

import (
	"math"
	"time"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/datetime"
	"github.com/iwvelando/mortgage-payoff/pkg/mathutil"
)

// PaymentRow holds the values for a given payment period.
type PaymentRow struct {
	Period           int       `json:"period"`
	Date             time.Time `json:"date"`
	BeginningBalance float64   `json:"beginningBalance"`
	Payment          float64   `json:"payment"`
	Principal        float64   `json:"principal"`
	Interest         float64   `json:"interest"`
	ExtraPayment     float64   `json:"extraPayment"`
	EndingBalance    float64   `json:"endingBalance"`
}

// Schedule is the ordered, fully materialized list of payment rows up to payoff.
// Consumers treat it as read-only.
type Schedule []PaymentRow

// Len returns the number of periods until payoff.
func (s Schedule) Len() int {
	return len(s)
}

// TotalPayment sums the cash paid across all periods.
func (s Schedule) TotalPayment() float64 {
	total := 0.0
	for _, row := range s {
		total += row.Payment
	}
	return total
}

// TotalInterest sums the interest paid across all periods.
func (s Schedule) TotalInterest() float64 {
	total := 0.0
	for _, row := range s {
		total += row.Interest
	}
	return total
}

// TotalPrincipal sums the principal repaid across all periods, extra
// payments included.
func (s Schedule) TotalPrincipal() float64 {
	total := 0.0
	for _, row := range s {
		total += row.Principal
	}
	return total
}

// TotalExtra sums the extra payments applied across all periods.
func (s Schedule) TotalExtra() float64 {
	total := 0.0
	for _, row := range s {
		total += row.ExtraPayment
	}
	return total
}

// Last returns the final row and false if the schedule is empty.
func (s Schedule) Last() (PaymentRow, bool) {
	if len(s) == 0 {
		return PaymentRow{}, false
	}
	return s[len(s)-1], true
}

// Rows returns a copy of the rows that the caller is free to modify.
func (s Schedule) Rows() []PaymentRow {
	rows := make([]PaymentRow, len(s))
	copy(rows, s)
	return rows
}

// ExtraPayments describes the extra principal contributions layered on top of
// the scheduled payment. All applicable amounts stack within a period.
type ExtraPayments struct {
	PerMonth float64 `json:"perMonth,omitempty" yaml:"perMonth,omitempty"`
	PerYear  float64 `json:"perYear,omitempty" yaml:"perYear,omitempty"`
	OneTime  float64 `json:"oneTime,omitempty" yaml:"oneTime,omitempty"`
}

// Active reports whether any extra payment amount is positive.
func (e *ExtraPayments) Active() bool {
	if e == nil {
		return false
	}
	return e.PerMonth > 0 || e.PerYear > 0 || e.OneTime > 0
}

// AmountFor returns the extra payment scheduled for a 1-based period: the
// one-time amount on period 1, the monthly amount every period and the
// yearly amount on every 12th period.
func (e *ExtraPayments) AmountFor(period int) float64 {
	if e == nil {
		return 0
	}

	amount := 0.0
	if e.OneTime > 0 && period == 1 {
		amount += e.OneTime
	}
	if e.PerMonth > 0 {
		amount += e.PerMonth
	}
	if e.PerYear > 0 && period%constants.MonthsPerYear == 0 {
		amount += e.PerYear
	}
	return amount
}

// SimulatePlain produces the amortization schedule for a fixed payment with
// no extra contributions.
func SimulatePlain(principal, periodicRate, payment float64, periods int, start time.Time) Schedule {
	return simulate(principal, periodicRate, payment, periods, nil, start)
}

// SimulateWithExtra produces the amortization schedule for a fixed base
// payment plus the given extra contributions. Extra payments can only
// shorten the schedule.
func SimulateWithExtra(principal, periodicRate, basePayment float64, periods int, extra *ExtraPayments, start time.Time) Schedule {
	return simulate(principal, periodicRate, basePayment, periods, extra, start)
}

func simulate(principal, periodicRate, payment float64, periods int, extra *ExtraPayments, start time.Time) Schedule {
	if periods <= 0 {
		return Schedule{}
	}

	schedule := make(Schedule, 0, min(periods, constants.MaxSchedulePeriods))
	balance := principal
	for period := 1; period <= periods; period++ {
		row := step(period, balance, periodicRate, payment, extra.AmountFor(period))
		row.Date = datetime.AddMonths(start, period-1)
		schedule = append(schedule, row)

		balance = row.EndingBalance
		// A non-finite balance can never reach payoff.
		if mathutil.IsZero(balance) || !mathutil.IsFinite(balance) {
			break
		}
	}
	return schedule
}

// step runs one period of the ledger. The scheduled principal is capped at
// the balance before extras are added; any extra amount that would push the
// balance below zero is then trimmed, so the row never records more than
// was owed.
func step(period int, balance, periodicRate, payment, extra float64) PaymentRow {
	interest := InterestFor(balance, periodicRate)
	principal := math.Min(payment-interest, balance) + extra
	applied := extra

	ending := balance - principal
	if ending < 0 {
		principal += ending
		applied = math.Max(0, applied+ending)
		ending = 0
	}

	return PaymentRow{
		Period:           period,
		BeginningBalance: balance,
		Payment:          interest + principal,
		Principal:        principal,
		Interest:         interest,
		ExtraPayment:     applied,
		EndingBalance:    ending,
	}
}
