package amortization

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/mathutil"
)

// ErrUnknownInput is returned by Calculate for a nil or unrecognized Input.
var ErrUnknownInput = errors.New("unknown loan scenario input")

// Input is one of KnownTerm or UnknownTerm.
type Input interface {
	// Mode returns the calculator mode identifier.
	Mode() string
	// Extras returns the extra payment plan, which may be nil.
	Extras() *ExtraPayments
	// Start returns the date of the first scheduled payment.
	Start() time.Time

	isInput()
}

// KnownTerm describes a loan whose original terms and remaining term are
// known. The current balance is derived by replaying the payments already made.
type KnownTerm struct {
	OriginalLoanAmount    float64        `json:"originalLoanAmount"`
	OriginalLoanTermYears int            `json:"originalLoanTermYears"`
	AnnualInterestRate    float64        `json:"annualInterestRate"`
	RemainingTermYears    int            `json:"remainingTermYears"`
	RemainingTermMonths   int            `json:"remainingTermMonths"`
	ExtraPayments         *ExtraPayments `json:"extraPayments,omitempty"`
	StartDate             time.Time      `json:"startDate"`
}

// UnknownTerm describes a loan known only by its unpaid balance and monthly
// payment. The remaining term is solved for.
type UnknownTerm struct {
	UnpaidPrincipalBalance float64        `json:"unpaidPrincipalBalance"`
	MonthlyPayment         float64        `json:"monthlyPayment"`
	AnnualInterestRate     float64        `json:"annualInterestRate"`
	ExtraPayments          *ExtraPayments `json:"extraPayments,omitempty"`
	StartDate              time.Time      `json:"startDate"`
}

func (KnownTerm) Mode() string             { return constants.ModeKnownTerm }
func (k KnownTerm) Extras() *ExtraPayments { return k.ExtraPayments }
func (k KnownTerm) Start() time.Time       { return k.StartDate }
func (KnownTerm) isInput()                 {}

func (UnknownTerm) Mode() string             { return constants.ModeUnknownTerm }
func (u UnknownTerm) Extras() *ExtraPayments { return u.ExtraPayments }
func (u UnknownTerm) Start() time.Time       { return u.StartDate }
func (UnknownTerm) isInput()                 {}

// RemainingPeriods returns the remaining term in months.
func (k KnownTerm) RemainingPeriods() int {
	return k.RemainingTermYears*constants.MonthsPerYear + k.RemainingTermMonths
}

// OriginalPeriods returns the original term in months.
func (k KnownTerm) OriginalPeriods() int {
	return k.OriginalLoanTermYears * constants.MonthsPerYear
}

// CurrentBalance replays the payments already made on the original loan to
// find the principal still outstanding at the start of the remaining term.
func (k KnownTerm) CurrentBalance() float64 {
	rate := PeriodicRate(k.AnnualInterestRate)
	payment := FixedPayment(k.OriginalLoanAmount, rate, k.OriginalPeriods())
	paid := k.OriginalPeriods() - k.RemainingPeriods()

	balance := k.OriginalLoanAmount
	for i := 0; i < paid && !mathutil.IsZero(balance); i++ {
		balance -= payment - InterestFor(balance, rate)
		if balance < 0 {
			balance = 0
		}
	}
	return mathutil.Max(0, balance)
}

// ScenarioResult summarizes one simulated payoff trajectory.
type ScenarioResult struct {
	TotalPeriods   int      `json:"totalPeriods"`
	TotalPayment   float64  `json:"totalPayment"`
	TotalInterest  float64  `json:"totalInterest"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	Schedule       Schedule `json:"schedule"`
}

// Savings compares the accelerated plan against the original one.
type Savings struct {
	TimeSavedMonths      int     `json:"timeSavedMonths"`
	InterestSaved        float64 `json:"interestSaved"`
	InterestSavedPercent float64 `json:"interestSavedPercent"`
}

// Comparison is the result of a calculation: the original plan, the plan
// with extra payments, and what the extra payments save.
type Comparison struct {
	Mode                string         `json:"mode"`
	ExtraPaymentDetails *ExtraPayments `json:"extraPaymentDetails,omitempty"`
	Original            ScenarioResult `json:"original"`
	New                 ScenarioResult `json:"new"`
	Savings             Savings        `json:"savings"`
}

// terms are the loan parameters both scenarios are simulated from.
type terms struct {
	principal       float64
	rate            float64
	periods         int
	basePayment     float64
	originalPayment float64
}

// Calculate runs the original and accelerated scenarios for the input and
// compares them. It returns ErrUnknownInput for a nil input or a type other
// than KnownTerm or UnknownTerm; numeric edge cases never produce errors.
func Calculate(in Input) (*Comparison, error) {
	var t terms
	switch v := in.(type) {
	case KnownTerm:
		t = knownTermTerms(v)
	case *KnownTerm:
		if v == nil {
			return nil, ErrUnknownInput
		}
		t = knownTermTerms(*v)
	case UnknownTerm:
		t = unknownTermTerms(v)
	case *UnknownTerm:
		if v == nil {
			return nil, ErrUnknownInput
		}
		t = unknownTermTerms(*v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownInput, in)
	}

	start := in.Start()
	originalSchedule := SimulatePlain(t.principal, t.rate, t.originalPayment, t.periods, start)
	original := newScenarioResult(originalSchedule, t.originalPayment)

	newResult := original
	extras := in.Extras()
	if extras.Active() {
		newSchedule := SimulateWithExtra(t.principal, t.rate, t.basePayment, t.periods, extras, start)
		newResult = newScenarioResult(newSchedule, t.basePayment)
	}

	comparison := &Comparison{
		Mode:     in.Mode(),
		Original: original,
		New:      newResult,
		Savings:  compare(original, newResult),
	}
	if extras.Active() {
		details := *extras
		comparison.ExtraPaymentDetails = &details
	}
	return comparison, nil
}

func knownTermTerms(k KnownTerm) terms {
	principal := k.CurrentBalance()
	rate := PeriodicRate(k.AnnualInterestRate)
	periods := k.RemainingPeriods()

	return terms{
		principal:   principal,
		rate:        rate,
		periods:     periods,
		basePayment: FixedPayment(principal, rate, periods),
		// Without extras the loan fully amortizes over the stated remaining term.
		originalPayment: FixedPayment(principal, rate, periods),
	}
}

func unknownTermTerms(u UnknownTerm) terms {
	rate := PeriodicRate(u.AnnualInterestRate)
	return terms{
		principal:       u.UnpaidPrincipalBalance,
		rate:            rate,
		periods:         SolveRemainingPeriods(u.UnpaidPrincipalBalance, rate, u.MonthlyPayment),
		basePayment:     u.MonthlyPayment,
		originalPayment: u.MonthlyPayment,
	}
}

func newScenarioResult(schedule Schedule, monthlyPayment float64) ScenarioResult {
	return ScenarioResult{
		TotalPeriods:   schedule.Len(),
		TotalPayment:   schedule.TotalPayment(),
		TotalInterest:  schedule.TotalInterest(),
		MonthlyPayment: monthlyPayment,
		Schedule:       schedule,
	}
}

func compare(original, accelerated ScenarioResult) Savings {
	saved := original.TotalInterest - accelerated.TotalInterest
	return Savings{
		TimeSavedMonths:      original.TotalPeriods - accelerated.TotalPeriods,
		InterestSaved:        saved,
		InterestSavedPercent: mathutil.CalculatePercentage(saved, original.TotalInterest),
	}
}
