package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/datetime"
	"github.com/iwvelando/mortgage-payoff/pkg/validation"
)

// Loan is the flat, file-friendly description of a calculator input. Which
// fields apply depends on Mode.
type Loan struct {
	Mode      string `yaml:"mode" mapstructure:"mode" json:"mode"`
	StartDate string `yaml:"startDate,omitempty" mapstructure:"startDate" json:"startDate,omitempty"`

	// known-term
	OriginalLoanAmount    float64 `yaml:"originalLoanAmount,omitempty" mapstructure:"originalLoanAmount" json:"originalLoanAmount,omitempty"`
	OriginalLoanTermYears int     `yaml:"originalLoanTermYears,omitempty" mapstructure:"originalLoanTermYears" json:"originalLoanTermYears,omitempty"`
	RemainingTermYears    int     `yaml:"remainingTermYears,omitempty" mapstructure:"remainingTermYears" json:"remainingTermYears,omitempty"`
	RemainingTermMonths   int     `yaml:"remainingTermMonths,omitempty" mapstructure:"remainingTermMonths" json:"remainingTermMonths,omitempty"`

	// unknown-term
	UnpaidPrincipalBalance float64 `yaml:"unpaidPrincipalBalance,omitempty" mapstructure:"unpaidPrincipalBalance" json:"unpaidPrincipalBalance,omitempty"`
	MonthlyPayment         float64 `yaml:"monthlyPayment,omitempty" mapstructure:"monthlyPayment" json:"monthlyPayment,omitempty"`

	AnnualInterestRate float64                     `yaml:"annualInterestRate" mapstructure:"annualInterestRate" json:"annualInterestRate"`
	ExtraPayments      *amortization.ExtraPayments `yaml:"extraPayments,omitempty" mapstructure:"extraPayments" json:"extraPayments,omitempty"`
}

// ToInput converts the loan into the calculator input for its mode and
// validates it. An empty start date means the first of now's month.
func (loan *Loan) ToInput(now time.Time) (amortization.Input, error) {
	mode := strings.TrimSpace(loan.Mode)
	if err := validation.ValidateMode(mode); err != nil {
		return nil, err
	}

	start, err := datetime.ParseDate(strings.TrimSpace(loan.StartDate), now)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse startDate %q: %v", validation.ErrInvalidInput, loan.StartDate, err)
	}

	var input amortization.Input
	switch mode {
	case constants.ModeKnownTerm:
		input = amortization.KnownTerm{
			OriginalLoanAmount:    loan.OriginalLoanAmount,
			OriginalLoanTermYears: loan.OriginalLoanTermYears,
			AnnualInterestRate:    loan.AnnualInterestRate,
			RemainingTermYears:    loan.RemainingTermYears,
			RemainingTermMonths:   loan.RemainingTermMonths,
			ExtraPayments:         loan.extras(),
			StartDate:             start,
		}
	case constants.ModeUnknownTerm:
		input = amortization.UnknownTerm{
			UnpaidPrincipalBalance: loan.UnpaidPrincipalBalance,
			MonthlyPayment:         loan.MonthlyPayment,
			AnnualInterestRate:     loan.AnnualInterestRate,
			ExtraPayments:          loan.extras(),
			StartDate:              start,
		}
	}

	if err := validation.ValidateInput(input); err != nil {
		return nil, err
	}
	return input, nil
}

// extras returns a copy of the extra payment plan so the input does not
// alias the configuration.
func (loan *Loan) extras() *amortization.ExtraPayments {
	if loan.ExtraPayments == nil {
		return nil
	}
	extra := *loan.ExtraPayments
	return &extra
}

// FromInput flattens a calculator input back into its file representation.
func FromInput(in amortization.Input) Loan {
	loan := Loan{Mode: in.Mode()}
	if !in.Start().IsZero() {
		loan.StartDate = datetime.Format(in.Start())
	}
	if extra := in.Extras(); extra != nil {
		copied := *extra
		loan.ExtraPayments = &copied
	}

	switch v := in.(type) {
	case amortization.KnownTerm:
		loan.OriginalLoanAmount = v.OriginalLoanAmount
		loan.OriginalLoanTermYears = v.OriginalLoanTermYears
		loan.AnnualInterestRate = v.AnnualInterestRate
		loan.RemainingTermYears = v.RemainingTermYears
		loan.RemainingTermMonths = v.RemainingTermMonths
	case amortization.UnknownTerm:
		loan.UnpaidPrincipalBalance = v.UnpaidPrincipalBalance
		loan.MonthlyPayment = v.MonthlyPayment
		loan.AnnualInterestRate = v.AnnualInterestRate
	}
	return loan
}
