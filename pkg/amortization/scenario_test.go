package amortization

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestCalculateKnownTermNoExtra(t *testing.T) {
	input := KnownTerm{
		OriginalLoanAmount:    300000,
		OriginalLoanTermYears: 30,
		AnnualInterestRate:    6.0,
		RemainingTermYears:    25,
		RemainingTermMonths:   0,
		StartDate:             testStart,
	}

	result, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if result.Mode != "known-term" {
		t.Errorf("Mode = %s, expected known-term", result.Mode)
	}
	if math.Abs(result.Original.MonthlyPayment-1798.65) > 0.01 {
		t.Errorf("Original.MonthlyPayment = %.4f, expected 1798.65", result.Original.MonthlyPayment)
	}
	if result.Original.TotalPeriods != 300 {
		t.Errorf("Original.TotalPeriods = %d, expected 300", result.Original.TotalPeriods)
	}
	if result.New.TotalPeriods != result.Original.TotalPeriods {
		t.Errorf("New.TotalPeriods = %d, expected %d", result.New.TotalPeriods, result.Original.TotalPeriods)
	}
	if result.New.TotalInterest != result.Original.TotalInterest {
		t.Errorf("New.TotalInterest = %.2f, expected %.2f", result.New.TotalInterest, result.Original.TotalInterest)
	}
	if result.Savings != (Savings{}) {
		t.Errorf("Savings = %+v, expected none", result.Savings)
	}
	if result.ExtraPaymentDetails != nil {
		t.Errorf("ExtraPaymentDetails = %+v, expected nil", result.ExtraPaymentDetails)
	}

	// Five years into a 30-year loan the outstanding balance is about 279,163.
	first := result.Original.Schedule[0]
	if math.Abs(first.BeginningBalance-279163.07) > 0.01 {
		t.Errorf("starting balance = %.2f, expected 279163.07", first.BeginningBalance)
	}
	assertLedgerInvariants(t, result.Original.Schedule)
}

func TestCalculateKnownTermZeroRate(t *testing.T) {
	input := KnownTerm{
		OriginalLoanAmount:    120000,
		OriginalLoanTermYears: 10,
		AnnualInterestRate:    0,
		RemainingTermYears:    5,
		RemainingTermMonths:   0,
		ExtraPayments:         &ExtraPayments{PerMonth: 1000},
		StartDate:             testStart,
	}

	result, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if math.Abs(result.Original.MonthlyPayment-1000) > 1e-6 {
		t.Errorf("Original.MonthlyPayment = %.4f, expected 1000", result.Original.MonthlyPayment)
	}
	if result.Original.TotalPeriods != 60 {
		t.Errorf("Original.TotalPeriods = %d, expected 60", result.Original.TotalPeriods)
	}
	if result.New.TotalPeriods != 30 {
		t.Errorf("New.TotalPeriods = %d, expected 30", result.New.TotalPeriods)
	}
	if result.Savings.TimeSavedMonths != 30 {
		t.Errorf("TimeSavedMonths = %d, expected 30", result.Savings.TimeSavedMonths)
	}
	if result.Savings.InterestSavedPercent != 0 {
		t.Errorf("InterestSavedPercent = %.2f, expected 0 with no interest", result.Savings.InterestSavedPercent)
	}
}

func TestCalculateKnownTermRemainingMonths(t *testing.T) {
	input := KnownTerm{
		OriginalLoanAmount:    200000,
		OriginalLoanTermYears: 15,
		AnnualInterestRate:    5.0,
		RemainingTermYears:    0,
		RemainingTermMonths:   18,
		StartDate:             testStart,
	}

	result, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if result.Original.TotalPeriods != 18 {
		t.Errorf("Original.TotalPeriods = %d, expected 18", result.Original.TotalPeriods)
	}
}

func TestCalculateUnknownTermWithMonthlyExtra(t *testing.T) {
	input := UnknownTerm{
		UnpaidPrincipalBalance: 150000,
		MonthlyPayment:         1000,
		AnnualInterestRate:     4.5,
		ExtraPayments:          &ExtraPayments{PerMonth: 200},
		StartDate:              testStart,
	}

	result, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if result.Mode != "unknown-term" {
		t.Errorf("Mode = %s, expected unknown-term", result.Mode)
	}
	if result.Original.TotalPeriods != 221 {
		t.Errorf("Original.TotalPeriods = %d, expected 221", result.Original.TotalPeriods)
	}
	if result.New.TotalPeriods >= result.Original.TotalPeriods {
		t.Errorf("New.TotalPeriods = %d, expected fewer than %d", result.New.TotalPeriods, result.Original.TotalPeriods)
	}
	if result.Savings.InterestSaved <= 0 {
		t.Errorf("InterestSaved = %.2f, expected positive", result.Savings.InterestSaved)
	}
	if result.Savings.TimeSavedMonths != result.Original.TotalPeriods-result.New.TotalPeriods {
		t.Errorf("TimeSavedMonths = %d, expected %d", result.Savings.TimeSavedMonths,
			result.Original.TotalPeriods-result.New.TotalPeriods)
	}
	expectedPercent := result.Savings.InterestSaved / result.Original.TotalInterest * 100
	if math.Abs(result.Savings.InterestSavedPercent-expectedPercent) > 1e-9 {
		t.Errorf("InterestSavedPercent = %.4f, expected %.4f", result.Savings.InterestSavedPercent, expectedPercent)
	}
	if result.Original.MonthlyPayment != 1000 || result.New.MonthlyPayment != 1000 {
		t.Errorf("MonthlyPayment = %.2f/%.2f, expected the supplied 1000",
			result.Original.MonthlyPayment, result.New.MonthlyPayment)
	}
	if result.ExtraPaymentDetails == nil || result.ExtraPaymentDetails.PerMonth != 200 {
		t.Errorf("ExtraPaymentDetails = %+v, expected perMonth 200", result.ExtraPaymentDetails)
	}
	assertLedgerInvariants(t, result.New.Schedule)
}

func TestCalculateSavingsNonNegative(t *testing.T) {
	extras := []*ExtraPayments{
		{PerMonth: 50},
		{PerYear: 2400},
		{OneTime: 25000},
		{PerMonth: 100, PerYear: 1000, OneTime: 5000},
	}

	for _, extra := range extras {
		inputs := []Input{
			KnownTerm{
				OriginalLoanAmount:    400000,
				OriginalLoanTermYears: 30,
				AnnualInterestRate:    7.25,
				RemainingTermYears:    27,
				RemainingTermMonths:   6,
				ExtraPayments:         extra,
				StartDate:             testStart,
			},
			UnknownTerm{
				UnpaidPrincipalBalance: 220000,
				MonthlyPayment:         1600,
				AnnualInterestRate:     5.5,
				ExtraPayments:          extra,
				StartDate:              testStart,
			},
		}
		for _, input := range inputs {
			result, err := Calculate(input)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if result.New.TotalPeriods > result.Original.TotalPeriods {
				t.Errorf("%s %+v: new periods %d exceed original %d", input.Mode(), *extra,
					result.New.TotalPeriods, result.Original.TotalPeriods)
			}
			if result.New.TotalInterest > result.Original.TotalInterest {
				t.Errorf("%s %+v: new interest %.2f exceeds original %.2f", input.Mode(), *extra,
					result.New.TotalInterest, result.Original.TotalInterest)
			}
			if result.Savings.InterestSaved < 0 || result.Savings.TimeSavedMonths < 0 {
				t.Errorf("%s %+v: negative savings %+v", input.Mode(), *extra, result.Savings)
			}
		}
	}
}

func TestCalculateInactiveExtrasMatchOriginal(t *testing.T) {
	input := UnknownTerm{
		UnpaidPrincipalBalance: 150000,
		MonthlyPayment:         1000,
		AnnualInterestRate:     4.5,
		ExtraPayments:          &ExtraPayments{},
		StartDate:              testStart,
	}

	result, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if result.New.TotalPeriods != result.Original.TotalPeriods || result.Savings.InterestSaved != 0 {
		t.Errorf("zero extras changed the plan: %+v", result.Savings)
	}
}

func TestCalculatePointerInputs(t *testing.T) {
	input := &UnknownTerm{
		UnpaidPrincipalBalance: 10000,
		MonthlyPayment:         500,
		AnnualInterestRate:     3,
		StartDate:              testStart,
	}
	result, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if result.Original.TotalPeriods == 0 {
		t.Errorf("Original.TotalPeriods = 0, expected a schedule")
	}
}

func TestCalculateUnknownInput(t *testing.T) {
	var nilKnown *KnownTerm
	for _, input := range []Input{nil, nilKnown} {
		_, err := Calculate(input)
		if !errors.Is(err, ErrUnknownInput) {
			t.Errorf("Calculate(%#v) error = %v, expected ErrUnknownInput", input, err)
		}
	}
}

func TestCalculateConcurrent(t *testing.T) {
	input := UnknownTerm{
		UnpaidPrincipalBalance: 150000,
		MonthlyPayment:         1000,
		AnnualInterestRate:     4.5,
		ExtraPayments:          &ExtraPayments{PerMonth: 200},
		StartDate:              testStart,
	}
	expected, err := Calculate(input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := Calculate(input)
			if err != nil {
				errs <- err.Error()
				return
			}
			if result.Savings != expected.Savings {
				errs <- "concurrent result differs"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
