// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/datetime"
	"github.com/iwvelando/mortgage-payoff/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders result in the named output format.
func Write(w io.Writer, outputFormat string, result *amortization.Comparison) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable summary followed by the payment
// schedule of the plan with extra payments.
func PrettyFormat(w io.Writer, result *amortization.Comparison) error {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Payoff comparison (%s) ---\n", result.Mode)
	fmt.Fprintf(w, "Plan     | Payment       | Periods | Total paid      | Total interest\n")
	fmt.Fprintf(w, "____     | _____________ | _______ | _______________ | ______________\n")
	writeScenarioLine(w, "Original", result.Original)
	writeScenarioLine(w, "New", result.New)
	fmt.Fprintf(w, "\n")

	if extra := result.ExtraPaymentDetails; extra != nil {
		fmt.Fprintf(w, "Extra payments: %s per month, %s per year, %s one time\n",
			format.Currency(extra.PerMonth), format.Currency(extra.PerYear), format.Currency(extra.OneTime))
	}
	fmt.Fprintf(w, "Time saved:     %s\n", describeMonths(result.Savings.TimeSavedMonths))
	fmt.Fprintf(w, "Interest saved: %s (%s)\n",
		format.Currency(result.Savings.InterestSaved), format.Percent(result.Savings.InterestSavedPercent))
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "--- Schedule ---\n")
	fmt.Fprintf(w, "Period | Date       | Payment | Principal | Interest | Extra | Balance\n")
	fmt.Fprintf(w, "______ | __________ | _______ | _________ | ________ | _____ | _______\n")
	for _, row := range result.New.Schedule {
		_, err := p.Fprintf(w, "%d | %s | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.Period, datetime.Format(row.Date), row.Payment, row.Principal, row.Interest,
			row.ExtraPayment, row.EndingBalance)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeScenarioLine(w io.Writer, name string, s amortization.ScenarioResult) {
	fmt.Fprintf(w, "%-8s | %13s | %7d | %15s | %14s\n", name,
		format.Currency(s.MonthlyPayment), s.TotalPeriods,
		format.Currency(s.TotalPayment), format.Currency(s.TotalInterest))
}

// describeMonths renders a month count as years and months, e.g. "4 years 4 months".
func describeMonths(months int) string {
	years := months / constants.MonthsPerYear
	rest := months % constants.MonthsPerYear

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if rest > 0 || years == 0 {
		parts = append(parts, plural(rest, "month"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

var csvHeader = []string{
	"plan", "period", "date", "beginning balance", "payment", "principal", "interest",
	"extra payment", "ending balance",
}

// CsvFormat outputs both schedules in comma-separated value format, with
// currency rounded to cents.
func CsvFormat(w io.Writer, result *amortization.Comparison) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	plans := []struct {
		name     string
		schedule amortization.Schedule
	}{
		{"original", result.Original.Schedule},
		{"new", result.New.Schedule},
	}
	for _, plan := range plans {
		for _, row := range plan.schedule {
			record := []string{
				plan.name,
				strconv.Itoa(row.Period),
				datetime.Format(row.Date),
				format.Fixed(row.BeginningBalance),
				format.Fixed(row.Payment),
				format.Fixed(row.Principal),
				format.Fixed(row.Interest),
				format.Fixed(row.ExtraPayment),
				format.Fixed(row.EndingBalance),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of result.
func CsvString(result *amortization.Comparison) string {
	var b strings.Builder
	if err := CsvFormat(&b, result); err != nil {
		return ""
	}
	return b.String()
}

// JSONFormat outputs the full comparison as indented JSON.
func JSONFormat(w io.Writer, result *amortization.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
