// Package format renders currency amounts for reports. Amounts are rounded
// to cents with decimal arithmetic so that printed totals do not pick up
// binary floating point artifacts.
package format

import (
	"strings"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/iwvelando/mortgage-payoff/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Cents rounds amount to two decimal places. NaN and infinities have no
// decimal form and render as zero.
func Cents(amount float64) decimal.Decimal {
	if !mathutil.IsFinite(amount) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
}

// Fixed returns the amount rounded to cents without separators (e.g., "-1234.56"),
// suitable for CSV cells.
func Fixed(amount float64) string {
	return Cents(amount).StringFixed(constants.CurrencyPlaces)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	cents := Cents(amount)
	formatted := formatPositiveCurrency(cents.Abs())
	if cents.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	cents := Cents(amount)
	sign := ""
	if cents.IsNegative() {
		sign = "-"
	}
	return sign + formatPositiveCurrency(cents.Abs())
}

// Percent returns value with two decimals and a percent sign (e.g., "12.34%").
func Percent(value float64) string {
	return Fixed(value) + "%"
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.CurrencyPlaces)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
