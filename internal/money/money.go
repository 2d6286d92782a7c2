// Package money formats amounts for display. All amounts shown anywhere go
// through Format so they look the same in every view.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCurrency = "USD"

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders amount in the given ISO currency, e.g. "$1,234.50".
// An empty code means DefaultCurrency. Codes x/text does not know are printed
// as a prefix.
func Format(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	scale := 2
	symbol := code + " "

	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		symbol = printer.Sprint(currency.Symbol(unit))
	}

	amount = amount.Round(int32(scale))

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole, frac, _ := strings.Cut(amount.StringFixed(int32(scale)), ".")
	if frac != "" {
		frac = "." + frac
	}

	return sign + symbol + group(whole) + frac
}

// group inserts en-US thousands separators into a run of digits.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// FormatNull renders "N/A" for an absent amount.
func FormatNull(amount decimal.NullDecimal, code string) string {
	if !amount.Valid {
		return "N/A"
	}

	return Format(amount.Decimal, code)
}
