package money_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/revrec/internal/money"
)

func TestFormat(t *testing.T) {
	type testCase struct {
		name   string
		amount string
		code   string
		want   string
	}

	tests := []testCase{
		{name: "grouping and cents", amount: "1234.5", code: "USD", want: "$1,234.50"},
		{name: "default currency", amount: "330000", code: "", want: "$330,000.00"},
		{name: "lower-case code", amount: "12", code: "usd", want: "$12.00"},
		{name: "negative", amount: "-5.255", code: "USD", want: "-$5.26"},
		{name: "zero", amount: "0", code: "USD", want: "$0.00"},
		{name: "unknown code", amount: "10", code: "ZZZ", want: "ZZZ 10.00"},
		{name: "exact beyond float precision", amount: "12345678901234567.89", code: "USD", want: "$12,345,678,901,234,567.89"},
		{name: "rounds half up at scale", amount: "9999999999999999.995", code: "USD", want: "$10,000,000,000,000,000.00"},
		{name: "negative rounding to zero", amount: "-0.001", code: "USD", want: "$0.00"},
		{name: "three digits", amount: "999", code: "USD", want: "$999.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestFormat_ZeroDecimalCurrency(t *testing.T) {
	got := money.Format(decimal.RequireFromString("1234567.4"), "JPY")

	assert.True(t, strings.HasSuffix(got, "1,234,567"), got)
	assert.NotContains(t, got, ".")
}

func TestFormatNull(t *testing.T) {
	assert.Equal(t, "N/A", money.FormatNull(decimal.NullDecimal{}, "USD"))
	assert.Equal(t, "$7.00", money.FormatNull(decimal.NewNullDecimal(decimal.NewFromInt(7)), "USD"))
}
