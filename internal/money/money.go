// Package money converts raw digit-string amounts into exact decimals and
// renders them for display.
//
// A raw amount is the canonical stored form: every non-digit is discarded
// and the remaining digits are a count of cents. "10.50" and "1050" are
// therefore the same amount.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Digits strips every character that is not an ASCII digit.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Normalize interprets the digits of raw as minor units and returns the
// amount in major units. Empty or digit-free input yields exactly zero.
func Normalize(raw string) decimal.Decimal {
	digits := Digits(raw)
	if digits == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return v.Shift(-2)
}

// Raw encodes an amount back into its digit-string form. Fractions below
// one cent are truncated and the sign is dropped.
func Raw(amount decimal.Decimal) string {
	cents := amount.Abs().Shift(2).Truncate(0)
	return cents.String()
}

// Sum normalizes and adds every raw amount.
func Sum(raws ...string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range raws {
		total = total.Add(Normalize(r))
	}
	return total
}
