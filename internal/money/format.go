package money

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency selects the display convention of an amount.
type Currency string

const (
	ARS Currency = "ARS"
	USD Currency = "USD"
)

type displayFormat struct {
	unit       currency.Unit
	prefix     string
	decimalSep string
	// printer groups the integer part; nil means no grouping.
	printer *message.Printer
}

var formats = map[Currency]displayFormat{
	ARS: {
		unit:       currency.MustParseISO("ARS"),
		prefix:     "$ ",
		decimalSep: ",",
		printer:    message.NewPrinter(language.MustParse("es-AR")),
	},
	USD: {
		unit:       currency.USD,
		prefix:     "USD ",
		decimalSep: ".",
	},
}

// ParseCurrency resolves an ISO 4217 code to a supported display currency.
func ParseCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("parse currency %q: %w", code, err)
	}
	c := Currency(unit.String())
	if _, ok := formats[c]; !ok {
		return "", fmt.Errorf("unsupported display currency %s", c)
	}
	return c, nil
}

// FormatDisplay normalizes raw and formats it for c. Empty input formats to
// an empty string so placeholders show through.
func FormatDisplay(raw string, c Currency) string {
	if raw == "" {
		return ""
	}
	return Format(Normalize(raw), c)
}

// Format renders an amount with the currency prefix and exactly the
// currency's standard fraction digits. Negative amounts carry a leading
// minus before the prefix.
func Format(amount decimal.Decimal, c Currency) string {
	f, ok := formats[c]
	if !ok {
		f = formats[ARS]
	}

	scale, _ := currency.Standard.Rounding(f.unit)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(int32(scale))

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	if f.printer != nil {
		intPart = groupDigits(intPart, groupSeparator(f.printer))
	}

	out := sign + f.prefix + intPart
	if fracPart != "" {
		out += f.decimalSep + fracPart
	}
	return out
}

// groupSeparator reads the locale's thousands separator off the printer.
func groupSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1000000))
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[i : i+size]
	}
	return ""
}

// groupDigits inserts sep every three digits from the right. It works on
// the digit string so amounts of any size keep their value.
func groupDigits(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
