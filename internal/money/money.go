// Package money holds the rupee arithmetic shared by every price shown to a buyer.
//
// All amounts are shopspring decimals. Line items are rounded half away from
// zero to whole rupees before they are summed, so a rendered subtotal and
// transport charge always add up to the rendered total.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix used in every rendered amount.
const Symbol = "₹"

// ErrInvalidAmount is returned by Parse for empty, non-numeric or
// out-of-range input.
var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the largest magnitude Parse accepts (₹1 lakh crore).
var MaxAmount = decimal.New(1, 12)

// Round rounds to whole rupees.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Parse reads a user-entered amount. It tolerates a leading rupee sign,
// digit-group commas and a trailing "/kg" style unit suffix. Only plain
// decimals are accepted; exponent notation is rejected.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Symbol)
	s = strings.TrimPrefix(s, "Rs.")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if !plainDecimal(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if TooLarge(d) {
		return decimal.Zero, fmt.Errorf("%w: %q exceeds %s", ErrInvalidAmount, s, Format(MaxAmount))
	}
	return d, nil
}

// TooLarge reports whether |d| exceeds MaxAmount. It looks at the digit
// count first, so values with huge exponents are never expanded.
func TooLarge(d decimal.Decimal) bool {
	if d.IsZero() {
		return false
	}
	coef := d.Coefficient()
	intDigits := len(coef.Abs(coef).String()) + int(d.Exponent())
	switch {
	case intDigits <= 0:
		return false
	case intDigits > len(MaxAmount.String()):
		return true
	}
	return d.Abs().GreaterThan(MaxAmount)
}

// plainDecimal reports whether s is an optionally signed run of digits with
// at most one decimal point.
func plainDecimal(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Plain renders an amount without symbol or grouping, the way it is typed
// into an input field ("46", "45.5").
func Plain(d decimal.Decimal) string {
	return d.String()
}

// Format renders an amount with the rupee symbol and Indian digit grouping
// ("₹1,23,456"). Whole amounts drop the paise; others keep two places.
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	var text string
	if d.Equal(d.Truncate(0)) {
		text = d.StringFixed(0)
	} else {
		text = d.StringFixed(2)
	}

	intPart, frac, hasFrac := strings.Cut(text, ".")
	out := sign + Symbol + group(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// PerUnit renders a unit price, e.g. "₹46/kg".
func PerUnit(d decimal.Decimal, unit string) string {
	if unit == "" {
		unit = "kg"
	}
	return Format(d) + "/" + unit
}

// Percent returns (a-b)/b*100 rounded to one decimal place. A zero base yields 0.
func Percent(a, b decimal.Decimal) float64 {
	if b.IsZero() {
		return 0
	}
	return a.Sub(b).Div(b).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

// group applies lakh/crore grouping: the last three digits, then pairs.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/2)
	first := len(head) % 2
	if first == 0 {
		first = 2
	}
	b.WriteString(head[:first])
	for i := first; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
