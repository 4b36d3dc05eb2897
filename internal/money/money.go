// Package money provides currency rounding and formatting helpers.
//
// Every dollar figure that leaves the aggregation engine passes through
// RoundCents, so all export formats agree to the cent. Rounding is half away
// from zero, performed in decimal space to avoid binary-float artifacts.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundCents rounds a dollar amount to two decimal places, half away from
// zero. NaN and infinities are passed through untouched; validating inputs
// is the caller's job.
func RoundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Cents returns the amount in whole cents, half away from zero.
func Cents(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FormatUSD formats an amount as US dollars with exactly two decimals and
// thousands separators, e.g. 1234.5 -> "$1,234.50". Negative amounts keep a
// leading minus: -400 -> "-$400.00".
func FormatUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0.00"
	}
	neg := v < 0
	d := decimal.NewFromFloat(math.Abs(v)).Round(2)
	s := d.StringFixed(2)

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := fmt.Sprintf("$%s.%s", b.String(), fracPart)
	if neg {
		out = "-" + out
	}
	return out
}

// FormatUSDAccounting formats like FormatUSD but renders negatives in
// parentheses, the convention for losses on printed tax documents.
func FormatUSDAccounting(v float64) string {
	if v < 0 {
		return fmt.Sprintf("(%s)", FormatUSD(-v))
	}
	return FormatUSD(v)
}

// FormatPercent formats a fraction as a percentage with one decimal,
// e.g. 0.153 -> "15.3%".
func FormatPercent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", fraction*100)
}
