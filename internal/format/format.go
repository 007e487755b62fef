// Package format converts amounts and dates to display strings.
package format

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	crore    = decimal.NewFromInt(10_000_000)
	lakh     = decimal.NewFromInt(100_000)
	thousand = decimal.NewFromInt(1_000)
)

// Currency renders an amount in Indian units: crores above 1e7 ("1.23 Cr"),
// lakhs above 1e5 ("2.35 L"), thousands above 1e3 ("4.5 K"), plain below
// ("900"). Scaled values keep at most two decimal places with trailing zeros
// trimmed.
func Currency(v decimal.Decimal) string {
	abs := v.Abs()
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}

	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + scaled(abs, crore) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + scaled(abs, lakh) + " L"
	case abs.GreaterThanOrEqual(thousand):
		return sign + scaled(abs, thousand) + " K"
	default:
		return sign + abs.String()
	}
}

func scaled(abs, unit decimal.Decimal) string {
	return abs.Div(unit).Round(2).String()
}

// Amount renders a full-precision amount with two decimal places, for tables
// where scaled units would lose information.
func Amount(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// displayDateFormat is the human-facing date layout.
const displayDateFormat = "02 Jan 2006"

// Date renders a date for display, e.g. "15 Jan 2025".
func Date(t time.Time) string {
	return t.Format(displayDateFormat)
}

// Percent renders a ratio in [0,1] as a percentage with one decimal place.
func Percent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).Round(1).String() + "%"
}
