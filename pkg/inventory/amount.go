package inventory

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	numberPattern   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseAmount extracts a numeric amount from a free-text recipe ingredient
// line such as "にんじん(1/2本)". A fraction wins over a plain numeral; a
// fraction with a zero denominator is ignored. Unit suffixes and surrounding
// text are not interpreted. Returns 0 when no amount is found, which callers
// treat as "amount unspecified" rather than an error.
func ParseAmount(text string) float64 {
	if m := fractionPattern.FindStringSubmatch(text); m != nil {
		numerator, _ := strconv.ParseFloat(m[1], 64)
		denominator, _ := strconv.ParseFloat(m[2], 64)
		if denominator != 0 {
			return numerator / denominator
		}
	}

	if m := numberPattern.FindString(text); m != "" {
		value, _ := strconv.ParseFloat(m, 64)
		return value
	}

	return 0
}

// Round2 rounds a quantity to 2 decimal places. Every quantity written back
// to the store goes through this to keep floating-point drift out of the
// accumulated totals.
func Round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
