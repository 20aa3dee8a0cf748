package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var amountCleaner = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "", " ", "")

// ParseAmount parses a currency cell into a decimal, stripping currency
// symbols and thousands separators first. Non-parseable values count as zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(amountCleaner.Replace(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
