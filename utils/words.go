package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

func twoDigitWords(n int) string {
	if n < 20 {
		return onesWords[n]
	}
	w := tensWords[n/10]
	if n%10 != 0 {
		w += " " + onesWords[n%10]
	}
	return w
}

func numberWords(n int) string {
	if n == 0 {
		return "Zero"
	}
	var parts []string
	crore := n / 10000000
	n %= 10000000
	lakh := n / 100000
	n %= 100000
	thousand := n / 1000
	n %= 1000
	hundred := n / 100
	rest := n % 100

	if crore > 0 {
		parts = append(parts, twoDigitWords(crore)+" Crore")
	}
	if lakh > 0 {
		parts = append(parts, twoDigitWords(lakh)+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigitWords(thousand)+" Thousand")
	}
	if hundred > 0 {
		parts = append(parts, onesWords[hundred]+" Hundred")
	}
	if rest > 0 {
		parts = append(parts, twoDigitWords(rest))
	}
	return strings.Join(parts, " ")
}

// AmountInWords spells an amount in Indian-system rupees and paise:
// 236.50 -> "Two Hundred Thirty Six Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	rupees := int(f)
	paise := int(math.Round((f - float64(rupees)) * 100))

	result := numberWords(rupees) + " Rupees"
	if paise > 0 {
		result += " and " + numberWords(paise) + " Paise Only"
	} else {
		result += " Only"
	}
	return result
}
