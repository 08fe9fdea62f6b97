package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountChars = regexp.MustCompile(`[^0-9.,\-]`)

// ParseAmount converts a matched amount substring into an exact decimal
// value. Currency codes, symbols and thousands separators are stripped
// before parsing. The second return value is false when no valid amount
// remains; a bad amount is absent, never an error.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := nonAmountChars.ReplaceAllString(s, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" || cleaned == "-" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
