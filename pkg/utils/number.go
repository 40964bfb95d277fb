package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseLocalizedDecimal parses a decimal amount formatted with grouping
// separators ("1,234,567.89" or "1 234 567.89"). Empty input parses as
// zero, matching how the export renders deals without a budget.
func ParseLocalizedDecimal(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	// The export uses the comma strictly as a thousands separator.
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	return decimal.NewFromString(cleaned)
}
