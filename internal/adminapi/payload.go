package adminapi

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/craftline/workshop/internal/costing"
)

// parseRate validates a money/rate literal against its column scale and
// parses it. The empty string means zero.
func parseRate(literal string, maxScale int) (decimal.Decimal, string) {
	if literal == "" {
		literal = "0"
	}
	if !costing.ValidatePrecision(literal, maxScale) {
		return decimal.Zero, fmt.Sprintf("Value must be a non-negative decimal with at most %d decimal place(s)", maxScale)
	}
	v, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, "Value is not a valid decimal"
	}
	return v, ""
}
