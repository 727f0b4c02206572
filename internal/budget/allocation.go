// Package budget derives allocations, spend and balances from a user's
// working state. Everything here is a pure function of its inputs; results
// are recomputed on every call and never stored.
package budget

import (
	"math"

	"github.com/shopspring/decimal"

	"finanzas/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Allocate returns salary * percentage / 100. Each bucket depends only on
// its own percentage; nothing is renormalized when percentages do not sum
// to 100.
func Allocate(salary decimal.Decimal, percentage int) decimal.Decimal {
	return salary.Mul(decimal.NewFromInt(int64(percentage))).Div(hundred)
}

// PercentageCheck reports how far bucket percentages are from 100.
type PercentageCheck struct {
	Total     int  `json:"total"`
	Deviation int  `json:"deviation"`
	Valid     bool `json:"valid"`
}

// CheckPercentages sums bucket percentages. The result is advisory and never
// blocks saving or computing.
func CheckPercentages(buckets []models.Bucket) PercentageCheck {
	total := 0
	for _, b := range buckets {
		total += b.Percentage
	}
	return PercentageCheck{
		Total:     total,
		Deviation: total - 100,
		Valid:     math.Abs(float64(total-100)) < 0.1,
	}
}
