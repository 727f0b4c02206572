package budget

import (
	"github.com/shopspring/decimal"

	"finanzas/internal/models"
	"finanzas/internal/money"
)

// Totals is the derived triple for one bucket. SpentUSD is the sum of the
// investment-usd amounts under an investment bucket; it is reported beside
// Spent and never merged into it.
type Totals struct {
	BucketID string
	Total    decimal.Decimal
	Spent    decimal.Decimal
	Balance  decimal.Decimal
	SpentUSD decimal.Decimal
}

// AggregateBucket computes total, spent and balance for b.
func AggregateBucket(s *models.BudgetState, b models.Bucket) Totals {
	salary := money.Normalize(s.SalaryRaw)
	return aggregate(s, b, salary)
}

// Aggregate computes the totals of every bucket in display order.
func Aggregate(s *models.BudgetState) []Totals {
	salary := money.Normalize(s.SalaryRaw)
	out := make([]Totals, 0, len(s.Buckets))
	for _, b := range s.Buckets {
		out = append(out, aggregate(s, b, salary))
	}
	return out
}

func aggregate(s *models.BudgetState, b models.Bucket, salary decimal.Decimal) Totals {
	spent := decimal.Zero
	spentUSD := decimal.Zero

	for _, c := range b.Categories {
		for _, sub := range c.Subcategories {
			key := models.AmountKey(c.ID, sub)
			if b.IsInvestment() {
				spent = spent.Add(money.Normalize(s.InvestmentPesosRaw[key]))
				spentUSD = spentUSD.Add(money.Normalize(s.InvestmentUsdRaw[key]))
			} else {
				spent = spent.Add(money.Normalize(s.ExpenseAmountsRaw[key]))
			}
		}
	}

	if list, ok := ExtraListFor(ResolveRole(b)); ok {
		for _, e := range *s.Extras(list) {
			spent = spent.Add(money.Normalize(e.Amount))
		}
	}

	total := Allocate(salary, b.Percentage)
	return Totals{
		BucketID: b.ID,
		Total:    total,
		Spent:    spent,
		Balance:  total.Sub(spent),
		SpentUSD: spentUSD,
	}
}
