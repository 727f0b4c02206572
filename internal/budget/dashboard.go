package budget

import (
	"github.com/shopspring/decimal"

	"finanzas/internal/models"
	"finanzas/internal/money"
)

// BucketDisplay holds ARS (and for investment buckets USD) strings.
type BucketDisplay struct {
	Total    string `json:"total"`
	Spent    string `json:"spent"`
	Balance  string `json:"balance"`
	SpentUSD string `json:"spent_usd,omitempty"`
}

// BucketSummary is one dashboard row.
type BucketSummary struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Percentage  int               `json:"percentage"`
	Icon        string            `json:"icon,omitempty"`
	Color       string            `json:"color,omitempty"`
	Kind        models.BucketKind `json:"kind,omitempty"`
	Role        models.BucketRole `json:"role"`
	Total       decimal.Decimal   `json:"total"`
	Spent       decimal.Decimal   `json:"spent"`
	Balance     decimal.Decimal   `json:"balance"`
	SpentUSD    *decimal.Decimal  `json:"spent_usd,omitempty"`
	UsedPercent float64           `json:"used_percent"`
	Overspent   bool              `json:"overspent"`
	Display     BucketDisplay     `json:"display"`
}

// Dashboard is the full derived view of a working state.
type Dashboard struct {
	Period        string          `json:"period"`
	Salary        decimal.Decimal `json:"salary"`
	SalaryDisplay string          `json:"salary_display"`
	Percentages   PercentageCheck `json:"percentages"`
	Allocated     decimal.Decimal `json:"allocated"`
	Spent         decimal.Decimal `json:"spent"`
	Balance       decimal.Decimal `json:"balance"`
	Buckets       []BucketSummary `json:"buckets"`
}

// BuildDashboard aggregates s into a Dashboard.
func BuildDashboard(s *models.BudgetState) Dashboard {
	salary := money.Normalize(s.SalaryRaw)
	d := Dashboard{
		Period:        s.Period().Key(),
		Salary:        salary,
		SalaryDisplay: money.FormatDisplay(s.SalaryRaw, money.ARS),
		Percentages:   CheckPercentages(s.Buckets),
		Allocated:     decimal.Zero,
		Spent:         decimal.Zero,
		Balance:       decimal.Zero,
		Buckets:       make([]BucketSummary, 0, len(s.Buckets)),
	}

	for _, b := range s.Buckets {
		t := aggregate(s, b, salary)
		row := BucketSummary{
			ID:          b.ID,
			Name:        b.Name,
			Percentage:  b.Percentage,
			Icon:        b.Icon,
			Color:       b.Color,
			Kind:        b.Kind,
			Role:        ResolveRole(b),
			Total:       t.Total,
			Spent:       t.Spent,
			Balance:     t.Balance,
			UsedPercent: usedPercent(t.Spent, t.Total),
			Overspent:   t.Balance.IsNegative(),
			Display: BucketDisplay{
				Total:   money.Format(t.Total, money.ARS),
				Spent:   money.Format(t.Spent, money.ARS),
				Balance: money.Format(t.Balance, money.ARS),
			},
		}
		if b.IsInvestment() {
			usd := t.SpentUSD
			row.SpentUSD = &usd
			row.Display.SpentUSD = money.Format(usd, money.USD)
		}

		d.Allocated = d.Allocated.Add(t.Total)
		d.Spent = d.Spent.Add(t.Spent)
		d.Balance = d.Balance.Add(t.Balance)
		d.Buckets = append(d.Buckets, row)
	}

	return d
}

func usedPercent(spent, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return spent.Div(total).Mul(hundred).Round(2).InexactFloat64()
}
