package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func livingBucket(pct int) models.Bucket {
	return models.Bucket{
		ID: "1", Name: "Gastos para Vivir", Percentage: pct, Role: models.BucketRoleLiving,
		Categories: []models.Category{{ID: "1-1", Name: "Casa", Subcategories: []string{"alquiler", "luz"}}},
	}
}

func investmentBucket(pct int) models.Bucket {
	return models.Bucket{
		ID: "2", Name: "Inversión", Percentage: pct, Kind: models.BucketKindInvestment, Role: models.BucketRoleInvestment,
		Categories: []models.Category{{ID: "2-1", Name: "Compra USD Banco", Subcategories: []string{"usd_banco"}}},
	}
}

func stateWith(salaryRaw string, buckets ...models.Bucket) *models.BudgetState {
	s := models.DefaultState()
	s.SalaryRaw = salaryRaw
	s.Buckets = buckets
	return &s
}

func TestAllocate(t *testing.T) {
	salary := dec("5000")
	assertDecimal(t, "2500", Allocate(salary, 50))
	assertDecimal(t, "0", Allocate(salary, 0))
	assertDecimal(t, "5000", Allocate(salary, 100))
	assertDecimal(t, "0.33", Allocate(dec("1.1"), 30))

	for p := 0; p <= 100; p += 7 {
		want := salary.Mul(decimal.NewFromInt(int64(p))).Div(decimal.NewFromInt(100))
		assert.True(t, want.Equal(Allocate(salary, p)), "percentage %d", p)
	}
}

func TestCheckPercentages(t *testing.T) {
	check := CheckPercentages(models.DefaultBuckets())
	assert.Equal(t, PercentageCheck{Total: 100, Deviation: 0, Valid: true}, check)

	check = CheckPercentages([]models.Bucket{{Percentage: 60}, {Percentage: 30}})
	assert.Equal(t, 90, check.Total)
	assert.Equal(t, -10, check.Deviation)
	assert.False(t, check.Valid)
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name   string
		bucket models.Bucket
		want   models.BucketRole
	}{
		{"explicit role wins over name", models.Bucket{Name: "Disfrute", Role: models.BucketRoleLiving}, models.BucketRoleLiving},
		{"legacy leisure by name", models.Bucket{Name: "Disfrute"}, models.BucketRoleLeisure},
		{"legacy leisure beats investment kind", models.Bucket{Name: "Disfrute", Kind: models.BucketKindInvestment}, models.BucketRoleLeisure},
		{"legacy investment by kind", models.Bucket{Name: "Crypto", Kind: models.BucketKindInvestment}, models.BucketRoleInvestment},
		{"legacy living by name", models.Bucket{Name: "Gastos para Vivir"}, models.BucketRoleLiving},
		{"renamed living bucket keeps explicit role", models.Bucket{Name: "Casa y comida", Role: models.BucketRoleLiving}, models.BucketRoleLiving},
		{"anything else", models.Bucket{Name: "Fondo de Seguridad"}, models.BucketRoleOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(tt.bucket))
		})
	}
}

func TestAggregate_ScenarioA_Allocation(t *testing.T) {
	s := stateWith("500000", livingBucket(50))
	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "2500", got.Total)
	assertDecimal(t, "0", got.Spent)
	assertDecimal(t, "2500", got.Balance)
}

func TestAggregate_ScenarioB_Expense(t *testing.T) {
	s := stateWith("500000", livingBucket(50))
	s.ExpenseAmountsRaw["1-1-alquiler"] = "150000"

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "2500", got.Total)
	assertDecimal(t, "1500", got.Spent)
	assertDecimal(t, "1000", got.Balance)
}

func TestAggregate_ScenarioC_InvestmentExcludesUSD(t *testing.T) {
	s := stateWith("500000", investmentBucket(30))
	s.InvestmentPesosRaw["2-1-usd_banco"] = "100000"
	s.InvestmentUsdRaw["2-1-usd_banco"] = "50000"
	s.ExpenseAmountsRaw["2-1-usd_banco"] = "777777"

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "1500", got.Total)
	assertDecimal(t, "1000", got.Spent)
	assertDecimal(t, "500", got.SpentUSD)
	assertDecimal(t, "500", got.Balance)
}

func TestAggregate_ScenarioD_Extras(t *testing.T) {
	s := stateWith("500000", livingBucket(50))
	s.ExpenseAmountsRaw["1-1-luz"] = "50000"
	s.ExtraLivingExpenses = []models.ExtraEntry{{Name: "regalo", Amount: "10000"}, {Name: "farmacia", Amount: "20000"}}
	s.ExtraLeisure = []models.ExtraEntry{{Name: "cine", Amount: "99900"}}

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "800", got.Spent)
	assertDecimal(t, "1700", got.Balance)
}

func TestAggregate_InvestmentExtrasAddToPesos(t *testing.T) {
	s := stateWith("100000", investmentBucket(100))
	s.ExtraInvestment = []models.ExtraEntry{{Name: "cedears", Amount: "25000"}}

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "250", got.Spent)
	assertDecimal(t, "0", got.SpentUSD)
}

func TestAggregate_LegacyNameMatching(t *testing.T) {
	leisure := models.Bucket{ID: "3", Name: "Disfrute", Percentage: 10}
	s := stateWith("100000", leisure)
	s.ExtraLeisure = []models.ExtraEntry{{Name: "cine", Amount: "5000"}}

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "50", got.Spent)
}

func TestAggregate_EmptyBucket(t *testing.T) {
	safety := models.Bucket{ID: "4", Name: "Fondo de Seguridad", Percentage: 10, Role: models.BucketRoleOther}
	for _, salary := range []string{"", "0", "123456", "999999999"} {
		s := stateWith(salary, safety)
		s.ExtraLivingExpenses = []models.ExtraEntry{{Name: "x", Amount: "100"}}
		got := AggregateBucket(s, s.Buckets[0])
		assert.True(t, got.Spent.IsZero(), "salary %q", salary)
		assert.True(t, got.Total.Equal(got.Balance), "salary %q", salary)
	}
}

func TestAggregate_OverspentIsValid(t *testing.T) {
	s := stateWith("10000", livingBucket(50))
	s.ExpenseAmountsRaw["1-1-luz"] = "20000"

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "-150", got.Balance)
}

func TestAggregate_Idempotent(t *testing.T) {
	s := stateWith("500000", livingBucket(50), investmentBucket(30))
	s.ExpenseAmountsRaw["1-1-luz"] = "12345"
	s.InvestmentPesosRaw["2-1-usd_banco"] = "100000"

	first := Aggregate(s)
	second := Aggregate(s)
	require.Len(t, first, 2)
	for i := range first {
		assert.True(t, first[i].Total.Equal(second[i].Total))
		assert.True(t, first[i].Spent.Equal(second[i].Spent))
		assert.True(t, first[i].Balance.Equal(second[i].Balance))
	}
}

func TestAggregate_DuplicateSubcategoriesCountTwice(t *testing.T) {
	b := livingBucket(100)
	b.Categories[0].Subcategories = []string{"luz", "luz"}
	s := stateWith("100000", b)
	s.ExpenseAmountsRaw["1-1-luz"] = "1000"

	got := AggregateBucket(s, s.Buckets[0])
	assertDecimal(t, "20", got.Spent)
}

func TestPruneOrphans_ScenarioE(t *testing.T) {
	s := stateWith("500000", livingBucket(50), investmentBucket(30))
	s.ExpenseAmountsRaw["1-1-luz"] = "1000"
	s.InvestmentPesosRaw["2-1-usd_banco"] = "2000"
	s.InvestmentUsdRaw["2-1-usd_banco"] = "3000"

	// Removing a bucket leaves its amounts in place.
	s.Buckets = s.Buckets[:1]
	assert.Equal(t, "2000", s.InvestmentPesosRaw["2-1-usd_banco"])
	assert.Equal(t, "3000", s.InvestmentUsdRaw["2-1-usd_banco"])
	require.Len(t, Aggregate(s), 1)

	removed := PruneOrphans(s)
	assert.Equal(t, 2, removed)
	assert.Empty(t, s.InvestmentPesosRaw)
	assert.Empty(t, s.InvestmentUsdRaw)
	assert.Equal(t, "1000", s.ExpenseAmountsRaw["1-1-luz"])
}

func TestBuildDashboard(t *testing.T) {
	s := models.DefaultState()
	s.SalaryRaw = "100000000"
	s.ExpenseAmountsRaw["1-1-alquiler"] = "30000000"
	s.InvestmentPesosRaw["2-2-iol_mep"] = "10000000"
	s.InvestmentUsdRaw["2-2-iol_mep"] = "12345"

	d := BuildDashboard(&s)
	assert.Equal(t, "2025-01", d.Period)
	assert.Equal(t, "$ 1.000.000,00", d.SalaryDisplay)
	assert.True(t, d.Percentages.Valid)
	require.Len(t, d.Buckets, 4)

	living := d.Buckets[0]
	assertDecimal(t, "500000", living.Total)
	assertDecimal(t, "300000", living.Spent)
	assert.Equal(t, 60.0, living.UsedPercent)
	assert.False(t, living.Overspent)
	assert.Equal(t, "$ 200.000,00", living.Display.Balance)
	assert.Nil(t, living.SpentUSD)

	inv := d.Buckets[1]
	require.NotNil(t, inv.SpentUSD)
	assertDecimal(t, "123.45", *inv.SpentUSD)
	assert.Equal(t, "USD 123.45", inv.Display.SpentUSD)
	assertDecimal(t, "100000", inv.Spent)

	assertDecimal(t, "1000000", d.Allocated)
	assertDecimal(t, "400000", d.Spent)
	assertDecimal(t, "600000", d.Balance)
}

func TestBuildDashboard_ZeroSalary(t *testing.T) {
	s := models.DefaultState()
	d := BuildDashboard(&s)
	assert.Equal(t, "", d.SalaryDisplay)
	for _, b := range d.Buckets {
		assert.Equal(t, 0.0, b.UsedPercent)
		assert.True(t, b.Balance.IsZero())
	}
}
