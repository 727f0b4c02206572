package models

// Default period selected for a first-time user.
const (
	DefaultYear  = "2025"
	DefaultMonth = "01"
)

// Tokens used for buckets and categories created without explicit appearance.
const (
	NewBucketIcon      = "plus"
	NewCategoryIcon    = "question"
	NewAppearanceColor = "#607D8B"
)

// DefaultBuckets returns the four preset buckets, summing to 100%.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{
			ID: "1", Name: "Gastos para Vivir", Percentage: 50,
			Icon: "home", Color: "#4ECDC4", Kind: BucketKindNone, Role: BucketRoleLiving,
			Categories: []Category{
				{ID: "1-1", Name: "Casa", Subcategories: []string{"alquiler", "agua", "luz", "gas", "tasa", "internet", "telefono"}, Icon: "home", Color: "#4ECDC4"},
				{ID: "1-2", Name: "Tarjeta de crédito", Subcategories: []string{"tarjeta"}, Icon: "credit-card", Color: "#45B7D1"},
				{ID: "1-3", Name: "Auto", Subcategories: []string{"patente", "seguro"}, Icon: "car", Color: "#96CEB4"},
				{ID: "1-4", Name: "Moto", Subcategories: []string{"patente", "seguro"}, Icon: "motorcycle", Color: "#FFEAA7"},
				{ID: "1-5", Name: "Varios", Subcategories: []string{"calistenia"}, Icon: "question", Color: "#DDA0DD"},
			},
		},
		{
			ID: "2", Name: "Inversión", Percentage: 30,
			Icon: "savings", Color: "#FF6B6B", Kind: BucketKindInvestment, Role: BucketRoleInvestment,
			Categories: []Category{
				{ID: "2-1", Name: "Compra USD Banco", Subcategories: []string{"usd_banco"}, Icon: "bank", Color: "#FF6B6B"},
				{ID: "2-2", Name: "Invertir Online (IOL)", Subcategories: []string{"iol_mep", "iol_sp500"}, Icon: "chart-line", Color: "#F8B195"},
				{ID: "2-3", Name: "Otro", Subcategories: []string{"otro_inversion"}, Icon: "question", Color: "#C7CEEA"},
			},
		},
		{
			ID: "3", Name: "Disfrute", Percentage: 10,
			Icon: "entertainment", Color: "#E91E63", Kind: BucketKindNone, Role: BucketRoleLeisure,
			Categories: []Category{
				{ID: "3-1", Name: "Actividades", Subcategories: []string{"calistenia"}, Icon: "muscle", Color: "#E91E63"},
			},
		},
		{
			ID: "4", Name: "Fondo de Seguridad", Percentage: 10,
			Icon: "savings", Color: "#009688", Kind: BucketKindNone, Role: BucketRoleOther,
			Categories: []Category{},
		},
	}
}

// DefaultState returns the working state of a user with no saved document.
func DefaultState() BudgetState {
	return BudgetState{
		Year:                DefaultYear,
		Month:               DefaultMonth,
		Buckets:             DefaultBuckets(),
		ExpenseAmountsRaw:   AmountMap{},
		InvestmentPesosRaw:  AmountMap{},
		InvestmentUsdRaw:    AmountMap{},
		ExtraLivingExpenses: []ExtraEntry{},
		ExtraInvestment:     []ExtraEntry{},
		ExtraLeisure:        []ExtraEntry{},
	}
}
