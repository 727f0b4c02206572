package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
)

// AmountPartition names one of the three recorded-amount maps.
type AmountPartition string

const (
	PartitionExpense         AmountPartition = "expense"
	PartitionInvestmentPesos AmountPartition = "investment-pesos"
	PartitionInvestmentUSD   AmountPartition = "investment-usd"
)

// ExtraList names one of the three fixed extra-entry lists.
type ExtraList string

const (
	ExtraListLiving     ExtraList = "living"
	ExtraListInvestment ExtraList = "investment"
	ExtraListLeisure    ExtraList = "leisure"
)

// ExtraEntry is an ad-hoc (name, amount) pair addressed by position.
// Amount holds the raw digit string.
type ExtraEntry struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// AmountMap holds raw digit strings keyed by AmountKey. A missing key is zero.
type AmountMap map[string]string

// Period is the (year, month) selection that keys reporting snapshots.
type Period struct {
	Year  string `json:"year"`
	Month string `json:"month"`
}

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	keyPattern   = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)
)

// Key returns the snapshot key in YYYY-MM form.
func (p Period) Key() string {
	return p.Year + "-" + p.Month
}

// Valid reports whether year is four digits and month is a zero-padded 01-12.
func (p Period) Valid() bool {
	return yearPattern.MatchString(p.Year) && monthPattern.MatchString(p.Month)
}

// ParsePeriod parses a YYYY-MM snapshot key.
func ParsePeriod(key string) (Period, error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return Period{}, fmt.Errorf("invalid period %q, expected YYYY-MM", key)
	}
	return Period{Year: m[1], Month: m[2]}, nil
}

// ValidYear reports whether s is a four-digit year.
func ValidYear(s string) bool { return yearPattern.MatchString(s) }

// ValidMonth reports whether s is a zero-padded month.
func ValidMonth(s string) bool { return monthPattern.MatchString(s) }

// BudgetState is the live working state of one user. Its JSON form is the
// flat part of the persisted document.
type BudgetState struct {
	Year                string       `json:"year"`
	Month               string       `json:"month"`
	Buckets             []Bucket     `json:"buckets"`
	SalaryRaw           string       `json:"salaryRaw"`
	ExpenseAmountsRaw   AmountMap    `json:"expenseAmountsRaw"`
	InvestmentPesosRaw  AmountMap    `json:"investmentPesosRaw"`
	InvestmentUsdRaw    AmountMap    `json:"investmentUsdRaw"`
	ExtraLivingExpenses []ExtraEntry `json:"extraLivingExpenses"`
	ExtraInvestment     []ExtraEntry `json:"extraInvestment"`
	ExtraLeisure        []ExtraEntry `json:"extraLeisure"`
}

// PeriodSnapshot is the state minus buckets and period, stored per YYYY-MM.
type PeriodSnapshot struct {
	SalaryRaw           string       `json:"salaryRaw"`
	ExpenseAmountsRaw   AmountMap    `json:"expenseAmountsRaw"`
	InvestmentPesosRaw  AmountMap    `json:"investmentPesosRaw"`
	InvestmentUsdRaw    AmountMap    `json:"investmentUsdRaw"`
	ExtraLivingExpenses []ExtraEntry `json:"extraLivingExpenses"`
	ExtraInvestment     []ExtraEntry `json:"extraInvestment"`
	ExtraLeisure        []ExtraEntry `json:"extraLeisure"`
}

// Document is the full persisted user document.
type Document struct {
	BudgetState
	PeriodSnapshots map[string]PeriodSnapshot `json:"periodSnapshots,omitempty"`
}

// DecodeDocument decodes a stored document. Defaults apply per top-level
// field, only where the field is absent or null; stored buckets are never
// merged into the preset ones.
func DecodeDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}

	def := DefaultState()
	st := &doc.BudgetState
	if st.Year == "" {
		st.Year = def.Year
	}
	if st.Month == "" {
		st.Month = def.Month
	}
	if st.Buckets == nil {
		st.Buckets = def.Buckets
	}
	if st.ExpenseAmountsRaw == nil {
		st.ExpenseAmountsRaw = AmountMap{}
	}
	if st.InvestmentPesosRaw == nil {
		st.InvestmentPesosRaw = AmountMap{}
	}
	if st.InvestmentUsdRaw == nil {
		st.InvestmentUsdRaw = AmountMap{}
	}
	if st.ExtraLivingExpenses == nil {
		st.ExtraLivingExpenses = []ExtraEntry{}
	}
	if st.ExtraInvestment == nil {
		st.ExtraInvestment = []ExtraEntry{}
	}
	if st.ExtraLeisure == nil {
		st.ExtraLeisure = []ExtraEntry{}
	}
	return doc, nil
}

// Period returns the selected period.
func (s *BudgetState) Period() Period {
	return Period{Year: s.Year, Month: s.Month}
}

// Amounts returns the map for a partition, creating it on first use.
// Unknown partitions return nil.
func (s *BudgetState) Amounts(p AmountPartition) AmountMap {
	var m *AmountMap
	switch p {
	case PartitionExpense:
		m = &s.ExpenseAmountsRaw
	case PartitionInvestmentPesos:
		m = &s.InvestmentPesosRaw
	case PartitionInvestmentUSD:
		m = &s.InvestmentUsdRaw
	default:
		return nil
	}
	if *m == nil {
		*m = AmountMap{}
	}
	return *m
}

// Extras returns a pointer to the named list, or nil for an unknown list.
func (s *BudgetState) Extras(l ExtraList) *[]ExtraEntry {
	switch l {
	case ExtraListLiving:
		return &s.ExtraLivingExpenses
	case ExtraListInvestment:
		return &s.ExtraInvestment
	case ExtraListLeisure:
		return &s.ExtraLeisure
	}
	return nil
}

// FindBucket returns the index of the bucket with the given id, or -1.
func (s *BudgetState) FindBucket(id string) int {
	for i := range s.Buckets {
		if s.Buckets[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot extracts the per-period part of the state.
func (s *BudgetState) Snapshot() PeriodSnapshot {
	c := s.Clone()
	return PeriodSnapshot{
		SalaryRaw:           c.SalaryRaw,
		ExpenseAmountsRaw:   c.ExpenseAmountsRaw,
		InvestmentPesosRaw:  c.InvestmentPesosRaw,
		InvestmentUsdRaw:    c.InvestmentUsdRaw,
		ExtraLivingExpenses: c.ExtraLivingExpenses,
		ExtraInvestment:     c.ExtraInvestment,
		ExtraLeisure:        c.ExtraLeisure,
	}
}

// Clone returns a deep copy that shares no maps or slices with s.
// Nil maps and lists come back empty so the JSON form never carries null.
func (s *BudgetState) Clone() BudgetState {
	out := *s
	out.Buckets = make([]Bucket, len(s.Buckets))
	for i, b := range s.Buckets {
		out.Buckets[i] = b.Clone()
	}
	out.ExpenseAmountsRaw = cloneAmounts(s.ExpenseAmountsRaw)
	out.InvestmentPesosRaw = cloneAmounts(s.InvestmentPesosRaw)
	out.InvestmentUsdRaw = cloneAmounts(s.InvestmentUsdRaw)
	out.ExtraLivingExpenses = cloneExtras(s.ExtraLivingExpenses)
	out.ExtraInvestment = cloneExtras(s.ExtraInvestment)
	out.ExtraLeisure = cloneExtras(s.ExtraLeisure)
	return out
}

func cloneAmounts(m AmountMap) AmountMap {
	out := make(AmountMap, len(m))
	maps.Copy(out, m)
	return out
}

func cloneExtras(l []ExtraEntry) []ExtraEntry {
	return append(make([]ExtraEntry, 0, len(l)), l...)
}
