package models

// BucketKind changes which recorded-amount partition feeds a bucket's spend.
type BucketKind string

const (
	BucketKindNone       BucketKind = "none"
	BucketKindInvestment BucketKind = "investment"
)

// BucketRole selects the extra-entry list a bucket consumes.
type BucketRole string

const (
	BucketRoleLiving     BucketRole = "living"
	BucketRoleInvestment BucketRole = "investment"
	BucketRoleLeisure    BucketRole = "leisure"
	BucketRoleOther      BucketRole = "other"
)

// Bucket is a top-level allocation target receiving a percentage of salary.
// Role may be empty on documents written before roles existed.
type Bucket struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Percentage int        `json:"percentage"`
	Icon       string     `json:"icon,omitempty"`
	Color      string     `json:"color,omitempty"`
	Kind       BucketKind `json:"kind,omitempty"`
	Role       BucketRole `json:"role,omitempty"`
	Categories []Category `json:"categories"`
}

// Category groups subcategory labels inside a bucket. Labels are plain
// strings; duplicates are permitted.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
	Icon          string   `json:"icon,omitempty"`
	Color         string   `json:"color,omitempty"`
}

// AmountKey addresses a recorded amount by category id and subcategory label.
func AmountKey(categoryID, subcategory string) string {
	return categoryID + "-" + subcategory
}

// IsInvestment reports whether the bucket aggregates investment partitions.
func (b *Bucket) IsInvestment() bool {
	return b.Kind == BucketKindInvestment
}

// Clone returns a deep copy of the bucket.
func (b Bucket) Clone() Bucket {
	out := b
	if b.Categories != nil {
		out.Categories = make([]Category, len(b.Categories))
		for i, c := range b.Categories {
			out.Categories[i] = c.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	if c.Subcategories != nil {
		out.Subcategories = append([]string(nil), c.Subcategories...)
	}
	return out
}
