package services

import (
	"context"
	"strings"

	"finanzas/internal/budget"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
	"finanzas/internal/money"
	"finanzas/internal/uuid"
)

// budgetService handles working-state operations.
type budgetService struct {
	sessions *SessionRegistry
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(sessions *SessionRegistry) BudgetServicer {
	return &budgetService{sessions: sessions}
}

// GetState returns a copy of the user's working state.
func (s *budgetService) GetState(ctx context.Context, userID string) (*models.BudgetState, error) {
	var out models.BudgetState
	if err := s.sessions.View(ctx, userID, func(st *models.BudgetState) {
		out = st.Clone()
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDashboard recomputes allocations, spend and balances.
func (s *budgetService) GetDashboard(ctx context.Context, userID string) (*budget.Dashboard, error) {
	var d budget.Dashboard
	if err := s.sessions.View(ctx, userID, func(st *models.BudgetState) {
		d = budget.BuildDashboard(st)
	}); err != nil {
		return nil, err
	}
	return &d, nil
}

// SetPeriod selects the reporting period. The working state is not
// partitioned by period; the next save snapshots it under the new key.
func (s *budgetService) SetPeriod(ctx context.Context, userID string, period models.Period) (*models.BudgetState, error) {
	if !period.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be a four-digit year and a month from 01 to 12")
	}

	var out models.BudgetState
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		st.Year = period.Year
		st.Month = period.Month
		out = st.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetSalary stores the digits of raw as the session salary.
func (s *budgetService) SetSalary(ctx context.Context, userID, raw string) (*budget.Dashboard, error) {
	var d budget.Dashboard
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		st.SalaryRaw = money.Digits(raw)
		d = budget.BuildDashboard(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateBucket appends a bucket. A nil input creates the blank bucket of the
// "new bucket" action: empty name, zero percent.
func (s *budgetService) CreateBucket(ctx context.Context, userID string, input *BucketInput) (*models.Bucket, error) {
	bucket := models.Bucket{
		ID:         uuid.New(),
		Icon:       models.NewBucketIcon,
		Color:      models.NewAppearanceColor,
		Kind:       models.BucketKindNone,
		Categories: []models.Category{},
	}
	if input != nil {
		if input.Percentage < 0 || input.Percentage > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "percentage must be between 0 and 100")
		}
		applyBucketInput(&bucket, *input)
	}
	if bucket.Role == "" {
		bucket.Role = budget.ResolveRole(bucket)
	}

	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		st.Buckets = append(st.Buckets, bucket.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// UpdateBucket replaces a bucket's editable fields. Saving an edit needs a
// non-empty name and a percentage above zero.
func (s *budgetService) UpdateBucket(ctx context.Context, userID, bucketID string, input BucketInput) (*models.Bucket, error) {
	if strings.TrimSpace(input.Name) == "" || input.Percentage <= 0 {
		return nil, apperrors.ErrIncompleteBucket
	}
	if input.Percentage > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "percentage must be between 0 and 100")
	}

	var out models.Bucket
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		i := st.FindBucket(bucketID)
		if i < 0 {
			return apperrors.ErrBucketNotFound
		}
		applyBucketInput(&st.Buckets[i], input)
		out = st.Buckets[i].Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBucketAppearance changes a bucket's icon and/or color tokens.
func (s *budgetService) UpdateBucketAppearance(ctx context.Context, userID, bucketID string, icon, color *string) (*models.Bucket, error) {
	var out models.Bucket
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		i := st.FindBucket(bucketID)
		if i < 0 {
			return apperrors.ErrBucketNotFound
		}
		if icon != nil {
			st.Buckets[i].Icon = *icon
		}
		if color != nil {
			st.Buckets[i].Color = *color
		}
		out = st.Buckets[i].Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBucket removes a bucket and its categories. Amounts recorded under
// those categories stay in the amount maps.
func (s *budgetService) DeleteBucket(ctx context.Context, userID, bucketID string) error {
	return s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		i := st.FindBucket(bucketID)
		if i < 0 {
			return apperrors.ErrBucketNotFound
		}
		st.Buckets = append(st.Buckets[:i], st.Buckets[i+1:]...)
		return nil
	})
}

// SetRecordedAmount stores the digits of raw at (categoryID, subcategory) in
// a partition. Clearing the input removes the key, which reads as zero.
func (s *budgetService) SetRecordedAmount(
	ctx context.Context,
	userID string,
	partition models.AmountPartition,
	categoryID, subcategory, raw string,
) (*RecordedAmount, error) {
	if categoryID == "" || subcategory == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id and subcategory are required")
	}

	key := models.AmountKey(categoryID, subcategory)
	digits := money.Digits(raw)
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		m := st.Amounts(partition)
		if m == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown amount partition")
		}
		if digits == "" {
			delete(m, key)
		} else {
			m[key] = digits
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	currency := money.ARS
	if partition == models.PartitionInvestmentUSD {
		currency = money.USD
	}
	return &RecordedAmount{
		Key:       key,
		Partition: string(partition),
		Raw:       digits,
		Amount:    money.Normalize(digits),
		Display:   money.FormatDisplay(digits, currency),
	}, nil
}

// PruneOrphanedAmounts removes amounts no current category references.
func (s *budgetService) PruneOrphanedAmounts(ctx context.Context, userID string) (int, error) {
	removed := 0
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		removed = budget.PruneOrphans(st)
		return nil
	})
	return removed, err
}

// ListExtras returns a copy of one extra-entry list.
func (s *budgetService) ListExtras(ctx context.Context, userID string, list models.ExtraList) ([]models.ExtraEntry, error) {
	var out []models.ExtraEntry
	var listErr error
	err := s.sessions.View(ctx, userID, func(st *models.BudgetState) {
		entries := st.Extras(list)
		if entries == nil {
			listErr = apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown extra list")
			return
		}
		out = append([]models.ExtraEntry{}, *entries...)
	})
	if err != nil {
		return nil, err
	}
	return out, listErr
}

// AddExtra appends an entry to a list.
func (s *budgetService) AddExtra(ctx context.Context, userID string, list models.ExtraList, entry models.ExtraEntry) ([]models.ExtraEntry, error) {
	entry.Amount = money.Digits(entry.Amount)
	return s.mutateExtras(ctx, userID, list, func(entries []models.ExtraEntry) ([]models.ExtraEntry, error) {
		return append(entries, entry), nil
	})
}

// UpdateExtra replaces the entry at index.
func (s *budgetService) UpdateExtra(ctx context.Context, userID string, list models.ExtraList, index int, entry models.ExtraEntry) ([]models.ExtraEntry, error) {
	entry.Amount = money.Digits(entry.Amount)
	return s.mutateExtras(ctx, userID, list, func(entries []models.ExtraEntry) ([]models.ExtraEntry, error) {
		if index < 0 || index >= len(entries) {
			return nil, apperrors.ErrExtraNotFound
		}
		entries[index] = entry
		return entries, nil
	})
}

// RemoveExtra deletes the entry at index; later entries shift down.
func (s *budgetService) RemoveExtra(ctx context.Context, userID string, list models.ExtraList, index int) ([]models.ExtraEntry, error) {
	return s.mutateExtras(ctx, userID, list, func(entries []models.ExtraEntry) ([]models.ExtraEntry, error) {
		if index < 0 || index >= len(entries) {
			return nil, apperrors.ErrExtraNotFound
		}
		return append(entries[:index], entries[index+1:]...), nil
	})
}

// EndSession drops the user's session without flushing a pending save.
func (s *budgetService) EndSession(userID string) {
	s.sessions.End(userID)
}

func (s *budgetService) mutateExtras(
	ctx context.Context,
	userID string,
	list models.ExtraList,
	fn func([]models.ExtraEntry) ([]models.ExtraEntry, error),
) ([]models.ExtraEntry, error) {
	var out []models.ExtraEntry
	err := s.sessions.Mutate(ctx, userID, func(st *models.BudgetState) error {
		entries := st.Extras(list)
		if entries == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown extra list")
		}
		updated, err := fn(*entries)
		if err != nil {
			return err
		}
		*entries = updated
		out = append([]models.ExtraEntry{}, updated...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyBucketInput copies input onto b, keeping b's id. Empty kind and role
// keep their current values; categories get ids and cleaned labels.
func applyBucketInput(b *models.Bucket, input BucketInput) {
	b.Name = strings.TrimSpace(input.Name)
	b.Percentage = input.Percentage
	if input.Icon != "" {
		b.Icon = input.Icon
	}
	if input.Color != "" {
		b.Color = input.Color
	}
	if input.Kind != "" {
		b.Kind = input.Kind
	}
	if input.Role != "" {
		b.Role = input.Role
	}
	if input.Categories != nil {
		b.Categories = normalizeCategories(input.Categories)
	}
}

func normalizeCategories(in []models.Category) []models.Category {
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		c = c.Clone()
		if c.ID == "" {
			c.ID = uuid.New()
		}
		if c.Icon == "" {
			c.Icon = models.NewCategoryIcon
		}
		if c.Color == "" {
			c.Color = models.NewAppearanceColor
		}
		labels := make([]string, 0, len(c.Subcategories))
		for _, l := range c.Subcategories {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
		c.Subcategories = labels
		out = append(out, c)
	}
	return out
}
