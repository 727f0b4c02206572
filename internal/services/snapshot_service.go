package services

import (
	"context"
	"sort"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
	"finanzas/internal/money"
	"finanzas/internal/pagination"
)

// snapshotService reads persisted period snapshots.
type snapshotService struct {
	gateway PersistenceGateway
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(gateway PersistenceGateway) SnapshotServicer {
	return &snapshotService{gateway: gateway}
}

// ListPeriods returns the saved periods, newest first.
func (s *snapshotService) ListPeriods(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[PeriodSummary], error) {
	doc, err := s.gateway.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var summaries []PeriodSummary
	if doc != nil {
		summaries = make([]PeriodSummary, 0, len(doc.PeriodSnapshots))
		for key, snap := range doc.PeriodSnapshots {
			summaries = append(summaries, PeriodSummary{
				Period:        key,
				Salary:        money.Normalize(snap.SalaryRaw),
				SalaryDisplay: money.FormatDisplay(snap.SalaryRaw, money.ARS),
				Entries:       countEntries(snap),
			})
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Period > summaries[j].Period })

	result := pagination.Slice(summaries, page)
	return &result, nil
}

// GetSnapshot returns the snapshot saved for a YYYY-MM period.
func (s *snapshotService) GetSnapshot(ctx context.Context, userID, period string) (*models.PeriodSnapshot, error) {
	if _, err := models.ParsePeriod(period); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	doc, err := s.gateway.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.ErrSnapshotNotFound
	}
	snap, ok := doc.PeriodSnapshots[period]
	if !ok {
		return nil, apperrors.ErrSnapshotNotFound
	}
	return &snap, nil
}

func countEntries(s models.PeriodSnapshot) int {
	return len(s.ExpenseAmountsRaw) + len(s.InvestmentPesosRaw) + len(s.InvestmentUsdRaw) +
		len(s.ExtraLivingExpenses) + len(s.ExtraInvestment) + len(s.ExtraLeisure)
}
