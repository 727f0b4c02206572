package services

import (
	"context"

	"github.com/shopspring/decimal"

	"finanzas/internal/budget"
	"finanzas/internal/models"
	"finanzas/internal/pagination"
)

// PersistenceGateway loads and saves whole user documents.
type PersistenceGateway interface {
	// Load returns nil without error for a user with no saved document.
	Load(ctx context.Context, userID string) (*models.Document, error)
	// Save writes the flat state fields plus the snapshot of the state's
	// current period.
	Save(ctx context.Context, userID string, state models.BudgetState) error
}

// BucketInput carries the editable fields of a bucket.
type BucketInput struct {
	Name       string
	Percentage int
	Icon       string
	Color      string
	Kind       models.BucketKind
	Role       models.BucketRole
	Categories []models.Category
}

// RecordedAmount is the stored and derived form of one amount entry.
type RecordedAmount struct {
	Key       string          `json:"key"`
	Partition string          `json:"partition"`
	Raw       string          `json:"raw"`
	Amount    decimal.Decimal `json:"amount"`
	Display   string          `json:"display"`
}

// BudgetServicer defines the contract for working-state operations of a session.
type BudgetServicer interface {
	GetState(ctx context.Context, userID string) (*models.BudgetState, error)
	GetDashboard(ctx context.Context, userID string) (*budget.Dashboard, error)
	SetPeriod(ctx context.Context, userID string, period models.Period) (*models.BudgetState, error)
	SetSalary(ctx context.Context, userID, raw string) (*budget.Dashboard, error)
	CreateBucket(ctx context.Context, userID string, input *BucketInput) (*models.Bucket, error)
	UpdateBucket(ctx context.Context, userID, bucketID string, input BucketInput) (*models.Bucket, error)
	UpdateBucketAppearance(ctx context.Context, userID, bucketID string, icon, color *string) (*models.Bucket, error)
	DeleteBucket(ctx context.Context, userID, bucketID string) error
	SetRecordedAmount(ctx context.Context, userID string, partition models.AmountPartition, categoryID, subcategory, raw string) (*RecordedAmount, error)
	PruneOrphanedAmounts(ctx context.Context, userID string) (int, error)
	ListExtras(ctx context.Context, userID string, list models.ExtraList) ([]models.ExtraEntry, error)
	AddExtra(ctx context.Context, userID string, list models.ExtraList, entry models.ExtraEntry) ([]models.ExtraEntry, error)
	UpdateExtra(ctx context.Context, userID string, list models.ExtraList, index int, entry models.ExtraEntry) ([]models.ExtraEntry, error)
	RemoveExtra(ctx context.Context, userID string, list models.ExtraList, index int) ([]models.ExtraEntry, error)
	EndSession(userID string)
}

// PeriodSummary describes one persisted period snapshot.
type PeriodSummary struct {
	Period        string          `json:"period"`
	Salary        decimal.Decimal `json:"salary"`
	SalaryDisplay string          `json:"salary_display"`
	Entries       int             `json:"entries"`
}

// SnapshotServicer defines the contract for reading persisted period snapshots.
type SnapshotServicer interface {
	ListPeriods(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[PeriodSummary], error)
	GetSnapshot(ctx context.Context, userID, period string) (*models.PeriodSnapshot, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
	ListUserLogs(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
