package port

import (
	"context"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

// MonthRepository defines persistence operations for Month.
// Lookups return nil, nil when the row does not exist.
type MonthRepository interface {
	Create(ctx context.Context, month *entity.Month) error
	GetByID(ctx context.Context, id int64) (*entity.Month, error)
	GetByKey(ctx context.Context, monthKey string) (*entity.Month, error)
	List(ctx context.Context) ([]*entity.Month, error)
}

// POFolderRepository defines persistence operations for POFolder
type POFolderRepository interface {
	Create(ctx context.Context, po *entity.POFolder) error
	GetByID(ctx context.Context, id int64) (*entity.POFolder, error)

	// ListSummaries returns every PO folder with its month key and step done
	// flags, newest month first and newest folder first within a month
	ListSummaries(ctx context.Context) ([]*entity.POSummary, error)

	// ListSummariesByMonth is ListSummaries restricted to one month
	ListSummariesByMonth(ctx context.Context, monthID int64) ([]*entity.POSummary, error)

	// Touch bumps updated_at after a child step changed
	Touch(ctx context.Context, id int64, at time.Time) error
}

// StepRepository defines persistence operations for Step
type StepRepository interface {
	Create(ctx context.Context, step *entity.Step) error
	GetByID(ctx context.Context, id int64) (*entity.Step, error)
	ListByPOID(ctx context.Context, poID int64) ([]*entity.Step, error)

	// UpdateState writes the checkbox flag and the derived done flag together
	UpdateState(ctx context.Context, id int64, actionDone, isDone bool, at time.Time) error

	// ListPendingPayments returns undone payment steps created at or before the cutoff
	ListPendingPayments(ctx context.Context, createdBefore time.Time) ([]*entity.PendingPayment, error)
}

// StepFileRepository defines persistence operations for StepFile. There is no
// update or delete: uploads only ever add rows.
type StepFileRepository interface {
	Create(ctx context.Context, file *entity.StepFile) error
	HasAny(ctx context.Context, stepID int64) (bool, error)
	ListByPOID(ctx context.Context, poID int64) ([]*entity.StepFile, error)
}

// TrackedPORepository defines persistence operations for TrackedPO
type TrackedPORepository interface {
	Create(ctx context.Context, po *entity.TrackedPO) error
	GetByID(ctx context.Context, id int64) (*entity.TrackedPO, error)
	Update(ctx context.Context, po *entity.TrackedPO) error
	List(ctx context.Context, filter entity.TrackedPOFilter) ([]*entity.TrackedPO, error)
	DistinctStages(ctx context.Context) ([]string, error)
}

// TrackedPODocumentRepository defines persistence operations for TrackedPODocument
type TrackedPODocumentRepository interface {
	Create(ctx context.Context, doc *entity.TrackedPODocument) error
	GetByURL(ctx context.Context, trackedPOID int64, url string) (*entity.TrackedPODocument, error)
	ListByTrackedPOID(ctx context.Context, trackedPOID int64) ([]*entity.TrackedPODocument, error)
}

// StageLogRepository defines persistence operations for StageLog
type StageLogRepository interface {
	Create(ctx context.Context, log *entity.StageLog) error
	ListByTrackedPOID(ctx context.Context, trackedPOID int64) ([]*entity.StageLog, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
