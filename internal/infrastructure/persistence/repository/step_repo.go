package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

const stepColumns = `id, po_id, step_no, step_title, step_desc, is_done, action_done, created_at, updated_at`

// StepRepository implements port.StepRepository
type StepRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStepRepository creates a new step repository
func NewStepRepository(db *sql.DB, logger *zap.Logger) *StepRepository {
	return &StepRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a step
func (r *StepRepository) Create(ctx context.Context, step *entity.Step) error {
	query := `
		INSERT INTO po_steps (
			po_id, step_no, step_title, step_desc, is_done, action_done, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		step.POID,
		step.StepNo,
		step.StepTitle,
		step.StepDesc,
		boolToInt(step.IsDone),
		boolToInt(step.ActionDone),
		step.CreatedAt,
		step.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create step",
			zap.Int64("po_id", step.POID),
			zap.Int("step_no", step.StepNo),
			zap.Error(err))
		return fmt.Errorf("failed to create step: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	step.ID = id
	return nil
}

// GetByID retrieves a step by its ID
func (r *StepRepository) GetByID(ctx context.Context, id int64) (*entity.Step, error) {
	query := `SELECT ` + stepColumns + ` FROM po_steps WHERE id = ?`

	step, err := scanStep(r.getExecutor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get step by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get step: %w", err)
	}

	return step, nil
}

// ListByPOID returns the steps of a PO folder in step order
func (r *StepRepository) ListByPOID(ctx context.Context, poID int64) ([]*entity.Step, error) {
	query := `SELECT ` + stepColumns + ` FROM po_steps WHERE po_id = ? ORDER BY step_no`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, poID)
	if err != nil {
		r.logger.Error("Failed to list steps", zap.Int64("po_id", poID), zap.Error(err))
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []*entity.Step
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// UpdateState writes action_done and is_done and bumps updated_at
func (r *StepRepository) UpdateState(ctx context.Context, id int64, actionDone, isDone bool, at time.Time) error {
	query := `UPDATE po_steps SET action_done = ?, is_done = ?, updated_at = ? WHERE id = ?`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, boolToInt(actionDone), boolToInt(isDone), at, id)
	if err != nil {
		r.logger.Error("Failed to update step state",
			zap.Int64("id", id),
			zap.Bool("action_done", actionDone),
			zap.Bool("is_done", isDone),
			zap.Error(err))
		return fmt.Errorf("failed to update step state: %w", err)
	}

	return nil
}

// ListPendingPayments returns undone payment steps created at or before createdBefore, oldest first
func (r *StepRepository) ListPendingPayments(ctx context.Context, createdBefore time.Time) ([]*entity.PendingPayment, error) {
	query := `
		SELECT s.id, s.po_id, s.step_no, s.step_title, s.step_desc, s.is_done, s.action_done,
			s.created_at, s.updated_at, p.folder_name, m.month_key
		FROM po_steps s
		JOIN po_folders p ON p.id = s.po_id
		JOIN months m ON m.id = p.month_id
		WHERE s.step_no = ? AND s.is_done = 0 AND s.created_at <= ?
		ORDER BY s.created_at, s.id
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, checklist.PaymentStepNo, createdBefore)
	if err != nil {
		r.logger.Error("Failed to list pending payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	defer rows.Close()

	var pending []*entity.PendingPayment
	for rows.Next() {
		p := &entity.PendingPayment{}
		if err := rows.Scan(
			&p.Step.ID, &p.Step.POID, &p.Step.StepNo, &p.Step.StepTitle, &p.Step.StepDesc,
			&p.Step.IsDone, &p.Step.ActionDone, &p.Step.CreatedAt, &p.Step.UpdatedAt,
			&p.FolderName, &p.MonthKey,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending payment: %w", err)
		}
		pending = append(pending, p)
	}

	return pending, rows.Err()
}

func scanStep(row scanner) (*entity.Step, error) {
	step := &entity.Step{}
	err := row.Scan(
		&step.ID, &step.POID, &step.StepNo, &step.StepTitle, &step.StepDesc,
		&step.IsDone, &step.ActionDone, &step.CreatedAt, &step.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return step, nil
}

func (r *StepRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.StepRepository = (*StepRepository)(nil)
