package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// POFolderRepository implements port.POFolderRepository
type POFolderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPOFolderRepository creates a new PO folder repository
func NewPOFolderRepository(db *sql.DB, logger *zap.Logger) *POFolderRepository {
	return &POFolderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a PO folder
func (r *POFolderRepository) Create(ctx context.Context, po *entity.POFolder) error {
	query := `
		INSERT INTO po_folders (
			month_id, folder_name, capex_opex, it_ref_no, title, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		po.MonthID,
		po.FolderName,
		po.CapexOpex,
		po.ITRefNo,
		po.Title,
		po.CreatedAt,
		po.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create PO folder",
			zap.Int64("month_id", po.MonthID),
			zap.String("folder_name", po.FolderName),
			zap.Error(err))
		return fmt.Errorf("failed to create PO folder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	po.ID = id
	return nil
}

// GetByID retrieves a PO folder by its ID
func (r *POFolderRepository) GetByID(ctx context.Context, id int64) (*entity.POFolder, error) {
	query := `
		SELECT id, month_id, folder_name, capex_opex, it_ref_no, title, created_at, updated_at
		FROM po_folders
		WHERE id = ?
	`

	po := &entity.POFolder{}
	err := r.getExecutor(ctx).QueryRowContext(ctx, query, id).Scan(
		&po.ID, &po.MonthID, &po.FolderName, &po.CapexOpex,
		&po.ITRefNo, &po.Title, &po.CreatedAt, &po.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get PO folder by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get PO folder: %w", err)
	}

	return po, nil
}

// ListSummaries returns all PO folders with their month keys and step done flags
func (r *POFolderRepository) ListSummaries(ctx context.Context) ([]*entity.POSummary, error) {
	return r.listSummaries(ctx, "", nil)
}

// ListSummariesByMonth returns the PO folders of one month
func (r *POFolderRepository) ListSummariesByMonth(ctx context.Context, monthID int64) ([]*entity.POSummary, error) {
	return r.listSummaries(ctx, "WHERE p.month_id = ?", []interface{}{monthID})
}

func (r *POFolderRepository) listSummaries(ctx context.Context, where string, args []interface{}) ([]*entity.POSummary, error) {
	query := `
		SELECT p.id, p.month_id, p.folder_name, p.capex_opex, p.it_ref_no, p.title,
			p.created_at, p.updated_at, m.month_key, s.is_done
		FROM po_folders p
		JOIN months m ON m.id = p.month_id
		LEFT JOIN po_steps s ON s.po_id = p.id
		` + where + `
		ORDER BY m.month_key DESC, p.created_at DESC, p.id DESC, s.step_no
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list PO summaries", zap.Error(err))
		return nil, fmt.Errorf("failed to list PO summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*entity.POSummary
	var current *entity.POSummary
	for rows.Next() {
		var po entity.POFolder
		var monthKey string
		var isDone sql.NullBool
		if err := rows.Scan(
			&po.ID, &po.MonthID, &po.FolderName, &po.CapexOpex, &po.ITRefNo, &po.Title,
			&po.CreatedAt, &po.UpdatedAt, &monthKey, &isDone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan PO summary: %w", err)
		}

		if current == nil || current.ID != po.ID {
			current = &entity.POSummary{POFolder: po, MonthKey: monthKey}
			summaries = append(summaries, current)
		}
		if isDone.Valid {
			current.StepDone = append(current.StepDone, isDone.Bool)
		}
	}

	return summaries, rows.Err()
}

// Touch bumps updated_at of a PO folder
func (r *POFolderRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE po_folders SET updated_at = ? WHERE id = ?`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, at, id)
	if err != nil {
		r.logger.Error("Failed to touch PO folder", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to touch PO folder: %w", err)
	}

	return nil
}

func (r *POFolderRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.POFolderRepository = (*POFolderRepository)(nil)
