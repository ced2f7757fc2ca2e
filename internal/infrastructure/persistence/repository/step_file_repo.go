package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// StepFileRepository implements port.StepFileRepository
type StepFileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStepFileRepository creates a new step file repository
func NewStepFileRepository(db *sql.DB, logger *zap.Logger) *StepFileRepository {
	return &StepFileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an uploaded file record
func (r *StepFileRepository) Create(ctx context.Context, file *entity.StepFile) error {
	query := `INSERT INTO po_step_files (step_id, file_name, file_path, uploaded_at) VALUES (?, ?, ?, ?)`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		file.StepID,
		file.FileName,
		file.FilePath,
		file.UploadedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create step file",
			zap.Int64("step_id", file.StepID),
			zap.String("file_name", file.FileName),
			zap.Error(err))
		return fmt.Errorf("failed to create step file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	file.ID = id
	return nil
}

// HasAny reports whether a step has at least one uploaded file
func (r *StepFileRepository) HasAny(ctx context.Context, stepID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM po_step_files WHERE step_id = ?)`

	var exists bool
	if err := r.getExecutor(ctx).QueryRowContext(ctx, query, stepID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check step files", zap.Int64("step_id", stepID), zap.Error(err))
		return false, fmt.Errorf("failed to check step files: %w", err)
	}

	return exists, nil
}

// ListByPOID returns every file of a PO folder's steps, newest upload first
func (r *StepFileRepository) ListByPOID(ctx context.Context, poID int64) ([]*entity.StepFile, error) {
	query := `
		SELECT f.id, f.step_id, f.file_name, f.file_path, f.uploaded_at
		FROM po_step_files f
		JOIN po_steps s ON s.id = f.step_id
		WHERE s.po_id = ?
		ORDER BY f.uploaded_at DESC, f.id DESC
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, poID)
	if err != nil {
		r.logger.Error("Failed to list step files", zap.Int64("po_id", poID), zap.Error(err))
		return nil, fmt.Errorf("failed to list step files: %w", err)
	}
	defer rows.Close()

	var files []*entity.StepFile
	for rows.Next() {
		f := &entity.StepFile{}
		if err := rows.Scan(&f.ID, &f.StepID, &f.FileName, &f.FilePath, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan step file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (r *StepFileRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.StepFileRepository = (*StepFileRepository)(nil)
