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

// StageLogRepository implements port.StageLogRepository
type StageLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStageLogRepository creates a new stage log repository
func NewStageLogRepository(db *sql.DB, logger *zap.Logger) *StageLogRepository {
	return &StageLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a stage change
func (r *StageLogRepository) Create(ctx context.Context, log *entity.StageLog) error {
	query := `
		INSERT INTO stage_logs (tracked_po_id, from_stage, to_stage, note, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		log.TrackedPOID,
		log.FromStage,
		log.ToStage,
		log.Note,
		log.Actor,
		log.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create stage log",
			zap.Int64("tracked_po_id", log.TrackedPOID),
			zap.String("to_stage", log.ToStage),
			zap.Error(err))
		return fmt.Errorf("failed to create stage log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	log.ID = id
	return nil
}

// ListByTrackedPOID returns a tracked PO's stage history, newest first
func (r *StageLogRepository) ListByTrackedPOID(ctx context.Context, trackedPOID int64) ([]*entity.StageLog, error) {
	query := `
		SELECT id, tracked_po_id, from_stage, to_stage, note, actor, created_at
		FROM stage_logs
		WHERE tracked_po_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, trackedPOID)
	if err != nil {
		r.logger.Error("Failed to list stage logs",
			zap.Int64("tracked_po_id", trackedPOID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list stage logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.StageLog
	for rows.Next() {
		l := &entity.StageLog{}
		if err := rows.Scan(&l.ID, &l.TrackedPOID, &l.FromStage, &l.ToStage, &l.Note, &l.Actor, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stage log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (r *StageLogRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.StageLogRepository = (*StageLogRepository)(nil)
