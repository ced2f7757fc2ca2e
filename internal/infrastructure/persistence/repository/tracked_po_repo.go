package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

const trackedPOColumns = `id, po_number, title, stage, owner_role, next_action, created_at, updated_at`

// TrackedPORepository implements port.TrackedPORepository
type TrackedPORepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTrackedPORepository creates a new tracked PO repository
func NewTrackedPORepository(db *sql.DB, logger *zap.Logger) *TrackedPORepository {
	return &TrackedPORepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a tracked PO
func (r *TrackedPORepository) Create(ctx context.Context, po *entity.TrackedPO) error {
	query := `
		INSERT INTO tracked_pos (
			po_number, title, stage, owner_role, next_action, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		po.PONumber,
		po.Title,
		po.Stage,
		po.OwnerRole,
		po.NextAction,
		po.CreatedAt,
		po.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create tracked PO",
			zap.String("po_number", po.PONumber),
			zap.Error(err))
		return fmt.Errorf("failed to create tracked PO: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	po.ID = id
	return nil
}

// GetByID retrieves a tracked PO by its ID
func (r *TrackedPORepository) GetByID(ctx context.Context, id int64) (*entity.TrackedPO, error) {
	query := `SELECT ` + trackedPOColumns + ` FROM tracked_pos WHERE id = ?`

	po, err := scanTrackedPO(r.getExecutor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get tracked PO by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get tracked PO: %w", err)
	}

	return po, nil
}

// Update writes every mutable column of a tracked PO
func (r *TrackedPORepository) Update(ctx context.Context, po *entity.TrackedPO) error {
	query := `
		UPDATE tracked_pos
		SET po_number = ?, title = ?, stage = ?, owner_role = ?, next_action = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		po.PONumber,
		po.Title,
		po.Stage,
		po.OwnerRole,
		po.NextAction,
		po.UpdatedAt,
		po.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update tracked PO", zap.Int64("id", po.ID), zap.Error(err))
		return fmt.Errorf("failed to update tracked PO: %w", err)
	}

	return nil
}

// List returns tracked POs matching the filter, most recently updated first
func (r *TrackedPORepository) List(ctx context.Context, filter entity.TrackedPOFilter) ([]*entity.TrackedPO, error) {
	var conditions []string
	var args []interface{}

	if filter.Stage != "" {
		conditions = append(conditions, "stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.OwnerRole != "" {
		conditions = append(conditions, "owner_role = ?")
		args = append(args, filter.OwnerRole)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		conditions = append(conditions, "(LOWER(po_number) LIKE ? OR LOWER(title) LIKE ?)")
		pattern := "%" + strings.ToLower(q) + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + trackedPOColumns + ` FROM tracked_pos`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list tracked POs", zap.Error(err))
		return nil, fmt.Errorf("failed to list tracked POs: %w", err)
	}
	defer rows.Close()

	var pos []*entity.TrackedPO
	for rows.Next() {
		po, err := scanTrackedPO(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracked PO: %w", err)
		}
		pos = append(pos, po)
	}

	return pos, rows.Err()
}

// DistinctStages returns every stage value currently stored
func (r *TrackedPORepository) DistinctStages(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT stage FROM tracked_pos ORDER BY stage`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list distinct stages", zap.Error(err))
		return nil, fmt.Errorf("failed to list distinct stages: %w", err)
	}
	defer rows.Close()

	var stages []string
	for rows.Next() {
		var stage string
		if err := rows.Scan(&stage); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, stage)
	}

	return stages, rows.Err()
}

func scanTrackedPO(row scanner) (*entity.TrackedPO, error) {
	po := &entity.TrackedPO{}
	err := row.Scan(
		&po.ID, &po.PONumber, &po.Title, &po.Stage, &po.OwnerRole,
		&po.NextAction, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (r *TrackedPORepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.TrackedPORepository = (*TrackedPORepository)(nil)
