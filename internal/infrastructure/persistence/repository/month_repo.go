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

// MonthRepository implements port.MonthRepository
type MonthRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMonthRepository creates a new month repository
func NewMonthRepository(db *sql.DB, logger *zap.Logger) *MonthRepository {
	return &MonthRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a month. A duplicate month_key surfaces as a sqlite constraint error.
func (r *MonthRepository) Create(ctx context.Context, month *entity.Month) error {
	query := `INSERT INTO months (month_key, label, created_at) VALUES (?, ?, ?)`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		month.MonthKey,
		month.Label,
		month.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create month",
			zap.String("month_key", month.MonthKey),
			zap.Error(err))
		return fmt.Errorf("failed to create month: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	month.ID = id
	return nil
}

// GetByID retrieves a month by its ID
func (r *MonthRepository) GetByID(ctx context.Context, id int64) (*entity.Month, error) {
	query := `SELECT id, month_key, label, created_at FROM months WHERE id = ?`

	month, err := scanMonth(r.getExecutor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get month by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get month: %w", err)
	}

	return month, nil
}

// GetByKey retrieves a month by its YYYY-MM key
func (r *MonthRepository) GetByKey(ctx context.Context, monthKey string) (*entity.Month, error) {
	query := `SELECT id, month_key, label, created_at FROM months WHERE month_key = ?`

	month, err := scanMonth(r.getExecutor(ctx).QueryRowContext(ctx, query, monthKey))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get month by key", zap.String("month_key", monthKey), zap.Error(err))
		return nil, fmt.Errorf("failed to get month: %w", err)
	}

	return month, nil
}

// List returns all months, newest key first
func (r *MonthRepository) List(ctx context.Context) ([]*entity.Month, error) {
	query := `SELECT id, month_key, label, created_at FROM months ORDER BY month_key DESC`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list months", zap.Error(err))
		return nil, fmt.Errorf("failed to list months: %w", err)
	}
	defer rows.Close()

	var months []*entity.Month
	for rows.Next() {
		month, err := scanMonth(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, month)
	}

	return months, rows.Err()
}

func scanMonth(row scanner) (*entity.Month, error) {
	month := &entity.Month{}
	err := row.Scan(&month.ID, &month.MonthKey, &month.Label, &month.CreatedAt)
	if err != nil {
		return nil, err
	}
	return month, nil
}

func (r *MonthRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.MonthRepository = (*MonthRepository)(nil)
