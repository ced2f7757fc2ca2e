package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// MonthService manages month folders
type MonthService interface {
	Create(ctx context.Context, monthKey, label string) (*entity.Month, error)
	Get(ctx context.Context, id int64) (*entity.Month, error)
	List(ctx context.Context) ([]*entity.Month, error)
}

type monthServiceImpl struct {
	monthRepo port.MonthRepository
	clock     port.Clock
	logger    Logger
}

// NewMonthService creates a new MonthService
func NewMonthService(monthRepo port.MonthRepository, clock port.Clock, logger Logger) MonthService {
	return &monthServiceImpl{
		monthRepo: monthRepo,
		clock:     clock,
		logger:    logger,
	}
}

// Create validates the key and stores a month. Label falls back to the key.
func (s *monthServiceImpl) Create(ctx context.Context, monthKey, label string) (*entity.Month, error) {
	monthKey = strings.TrimSpace(monthKey)
	if err := utils.ValidateMonthKey(monthKey); err != nil {
		return nil, entity.NewValidationError("month_key must be YYYY-MM (e.g. 2026-02)")
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = monthKey
	}

	month := &entity.Month{
		MonthKey:  monthKey,
		Label:     label,
		CreatedAt: s.clock.Now(),
	}
	if err := s.monthRepo.Create(ctx, month); err != nil {
		s.logger.Error("Failed to create month", "month_key", monthKey, "error", err)
		return nil, err
	}

	s.logger.Info("Month created", "id", month.ID, "month_key", monthKey)
	return month, nil
}

// Get returns a month or ErrNotFound
func (s *monthServiceImpl) Get(ctx context.Context, id int64) (*entity.Month, error) {
	month, err := s.monthRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return nil, fmt.Errorf("month %d: %w", id, entity.ErrNotFound)
	}
	return month, nil
}

// List returns all months, newest first
func (s *monthServiceImpl) List(ctx context.Context) ([]*entity.Month, error) {
	return s.monthRepo.List(ctx)
}
