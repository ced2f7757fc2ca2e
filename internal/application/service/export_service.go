package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

// ExportService renders a month's PO folders and step states as a report
type ExportService interface {
	ExportMonth(ctx context.Context, monthID int64, w io.Writer) (*entity.Month, error)
	ExportMonthByKey(ctx context.Context, monthKey string, w io.Writer) (*entity.Month, error)
	ContentType() string
	FileName(month *entity.Month) string
}

type exportServiceImpl struct {
	monthRepo port.MonthRepository
	poRepo    port.POFolderRepository
	stepRepo  port.StepRepository
	writer    port.ReportWriter
	clock     port.Clock
	logger    Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	monthRepo port.MonthRepository,
	poRepo port.POFolderRepository,
	stepRepo port.StepRepository,
	writer port.ReportWriter,
	clock port.Clock,
	logger Logger,
) ExportService {
	return &exportServiceImpl{
		monthRepo: monthRepo,
		poRepo:    poRepo,
		stepRepo:  stepRepo,
		writer:    writer,
		clock:     clock,
		logger:    logger,
	}
}

func (s *exportServiceImpl) ExportMonth(ctx context.Context, monthID int64, w io.Writer) (*entity.Month, error) {
	month, err := s.monthRepo.GetByID(ctx, monthID)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return nil, fmt.Errorf("month %d: %w", monthID, entity.ErrNotFound)
	}
	return month, s.export(ctx, month, w)
}

func (s *exportServiceImpl) ExportMonthByKey(ctx context.Context, monthKey string, w io.Writer) (*entity.Month, error) {
	monthKey = strings.TrimSpace(monthKey)
	month, err := s.monthRepo.GetByKey(ctx, monthKey)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return nil, fmt.Errorf("month %s: %w", monthKey, entity.ErrNotFound)
	}
	return month, s.export(ctx, month, w)
}

func (s *exportServiceImpl) ContentType() string {
	return s.writer.ContentType()
}

// FileName is the download name of a month report, e.g. po-tracker-2026-01.xlsx
func (s *exportServiceImpl) FileName(month *entity.Month) string {
	return fmt.Sprintf("po-tracker-%s%s", month.MonthKey, s.writer.Extension())
}

func (s *exportServiceImpl) export(ctx context.Context, month *entity.Month, w io.Writer) error {
	summaries, err := s.poRepo.ListSummariesByMonth(ctx, month.ID)
	if err != nil {
		return err
	}

	report := &port.MonthReport{
		Month:       month,
		Rows:        make([]port.ReportRow, 0, len(summaries)),
		GeneratedAt: s.clock.Now(),
	}
	for _, summary := range summaries {
		steps, err := s.stepRepo.ListByPOID(ctx, summary.ID)
		if err != nil {
			return err
		}
		po := summary.POFolder
		report.Rows = append(report.Rows, port.ReportRow{
			PO:       &po,
			Progress: checklist.SummarizeSteps(steps),
			Steps:    steps,
		})
	}

	if err := s.writer.WriteMonthReport(w, report); err != nil {
		s.logger.Error("Failed to write month report", "month_key", month.MonthKey, "error", err)
		return fmt.Errorf("failed to write month report: %w", err)
	}

	s.logger.Info("Month report exported", "month_key", month.MonthKey, "pos", len(report.Rows))
	return nil
}
