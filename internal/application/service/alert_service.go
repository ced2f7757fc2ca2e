package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/workflow"
)

// OverdueStep is an open payment step past the overdue threshold
type OverdueStep struct {
	StepID     int64     `json:"step_id"`
	POID       int64     `json:"po_id"`
	StepNo     int       `json:"step_no"`
	StepTitle  string    `json:"step_title"`
	FolderName string    `json:"folder_name"`
	MonthKey   string    `json:"month_key"`
	CreatedAt  time.Time `json:"created_at"`
	DaysOpen   int       `json:"days_open"`
}

// Alerts is the current set of overdue payments and stuck tracked POs
type Alerts struct {
	OverdueSteps []*OverdueStep   `json:"overdue_steps"`
	StuckPOs     []*TrackedPOView `json:"stuck_pos"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// IsEmpty reports whether there is nothing to remind anyone about
func (a *Alerts) IsEmpty() bool {
	return len(a.OverdueSteps) == 0 && len(a.StuckPOs) == 0
}

// AlertService evaluates overdue and stuck rules against the clock
type AlertService interface {
	Current(ctx context.Context) (*Alerts, error)
	// SendReminders posts a digest through the notifier. It returns false when
	// there was nothing to send.
	SendReminders(ctx context.Context) (bool, error)
}

type alertServiceImpl struct {
	stepRepo    port.StepRepository
	trackedRepo port.TrackedPORepository
	notifier    port.Notifier
	clock       port.Clock
	logger      Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(
	stepRepo port.StepRepository,
	trackedRepo port.TrackedPORepository,
	notifier port.Notifier,
	clock port.Clock,
	logger Logger,
) AlertService {
	return &alertServiceImpl{
		stepRepo:    stepRepo,
		trackedRepo: trackedRepo,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

func (s *alertServiceImpl) Current(ctx context.Context) (*Alerts, error) {
	now := s.clock.Now()

	pending, err := s.stepRepo.ListPendingPayments(ctx, now.Add(-checklist.OverdueAfter))
	if err != nil {
		return nil, err
	}

	alerts := &Alerts{
		OverdueSteps: []*OverdueStep{},
		StuckPOs:     []*TrackedPOView{},
		GeneratedAt:  now,
	}
	for _, p := range pending {
		if !checklist.IsOverdue(p.Step.StepNo, p.Step.IsDone, p.Step.CreatedAt, now) {
			continue
		}
		alerts.OverdueSteps = append(alerts.OverdueSteps, &OverdueStep{
			StepID:     p.Step.ID,
			POID:       p.Step.POID,
			StepNo:     p.Step.StepNo,
			StepTitle:  p.Step.StepTitle,
			FolderName: p.FolderName,
			MonthKey:   p.MonthKey,
			CreatedAt:  p.Step.CreatedAt,
			DaysOpen:   int(now.Sub(p.Step.CreatedAt) / (24 * time.Hour)),
		})
	}

	tracked, err := s.trackedRepo.List(ctx, entity.TrackedPOFilter{})
	if err != nil {
		return nil, err
	}
	for _, po := range tracked {
		if workflow.IsStuck(workflow.Stage(po.Stage), po.UpdatedAt, now) {
			alerts.StuckPOs = append(alerts.StuckPOs, &TrackedPOView{TrackedPO: po, IsStuck: true})
		}
	}

	return alerts, nil
}

func (s *alertServiceImpl) SendReminders(ctx context.Context) (bool, error) {
	alerts, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	if alerts.IsEmpty() {
		return false, nil
	}

	if err := s.notifier.Notify(ctx, FormatDigest(alerts)); err != nil {
		s.logger.Error("Failed to send reminder digest", "error", err)
		return false, fmt.Errorf("failed to send reminder digest: %w", err)
	}

	s.logger.Info("Reminder digest sent",
		"overdue_steps", len(alerts.OverdueSteps),
		"stuck_pos", len(alerts.StuckPOs))
	return true, nil
}

// FormatDigest renders alerts as a plain-text chat message
func FormatDigest(alerts *Alerts) string {
	var b strings.Builder
	b.WriteString("PO Tracker reminder")

	if len(alerts.OverdueSteps) > 0 {
		fmt.Fprintf(&b, "\n\nPayments overdue (%d):", len(alerts.OverdueSteps))
		for _, o := range alerts.OverdueSteps {
			fmt.Fprintf(&b, "\n- [%s] %s: %s open %d days", o.MonthKey, o.FolderName, o.StepTitle, o.DaysOpen)
		}
	}

	if len(alerts.StuckPOs) > 0 {
		fmt.Fprintf(&b, "\n\nStuck POs (%d):", len(alerts.StuckPOs))
		for _, po := range alerts.StuckPOs {
			fmt.Fprintf(&b, "\n- %s %s: %s, owner %s", po.PONumber, po.Title, po.Stage, po.OwnerRole)
			if po.NextAction != "" {
				fmt.Fprintf(&b, ", next: %s", po.NextAction)
			}
		}
	}

	return b.String()
}
