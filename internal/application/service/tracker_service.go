package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/workflow"
)

// TrackedPOView is a tracked PO with its read-time stuck flag
type TrackedPOView struct {
	*entity.TrackedPO
	IsStuck bool `json:"is_stuck"`
}

// TrackedPODetail is a tracked PO with its documents and stage history
type TrackedPODetail struct {
	PO        *TrackedPOView              `json:"po"`
	Documents []*entity.TrackedPODocument `json:"documents"`
	Logs      []*entity.StageLog          `json:"logs"`
}

// TrackerFilter narrows ListPOs
type TrackerFilter struct {
	Stage     string
	OwnerRole string
	Query     string
	StuckOnly bool
}

// CreateTrackedPOInput carries the fields of a new tracked PO.
// Stage defaults to REQUESTED and owner to INTERN.
type CreateTrackedPOInput struct {
	PONumber   string
	Title      string
	Stage      string
	OwnerRole  string
	NextAction string
	Actor      string
}

// UpdateTrackedPOInput carries a partial update; nil fields are left alone
type UpdateTrackedPOInput struct {
	Stage      *string
	OwnerRole  *string
	NextAction *string
	Note       string
	Actor      string
}

// TrackerService manages the stage board
type TrackerService interface {
	Stages(ctx context.Context) ([]workflow.Stage, error)
	ListPOs(ctx context.Context, filter TrackerFilter) ([]*TrackedPOView, error)
	CreatePO(ctx context.Context, input CreateTrackedPOInput) (*entity.TrackedPO, error)
	GetPO(ctx context.Context, id int64) (*TrackedPODetail, error)
	UpdatePO(ctx context.Context, id int64, input UpdateTrackedPOInput) (*TrackedPOView, error)
	AddDocument(ctx context.Context, id int64, label, url string) (*entity.TrackedPODocument, error)
}

type trackerServiceImpl struct {
	poRepo    port.TrackedPORepository
	docRepo   port.TrackedPODocumentRepository
	logRepo   port.StageLogRepository
	txManager port.TransactionManager
	clock     port.Clock
	logger    Logger
}

// NewTrackerService creates a new TrackerService
func NewTrackerService(
	poRepo port.TrackedPORepository,
	docRepo port.TrackedPODocumentRepository,
	logRepo port.StageLogRepository,
	txManager port.TransactionManager,
	clock port.Clock,
	logger Logger,
) TrackerService {
	return &trackerServiceImpl{
		poRepo:    poRepo,
		docRepo:   docRepo,
		logRepo:   logRepo,
		txManager: txManager,
		clock:     clock,
		logger:    logger,
	}
}

// Stages returns the default stages followed by any custom stage in use
func (s *trackerServiceImpl) Stages(ctx context.Context) ([]workflow.Stage, error) {
	inUse, err := s.poRepo.DistinctStages(ctx)
	if err != nil {
		return nil, err
	}
	return workflow.KnownStages(inUse), nil
}

func (s *trackerServiceImpl) ListPOs(ctx context.Context, filter TrackerFilter) ([]*TrackedPOView, error) {
	repoFilter := entity.TrackedPOFilter{
		Stage: workflow.NormalizeStage(filter.Stage).String(),
		Query: filter.Query,
	}
	if strings.TrimSpace(filter.OwnerRole) != "" {
		role, err := workflow.ParseOwnerRole(filter.OwnerRole)
		if err != nil {
			return nil, entity.NewValidationError(err.Error())
		}
		repoFilter.OwnerRole = role.String()
	}

	pos, err := s.poRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]*TrackedPOView, 0, len(pos))
	for _, po := range pos {
		view := s.view(po, now)
		if filter.StuckOnly && !view.IsStuck {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

// CreatePO stores a tracked PO and logs its initial stage in one transaction
func (s *trackerServiceImpl) CreatePO(ctx context.Context, input CreateTrackedPOInput) (*entity.TrackedPO, error) {
	poNumber := strings.TrimSpace(input.PONumber)
	if poNumber == "" {
		return nil, entity.NewValidationError("po_number required")
	}

	stage := workflow.StageRequested
	if strings.TrimSpace(input.Stage) != "" {
		stage = workflow.NormalizeStage(input.Stage)
	}

	role := workflow.RoleIntern
	if strings.TrimSpace(input.OwnerRole) != "" {
		var err error
		if role, err = workflow.ParseOwnerRole(input.OwnerRole); err != nil {
			return nil, entity.NewValidationError(err.Error())
		}
	}

	now := s.clock.Now()
	po := &entity.TrackedPO{
		PONumber:   poNumber,
		Title:      strings.TrimSpace(input.Title),
		Stage:      stage.String(),
		OwnerRole:  role.String(),
		NextAction: strings.TrimSpace(input.NextAction),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.poRepo.Create(ctx, po); err != nil {
			return err
		}
		return s.logRepo.Create(ctx, &entity.StageLog{
			TrackedPOID: po.ID,
			FromStage:   "",
			ToStage:     po.Stage,
			Note:        "created",
			Actor:       strings.TrimSpace(input.Actor),
			CreatedAt:   now,
		})
	})
	if err != nil {
		s.logger.Error("Failed to create tracked PO", "po_number", poNumber, "error", err)
		return nil, err
	}

	s.logger.Info("Tracked PO created", "id", po.ID, "po_number", poNumber, "stage", po.Stage)
	return po, nil
}

func (s *trackerServiceImpl) GetPO(ctx context.Context, id int64) (*TrackedPODetail, error) {
	po, err := s.getPO(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByTrackedPOID(ctx, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByTrackedPOID(ctx, id)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []*entity.TrackedPODocument{}
	}
	if logs == nil {
		logs = []*entity.StageLog{}
	}

	return &TrackedPODetail{
		PO:        s.view(po, s.clock.Now()),
		Documents: docs,
		Logs:      logs,
	}, nil
}

// UpdatePO applies a partial update. A stage change appends a stage log in
// the same transaction; any stage may follow any other.
func (s *trackerServiceImpl) UpdatePO(ctx context.Context, id int64, input UpdateTrackedPOInput) (*TrackedPOView, error) {
	var updated *entity.TrackedPO
	var fromStage string

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		po, err := s.getPO(ctx, id)
		if err != nil {
			return err
		}
		fromStage = po.Stage

		if input.Stage != nil {
			stage := workflow.NormalizeStage(*input.Stage)
			if stage == "" {
				return entity.NewValidationError(workflow.ErrEmptyStage.Error())
			}
			po.Stage = stage.String()
		}
		if input.OwnerRole != nil {
			role, err := workflow.ParseOwnerRole(*input.OwnerRole)
			if err != nil {
				return entity.NewValidationError(err.Error())
			}
			po.OwnerRole = role.String()
		}
		if input.NextAction != nil {
			po.NextAction = strings.TrimSpace(*input.NextAction)
		}

		now := s.clock.Now()
		po.UpdatedAt = now
		if err := s.poRepo.Update(ctx, po); err != nil {
			return err
		}

		if po.Stage != fromStage {
			if err := s.logRepo.Create(ctx, &entity.StageLog{
				TrackedPOID: po.ID,
				FromStage:   fromStage,
				ToStage:     po.Stage,
				Note:        strings.TrimSpace(input.Note),
				Actor:       strings.TrimSpace(input.Actor),
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Stage != fromStage {
		s.logger.Info("Tracked PO stage changed", "id", id, "from", fromStage, "to", updated.Stage)
	}
	return s.view(updated, s.clock.Now()), nil
}

// AddDocument attaches a document URL. Adding a URL that is already attached
// returns the existing document.
func (s *trackerServiceImpl) AddDocument(ctx context.Context, id int64, label, url string) (*entity.TrackedPODocument, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, entity.NewValidationError("url required")
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = url
	}

	var doc *entity.TrackedPODocument
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		po, err := s.getPO(ctx, id)
		if err != nil {
			return err
		}

		existing, err := s.docRepo.GetByURL(ctx, id, url)
		if err != nil {
			return err
		}
		if existing != nil {
			doc = existing
			return nil
		}

		now := s.clock.Now()
		doc = &entity.TrackedPODocument{
			TrackedPOID: id,
			Label:       label,
			URL:         url,
			CreatedAt:   now,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return err
		}

		po.UpdatedAt = now
		return s.poRepo.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *trackerServiceImpl) getPO(ctx context.Context, id int64) (*entity.TrackedPO, error) {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("tracked po %d: %w", id, entity.ErrNotFound)
	}
	return po, nil
}

func (s *trackerServiceImpl) view(po *entity.TrackedPO, now time.Time) *TrackedPOView {
	return &TrackedPOView{
		TrackedPO: po,
		IsStuck:   workflow.IsStuck(workflow.Stage(po.Stage), po.UpdatedAt, now),
	}
}
