package service

import (
	"context"
	"fmt"
	"io"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

// StepService applies checkbox changes and uploads to checklist steps.
// Every change recomputes is_done and bumps the parent PO folder.
type StepService interface {
	// SetActionDone sets the checkbox flag. A nil actionDone keeps the current
	// value but still recomputes the step.
	SetActionDone(ctx context.Context, stepID int64, actionDone *bool) (*entity.Step, error)

	// Upload stores content and attaches it to the step. A nil content is
	// rejected after the step has been found.
	Upload(ctx context.Context, stepID int64, originalName string, content io.Reader) (*entity.StepFile, error)
}

type stepServiceImpl struct {
	poRepo    port.POFolderRepository
	stepRepo  port.StepRepository
	fileRepo  port.StepFileRepository
	storage   port.FileStorage
	txManager port.TransactionManager
	clock     port.Clock
	logger    Logger
}

// NewStepService creates a new StepService
func NewStepService(
	poRepo port.POFolderRepository,
	stepRepo port.StepRepository,
	fileRepo port.StepFileRepository,
	storage port.FileStorage,
	txManager port.TransactionManager,
	clock port.Clock,
	logger Logger,
) StepService {
	return &stepServiceImpl{
		poRepo:    poRepo,
		stepRepo:  stepRepo,
		fileRepo:  fileRepo,
		storage:   storage,
		txManager: txManager,
		clock:     clock,
		logger:    logger,
	}
}

func (s *stepServiceImpl) SetActionDone(ctx context.Context, stepID int64, actionDone *bool) (*entity.Step, error) {
	var updated *entity.Step

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		step, err := s.getStep(ctx, stepID)
		if err != nil {
			return err
		}

		newAction := step.ActionDone
		if actionDone != nil {
			newAction = *actionDone
		}

		hasFiles, err := s.fileRepo.HasAny(ctx, stepID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		isDone := checklist.IsStepDone(step.StepNo, hasFiles, newAction)
		if err := s.stepRepo.UpdateState(ctx, stepID, newAction, isDone, now); err != nil {
			return err
		}
		if err := s.poRepo.Touch(ctx, step.POID, now); err != nil {
			return err
		}

		step.ActionDone = newAction
		step.IsDone = isDone
		step.UpdatedAt = now
		updated = step
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Step updated",
		"step_id", stepID,
		"step_no", updated.StepNo,
		"action_done", updated.ActionDone,
		"is_done", updated.IsDone)
	return updated, nil
}

func (s *stepServiceImpl) Upload(ctx context.Context, stepID int64, originalName string, content io.Reader) (*entity.StepFile, error) {
	step, err := s.getStep(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, entity.NewValidationError("No file uploaded")
	}

	stored, err := s.storage.Store(ctx, originalName, content)
	if err != nil {
		s.logger.Error("Failed to store upload", "step_id", stepID, "file_name", originalName, "error", err)
		return nil, err
	}

	fileName := originalName
	if fileName == "" {
		fileName = stored.Name
	}

	now := s.clock.Now()
	file := &entity.StepFile{
		StepID:     stepID,
		FileName:   fileName,
		FilePath:   stored.PublicPath,
		UploadedAt: now,
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.fileRepo.Create(ctx, file); err != nil {
			return err
		}

		// action_done as seen by this transaction
		current, err := s.getStep(ctx, stepID)
		if err != nil {
			return err
		}

		isDone := checklist.IsStepDone(current.StepNo, true, current.ActionDone)
		if err := s.stepRepo.UpdateState(ctx, stepID, current.ActionDone, isDone, now); err != nil {
			return err
		}
		return s.poRepo.Touch(ctx, current.POID, now)
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored.Name); delErr != nil {
			s.logger.Error("Failed to remove orphaned upload", "name", stored.Name, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("File uploaded",
		"step_id", stepID,
		"step_no", step.StepNo,
		"file_path", file.FilePath,
		"size", stored.Size)
	return file, nil
}

func (s *stepServiceImpl) getStep(ctx context.Context, stepID int64) (*entity.Step, error) {
	step, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, fmt.Errorf("step %d: %w", stepID, entity.ErrNotFound)
	}
	return step, nil
}
