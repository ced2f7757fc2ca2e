package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

// PODetail is a PO folder with its steps, files and rollup
type PODetail struct {
	PO       *entity.POFolder   `json:"po"`
	Progress checklist.Progress `json:"progress"`
	Steps    []*StepDetail      `json:"steps"`
}

// StepDetail is a step with its files and the read-time flags the UI renders
type StepDetail struct {
	*entity.Step
	Files         []*entity.StepFile `json:"files"`
	IsOverdue     bool               `json:"is_overdue"`
	NeedsCheckbox bool               `json:"needs_checkbox"`
	AcceptsUpload bool               `json:"accepts_upload"`
	Links         []StepLink         `json:"links"`
}

// MonthNode is one month of the tree
type MonthNode struct {
	*entity.Month
	checklist.MonthProgress
	POs []*PONode `json:"pos"`
}

// PONode is one PO folder of the tree
type PONode struct {
	entity.POFolder
	MonthKey string `json:"month_key"`
	checklist.Progress
}

// POService manages PO folders and the month tree
type POService interface {
	Create(ctx context.Context, monthID int64, folderName string) (*entity.POFolder, error)
	Get(ctx context.Context, id int64) (*PODetail, error)
	Tree(ctx context.Context, query string) ([]*MonthNode, error)
}

type poServiceImpl struct {
	monthRepo port.MonthRepository
	poRepo    port.POFolderRepository
	stepRepo  port.StepRepository
	fileRepo  port.StepFileRepository
	txManager port.TransactionManager
	clock     port.Clock
	links     Links
	logger    Logger
}

// NewPOService creates a new POService
func NewPOService(
	monthRepo port.MonthRepository,
	poRepo port.POFolderRepository,
	stepRepo port.StepRepository,
	fileRepo port.StepFileRepository,
	txManager port.TransactionManager,
	clock port.Clock,
	links Links,
	logger Logger,
) POService {
	return &poServiceImpl{
		monthRepo: monthRepo,
		poRepo:    poRepo,
		stepRepo:  stepRepo,
		fileRepo:  fileRepo,
		txManager: txManager,
		clock:     clock,
		links:     links,
		logger:    logger,
	}
}

// Create parses the folder name and stores the PO folder together with its
// nine template steps. Nothing is stored if any insert fails.
func (s *poServiceImpl) Create(ctx context.Context, monthID int64, folderName string) (*entity.POFolder, error) {
	folderName = strings.TrimSpace(folderName)
	if monthID <= 0 || folderName == "" {
		return nil, entity.NewValidationError("month_id and folder_name required")
	}

	month, err := s.monthRepo.GetByID(ctx, monthID)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return nil, fmt.Errorf("month %d: %w", monthID, entity.ErrNotFound)
	}

	info := checklist.ParseFolderName(folderName)
	now := s.clock.Now()
	po := &entity.POFolder{
		MonthID:    monthID,
		FolderName: folderName,
		CapexOpex:  info.CapexOpex,
		ITRefNo:    info.ITRefNo,
		Title:      info.Title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.poRepo.Create(ctx, po); err != nil {
			return err
		}

		for _, tpl := range checklist.Steps() {
			step := &entity.Step{
				POID:      po.ID,
				StepNo:    tpl.No,
				StepTitle: tpl.Title,
				StepDesc:  tpl.Description,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.stepRepo.Create(ctx, step); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create PO folder", "month_id", monthID, "folder_name", folderName, "error", err)
		return nil, err
	}

	s.logger.Info("PO folder created",
		"id", po.ID,
		"month_key", month.MonthKey,
		"capex_opex", po.CapexOpex,
		"it_ref_no", po.ITRefNo)
	return po, nil
}

// Get returns a PO folder with steps in step order and files newest first
func (s *poServiceImpl) Get(ctx context.Context, id int64) (*PODetail, error) {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("po %d: %w", id, entity.ErrNotFound)
	}

	steps, err := s.stepRepo.ListByPOID(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByPOID(ctx, id)
	if err != nil {
		return nil, err
	}
	filesByStep := make(map[int64][]*entity.StepFile)
	for _, f := range files {
		filesByStep[f.StepID] = append(filesByStep[f.StepID], f)
	}

	now := s.clock.Now()
	detail := &PODetail{
		PO:       po,
		Progress: checklist.SummarizeSteps(steps),
		Steps:    make([]*StepDetail, 0, len(steps)),
	}
	for _, step := range steps {
		tpl, _ := checklist.Lookup(step.StepNo)
		stepFiles := filesByStep[step.ID]
		if stepFiles == nil {
			stepFiles = []*entity.StepFile{}
		}
		detail.Steps = append(detail.Steps, &StepDetail{
			Step:          step,
			Files:         stepFiles,
			IsOverdue:     checklist.IsOverdue(step.StepNo, step.IsDone, step.CreatedAt, now),
			NeedsCheckbox: tpl.NeedsCheckbox,
			AcceptsUpload: tpl.AcceptsUpload,
			Links:         s.links.ForStep(tpl),
		})
	}

	return detail, nil
}

// Tree groups PO folders under their months. A non-empty query keeps months
// whose label or key matches (with all their POs) and POs whose folder name,
// IT ref, title or classification matches.
func (s *poServiceImpl) Tree(ctx context.Context, query string) ([]*MonthNode, error) {
	months, err := s.monthRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := s.poRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	byMonth := make(map[int64][]*entity.POSummary)
	for _, summary := range summaries {
		byMonth[summary.MonthID] = append(byMonth[summary.MonthID], summary)
	}

	tree := make([]*MonthNode, 0, len(months))
	for _, month := range months {
		monthMatches := q == "" || containsFold(month.Label, q) || containsFold(month.MonthKey, q)

		node := &MonthNode{Month: month, POs: []*PONode{}}
		var rollups []checklist.Progress
		for _, summary := range byMonth[month.ID] {
			if !monthMatches && !poMatches(summary, q) {
				continue
			}
			progress := checklist.Summarize(summary.StepDone)
			rollups = append(rollups, progress)
			node.POs = append(node.POs, &PONode{
				POFolder: summary.POFolder,
				MonthKey: summary.MonthKey,
				Progress: progress,
			})
		}

		if !monthMatches && len(node.POs) == 0 {
			continue
		}
		node.MonthProgress = checklist.SummarizeMonth(rollups)
		tree = append(tree, node)
	}

	return tree, nil
}

func poMatches(po *entity.POSummary, q string) bool {
	hay := strings.Join([]string{po.FolderName, po.ITRefNo, po.Title, po.CapexOpex}, " ")
	return containsFold(hay, q)
}

// containsFold reports whether s contains the already lower-cased q
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
