package container

import (
	"context"
	"fmt"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/application/service"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/export"
	infraLark "github.com/Jowenthebui/PO-Tracking/internal/infrastructure/external/lark"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/notification"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/repository"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/storage"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/worker"
	"github.com/Jowenthebui/PO-Tracking/pkg/database"
	"github.com/Jowenthebui/PO-Tracking/pkg/utils"
	"go.uber.org/zap"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB             *database.DB
	TransactionMgr *sqlite.DB
	Applied        int
}

// ProvideDatabase opens the database and applies pending migrations.
func ProvideDatabase(ctx context.Context, cfg *database.Config, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(*cfg, logger)
	if err != nil {
		return nil, err
	}

	applied, err := database.NewMigrator(db, logger).Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		DB:             db,
		TransactionMgr: sqlite.NewDB(db.DB, logger),
		Applied:        applied,
	}, nil
}

// ProvideRepositories creates all repositories from a database connection.
func ProvideRepositories(db *database.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Month:      repository.NewMonthRepository(db.DB, logger),
		POFolder:   repository.NewPOFolderRepository(db.DB, logger),
		Step:       repository.NewStepRepository(db.DB, logger),
		StepFile:   repository.NewStepFileRepository(db.DB, logger),
		TrackedPO:  repository.NewTrackedPORepository(db.DB, logger),
		TrackedDoc: repository.NewTrackedPODocumentRepository(db.DB, logger),
		StageLog:   repository.NewStageLogRepository(db.DB, logger),
	}, nil
}

// ProvideNotifier returns the Lark chat messenger when enabled, otherwise a
// notifier that only writes the digest to the log.
func ProvideNotifier(cfg *LarkConfig, logger *zap.Logger) (port.Notifier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("lark config is required")
	}
	if !cfg.Enabled {
		logger.Info("Lark disabled, reminders are logged only")
		return notification.NewLogNotifier(logger), nil
	}

	larkCfg := infraLark.Config{
		AppID:     cfg.AppID,
		AppSecret: cfg.AppSecret,
		ChatID:    cfg.ChatID,
	}
	if err := larkCfg.Validate(); err != nil {
		return nil, err
	}
	return infraLark.NewMessenger(infraLark.NewSDKClient(larkCfg, logger), logger), nil
}

// ServiceDeps holds dependencies needed to create application services.
type ServiceDeps struct {
	Repos     *RepositoryBundle
	TxManager port.TransactionManager
	Storage   port.FileStorage
	Notifier  port.Notifier
	Clock     port.Clock
	Links     service.Links
	Logger    *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.Repos == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.TxManager == nil || deps.Storage == nil || deps.Notifier == nil || deps.Clock == nil {
		return nil, fmt.Errorf("transaction manager, storage, notifier and clock are required")
	}

	r := deps.Repos
	log := utils.NewKVLogger(deps.Logger)

	return &ServiceBundle{
		Month:   service.NewMonthService(r.Month, deps.Clock, log),
		PO:      service.NewPOService(r.Month, r.POFolder, r.Step, r.StepFile, deps.TxManager, deps.Clock, deps.Links, log),
		Step:    service.NewStepService(r.POFolder, r.Step, r.StepFile, deps.Storage, deps.TxManager, deps.Clock, log),
		Tracker: service.NewTrackerService(r.TrackedPO, r.TrackedDoc, r.StageLog, deps.TxManager, deps.Clock, log),
		Alert:   service.NewAlertService(r.Step, r.TrackedPO, deps.Notifier, deps.Clock, log),
		Export:  service.NewExportService(r.Month, r.POFolder, r.Step, export.NewXLSXWriter(deps.Logger), deps.Clock, log),
		Links:   deps.Links,
	}, nil
}

// ProvideWorkers creates the worker manager and registers the enabled workers.
func ProvideWorkers(cfg *ReminderConfig, alerts service.AlertService, logger *zap.Logger) (*worker.WorkerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("reminder config is required")
	}

	manager := worker.NewWorkerManager(logger)
	if cfg.Enabled {
		manager.Register(worker.NewReminderWorker(worker.ReminderWorkerConfig{
			Interval: cfg.Interval,
		}, alerts, logger))
	}
	return manager, nil
}

// ProvideStorage creates the upload storage.
func ProvideStorage(uploadDir string, clock port.Clock, logger *zap.Logger) (port.FileStorage, error) {
	if uploadDir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	fs := storage.NewLocalFileStorage(uploadDir, clock, logger)
	if err := fs.EnsureBaseDir(); err != nil {
		return nil, err
	}
	return fs, nil
}
