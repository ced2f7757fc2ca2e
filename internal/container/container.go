package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/application/service"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/worker"
	"github.com/Jowenthebui/PO-Tracking/pkg/database"
	"go.uber.org/zap"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger
	clock  port.Clock

	// Infrastructure - Data
	db           *database.DB
	txManager    *sqlite.DB
	repositories *RepositoryBundle

	// Infrastructure - External
	notifier    port.Notifier
	fileStorage port.FileStorage

	// Application
	services *ServiceBundle

	// Workers
	workers *worker.WorkerManager

	// Lifecycle
	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Month      port.MonthRepository
	POFolder   port.POFolderRepository
	Step       port.StepRepository
	StepFile   port.StepFileRepository
	TrackedPO  port.TrackedPORepository
	TrackedDoc port.TrackedPODocumentRepository
	StageLog   port.StageLogRepository
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Month   service.MonthService
	PO      service.POService
	Step    service.StepService
	Tracker service.TrackerService
	Alert   service.AlertService
	Export  service.ExportService
	Links   service.Links
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = port.SystemClock{}
	}

	return &Container{
		config: cfg,
		logger: logger,
		clock:  clock,
	}, nil
}

// Start initializes all components. Workers are registered but not started;
// call RunWorkers to run them.
// Components are initialized in dependency order:
// 1. Database (with migrations) and repositories
// 2. Notifier
// 3. Storage
// 4. Application services
// 5. Workers
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}

	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	// Step 1: Initialize database and repositories
	if err := c.initDatabase(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized")

	// Step 2: Initialize notifier
	notifier, err := ProvideNotifier(&c.config.Lark, c.logger)
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	c.notifier = notifier

	// Step 3: Initialize storage
	fileStorage, err := ProvideStorage(c.config.UploadDir, c.clock, c.logger)
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.fileStorage = fileStorage
	c.logger.Info("Storage initialized", zap.String("upload_dir", c.config.UploadDir))

	// Step 4: Initialize application services
	services, err := ProvideServices(&ServiceDeps{
		Repos:     c.repositories,
		TxManager: c.txManager,
		Storage:   c.fileStorage,
		Notifier:  c.notifier,
		Clock:     c.clock,
		Links:     c.config.Links,
		Logger:    c.logger,
	})
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services
	c.logger.Info("Application services initialized")

	// Step 5: Initialize workers
	workers, err := ProvideWorkers(&c.config.Reminder, c.services.Alert, c.logger)
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize workers: %w", err)
	}
	c.workers = workers
	c.logger.Info("Workers initialized", zap.Int("count", c.workers.GetWorkerCount()))

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// RunWorkers starts all registered workers and blocks until ctx is done.
func (c *Container) RunWorkers(ctx context.Context) error {
	if !c.ready.Load() {
		return fmt.Errorf("container not started")
	}
	return c.workers.Run(ctx)
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	// Workers read through the services, so they stop before the database closes
	if c.workers != nil && c.workers.IsRunning() {
		if err := c.workers.StopAll(); err != nil {
			errs = append(errs, fmt.Errorf("stop workers: %w", err))
		}
	}

	if err := c.closeDatabase(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if err := errors.Join(errs...); err != nil {
		c.logger.Error("Container closed with errors", zap.Error(err))
		return err
	}

	c.logger.Info("Container closed")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	// Check database
	if c.db != nil {
		if err := c.db.PingContext(ctx); err != nil {
			status.Components["database"] = ComponentHealth{
				Healthy: false,
				Message: fmt.Sprintf("ping failed: %v", err),
			}
			status.Overall = false
		} else {
			status.Components["database"] = ComponentHealth{Healthy: true}
		}
	} else {
		status.Components["database"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	// Check workers
	if c.workers != nil {
		status.Components["workers"] = ComponentHealth{
			Healthy: true,
			Message: fmt.Sprintf("worker count: %d, running: %t", c.workers.GetWorkerCount(), c.workers.IsRunning()),
		}
	} else {
		status.Components["workers"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	return status
}

// Probe flattens Health into the shape the HTTP health endpoint reports
func (c *Container) Probe(ctx context.Context) (bool, map[string]string) {
	health := c.Health(ctx)
	components := make(map[string]string, len(health.Components))
	for name, ch := range health.Components {
		switch {
		case ch.Healthy && ch.Message == "":
			components[name] = "ok"
		case ch.Healthy:
			components[name] = ch.Message
		default:
			components[name] = "error: " + ch.Message
		}
	}
	return health.Overall, components
}

// initDatabase opens the database, migrates it and creates all repositories.
func (c *Container) initDatabase(ctx context.Context) error {
	dbBundle, err := ProvideDatabase(ctx, &c.config.Database, c.logger)
	if err != nil {
		return err
	}

	c.db = dbBundle.DB
	c.txManager = dbBundle.TransactionMgr
	c.logger.Info("Migrations applied", zap.Int("count", dbBundle.Applied))

	repos, err := ProvideRepositories(c.db, c.logger)
	if err != nil {
		c.closeDatabase()
		return err
	}

	c.repositories = repos
	return nil
}

func (c *Container) closeDatabase() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	if err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
	} else {
		c.logger.Info("Database closed")
	}
	c.db = nil
	return err
}

// Getters for accessing container components

// DB returns the transaction manager.
func (c *Container) DB() port.TransactionManager {
	return c.txManager
}

// Repositories returns all repositories.
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Notifier returns the reminder notifier.
func (c *Container) Notifier() port.Notifier {
	return c.notifier
}

// FileStorage returns the upload storage.
func (c *Container) FileStorage() port.FileStorage {
	return c.fileStorage
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Workers returns the worker manager.
func (c *Container) Workers() *worker.WorkerManager {
	return c.workers
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *Config {
	return c.config
}
