package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReminderSender evaluates alerts and posts a digest when there is something to report
type ReminderSender interface {
	SendReminders(ctx context.Context) (bool, error)
}

// ReminderWorkerConfig holds configuration for the reminder worker
type ReminderWorkerConfig struct {
	Interval    time.Duration
	SendTimeout time.Duration
}

// DefaultReminderWorkerConfig returns default configuration
func DefaultReminderWorkerConfig() ReminderWorkerConfig {
	return ReminderWorkerConfig{
		Interval:    24 * time.Hour,
		SendTimeout: 30 * time.Second,
	}
}

// ReminderWorker periodically posts overdue payment and stuck PO digests.
// It only reads tracker state.
type ReminderWorker struct {
	config ReminderWorkerConfig
	sender ReminderSender
	logger *zap.Logger

	mu        sync.RWMutex
	cancel    context.CancelFunc
	done      chan struct{}
	isRunning bool
	sentCount int
	lastError error
}

// NewReminderWorker creates a new reminder worker
func NewReminderWorker(config ReminderWorkerConfig, sender ReminderSender, logger *zap.Logger) *ReminderWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultReminderWorkerConfig().Interval
	}
	if config.SendTimeout <= 0 {
		config.SendTimeout = DefaultReminderWorkerConfig().SendTimeout
	}
	return &ReminderWorker{
		config: config,
		sender: sender,
		logger: logger,
	}
}

// Start begins the reminder loop
func (w *ReminderWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return fmt.Errorf("reminder worker already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.isRunning = true
	w.mu.Unlock()

	w.logger.Info("ReminderWorker started", zap.Duration("interval", w.config.Interval))

	go w.loop(loopCtx, w.done)
	return nil
}

// Stop terminates the loop and waits for an in-flight send to finish
func (w *ReminderWorker) Stop() error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done

	w.logger.Info("ReminderWorker stopped", zap.Int("sent_count", w.SentCount()))
	return nil
}

// Name returns the worker name for identification
func (w *ReminderWorker) Name() string {
	return "ReminderWorker"
}

// RunOnce performs a single reminder pass
func (w *ReminderWorker) RunOnce(ctx context.Context) error {
	sendCtx, cancel := context.WithTimeout(ctx, w.config.SendTimeout)
	defer cancel()

	sent, err := w.sender.SendReminders(sendCtx)

	w.mu.Lock()
	w.lastError = err
	if sent {
		w.sentCount++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("Reminder pass failed", zap.Error(err))
		return err
	}
	if !sent {
		w.logger.Debug("Nothing to remind")
	}
	return nil
}

// SentCount returns how many digests were delivered
func (w *ReminderWorker) SentCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sentCount
}

// LastError returns the error of the most recent pass
func (w *ReminderWorker) LastError() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

func (w *ReminderWorker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Reminder loop context cancelled")
			return
		case <-ticker.C:
			_ = w.RunOnce(ctx)
		}
	}
}
