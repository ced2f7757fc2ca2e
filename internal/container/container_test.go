package container

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "po.db")
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.Reminder.Interval = time.Hour
	return cfg
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(testConfig(t), nil)
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.Lark.Enabled = true
	_, err = NewContainer(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "lark")
}

func TestContainer_Lifecycle(t *testing.T) {
	c, err := NewContainer(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, c.RunWorkers(context.Background()))

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Ready())
	assert.Error(t, c.Start(ctx))

	svc := c.Services()
	require.NotNil(t, svc)
	assert.NotNil(t, svc.Month)
	assert.NotNil(t, svc.Export)
	assert.IsType(t, &notification.LogNotifier{}, c.Notifier())
	assert.Equal(t, 1, c.Workers().GetWorkerCount())

	month, err := svc.Month.Create(ctx, "2026-03", "Mar 2026")
	require.NoError(t, err)
	po, err := svc.PO.Create(ctx, month.ID, "2026-03-IT-101_Opex_Licenses")
	require.NoError(t, err)
	detail, err := svc.PO.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Steps, 9)

	health := c.Health(ctx)
	assert.True(t, health.Overall)
	assert.True(t, health.Components["database"].Healthy)

	ok, components := c.Probe(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ok", components["database"])
	assert.Equal(t, "worker count: 1, running: false", components["workers"])

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- c.RunWorkers(runCtx) }()
	assert.Eventually(t, c.Workers().IsRunning, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(ctx))
}

func TestContainer_ReminderDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Reminder.Enabled = false

	c, err := NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	assert.Equal(t, 0, c.Workers().GetWorkerCount())
}
