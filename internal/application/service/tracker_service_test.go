package service

import (
	"context"
	"testing"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackerFixture struct {
	pos  *mockTrackedRepo
	docs *mockDocRepo
	logs *mockLogRepo
	svc  TrackerService
}

func newTrackerFixture() *trackerFixture {
	f := &trackerFixture{
		pos:  &mockTrackedRepo{pos: map[int64]*entity.TrackedPO{}},
		docs: &mockDocRepo{},
		logs: &mockLogRepo{},
	}
	f.svc = NewTrackerService(f.pos, f.docs, f.logs, &mockTxManager{}, fixedClock{testNow}, &mockLogger{})
	return f
}

func TestTrackerService_CreatePO(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := newTrackerFixture()
		po, err := f.svc.CreatePO(context.Background(), CreateTrackedPOInput{PONumber: " PO-1 ", Title: "Laptops", Actor: "amy"})
		require.NoError(t, err)

		assert.Equal(t, "PO-1", po.PONumber)
		assert.Equal(t, "REQUESTED", po.Stage)
		assert.Equal(t, "INTERN", po.OwnerRole)

		require.Len(t, f.logs.logs, 1)
		assert.Equal(t, "", f.logs.logs[0].FromStage)
		assert.Equal(t, "REQUESTED", f.logs.logs[0].ToStage)
		assert.Equal(t, "amy", f.logs.logs[0].Actor)
	})

	t.Run("normalizes stage and role", func(t *testing.T) {
		f := newTrackerFixture()
		po, err := f.svc.CreatePO(context.Background(), CreateTrackedPOInput{
			PONumber: "PO-2", Stage: " waiting  vendor ", OwnerRole: "vendor",
		})
		require.NoError(t, err)
		assert.Equal(t, "WAITING_VENDOR", po.Stage)
		assert.Equal(t, "VENDOR", po.OwnerRole)
	})

	t.Run("invalid role", func(t *testing.T) {
		f := newTrackerFixture()
		_, err := f.svc.CreatePO(context.Background(), CreateTrackedPOInput{PONumber: "PO-3", OwnerRole: "ceo"})
		var vErr *entity.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, workflow.ErrInvalidRole.Error(), vErr.Message)
		assert.Empty(t, f.logs.logs)
	})

	t.Run("missing number", func(t *testing.T) {
		f := newTrackerFixture()
		_, err := f.svc.CreatePO(context.Background(), CreateTrackedPOInput{Title: "x"})
		var vErr *entity.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestTrackerService_UpdatePO(t *testing.T) {
	f := newTrackerFixture()
	ctx := context.Background()
	po, err := f.svc.CreatePO(ctx, CreateTrackedPOInput{PONumber: "PO-1"})
	require.NoError(t, err)

	t.Run("any stage may follow any other", func(t *testing.T) {
		view, err := f.svc.UpdatePO(ctx, po.ID, UpdateTrackedPOInput{Stage: strPtr("closed"), Note: "cancelled", Actor: "bo"})
		require.NoError(t, err)
		assert.Equal(t, "CLOSED", view.Stage)

		view, err = f.svc.UpdatePO(ctx, po.ID, UpdateTrackedPOInput{Stage: strPtr("requested")})
		require.NoError(t, err)
		assert.Equal(t, "REQUESTED", view.Stage)

		require.Len(t, f.logs.logs, 3)
		assert.Equal(t, "REQUESTED", f.logs.logs[1].FromStage)
		assert.Equal(t, "CLOSED", f.logs.logs[1].ToStage)
		assert.Equal(t, "cancelled", f.logs.logs[1].Note)
		assert.Equal(t, "CLOSED", f.logs.logs[2].FromStage)
	})

	t.Run("no log without stage change", func(t *testing.T) {
		before := len(f.logs.logs)
		view, err := f.svc.UpdatePO(ctx, po.ID, UpdateTrackedPOInput{
			Stage: strPtr("Requested"), OwnerRole: strPtr("admin"), NextAction: strPtr("chase quote"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", view.OwnerRole)
		assert.Equal(t, "chase quote", view.NextAction)
		assert.Len(t, f.logs.logs, before)
	})

	t.Run("empty stage rejected", func(t *testing.T) {
		_, err := f.svc.UpdatePO(ctx, po.ID, UpdateTrackedPOInput{Stage: strPtr("   ")})
		var vErr *entity.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown po", func(t *testing.T) {
		_, err := f.svc.UpdatePO(ctx, 99, UpdateTrackedPOInput{})
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestTrackerService_AddDocumentSetSemantics(t *testing.T) {
	f := newTrackerFixture()
	ctx := context.Background()
	po, err := f.svc.CreatePO(ctx, CreateTrackedPOInput{PONumber: "PO-1"})
	require.NoError(t, err)

	first, err := f.svc.AddDocument(ctx, po.ID, "Quote", " https://example.com/q.pdf ")
	require.NoError(t, err)
	second, err := f.svc.AddDocument(ctx, po.ID, "Quote again", "https://example.com/q.pdf")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Quote", second.Label)
	assert.Len(t, f.docs.docs, 1)

	unlabeled, err := f.svc.AddDocument(ctx, po.ID, "", "https://example.com/inv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/inv.pdf", unlabeled.Label)

	_, err = f.svc.AddDocument(ctx, po.ID, "x", "")
	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.AddDocument(ctx, 99, "x", "https://example.com")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestTrackerService_ListPOs(t *testing.T) {
	f := newTrackerFixture()
	f.pos.pos[1] = &entity.TrackedPO{ID: 1, Stage: "APPROVAL", OwnerRole: "MANAGER", UpdatedAt: testNow.Add(-8 * 24 * time.Hour)}
	f.pos.pos[2] = &entity.TrackedPO{ID: 2, Stage: "CLOSED", OwnerRole: "ADMIN", UpdatedAt: testNow.Add(-30 * 24 * time.Hour)}
	f.pos.pos[3] = &entity.TrackedPO{ID: 3, Stage: "QUOTATION", OwnerRole: "INTERN", UpdatedAt: testNow.Add(-6 * 24 * time.Hour)}

	t.Run("stuck only", func(t *testing.T) {
		views, err := f.svc.ListPOs(context.Background(), TrackerFilter{StuckOnly: true})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, int64(1), views[0].ID)
		assert.True(t, views[0].IsStuck)
	})

	t.Run("filters are normalized", func(t *testing.T) {
		_, err := f.svc.ListPOs(context.Background(), TrackerFilter{Stage: "po issued", OwnerRole: "manager", Query: "lap"})
		require.NoError(t, err)
		assert.Equal(t, entity.TrackedPOFilter{Stage: "PO_ISSUED", OwnerRole: "MANAGER", Query: "lap"}, f.pos.lastFilter)
	})

	t.Run("invalid role filter", func(t *testing.T) {
		_, err := f.svc.ListPOs(context.Background(), TrackerFilter{OwnerRole: "boss"})
		var vErr *entity.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestTrackerService_Stages(t *testing.T) {
	f := newTrackerFixture()
	f.pos.stages = []string{"APPROVAL", "WAITING_VENDOR", "ON_HOLD"}

	stages, err := f.svc.Stages(context.Background())
	require.NoError(t, err)
	require.Len(t, stages, len(workflow.DefaultStages)+2)
	assert.Equal(t, workflow.StageRequested, stages[0])
	assert.Equal(t, workflow.Stage("ON_HOLD"), stages[len(stages)-2])
	assert.Equal(t, workflow.Stage("WAITING_VENDOR"), stages[len(stages)-1])
}
