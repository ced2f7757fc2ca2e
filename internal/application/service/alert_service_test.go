package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func newAlertFixture(pending []*entity.PendingPayment, tracked map[int64]*entity.TrackedPO, notifier *mockNotifier) (AlertService, *time.Time) {
	var cutoff time.Time
	steps := &mockStepRepo{pendingFunc: func(ctx context.Context, before time.Time) ([]*entity.PendingPayment, error) {
		cutoff = before
		return pending, nil
	}}
	trackedRepo := &mockTrackedRepo{pos: tracked}
	return NewAlertService(steps, trackedRepo, notifier, fixedClock{testNow}, &mockLogger{}), &cutoff
}

func TestAlertService_Current(t *testing.T) {
	pending := []*entity.PendingPayment{
		{Step: entity.Step{ID: 1, POID: 1, StepNo: 9, StepTitle: "Admin Make Payment", CreatedAt: testNow.Add(-15 * day)},
			FolderName: "IT-001_Capex_Laptops", MonthKey: "2026-02"},
		// repository rows are re-checked against the rule
		{Step: entity.Step{ID: 2, POID: 2, StepNo: 9, CreatedAt: testNow.Add(-13 * day)}},
		{Step: entity.Step{ID: 3, POID: 3, StepNo: 9, IsDone: true, CreatedAt: testNow.Add(-30 * day)}},
	}
	tracked := map[int64]*entity.TrackedPO{
		1: {ID: 1, PONumber: "PO-1", Stage: "APPROVAL", UpdatedAt: testNow.Add(-7 * day)},
		2: {ID: 2, PONumber: "PO-2", Stage: "CLOSED", UpdatedAt: testNow.Add(-40 * day)},
		3: {ID: 3, PONumber: "PO-3", Stage: "PAYMENT", UpdatedAt: testNow.Add(-6 * day)},
	}
	svc, cutoff := newAlertFixture(pending, tracked, &mockNotifier{})

	alerts, err := svc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testNow.Add(-checklist.OverdueAfter), *cutoff)
	require.Len(t, alerts.OverdueSteps, 1)
	assert.Equal(t, int64(1), alerts.OverdueSteps[0].StepID)
	assert.Equal(t, 15, alerts.OverdueSteps[0].DaysOpen)

	require.Len(t, alerts.StuckPOs, 1)
	assert.Equal(t, "PO-1", alerts.StuckPOs[0].PONumber)
	assert.True(t, alerts.StuckPOs[0].IsStuck)
}

func TestAlertService_SendReminders(t *testing.T) {
	t.Run("nothing to send", func(t *testing.T) {
		notifier := &mockNotifier{}
		svc, _ := newAlertFixture(nil, nil, notifier)

		sent, err := svc.SendReminders(context.Background())
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, notifier.messages)
	})

	t.Run("digest sent", func(t *testing.T) {
		notifier := &mockNotifier{}
		pending := []*entity.PendingPayment{
			{Step: entity.Step{ID: 1, StepNo: 9, StepTitle: "Admin Make Payment", CreatedAt: testNow.Add(-20 * day)},
				FolderName: "IT-9_Opex_Cloud", MonthKey: "2026-01"},
		}
		svc, _ := newAlertFixture(pending, nil, notifier)

		sent, err := svc.SendReminders(context.Background())
		require.NoError(t, err)
		assert.True(t, sent)
		require.Len(t, notifier.messages, 1)
		assert.Contains(t, notifier.messages[0], "[2026-01] IT-9_Opex_Cloud: Admin Make Payment open 20 days")
	})

	t.Run("notifier failure", func(t *testing.T) {
		notifier := &mockNotifier{err: errors.New("chat down")}
		tracked := map[int64]*entity.TrackedPO{1: {ID: 1, Stage: "APPROVAL", UpdatedAt: testNow.Add(-10 * day)}}
		svc, _ := newAlertFixture(nil, tracked, notifier)

		sent, err := svc.SendReminders(context.Background())
		assert.Error(t, err)
		assert.False(t, sent)
	})
}

func TestFormatDigest(t *testing.T) {
	alerts := &Alerts{
		StuckPOs: []*TrackedPOView{{TrackedPO: &entity.TrackedPO{
			PONumber: "PO-7", Title: "Chairs", Stage: "QUOTATION", OwnerRole: "VENDOR", NextAction: "send quote",
		}, IsStuck: true}},
	}

	digest := FormatDigest(alerts)
	assert.Contains(t, digest, "Stuck POs (1):")
	assert.Contains(t, digest, "- PO-7 Chairs: QUOTATION, owner VENDOR, next: send quote")
	assert.NotContains(t, digest, "Payments overdue")
}
