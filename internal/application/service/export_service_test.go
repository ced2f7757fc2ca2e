package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_ExportMonth(t *testing.T) {
	month := &entity.Month{ID: 1, MonthKey: "2026-01", Label: "Jan 2026"}
	months := &mockMonthRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.Month, error) {
			if id == 1 {
				return month, nil
			}
			return nil, nil
		},
		getByKeyFunc: func(ctx context.Context, key string) (*entity.Month, error) {
			if key == "2026-01" {
				return month, nil
			}
			return nil, nil
		},
	}
	pos := &mockPORepo{listByMonthFunc: func(ctx context.Context, monthID int64) ([]*entity.POSummary, error) {
		return []*entity.POSummary{{POFolder: entity.POFolder{ID: 5, MonthID: 1, FolderName: "f"}}}, nil
	}}
	steps := &mockStepRepo{steps: map[int64]*entity.Step{
		1: {ID: 1, POID: 5, StepNo: 1, IsDone: true},
		2: {ID: 2, POID: 5, StepNo: 2},
	}}
	writer := &mockReportWriter{}
	svc := NewExportService(months, pos, steps, writer, fixedClock{testNow}, &mockLogger{})

	var buf bytes.Buffer
	got, err := svc.ExportMonth(context.Background(), 1, &buf)
	require.NoError(t, err)
	assert.Equal(t, month, got)
	assert.Equal(t, "report", buf.String())

	require.NotNil(t, writer.report)
	assert.Equal(t, testNow, writer.report.GeneratedAt)
	require.Len(t, writer.report.Rows, 1)
	assert.Equal(t, 1, writer.report.Rows[0].Progress.DoneSteps)
	assert.Equal(t, 2, writer.report.Rows[0].Progress.TotalSteps)
	assert.Len(t, writer.report.Rows[0].Steps, 2)

	assert.Equal(t, "po-tracker-2026-01.txt", svc.FileName(month))

	_, err = svc.ExportMonthByKey(context.Background(), " 2026-01 ", &bytes.Buffer{})
	assert.NoError(t, err)

	_, err = svc.ExportMonth(context.Background(), 2, &bytes.Buffer{})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = svc.ExportMonthByKey(context.Background(), "2030-01", &bytes.Buffer{})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
