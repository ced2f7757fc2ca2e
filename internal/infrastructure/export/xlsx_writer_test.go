package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestXLSXWriter_WriteMonthReport(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	created := now.Add(-15 * 24 * time.Hour)

	var steps []*entity.Step
	for no := 1; no <= entity.StepCount; no++ {
		steps = append(steps, &entity.Step{StepNo: no, IsDone: no <= 2, CreatedAt: created})
	}

	report := &port.MonthReport{
		Month: &entity.Month{ID: 1, MonthKey: "2026-02", Label: "Feb 2026"},
		Rows: []port.ReportRow{{
			PO: &entity.POFolder{
				FolderName: "2026-02-IT-100_Capex_Servers", CapexOpex: "CAPEX",
				ITRefNo: "IT-100", Title: "Servers", CreatedAt: created, UpdatedAt: created,
			},
			Progress: checklist.SummarizeSteps(steps),
			Steps:    steps,
		}},
		GeneratedAt: now,
	}

	writer := NewXLSXWriter(zap.NewNop())
	var buf bytes.Buffer
	require.NoError(t, writer.WriteMonthReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{MasterlistSheet, SummarySheet}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Folder Name", cell(MasterlistSheet, "A1"))
	assert.Equal(t, "1. Quotations", cell(MasterlistSheet, "K1"))
	assert.Equal(t, "2026-02-IT-100_Capex_Servers", cell(MasterlistSheet, "A2"))
	assert.Equal(t, "IT-100", cell(MasterlistSheet, "C2"))
	assert.Equal(t, "2", cell(MasterlistSheet, "G2"))
	assert.Equal(t, "9", cell(MasterlistSheet, "H2"))
	assert.Equal(t, "No", cell(MasterlistSheet, "I2"))
	assert.Equal(t, "Yes", cell(MasterlistSheet, "J2"))
	assert.Equal(t, "Done", cell(MasterlistSheet, "L2"))
	assert.Equal(t, "Open", cell(MasterlistSheet, "S2"))

	assert.Equal(t, "2026-02", cell(SummarySheet, "B1"))
	assert.Equal(t, "1", cell(SummarySheet, "B3"))
	assert.Equal(t, "0", cell(SummarySheet, "B4"))
}

func TestXLSXWriter_Format(t *testing.T) {
	writer := NewXLSXWriter(zap.NewNop())
	assert.Equal(t, ".xlsx", writer.Extension())
	assert.Contains(t, writer.ContentType(), "spreadsheetml")
}
