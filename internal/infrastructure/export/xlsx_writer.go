package export

import (
	"fmt"
	"io"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	// MasterlistSheet holds one row per PO folder
	MasterlistSheet = "Masterlist"
	// SummarySheet holds the month rollup
	SummarySheet = "Summary"

	timeLayout = "2006-01-02 15:04"
)

var baseHeaders = []string{
	"Folder Name", "Capex/Opex", "IT Ref", "Title", "Created", "Updated",
	"Done Steps", "Total Steps", "All Done", "Payment Overdue",
}

// XLSXWriter implements port.ReportWriter with excelize
type XLSXWriter struct {
	logger *zap.Logger
}

// NewXLSXWriter creates a new XLSXWriter
func NewXLSXWriter(logger *zap.Logger) *XLSXWriter {
	return &XLSXWriter{logger: logger}
}

// ContentType returns the MIME type of xlsx workbooks
func (x *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the workbook file extension
func (x *XLSXWriter) Extension() string {
	return ".xlsx"
}

// WriteMonthReport renders the report as a two-sheet workbook
func (x *XLSXWriter) WriteMonthReport(w io.Writer, report *port.MonthReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MasterlistSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := x.writeMasterlist(f, report, headerStyle); err != nil {
		return err
	}
	if err := x.writeSummary(f, report, headerStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	x.logger.Debug("Month workbook written",
		zap.String("month_key", report.Month.MonthKey),
		zap.Int("rows", len(report.Rows)))
	return nil
}

func (x *XLSXWriter) writeMasterlist(f *excelize.File, report *port.MonthReport, headerStyle int) error {
	headers := append([]string{}, baseHeaders...)
	for _, tpl := range checklist.Steps() {
		headers = append(headers, fmt.Sprintf("%d. %s", tpl.No, tpl.Title))
	}

	for col, h := range headers {
		x.setCell(f, MasterlistSheet, col+1, 1, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(MasterlistSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(MasterlistSheet, "A", "A", 40); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, row := range report.Rows {
		r := i + 2
		po := row.PO
		values := []interface{}{
			po.FolderName,
			po.CapexOpex,
			po.ITRefNo,
			po.Title,
			po.CreatedAt.Format(timeLayout),
			po.UpdatedAt.Format(timeLayout),
			row.Progress.DoneSteps,
			row.Progress.TotalSteps,
			yesNo(row.Progress.IsAllDone),
			yesNo(paymentOverdue(row.Steps, report)),
		}
		for col, v := range values {
			x.setCell(f, MasterlistSheet, col+1, r, v)
		}

		for _, step := range row.Steps {
			if step.StepNo < 1 || step.StepNo > entity.StepCount {
				continue
			}
			state := "Open"
			if step.IsDone {
				state = "Done"
			}
			x.setCell(f, MasterlistSheet, len(baseHeaders)+step.StepNo, r, state)
		}
	}

	return nil
}

func (x *XLSXWriter) writeSummary(f *excelize.File, report *port.MonthReport, headerStyle int) error {
	rollups := make([]checklist.Progress, 0, len(report.Rows))
	for _, row := range report.Rows {
		rollups = append(rollups, row.Progress)
	}
	month := checklist.SummarizeMonth(rollups)

	rows := [][2]interface{}{
		{"Month", report.Month.MonthKey},
		{"Label", report.Month.Label},
		{"PO Folders", month.POCount},
		{"All Done", month.AllDoneCount},
		{"Generated At", report.GeneratedAt.Format(timeLayout)},
	}
	for i, kv := range rows {
		x.setCell(f, SummarySheet, 1, i+1, kv[0])
		x.setCell(f, SummarySheet, 2, i+1, kv[1])
	}

	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "B", 20)
}

// setCell sets a cell value by column and row number
func (x *XLSXWriter) setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		x.logger.Warn("Invalid cell coordinates", zap.Int("col", col), zap.Int("row", row), zap.Error(err))
		return
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		x.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func paymentOverdue(steps []*entity.Step, report *port.MonthReport) bool {
	for _, s := range steps {
		if checklist.IsOverdue(s.StepNo, s.IsDone, s.CreatedAt, report.GeneratedAt) {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Verify interface compliance
var _ port.ReportWriter = (*XLSXWriter)(nil)
