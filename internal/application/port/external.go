package port

import (
	"context"
	"io"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

// Notifier delivers reminder digests to people
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// MonthReport is the content of a month export
type MonthReport struct {
	Month       *entity.Month
	Rows        []ReportRow
	GeneratedAt time.Time
}

// ReportRow is one PO folder of a month export
type ReportRow struct {
	PO       *entity.POFolder
	Progress checklist.Progress
	Steps    []*entity.Step
}

// ReportWriter renders a month report in a file format
type ReportWriter interface {
	WriteMonthReport(w io.Writer, report *MonthReport) error
	ContentType() string
	Extension() string
}
