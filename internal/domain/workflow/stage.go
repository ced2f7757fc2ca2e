// Package workflow models the free-form stage board: stages, owner roles and
// the stuck rule. Any stage may follow any other; transitions are journaled
// by the caller, not validated here.
package workflow

import (
	"sort"
	"strings"
	"time"
)

// Stage is a workflow status label on a tracked PO
type Stage string

const (
	StageRequested Stage = "REQUESTED"
	StageQuotation Stage = "QUOTATION"
	StageApproval  Stage = "APPROVAL"
	StagePOIssued  Stage = "PO_ISSUED"
	StageInvoiced  Stage = "INVOICED"
	StagePayment   Stage = "PAYMENT"
	StageClosed    Stage = "CLOSED"
)

// DefaultStages are offered on the board before any custom stage exists
var DefaultStages = []Stage{
	StageRequested,
	StageQuotation,
	StageApproval,
	StagePOIssued,
	StageInvoiced,
	StagePayment,
	StageClosed,
}

// StuckAfter is how long a non-closed PO may sit untouched before it is flagged
const StuckAfter = 7 * 24 * time.Hour

// NormalizeStage upper-cases a stage label and joins inner whitespace with underscores
func NormalizeStage(s string) Stage {
	return Stage(strings.ToUpper(strings.Join(strings.Fields(s), "_")))
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// IsTerminal returns true for the closing stage
func (s Stage) IsTerminal() bool {
	return s == StageClosed
}

// IsStuck reports whether a PO in the given stage has not been updated for StuckAfter
func IsStuck(stage Stage, updatedAt, now time.Time) bool {
	if stage.IsTerminal() || updatedAt.IsZero() {
		return false
	}
	return now.Sub(updatedAt) >= StuckAfter
}

// KnownStages merges the default stages with stages already in use.
// Defaults keep their order; extra stages follow alphabetically.
func KnownStages(inUse []string) []Stage {
	seen := make(map[Stage]bool, len(DefaultStages))
	out := make([]Stage, 0, len(DefaultStages)+len(inUse))
	for _, s := range DefaultStages {
		seen[s] = true
		out = append(out, s)
	}

	var extra []Stage
	for _, raw := range inUse {
		s := NormalizeStage(raw)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		extra = append(extra, s)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(out, extra...)
}
