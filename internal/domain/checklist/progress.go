package checklist

import "github.com/Jowenthebui/PO-Tracking/internal/domain/entity"

// Progress is the rollup of a PO folder's steps
type Progress struct {
	DoneSteps  int  `json:"done_steps"`
	TotalSteps int  `json:"total_steps"`
	IsAllDone  bool `json:"is_all_done"`
}

// Summarize counts done steps. A PO without steps is never all done.
func Summarize(done []bool) Progress {
	p := Progress{TotalSteps: len(done)}
	for _, d := range done {
		if d {
			p.DoneSteps++
		}
	}
	p.IsAllDone = p.TotalSteps > 0 && p.DoneSteps == p.TotalSteps
	return p
}

// SummarizeSteps is Summarize over loaded step rows
func SummarizeSteps(steps []*entity.Step) Progress {
	done := make([]bool, 0, len(steps))
	for _, s := range steps {
		done = append(done, s.IsDone)
	}
	return Summarize(done)
}

// MonthProgress is the rollup of all PO folders in a month
type MonthProgress struct {
	POCount      int `json:"po_count"`
	AllDoneCount int `json:"all_done_count"`
}

// SummarizeMonth counts PO folders and those with every step done
func SummarizeMonth(pos []Progress) MonthProgress {
	m := MonthProgress{POCount: len(pos)}
	for _, p := range pos {
		if p.IsAllDone {
			m.AllDoneCount++
		}
	}
	return m
}
