package entity

import "time"

// Step is one checklist item of a PO folder
type Step struct {
	ID         int64     `json:"id"`
	POID       int64     `json:"po_id"`
	StepNo     int       `json:"step_no"`
	StepTitle  string    `json:"step_title"`
	StepDesc   string    `json:"step_desc"`
	IsDone     bool      `json:"is_done"`
	ActionDone bool      `json:"action_done"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StepFile is an uploaded attachment. Rows are append-only.
type StepFile struct {
	ID         int64     `json:"id"`
	StepID     int64     `json:"step_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PendingPayment is an undone payment step together with its PO folder,
// used when scanning for overdue payments
type PendingPayment struct {
	Step       Step
	FolderName string
	MonthKey   string
}
