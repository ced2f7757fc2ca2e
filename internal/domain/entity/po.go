package entity

import "time"

// POFolder represents a tracked purchase order folder inside a month
type POFolder struct {
	ID         int64     `json:"id"`
	MonthID    int64     `json:"month_id"`
	FolderName string    `json:"folder_name"`
	CapexOpex  string    `json:"capex_opex"`
	ITRefNo    string    `json:"it_ref_no"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// POSummary is a PO folder joined with its month key and the done flags of its steps.
// Progress is derived from StepDone on read and never persisted.
type POSummary struct {
	POFolder
	MonthKey string
	StepDone []bool
}
