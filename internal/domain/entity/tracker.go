package entity

import "time"

// TrackedPO is a PO record on the stage board
type TrackedPO struct {
	ID         int64     `json:"id"`
	PONumber   string    `json:"po_number"`
	Title      string    `json:"title"`
	Stage      string    `json:"stage"`
	OwnerRole  string    `json:"owner_role"`
	NextAction string    `json:"next_action"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TrackedPODocument is a document URL attached to a tracked PO
type TrackedPODocument struct {
	ID          int64     `json:"id"`
	TrackedPOID int64     `json:"tracked_po_id"`
	Label       string    `json:"label"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// StageLog records one stage change. Rows are append-only.
type StageLog struct {
	ID          int64     `json:"id"`
	TrackedPOID int64     `json:"tracked_po_id"`
	FromStage   string    `json:"from_stage"`
	ToStage     string    `json:"to_stage"`
	Note        string    `json:"note"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrackedPOFilter narrows tracked PO listings. Zero values match everything.
type TrackedPOFilter struct {
	Stage     string
	OwnerRole string
	Query     string
}
