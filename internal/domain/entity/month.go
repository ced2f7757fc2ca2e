package entity

import "time"

// Month groups PO folders under a YYYY-MM key
type Month struct {
	ID        int64     `json:"id"`
	MonthKey  string    `json:"month_key"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
