package model

import "time"

// ExportRecord is one entry in the export journal.
type ExportRecord struct {
	ExportedAt   time.Time
	Path         string
	Reference    string
	CustomerName string
	Mode         SaveMode
	ID           int64
	GrandTotal   int64
	ItemCount    int
}
