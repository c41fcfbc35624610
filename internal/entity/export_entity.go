package entity

import (
	"time"

	"github.com/google/uuid"
)

type ExportFormat string
type ExportStatus string

const (
	ExportFormatDocx ExportFormat = "docx"
	ExportFormatPdf  ExportFormat = "pdf"

	ExportStatusCompleted ExportStatus = "completed"
	ExportStatusFailed    ExportStatus = "failed"
)

// ExportRecord is one export of a document to a file on disk. Completed rows
// are what the monthly entitlement counts.
type ExportRecord struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	UserId     uuid.UUID
	Format     ExportFormat
	Filename   string
	SizeBytes  int64
	Status     ExportStatus
	CreatedAt  time.Time
}
