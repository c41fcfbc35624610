package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is an uploaded spreadsheet flattened to ordered records. Rows are
// bounded at MaxStoredRows on ingest; RowCount keeps the original size so the
// UI can say "showing 500 of 12,000".
type Dataset struct {
	Id               uuid.UUID
	Name             string
	OriginalFilename string
	UserId           uuid.UUID
	Columns          []string
	Rows             []map[string]any
	RowCount         int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

// MaxStoredRows bounds how many records a dataset persists.
const MaxStoredRows = 500
