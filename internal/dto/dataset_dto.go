package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDatasetResponse struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"original_filename"`
	Columns          []string  `json:"columns"`
	RowCount         int       `json:"row_count"`
	StoredRows       int       `json:"stored_rows"`
	Truncated        bool      `json:"truncated"`
}

type DatasetSummaryResponse struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	OriginalFilename string     `json:"original_filename"`
	Columns          []string   `json:"columns"`
	RowCount         int        `json:"row_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type ListDatasetsResponse struct {
	Datasets []*DatasetSummaryResponse `json:"datasets"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PerPage  int                       `json:"per_page"`
}

// ShowDatasetResponse returns the stored rows for the preview grid. Rows is
// capped at entity.MaxStoredRows, RowCount keeps the original file's count.
type ShowDatasetResponse struct {
	Id               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	OriginalFilename string           `json:"original_filename"`
	Columns          []string         `json:"columns"`
	Rows             []map[string]any `json:"rows"`
	RowCount         int              `json:"row_count"`
	CreatedAt        time.Time        `json:"created_at"`
}

type RenameDatasetRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required"`
}
