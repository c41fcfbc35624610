package dto

import (
	"time"

	"github.com/google/uuid"
)

type ExportDocumentRequest struct {
	Id     uuid.UUID
	Format string `json:"format" validate:"required,oneof=docx pdf"`
}

type ExportDocumentResponse struct {
	Id          uuid.UUID `json:"id"`
	Format      string    `json:"format"`
	Filename    string    `json:"filename"`
	SizeBytes   int64     `json:"size_bytes"`
	DownloadURL string    `json:"download_url"`
}

type ExportHistoryItem struct {
	Id        uuid.UUID `json:"id"`
	Format    string    `json:"format"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportHistoryResponse struct {
	Exports []*ExportHistoryItem `json:"exports"`
	Total   int64                `json:"total"`
}

// ExportDownload carries what the controller needs to stream a finished
// export back to the client.
type ExportDownload struct {
	Path     string
	Filename string
}
