package dto

import (
	"time"

	"ai-reportgen-be/pkg/document"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type DocumentSummaryResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	DatasetId   *uuid.UUID `json:"dataset_id,omitempty"`
	Model       string     `json:"model,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []*DocumentSummaryResponse `json:"documents"`
	Total     int64                      `json:"total"`
	Page      int                        `json:"page"`
	PerPage   int                        `json:"per_page"`
}

type ShowDocumentResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	DatasetId   *uuid.UUID `json:"dataset_id,omitempty"`
	Model       string     `json:"model,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type RenameDocumentRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

// UpdateContentRequest replaces the editing session's raw markdown. The
// persisted row only changes on save.
type UpdateContentRequest struct {
	Id      uuid.UUID
	Content string `json:"content"`
}

type SessionStateResponse struct {
	Id    uuid.UUID `json:"id"`
	Mode  string    `json:"mode"`
	Dirty bool      `json:"dirty"`
}

// PreviewResponse carries the rendered session state. Tables come straight
// from the editing controller, index-aligned with the placeholder divs in
// the HTML.
type PreviewResponse struct {
	Id     uuid.UUID            `json:"id"`
	Title  string               `json:"title"`
	Mode   string               `json:"mode"`
	Dirty  bool                 `json:"dirty"`
	HTML   string               `json:"html"`
	Tables []document.TableView `json:"tables"`
}

type SetModeRequest struct {
	Id   uuid.UUID
	Mode string `json:"mode" validate:"required,oneof=edit preview"`
}

type TableViewRequest struct {
	Id    uuid.UUID
	Index int    `json:"index"`
	View  string `json:"view" validate:"required"`
}

type TableColumnsRequest struct {
	Id           uuid.UUID
	Index        int      `json:"index"`
	LabelColumn  string   `json:"label_column" validate:"required"`
	ValueColumns []string `json:"value_columns"`
}

type FindRequest struct {
	Id   uuid.UUID
	Term string `json:"term" validate:"required"`
}

type ReplaceRequest struct {
	Id          uuid.UUID
	Replacement string `json:"replacement"`
}

type ReplaceAllResponse struct {
	Replaced int                 `json:"replaced"`
	Find     document.FindResult `json:"find"`
}

type SaveDocumentResponse struct {
	Id      uuid.UUID  `json:"id"`
	SavedAt *time.Time `json:"saved_at"`
}

// PublishRenderMessage is the re-render job payload for the watermill bus
type PublishRenderMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
