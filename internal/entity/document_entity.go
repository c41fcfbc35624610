package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusDraft      DocumentStatus = "draft"
	DocumentStatusGenerating DocumentStatus = "generating"
	DocumentStatusReady      DocumentStatus = "ready"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document is a generated report chapter. Content is the raw markdown source;
// rendered HTML and table state live in the editing session, never here.
type Document struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string
	Content     string
	Status      DocumentStatus
	DatasetId   *uuid.UUID `gorm:"type:uuid;index"`
	UserId      uuid.UUID  `gorm:"type:uuid;index"`
	Model       string     // LLM model that produced the content, empty for manual drafts
	GeneratedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
