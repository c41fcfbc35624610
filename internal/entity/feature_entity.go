// FILE: internal/entity/feature_entity.go
// Domain entity for features
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feature represents a feature in the master catalog
type Feature struct {
	Id          uuid.UUID
	Key         string // Unique key: report_generation, docx_export, etc.
	Name        string // Display name: "AI Report Generation"
	Description string // Full description
	Category    string // Category: generation, export, storage, support
	IsActive    bool   // Global enable/disable
	SortOrder   int    // Display order
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
