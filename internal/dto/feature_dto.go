// FILE: internal/dto/feature_dto.go
package dto

import "github.com/google/uuid"

// --- Feature catalog ---

// CreateFeatureRequest adds an entitlement to the catalog that plans can
// then reference.
type CreateFeatureRequest struct {
	Key         string `json:"key" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"` // generation, export, support
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateFeatureRequest patches the fields present; the key is immutable.
type UpdateFeatureRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

type FeatureResponse struct {
	Id          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
}

// --- Plan-feature links ---

// AssignFeatureRequest attaches a catalog feature to a plan.
type AssignFeatureRequest struct {
	FeatureId uuid.UUID `json:"feature_id" validate:"required"`
	IsEnabled bool      `json:"is_enabled"`
	SortOrder int       `json:"sort_order"`
}

// PlanFeatureDetailResponse expands the linked catalog entry inline.
type PlanFeatureDetailResponse struct {
	Id        uuid.UUID        `json:"id"`
	PlanId    uuid.UUID        `json:"plan_id"`
	FeatureId *uuid.UUID       `json:"feature_id,omitempty"`
	Feature   *FeatureResponse `json:"feature,omitempty"`
	IsEnabled bool             `json:"is_enabled"`
	SortOrder int              `json:"sort_order"`
	// Rows created before the catalog existed carry free text instead
	FeatureKey  *string `json:"feature_key,omitempty"`
	DisplayText *string `json:"display_text,omitempty"`
}
