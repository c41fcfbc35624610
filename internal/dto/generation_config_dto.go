package dto

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Generation Setting DTOs
// ============================================================================

// GenerationSettingResponse represents a generation settings entry. Secret
// values (API keys) are masked before they reach this struct.
type GenerationSettingResponse struct {
	Id          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	ValueType   string    `json:"value_type"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsSecret    bool      `json:"is_secret"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateGenerationSettingRequest for updating a setting value
type UpdateGenerationSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

// ============================================================================
// Report Style DTOs
// ============================================================================

// ReportStyleResponse represents a report style preset
type ReportStyleResponse struct {
	Id            uuid.UUID `json:"id"`
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	SystemPrompt  string    `json:"system_prompt"`
	ModelOverride *string   `json:"model_override,omitempty"`
	IsActive      bool      `json:"is_active"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateReportStyleRequest for creating a new style preset
type CreateReportStyleRequest struct {
	Key           string  `json:"key" validate:"required,max=100"`
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description"`
	SystemPrompt  string  `json:"system_prompt" validate:"required"`
	ModelOverride *string `json:"model_override,omitempty"`
	SortOrder     int     `json:"sort_order"`
}

// UpdateReportStyleRequest for updating a style preset
type UpdateReportStyleRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	SystemPrompt  *string `json:"system_prompt,omitempty"`
	ModelOverride *string `json:"model_override,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	SortOrder     *int    `json:"sort_order,omitempty"`
}

// ReportStyleListResponse for admin listing (minimal fields)
type ReportStyleListResponse struct {
	Id       uuid.UUID `json:"id"`
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// AvailableStyleResponse for the user-facing style picker
type AvailableStyleResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
