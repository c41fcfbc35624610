// FILE: internal/dto/usage_dto.go
// DTOs for usage limits and status checking
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UsageLimit represents a single limit status
type UsageLimit struct {
	Used     int        `json:"used"`
	Limit    int        `json:"limit"` // -1 = unlimited, 0 = disabled
	CanUse   bool       `json:"can_use"`
	ResetsAt *time.Time `json:"resets_at,omitempty"` // For daily limits
}

// StorageLimits for cumulative resources (datasets, documents)
type StorageLimits struct {
	Datasets  UsageLimit `json:"datasets"`
	Documents UsageLimit `json:"documents"`
}

// DailyLimits for usage that resets daily
type DailyLimits struct {
	Generation UsageLimit `json:"generation"`
}

// MonthlyLimits reset on the first of each calendar month. Here limit 0
// means unlimited, matching the export_monthly_limit column.
type MonthlyLimits struct {
	Exports UsageLimit `json:"exports"`
}

// UsageStatusResponse is returned by GET /api/user/usage-status
type UsageStatusResponse struct {
	Plan             PlanInfo      `json:"plan"`
	Storage          StorageLimits `json:"storage"`
	Daily            DailyLimits   `json:"daily"`
	Monthly          MonthlyLimits `json:"monthly"`
	UpgradeAvailable bool          `json:"upgrade_available"`
}

type PlanInfo struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// PlanWithFeaturesResponse is returned by GET /api/plans (public)
type PlanWithFeaturesResponse struct {
	Id            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Tagline       string        `json:"tagline"`
	Price         float64       `json:"price"`
	BillingPeriod string        `json:"billing_period"`
	IsMostPopular bool          `json:"is_most_popular"`
	Limits        PlanLimitsDTO `json:"limits"`
	Features      []FeatureDTO  `json:"features"`
}

type PlanLimitsDTO struct {
	MaxDatasets     int `json:"max_datasets"`
	MaxDocuments    int `json:"max_documents"`
	GenerationDaily int `json:"generation_daily"`
	ExportMonthly   int `json:"export_monthly"`
}

type FeatureDTO struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	IsEnabled bool   `json:"is_enabled"`
}

// LimitType constants for error handling
const (
	LimitTypeDatasets   = "datasets"
	LimitTypeDocuments  = "documents"
	LimitTypeGeneration = "generation"
	LimitTypeExports    = "exports"
)

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	LimitType  string    `json:"limit_type"`
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded", e.LimitType)
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	LimitType        string    `json:"limit_type"`
	Limit            int       `json:"limit"`
	Used             int       `json:"used"`
	ResetAfter       time.Time `json:"reset_after"`
	ShowModalPricing bool      `json:"show_modal_pricing"`
}

// LimitExceededResponse is the full 429 response structure
type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
