// FILE: internal/dto/cancellation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-side cancellation ---

// UserCancellationRequest opens a cancellation against one of the caller's
// subscriptions.
type UserCancellationRequest struct {
	SubscriptionId uuid.UUID `json:"subscription_id" validate:"required"`
	Reason         string    `json:"reason" validate:"required,min=10"`
}

// UserCancellationResponse acknowledges a submitted request.
type UserCancellationResponse struct {
	CancellationId string `json:"cancellation_id"`
	Status         string `json:"status"`
	Message        string `json:"message"`
}

// UserCancellationListResponse is one row of the user's request history.
type UserCancellationListResponse struct {
	Id             uuid.UUID `json:"id"`
	SubscriptionId uuid.UUID `json:"subscription_id"`
	PlanName       string    `json:"plan_name"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	EffectiveDate  time.Time `json:"effective_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// --- Admin queue ---

// AdminCancellationListResponse is one row of the admin cancellation queue.
type AdminCancellationListResponse struct {
	Id            uuid.UUID                         `json:"id"`
	User          AdminCancellationUserInfo         `json:"user"`
	Subscription  AdminCancellationSubscriptionInfo `json:"subscription"`
	Reason        string                            `json:"reason"`
	Status        string                            `json:"status"`
	AdminNotes    string                            `json:"admin_notes,omitempty"`
	EffectiveDate time.Time                         `json:"effective_date"`
	CreatedAt     time.Time                         `json:"created_at"`
	ProcessedAt   *time.Time                        `json:"processed_at,omitempty"`
}

type AdminCancellationUserInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type AdminCancellationSubscriptionInfo struct {
	Id               uuid.UUID `json:"id"`
	PlanName         string    `json:"plan_name"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}

// AdminProcessCancellationRequest settles a pending request either way.
type AdminProcessCancellationRequest struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type AdminProcessCancellationResponse struct {
	CancellationId string    `json:"cancellation_id"`
	Status         string    `json:"status"`
	EffectiveDate  time.Time `json:"effective_date"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// SubscriptionValidationResponse answers the client's periodic "is my plan
// still good" poll, including the grace window after expiry.
type SubscriptionValidationResponse struct {
	IsValid          bool       `json:"is_valid"`
	Status           string     `json:"status"` // active, grace_period, expired
	RenewalRequired  bool       `json:"renewal_required"`
	CurrentPeriodEnd time.Time  `json:"current_period_end,omitempty"`
	DaysRemaining    int        `json:"days_remaining,omitempty"`
	GracePeriodEnd   *time.Time `json:"grace_period_end,omitempty"`
	PlanName         string     `json:"plan_name,omitempty"`
}
