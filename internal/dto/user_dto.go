// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id                   uuid.UUID `json:"id"`
	Email                string    `json:"email"`
	FullName             string    `json:"full_name"`
	Role                 string    `json:"role"`
	Status               string    `json:"status"`
	AvatarURL            string    `json:"avatar_url,omitempty"`
	GenerationDailyUsage int       `json:"generation_daily_usage"`
	CreatedAt            time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type SubscriptionStatusResponse struct {
	SubscriptionId   uuid.UUID     `json:"subscription_id"`
	PlanName         string        `json:"plan_name"`
	Status           string        `json:"status"`
	CurrentPeriodEnd time.Time     `json:"current_period_end"`
	IsActive         bool          `json:"is_active"`
	HasPendingRefund bool          `json:"has_pending_refund"`
	Limits           PlanLimitsDTO `json:"limits"`
}
