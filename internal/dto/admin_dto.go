package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User Management ---

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
	Status string `query:"status"`
}

// UsageOverviewResponse is one row of the admin usage table: the user's
// daily generation allowance and their exports for the current calendar
// month. -1 limit means unlimited; export limit 0 means unlimited.
type UsageOverviewResponse struct {
	UserId                    uuid.UUID `json:"user_id"`
	Email                     string    `json:"email"`
	FullName                  string    `json:"full_name"`
	PlanName                  string    `json:"plan_name"`
	GenerationDailyUsage      int       `json:"generation_daily_usage"`
	GenerationDailyLimit      int       `json:"generation_daily_limit"`
	GenerationDailyRemaining  int       `json:"generation_daily_remaining"`
	GenerationUsageLastReset  time.Time `json:"generation_usage_last_reset"`
	ExportsMonthlyUsed        int       `json:"exports_monthly_used"`
	ExportsMonthlyLimit       int       `json:"exports_monthly_limit"`
}

type UserListResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending banned"`
	Reason string `json:"reason,omitempty"`
}

type AdminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

type AdminBulkCreateUserRequest struct {
	Users []AdminCreateUserRequest `json:"users" validate:"required,min=1"`
}

type AdminBulkCreateUserResponse struct {
	CreatedCount int                    `json:"created_count"`
	FailedCount  int                    `json:"failed_count"`
	Results      []BulkCreateUserResult `json:"results"`
}

type BulkCreateUserResult struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Id      string `json:"id,omitempty"` // User ID if success
}

type AdminUpdateUserRequest struct {
	FullName                     string `json:"full_name"`
	Email                        string `json:"email" validate:"omitempty,email"`
	Role                         string `json:"role" validate:"omitempty,oneof=user admin"`
	Status                       string `json:"status" validate:"omitempty,oneof=active pending banned"`
	Avatar                       string `json:"avatar"`
	GenerationDailyLimitOverride *int   `json:"generation_daily_limit_override"`
}

type AdminPurgeUsersRequest struct {
	UserIds []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}

type AdminPurgeUsersResponse struct {
	DeletedCount int                   `json:"deleted_count"`
	FailedUsers  []PurgeUserFailResult `json:"failed_users,omitempty"`
}

type PurgeUserFailResult struct {
	UserId uuid.UUID `json:"user_id"`
	Error  string    `json:"error"`
}

// --- Subscription Management ---

type AdminSubscriptionUpgradeRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	NewPlanId uuid.UUID `json:"new_plan_id" validate:"required"`
}

type AdminSubscriptionUpgradeResponse struct {
	OldSubscriptionId uuid.UUID `json:"old_subscription_id"`
	NewSubscriptionId uuid.UUID `json:"new_subscription_id"`
	CreditApplied     float64   `json:"credit_applied"`
	AmountDue         float64   `json:"amount_due"`
	Status            string    `json:"status"`
}

type AdminRefundRequest struct {
	SubscriptionId uuid.UUID `json:"subscription_id" validate:"required"`
	Reason         string    `json:"reason" validate:"required"`
	Amount         *float64  `json:"amount,omitempty"` // If nil, full refund
}

type AdminRefundResponse struct {
	RefundId       string  `json:"refund_id"` // Transaction ID
	RefundedAmount float64 `json:"refunded_amount"`
	Status         string  `json:"status"`
}

// --- Dashboard ---

type AdminDashboardStats struct {
	TotalRevenue       float64                   `json:"total_revenue"`
	ActiveSubscribers  int                       `json:"active_subscribers"`
	TotalUsers         int                       `json:"total_users"`
	ActiveUsers        int                       `json:"active_users"`
	TotalDatasets      int                       `json:"total_datasets"`
	TotalDocuments     int                       `json:"total_documents"`
	TotalExports       int                       `json:"total_exports"`
	RecentTransactions []TransactionListResponse `json:"recent_transactions"`
}

// --- Plan Management ---

type AdminCreatePlanRequest struct {
	Name          string        `json:"name" validate:"required"`
	Slug          string        `json:"slug" validate:"required"`
	Price         float64       `json:"price" validate:"gte=0"`
	TaxRate       float64       `json:"tax_rate"`
	BillingPeriod string        `json:"billing_period" validate:"required,oneof=monthly yearly"`
	Limits        PlanLimitsDTO `json:"limits"`
}

type AdminUpdatePlanRequest struct {
	Name          string         `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Tagline       *string        `json:"tagline,omitempty"`
	Price         *float64       `json:"price,omitempty"`
	TaxRate       *float64       `json:"tax_rate,omitempty"`
	IsMostPopular *bool          `json:"is_most_popular,omitempty"`
	IsActive      *bool          `json:"is_active,omitempty"`
	SortOrder     *int           `json:"sort_order,omitempty"`
	Limits        *PlanLimitsDTO `json:"limits,omitempty"`
}

type AdminPlanResponse struct {
	Id            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Tagline       string        `json:"tagline"`
	Price         float64       `json:"price"`
	TaxRate       float64       `json:"tax_rate"`
	BillingPeriod string        `json:"billing_period"`
	IsMostPopular bool          `json:"is_most_popular"`
	IsActive      bool          `json:"is_active"`
	SortOrder     int           `json:"sort_order"`
	Limits        PlanLimitsDTO `json:"limits"`
}

// --- Plan Feature Management (for pricing modal display) ---

type CreatePlanFeatureRequest struct {
	FeatureKey string `json:"feature_key" validate:"required"`
}

// UpdatePlanFeatureRequest removed as link has no properties

type PlanFeatureResponse struct {
	Id          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// --- Generation Usage Management ---

type UpdateGenerationUsageRequest struct {
	GenerationDailyUsage *int `json:"generation_daily_usage" validate:"omitempty,gte=0"`
}

type UpdateGenerationUsageResponse struct {
	UserId        uuid.UUID `json:"user_id"`
	PreviousUsage int       `json:"previous_usage"`
	NewUsage      int       `json:"new_usage"`
	UserEmail     string    `json:"user_email"`
}

type BulkUpdateGenerationUsageRequest struct {
	UserIds              []uuid.UUID `json:"user_ids" validate:"required,min=1"`
	GenerationDailyUsage *int        `json:"generation_daily_usage" validate:"omitempty,gte=0"`
}

type BulkResetGenerationUsageRequest struct {
	UserIds []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}

type BulkGenerationUsageResponse struct {
	TotalRequested int         `json:"total_requested"`
	TotalUpdated   int         `json:"total_updated"`
	FailedUserIds  []uuid.UUID `json:"failed_user_ids,omitempty"`
}
