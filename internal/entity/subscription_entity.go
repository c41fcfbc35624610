// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type BillingPeriod string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success" // Must match DB enum 'success'
	PaymentStatusFailed  PaymentStatus = "failed"

	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

type SubscriptionPlan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Tagline       string // Subtitle for the pricing modal
	Price         float64
	TaxRate       float64
	BillingPeriod BillingPeriod
	// Storage limits (cumulative)
	MaxDatasets  int // Max uploaded datasets kept, -1 = unlimited
	MaxDocuments int // Max generated documents kept, -1 = unlimited
	// Usage limits
	GenerationDailyLimit int // Max report generations per day, 0 = disabled, -1 = unlimited
	ExportMonthlyLimit   int // Max exports per calendar month, 0 = unlimited
	// Display settings
	IsMostPopular bool
	IsActive      bool
	SortOrder     int

	// Relations
	Features []Feature
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	BillingAddressId      *uuid.UUID
	Status                SubscriptionStatus
	CurrentPeriodStart    time.Time
	CurrentPeriodEnd      time.Time
	PaymentStatus         PaymentStatus
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SubscriptionTransaction is a view of a subscription transaction's details
type SubscriptionTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	UserEmail       string
	PlanName        string
	Amount          float64
	Status          SubscriptionStatus
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	MidtransOrderId *string
}
