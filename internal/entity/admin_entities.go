// FILE: internal/entity/admin_entities.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemLog is one persisted log record shown in the admin log viewer.
type SystemLog struct {
	Id        uuid.UUID
	Level     string
	Module    string
	Message   string
	Details   map[string]interface{}
	CreatedAt time.Time
}

// TransactionDetail is a read-only join of a transaction with its owner
// and plan, for the admin payment history.
type TransactionDetail struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	UserEmail       string
	PlanName        string
	Amount          float64
	Status          string
	PaymentStatus   string
	MidtransOrderId *string
	CreatedAt       time.Time
}