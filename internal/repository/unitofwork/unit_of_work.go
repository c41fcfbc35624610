package unitofwork

import (
	"context"

	"ai-reportgen-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DatasetRepository() contract.DatasetRepository
	DocumentRepository() contract.DocumentRepository
	ExportRepository() contract.ExportRepository

	SubscriptionRepository() contract.SubscriptionRepository
	FeatureRepository() contract.FeatureRepository
	BillingRepository() contract.BillingRepository
	RefundRepository() contract.RefundRepository
	CancellationRepository() contract.CancellationRepository
	GenerationConfigRepository() contract.IGenerationConfigRepository
}
