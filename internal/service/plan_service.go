// FILE: internal/service/plan_service.go
// Service for plan management and usage limit checking
package service

import (
	"context"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/pkg/entitlement"

	"github.com/google/uuid"
)

type PlanService interface {
	// Public
	GetAllActivePlansWithFeatures(ctx context.Context) ([]*dto.PlanWithFeaturesResponse, error)

	// User
	GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
	CheckCanCreateDataset(ctx context.Context, userId uuid.UUID) error
	CheckCanCreateDocument(ctx context.Context, userId uuid.UUID) error
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	verifier   *entitlement.Verifier
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) PlanService {
	return &planService{
		uowFactory: uowFactory,
		verifier:   entitlement.NewVerifier(),
	}
}

// GetAllActivePlansWithFeatures returns all active plans with their features for pricing modal
func (s *planService) GetAllActivePlansWithFeatures(ctx context.Context) ([]*dto.PlanWithFeaturesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Get all plans (we'll filter active ones in code for now)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx)
	if err != nil {
		return nil, err
	}

	var result []*dto.PlanWithFeaturesResponse
	for _, plan := range plans {
		if !plan.IsActive {
			continue
		}

		// Features are already preloaded by repository
		featureDTOs := make([]dto.FeatureDTO, 0, len(plan.Features))
		for _, f := range plan.Features {
			featureDTOs = append(featureDTOs, dto.FeatureDTO{
				Key:       f.Key,
				Text:      f.Name, // Using Name as DisplayText
				IsEnabled: true,   // Existence implies enabled
			})
		}

		result = append(result, &dto.PlanWithFeaturesResponse{
			Id:            plan.Id,
			Name:          plan.Name,
			Slug:          plan.Slug,
			Tagline:       plan.Tagline,
			Price:         plan.Price,
			BillingPeriod: string(plan.BillingPeriod),
			IsMostPopular: plan.IsMostPopular,
			Limits: dto.PlanLimitsDTO{
				MaxDatasets:     plan.MaxDatasets,
				MaxDocuments:    plan.MaxDocuments,
				GenerationDaily: plan.GenerationDailyLimit,
				ExportMonthly:   plan.ExportMonthlyLimit,
			},
			Features: featureDTOs,
		})
	}

	return result, nil
}

// GetUserUsageStatus returns current usage vs limits for a user
func (s *planService) GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Get user
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}

	// Get user's active plan
	plan, err := s.verifier.ResolveActivePlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	// Count current usage
	datasetCount, err := uow.DatasetRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	documentCount, err := uow.DocumentRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	// Check and reset daily usage if needed
	if err := s.checkAndResetDailyUsage(ctx, uow, user); err != nil {
		return nil, err
	}

	exportsUsed, exportLimit, exportResetsAt, err := s.verifier.MonthlyExportUsage(ctx, uow, userId, plan)
	if err != nil {
		return nil, err
	}

	// Calculate reset time (next midnight)
	now := time.Now()
	resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	generationLimit := entitlement.EffectiveGenerationLimit(plan, user)

	response := &dto.UsageStatusResponse{
		Plan: dto.PlanInfo{
			Id:   plan.Id,
			Name: plan.Name,
			Slug: plan.Slug,
		},
		Storage: dto.StorageLimits{
			Datasets: dto.UsageLimit{
				Used:   int(datasetCount),
				Limit:  plan.MaxDatasets,
				CanUse: plan.MaxDatasets < 0 || int(datasetCount) < plan.MaxDatasets,
			},
			Documents: dto.UsageLimit{
				Used:   int(documentCount),
				Limit:  plan.MaxDocuments,
				CanUse: plan.MaxDocuments < 0 || int(documentCount) < plan.MaxDocuments,
			},
		},
		Daily: dto.DailyLimits{
			Generation: dto.UsageLimit{
				Used:     user.GenerationDailyUsage,
				Limit:    generationLimit,
				CanUse:   s.canUseLimit(user.GenerationDailyUsage, generationLimit),
				ResetsAt: &resetTime,
			},
		},
		Monthly: dto.MonthlyLimits{
			Exports: dto.UsageLimit{
				Used:  exportsUsed,
				Limit: exportLimit,
				// Export limit 0 means unlimited, unlike the daily limits
				CanUse:   exportLimit == 0 || exportsUsed < exportLimit,
				ResetsAt: &exportResetsAt,
			},
		},
		UpgradeAvailable: plan.Slug == "free",
	}

	return response, nil
}

// checkAndResetDailyUsage checks if the daily usage needs to be reset based on calendar day
func (s *planService) checkAndResetDailyUsage(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) error {
	now := time.Now()
	lastReset := user.GenerationDailyUsageLastReset

	// Check if the last reset was on a different calendar day
	// We compare Year, Month, and Day. If any differ, it's a new day.
	if now.Year() != lastReset.Year() || now.Month() != lastReset.Month() || now.Day() != lastReset.Day() {
		user.GenerationDailyUsage = 0
		user.GenerationDailyUsageLastReset = now

		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// CheckCanCreateDataset checks if user can upload another dataset
func (s *planService) CheckCanCreateDataset(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.verifier.ResolveActivePlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	// -1 means unlimited
	if plan.MaxDatasets < 0 {
		return nil
	}

	count, err := uow.DatasetRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	if int(count) >= plan.MaxDatasets {
		return &dto.LimitExceededError{
			LimitType: dto.LimitTypeDatasets,
			Limit:     plan.MaxDatasets,
			Used:      int(count),
		}
	}

	return nil
}

// CheckCanCreateDocument checks if user can keep another document
func (s *planService) CheckCanCreateDocument(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.verifier.ResolveActivePlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	// -1 means unlimited
	if plan.MaxDocuments < 0 {
		return nil
	}

	count, err := uow.DocumentRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	if int(count) >= plan.MaxDocuments {
		return &dto.LimitExceededError{
			LimitType: dto.LimitTypeDocuments,
			Limit:     plan.MaxDocuments,
			Used:      int(count),
		}
	}

	return nil
}

// Helper to check if usage is within limit
func (s *planService) canUseLimit(used int, limit int) bool {
	if limit < 0 {
		return true // Unlimited
	}
	return used < limit
}
