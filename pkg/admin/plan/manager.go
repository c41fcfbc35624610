package plan

import (
	"context"
	"fmt"
	"strings"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager carries the plan catalog CRUD and the links from plans to the
// feature catalog.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminCreatePlanRequest) (*entity.SubscriptionPlan, error) {
	newPlan := &entity.SubscriptionPlan{
		Name:                 req.Name,
		Slug:                 req.Slug,
		Price:                req.Price,
		TaxRate:              req.TaxRate,
		BillingPeriod:        entity.BillingPeriod(req.BillingPeriod),
		MaxDatasets:          req.Limits.MaxDatasets,
		MaxDocuments:         req.Limits.MaxDocuments,
		GenerationDailyLimit: req.Limits.GenerationDaily,
		ExportMonthlyLimit:   req.Limits.ExportMonthly,
		IsActive:             true,
	}

	if err := uow.SubscriptionRepository().CreatePlan(ctx, newPlan); err != nil {
		return nil, err
	}

	return newPlan, nil
}

// Update patches only the fields present in the request.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.AdminUpdatePlanRequest) (*entity.SubscriptionPlan, error) {
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan not found")
	}

	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Tagline != nil {
		plan.Tagline = *req.Tagline
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.TaxRate != nil {
		plan.TaxRate = *req.TaxRate
	}

	if req.IsMostPopular != nil {
		plan.IsMostPopular = *req.IsMostPopular
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		plan.SortOrder = *req.SortOrder
	}

	if req.Limits != nil {
		plan.MaxDatasets = req.Limits.MaxDatasets
		plan.MaxDocuments = req.Limits.MaxDocuments
		plan.GenerationDailyLimit = req.Limits.GenerationDaily
		plan.ExportMonthlyLimit = req.Limits.ExportMonthly
	}

	if err := uow.SubscriptionRepository().UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// Delete removes a plan; plans with live subscriptions are refused.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	err := uow.SubscriptionRepository().DeletePlan(ctx, id)
	if err != nil {
		// Postgres FK violation, 23503
		if strings.Contains(err.Error(), "23503") || strings.Contains(err.Error(), "violates foreign key constraint") {
			return fmt.Errorf("cannot delete plan because it has active subscriptions. Please archive the plan instead")
		}
		return err
	}
	return nil
}

func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.SubscriptionPlan, error) {
	return uow.SubscriptionRepository().FindAllPlans(ctx)
}

func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	return uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: id})
}

func (m *Manager) GetFeatures(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) ([]entity.Feature, error) {
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan not found")
	}

	return plan.Features, nil
}

// AddFeature links a catalog feature to a plan by its key.
func (m *Manager) AddFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, featureKey string) (*entity.Feature, error) {
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan not found")
	}

	feature, err := uow.FeatureRepository().FindByKey(ctx, featureKey)
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("feature with key '%s' not found in catalog", featureKey)
	}

	if err := uow.SubscriptionRepository().AddFeatureToPlan(ctx, planId, feature.Id); err != nil {
		return nil, err
	}

	return feature, nil
}

func (m *Manager) RemoveFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, featureId uuid.UUID) error {
	return uow.SubscriptionRepository().RemoveFeatureFromPlan(ctx, planId, featureId)
}
