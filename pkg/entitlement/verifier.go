// Package entitlement is the single home for plan access decisions. Every
// caller that needs to know what a user may do goes through the Verifier;
// there is exactly one subscription resolution rule and one limit check per
// resource, shared by the generation gate, the export gate, and the usage
// status endpoint.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Verifier handles access control and usage limits
type Verifier struct{}

// NewVerifier creates a new entitlement verifier
func NewVerifier() *Verifier {
	return &Verifier{}
}

// FreePlan returns the limits applied when a user has no usable
// subscription. Kept in code rather than the DB so entitlement checks
// survive a missing seed.
func FreePlan() *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		Name:                 "Free Plan",
		Slug:                 "free",
		MaxDatasets:          3,
		MaxDocuments:         10,
		GenerationDailyLimit: 3,
		ExportMonthlyLimit:   2,
	}
}

// ResolveActivePlan returns the plan of the subscription currently granting
// access, or the free fallback when none qualifies. A subscription grants
// access while its period has not ended and it is active, canceled (access
// retained until period end), or simply paid.
func (v *Verifier) ResolveActivePlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var activeSub *entity.UserSubscription
	for _, sub := range subs {
		if !sub.CurrentPeriodEnd.After(time.Now()) {
			continue
		}
		// Priority: active, then canceled but inside the paid period,
		// then paid but not yet activated by the webhook.
		if sub.Status == entity.SubscriptionStatusActive ||
			sub.Status == entity.SubscriptionStatusCanceled ||
			sub.PaymentStatus == entity.PaymentStatusPaid {
			activeSub = sub
			break
		}
	}

	if activeSub != nil {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
		if err != nil {
			return nil, err
		}
		if plan != nil {
			return plan, nil
		}
	}

	return FreePlan(), nil
}

// VerifyGenerationAccess checks the user's daily generation allowance.
// Returns *dto.LimitExceededError when the allowance is used up.
func (v *Verifier) VerifyGenerationAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	// 1. Fetch User First (to check for override)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return fmt.Errorf("user not found")
	}

	// 2. Resolve plan and effective limit
	plan, err := v.ResolveActivePlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	limit := plan.GenerationDailyLimit
	// A per-user override replaces the plan limit outright, including
	// enabling generation on a plan that has it disabled.
	if user.GenerationDailyLimitOverride != nil {
		limit = *user.GenerationDailyLimitOverride
	}

	if limit == 0 {
		return fmt.Errorf("feature requires pro plan")
	}

	// 3. Lazy daily reset
	// Check if the last reset was on a different calendar day
	// We compare Year, Month, and Day. If any differ, it's a new day.
	now := time.Now()
	if now.Year() != user.GenerationDailyUsageLastReset.Year() || now.Month() != user.GenerationDailyUsageLastReset.Month() || now.Day() != user.GenerationDailyUsageLastReset.Day() {
		user.GenerationDailyUsage = 0
		user.GenerationDailyUsageLastReset = now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return err
		}
	}

	// 4. Check Limit (Limit < 0 means unlimited)
	if limit >= 0 && user.GenerationDailyUsage >= limit {
		resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		return &dto.LimitExceededError{
			LimitType:  dto.LimitTypeGeneration,
			Limit:      limit,
			Used:       user.GenerationDailyUsage,
			ResetAfter: resetTime,
		}
	}

	return nil
}

// IncrementGenerationUsage increments the daily generation counter
func (v *Verifier) IncrementGenerationUsage(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return fmt.Errorf("user not found")
	}

	user.GenerationDailyUsage++
	return uow.UserRepository().Update(ctx, user)
}

// VerifyExportAccess checks the user's monthly export allowance. Admins
// bypass the limit, and a plan limit of 0 means unlimited. Returns
// *dto.LimitExceededError when the allowance is used up.
func (v *Verifier) VerifyExportAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return fmt.Errorf("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return nil
	}

	plan, err := v.ResolveActivePlan(ctx, uow, userId)
	if err != nil {
		return err
	}
	if plan.ExportMonthlyLimit == 0 {
		return nil
	}

	used, limit, resetsAt, err := v.MonthlyExportUsage(ctx, uow, userId, plan)
	if err != nil {
		return err
	}
	if used >= limit {
		return &dto.LimitExceededError{
			LimitType:  dto.LimitTypeExports,
			Limit:      limit,
			Used:       used,
			ResetAfter: resetsAt,
		}
	}

	return nil
}

// CanExport reports whether the user may export right now. A limit hit is
// a plain false, not an error; errors mean the check itself failed.
func (v *Verifier) CanExport(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (bool, error) {
	err := v.VerifyExportAccess(ctx, uow, userId)
	if err == nil {
		return true, nil
	}
	var limitErr *dto.LimitExceededError
	if errors.As(err, &limitErr) {
		return false, nil
	}
	return false, err
}

// MonthlyExportUsage returns completed exports in the current calendar
// month against the plan's limit, plus when the window resets.
func (v *Verifier) MonthlyExportUsage(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, plan *entity.SubscriptionPlan) (int, int, time.Time, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	count, err := uow.ExportRepository().CountCompletedSince(ctx, userId, monthStart)
	if err != nil {
		return 0, 0, time.Time{}, err
	}

	return int(count), plan.ExportMonthlyLimit, monthStart.AddDate(0, 1, 0), nil
}

// EffectiveGenerationLimit applies the per-user override to the plan limit
func EffectiveGenerationLimit(plan *entity.SubscriptionPlan, user *entity.User) int {
	if user.GenerationDailyLimitOverride != nil {
		return *user.GenerationDailyLimitOverride
	}
	return plan.GenerationDailyLimit
}
