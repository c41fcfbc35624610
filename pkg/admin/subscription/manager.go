package subscription

import (
	"context"
	"fmt"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/pkg/logger"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// UpgradeResult reports what an admin upgrade did: the replaced and the new
// subscription, the prorated credit and what remains to charge.
type UpgradeResult struct {
	OldSubscriptionId uuid.UUID
	NewSubscriptionId uuid.UUID
	CreditApplied     float64
	AmountDue         float64
}

type RefundResult struct {
	RefundId       uuid.UUID
	RefundedAmount float64
}

// Manager implements the admin-side subscription operations: plan upgrades
// with proration and direct refunds.
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// prorateCredit values the unused remainder of the current billing period at
// the old plan's price. Returns 0 for expired or zero-length periods.
func prorateCredit(oldPrice float64, periodStart, periodEnd, now time.Time) float64 {
	total := periodEnd.Sub(periodStart)
	remaining := periodEnd.Sub(now)
	if remaining <= 0 || total.Hours() <= 0 {
		return 0
	}
	return oldPrice * (remaining.Hours() / total.Hours())
}

// Upgrade moves a user to a new plan. Any active subscription is canceled
// and its unused time credited against the new plan's price.
func (m *Manager) Upgrade(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminSubscriptionUpgradeRequest) (*UpgradeResult, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	newPlan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.NewPlanId})
	if err != nil {
		return nil, err
	}
	if newPlan == nil {
		return nil, fmt.Errorf("target plan not found")
	}

	specs := []specification.Specification{
		specification.Filter("user_id", req.UserId),
		specification.Filter("status", "active"),
	}
	currentSub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specs...)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var credit float64 = 0
	amountDue := newPlan.Price

	if currentSub != nil {
		oldPlan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: currentSub.PlanId})
		if err == nil && oldPlan != nil {
			credit = prorateCredit(oldPlan.Price, currentSub.CurrentPeriodStart, currentSub.CurrentPeriodEnd, time.Now())
		}

		currentSub.Status = "canceled"
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, currentSub); err != nil {
			return nil, err
		}
	}

	// Credit never exceeds the new plan's price; no negative invoices
	if credit > amountDue {
		credit = amountDue
	}
	amountDue -= credit

	// The billing address carries over from the replaced subscription
	var billingAddrId *uuid.UUID
	if currentSub != nil && currentSub.BillingAddressId != nil {
		billingAddrId = currentSub.BillingAddressId
	}

	newSub := &entity.UserSubscription{
		UserId:             req.UserId,
		PlanId:             newPlan.Id,
		BillingAddressId:   billingAddrId,
		Status:             "active",
		PaymentStatus:      "paid",
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().AddDate(0, 1, 0),
	}
	if newPlan.BillingPeriod == "yearly" {
		newSub.CurrentPeriodEnd = time.Now().AddDate(1, 0, 0)
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, newSub); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Upgraded User Subscription", map[string]interface{}{
		"userId":  req.UserId.String(),
		"newPlan": newPlan.Name,
		"credit":  credit,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	oldSubId := uuid.Nil
	if currentSub != nil {
		oldSubId = currentSub.Id
	}

	return &UpgradeResult{
		OldSubscriptionId: oldSubId,
		NewSubscriptionId: newSub.Id,
		CreditApplied:     credit,
		AmountDue:         amountDue,
	}, nil
}

// Refund cancels a subscription immediately and writes a processed refund
// record for the audit trail. Without an explicit amount the full plan price
// is refunded.
func (m *Manager) Refund(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminRefundRequest) (*RefundResult, error) {
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: req.SubscriptionId})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sub.Status = "canceled"
	sub.PaymentStatus = "refunded"
	sub.CurrentPeriodEnd = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	refundAmt := 0.0
	if req.Amount != nil {
		refundAmt = *req.Amount
	} else {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
		if err == nil && plan != nil {
			refundAmt = plan.Price
		}
	}

	refundId := uuid.New()
	refund := &entity.Refund{
		ID:             refundId,
		SubscriptionID: sub.Id,
		UserID:         sub.UserId,
		Amount:         refundAmt,
		Reason:         req.Reason,
		Status:         "processed",
		CreatedAt:      time.Now(),
	}

	if err := uow.RefundRepository().Create(ctx, refund); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Refunded Subscription", map[string]interface{}{
		"subscriptionId": sub.Id.String(),
		"refundId":       refundId.String(),
		"amount":         refundAmt,
		"reason":         req.Reason,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &RefundResult{
		RefundId:       refundId,
		RefundedAmount: refundAmt,
	}, nil
}
