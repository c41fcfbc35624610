package refund

import (
	"context"
	"fmt"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/pkg/logger"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"
	adminEvents "ai-reportgen-be/pkg/admin/events"

	"github.com/google/uuid"
)

type ApproveResult struct {
	RefundId       uuid.UUID
	RefundedAmount float64
	ProcessedAt    time.Time
}

type RejectResult struct {
	RefundId    uuid.UUID
	ProcessedAt time.Time
}

// Processor drives the admin refund queue: listing requests and settling
// them as approved or rejected. Decisions publish bus events so the owner
// gets notified.
type Processor struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

func NewProcessor(logger logger.ILogger, publisher adminEvents.Publisher) *Processor {
	return &Processor{
		logger:    logger,
		publisher: publisher,
	}
}

// GetAll pages the refund queue newest first, optionally filtered by status.
func (p *Processor) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.Refund, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	return uow.RefundRepository().FindAllWithDetails(ctx, specs...)
}

// GetPlanInfo resolves the plan name and price behind a refund's
// subscription for display in the queue.
func (p *Processor) GetPlanInfo(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) (string, float64) {
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil || plan == nil {
		return "", 0
	}
	return plan.Name, plan.Price
}

// pendingRefund loads a refund and rejects decisions on anything that has
// already been settled.
func pendingRefund(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID) (*entity.Refund, error) {
	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, fmt.Errorf("refund request not found")
	}
	if refund.Status != string(entity.RefundStatusPending) {
		return nil, fmt.Errorf("refund already processed")
	}
	return refund, nil
}

// Approve settles a pending request in the user's favor: the refund is
// marked approved and the subscription ends refunded as of now.
func (p *Processor) Approve(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID, req dto.AdminApproveRefundRequest) (*ApproveResult, error) {
	refund, err := pendingRefund(ctx, uow, refundId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	refund.Status = string(entity.RefundStatusApproved)
	refund.AdminNotes = req.AdminNotes
	refund.ProcessedAt = &now

	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		return nil, err
	}

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: refund.SubscriptionID})
	if err != nil {
		return nil, err
	}
	if sub != nil {
		sub.Status = "canceled"
		sub.PaymentStatus = "refunded"
		sub.CurrentPeriodEnd = now
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return nil, err
		}
	}

	p.logger.Info("ADMIN", "Approved Refund Request", map[string]interface{}{
		"refundId":       refundId.String(),
		"subscriptionId": refund.SubscriptionID.String(),
		"amount":         refund.Amount,
		"adminNotes":     req.AdminNotes,
	})

	p.publisher.PublishRefundApproved(ctx, refundId, refund.SubscriptionID, refund.UserID, refund.Amount, refund.Reason)

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &ApproveResult{
		RefundId:       refundId,
		RefundedAmount: refund.Amount,
		ProcessedAt:    now,
	}, nil
}

// Reject settles a pending request against the user. The subscription is
// left untouched.
func (p *Processor) Reject(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID, req dto.AdminRejectRefundRequest) (*RejectResult, error) {
	refund, err := pendingRefund(ctx, uow, refundId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	refund.Status = string(entity.RefundStatusRejected)
	refund.AdminNotes = req.AdminNotes
	refund.ProcessedAt = &now

	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		return nil, err
	}

	p.logger.Info("ADMIN", "Rejected Refund Request", map[string]interface{}{
		"refundId":       refundId.String(),
		"subscriptionId": refund.SubscriptionID.String(),
		"adminNotes":     req.AdminNotes,
	})

	p.publisher.PublishRefundRejected(ctx, refundId, refund.SubscriptionID, refund.UserID, req.AdminNotes)

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &RejectResult{
		RefundId:    refundId,
		ProcessedAt: now,
	}, nil
}
