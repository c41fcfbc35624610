package events

import (
	"context"
	"time"

	"ai-reportgen-be/internal/pkg/logger"
	pkgEvents "ai-reportgen-be/pkg/events"
	pktNats "ai-reportgen-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher is the event fan-out for admin decisions. Each method wraps
// one event type so call sites stay one-liners.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, fullName, source string)
	PublishRefundApproved(ctx context.Context, refundId, subscriptionId, userId uuid.UUID, amount float64, reason string)
	PublishRefundRejected(ctx context.Context, refundId, subscriptionId, userId uuid.UUID, reason string)
	PublishGenerationUsageAdjusted(ctx context.Context, userId uuid.UUID, email string, oldUsage, newUsage int, description string)
	PublishCancellationProcessed(ctx context.Context, cancellationId, subscriptionId, userId uuid.UUID, planName, status string)
}

// NatsPublisher writes admin events to the JetStream bus.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishUserRegistered fires for admin-provisioned accounts; the source
// field distinguishes them from self-signups.
func (p *NatsPublisher) PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, fullName, source string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "USER_REGISTERED",
		Data: map[string]interface{}{
			"user_id":   userId,
			"email":     email,
			"full_name": fullName,
			"source":    source,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish USER_REGISTERED event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishRefundApproved(ctx context.Context, refundId, subscriptionId, userId uuid.UUID, amount float64, reason string) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "REFUND_APPROVED",
		Data: map[string]interface{}{
			"refund_id":       refundId,
			"subscription_id": subscriptionId,
			"user_id":         userId,
			"amount":          amount,
			"reason":          reason,
			"entity_type":     "refund",
			"entity_id":       refundId.String(),
			"occurred_at":     now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish REFUND_APPROVED event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishRefundRejected(ctx context.Context, refundId, subscriptionId, userId uuid.UUID, reason string) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "REFUND_REJECTED",
		Data: map[string]interface{}{
			"refund_id":       refundId,
			"subscription_id": subscriptionId,
			"user_id":         userId,
			"reason":          reason,
			"entity_type":     "refund",
			"entity_id":       refundId.String(),
			"occurred_at":     now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish REFUND_REJECTED event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishGenerationUsageAdjusted(ctx context.Context, userId uuid.UUID, email string, oldUsage, newUsage int, description string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "GENERATION_USAGE_ADJUSTED",
		Data: map[string]interface{}{
			"user_id":           userId.String(),
			"user_email":        email,
			"previous_usage":    oldUsage,
			"new_usage":         newUsage,
			"limit_description": description,
			"entity_type":       "user",
			"entity_id":         userId.String(),
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish GENERATION_USAGE_ADJUSTED event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishCancellationProcessed(ctx context.Context, cancellationId, subscriptionId, userId uuid.UUID, planName, status string) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "SUBSCRIPTION_CANCELLATION_PROCESSED",
		Data: map[string]interface{}{
			"cancellation_id": cancellationId,
			"subscription_id": subscriptionId,
			"user_id":         userId,
			"plan_name":       planName,
			"status":          status,
			"entity_type":     "cancellation",
			"entity_id":       cancellationId.String(),
			"occurred_at":     now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish SUBSCRIPTION_CANCELLATION_PROCESSED event", map[string]interface{}{"error": err.Error()})
	}
}
