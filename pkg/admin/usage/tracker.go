package usage

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

// UpdateResult contains update operation results
type UpdateResult struct {
	User          *entity.User
	PreviousUsage int
}

// Tracker handles generation usage tracking operations
type Tracker struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

// NewTracker creates a new usage tracker
func NewTracker(logger logger.ILogger, publisher adminEvents.Publisher) *Tracker {
	return &Tracker{
		logger:    logger,
		publisher: publisher,
	}
}

// GetUsageOverview retrieves paginated users with their generation and
// export usage, heaviest generation users first.
func (t *Tracker) GetUsageOverview(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int) ([]*dto.UsageOverviewResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	users, err := uow.UserRepository().FindAll(ctx,
		specification.Pagination{Limit: limit, Offset: offset},
		specification.OrderBy{Field: "generation_daily_usage", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var res []*dto.UsageOverviewResponse
	for _, user := range users {
		generationLimit := 0
		exportLimit := 0
		planName := "No Plan"

		subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.Filter("status", "active"),
		)

		if err == nil && len(subs) > 0 {
			plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: subs[0].PlanId})
			if err == nil && plan != nil {
				planName = plan.Name
				generationLimit = plan.GenerationDailyLimit
				exportLimit = plan.ExportMonthlyLimit
			}
		}

		// Per-user override wins over the plan limit
		if user.GenerationDailyLimitOverride != nil {
			generationLimit = *user.GenerationDailyLimitOverride
		}

		remaining := 0
		if generationLimit == -1 {
			remaining = -1 // Unlimited
		} else if generationLimit > user.GenerationDailyUsage {
			remaining = generationLimit - user.GenerationDailyUsage
		}

		exportsUsed, err := uow.ExportRepository().CountCompletedSince(ctx, user.Id, monthStart)
		if err != nil {
			exportsUsed = 0
		}

		res = append(res, &dto.UsageOverviewResponse{
			UserId:                   user.Id,
			Email:                    user.Email,
			FullName:                 user.FullName,
			PlanName:                 planName,
			GenerationDailyUsage:     user.GenerationDailyUsage,
			GenerationDailyLimit:     generationLimit,
			GenerationDailyRemaining: remaining,
			GenerationUsageLastReset: user.GenerationDailyUsageLastReset,
			ExportsMonthlyUsed:       int(exportsUsed),
			ExportsMonthlyLimit:      exportLimit,
		})
	}

	return res, nil
}

// UpdateGenerationUsage sets a user's generation daily usage counter
func (t *Tracker) UpdateGenerationUsage(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req dto.UpdateGenerationUsageRequest) (*UpdateResult, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	previousUsage := user.GenerationDailyUsage

	if req.GenerationDailyUsage == nil {
		return &UpdateResult{User: user, PreviousUsage: previousUsage}, nil
	}

	user.GenerationDailyUsage = *req.GenerationDailyUsage
	user.GenerationDailyUsageLastReset = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	desc := "generation usage updated"
	if user.GenerationDailyUsage == 0 {
		desc = "generation usage reset"
	}
	t.publisher.PublishGenerationUsageAdjusted(ctx, userId, user.Email, previousUsage, user.GenerationDailyUsage, desc)

	t.logger.Info("ADMIN", "Updated generation usage", map[string]interface{}{
		"user_id":   userId,
		"new_usage": user.GenerationDailyUsage,
	})

	return &UpdateResult{User: user, PreviousUsage: previousUsage}, nil
}

// ResetGenerationUsage resets a user's generation daily usage to 0
func (t *Tracker) ResetGenerationUsage(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*UpdateResult, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	previousUsage := user.GenerationDailyUsage

	user.GenerationDailyUsage = 0
	user.GenerationDailyUsageLastReset = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	t.publisher.PublishGenerationUsageAdjusted(ctx, userId, user.Email, previousUsage, 0, "generation usage reset")

	t.logger.Info("ADMIN", "Reset generation usage", map[string]interface{}{
		"user_id": userId,
	})

	return &UpdateResult{User: user, PreviousUsage: previousUsage}, nil
}

// BulkUpdateGenerationUsage sets the usage counter for multiple users
func (t *Tracker) BulkUpdateGenerationUsage(ctx context.Context, uow unitofwork.UnitOfWork, req dto.BulkUpdateGenerationUsageRequest) *dto.BulkGenerationUsageResponse {
	response := &dto.BulkGenerationUsageResponse{
		TotalRequested: len(req.UserIds),
		TotalUpdated:   0,
		FailedUserIds:  []uuid.UUID{},
	}

	for _, userId := range req.UserIds {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err != nil || user == nil {
			response.FailedUserIds = append(response.FailedUserIds, userId)
			continue
		}

		if req.GenerationDailyUsage == nil {
			response.FailedUserIds = append(response.FailedUserIds, userId)
			continue
		}

		previousUsage := user.GenerationDailyUsage
		user.GenerationDailyUsage = *req.GenerationDailyUsage
		user.GenerationDailyUsageLastReset = time.Now()

		if err := uow.UserRepository().Update(ctx, user); err != nil {
			response.FailedUserIds = append(response.FailedUserIds, userId)
			continue
		}

		desc := "generation usage updated"
		if user.GenerationDailyUsage == 0 {
			desc = "generation usage reset"
		}
		t.publisher.PublishGenerationUsageAdjusted(ctx, userId, user.Email, previousUsage, user.GenerationDailyUsage, desc)

		response.TotalUpdated++
	}

	t.logger.Info("ADMIN", "Bulk updated generation usage", map[string]interface{}{
		"total_requested": len(req.UserIds),
		"total_updated":   response.TotalUpdated,
	})

	return response
}

// BulkResetGenerationUsage resets multiple users' generation usage to 0
func (t *Tracker) BulkResetGenerationUsage(ctx context.Context, uow unitofwork.UnitOfWork, req dto.BulkResetGenerationUsageRequest) *dto.BulkGenerationUsageResponse {
	response := &dto.BulkGenerationUsageResponse{
		TotalRequested: len(req.UserIds),
		TotalUpdated:   0,
		FailedUserIds:  []uuid.UUID{},
	}

	for _, userId := range req.UserIds {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err != nil || user == nil {
			response.FailedUserIds = append(response.FailedUserIds, userId)
			continue
		}

		previousUsage := user.GenerationDailyUsage

		user.GenerationDailyUsage = 0
		user.GenerationDailyUsageLastReset = time.Now()

		if err := uow.UserRepository().Update(ctx, user); err != nil {
			response.FailedUserIds = append(response.FailedUserIds, userId)
			continue
		}

		t.publisher.PublishGenerationUsageAdjusted(ctx, userId, user.Email, previousUsage, 0, "generation usage reset")

		response.TotalUpdated++
	}

	t.logger.Info("ADMIN", "Bulk reset generation usage", map[string]interface{}{
		"total_requested": len(req.UserIds),
		"total_updated":   response.TotalUpdated,
	})

	return response
}
