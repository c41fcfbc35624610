// FILE: internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"

	"ai-reportgen-be/pkg/events"
	pktNats "ai-reportgen-be/pkg/nats"

	"github.com/google/uuid"
)

const maxAvatarBytes = 2 * 1024 * 1024

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
	UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error)
	RequestRefund(ctx context.Context, userId uuid.UUID, req dto.UserRefundRequest) (*dto.UserRefundResponse, error)
	GetRefunds(ctx context.Context, userId uuid.UUID) ([]*dto.UserRefundListResponse, error)
	GetRefundDetail(ctx context.Context, userId uuid.UUID, refundId uuid.UUID) (*dto.UserRefundListResponse, error)

	// Billing
	GetBillingInfo(ctx context.Context, userId uuid.UUID) (*dto.UserBillingResponse, error)
	UpdateBillingInfo(ctx context.Context, userId uuid.UUID, req dto.UserBillingUpdateRequest) error

	// Cancellation
	RequestCancellation(ctx context.Context, userId uuid.UUID, req dto.UserCancellationRequest) (*dto.UserCancellationResponse, error)
	GetCancellations(ctx context.Context, userId uuid.UUID) ([]*dto.UserCancellationListResponse, error)
	GetCancellationDetail(ctx context.Context, userId uuid.UUID, cancellationId uuid.UUID) (*dto.UserCancellationListResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// publish emits a bus event best-effort. A down broker never fails the
// user-facing operation.
func (s *userService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[UserService] publish %s failed: %v", eventType, err)
	}
}

// ownedSubscription loads a subscription only if it belongs to the caller.
func ownedSubscription(ctx context.Context, uow unitofwork.UnitOfWork, userId, subscriptionId uuid.UUID) (*entity.UserSubscription, error) {
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.ByID{ID: subscriptionId},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription not found")
	}
	return sub, nil
}

// planName resolves a plan's display name, empty when the plan is gone.
func planName(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) string {
	if planId == uuid.Nil {
		return ""
	}
	plan, _ := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if plan == nil {
		return ""
	}
	return plan.Name
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().GetByIdWithAvatar(ctx, userId)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	return &dto.UserProfileResponse{
		Id:                   user.Id,
		Email:                user.Email,
		FullName:             user.FullName,
		Role:                 string(user.Role),
		Status:               string(user.Status),
		AvatarURL:            avatarURL,
		GenerationDailyUsage: user.GenerationDailyUsage,
		CreatedAt:            user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	user.FullName = req.FullName
	return repo.Update(ctx, user)
}

// DeleteAccount soft-deletes the account. The USER_DELETED event fans out
// to consumers that clean up dependent data.
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	s.publish(ctx, "USER_DELETED", map[string]interface{}{
		"user_id":     userId,
		"occurred_at": time.Now(),
	})

	return uow.UserRepository().Delete(ctx, userId)
}

// UploadAvatar stores the image on local disk and records its public URL
// on the profile.
func (s *userService) UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error) {
	if file.Size > maxAvatarBytes {
		return "", fmt.Errorf("file too large (max 2MB)")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	uploadDir := "./uploads/avatars"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	// Timestamped name so a re-upload never serves a stale cached image
	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", userId.String(), time.Now().Unix(), ext)
	dstPath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	publicURL := fmt.Sprintf("%s/uploads/avatars/%s", baseURL, filename)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateAvatar(ctx, userId, publicURL); err != nil {
		return "", err
	}

	return publicURL, nil
}

// RequestRefund opens a refund request on an active, paid subscription.
// A rejected earlier request does not block a new one.
func (s *userService) RequestRefund(ctx context.Context, userId uuid.UUID, req dto.UserRefundRequest) (*dto.UserRefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := ownedSubscription(ctx, uow, userId, req.SubscriptionId)
	if err != nil {
		return nil, err
	}

	if sub.Status != entity.SubscriptionStatusActive {
		return nil, fmt.Errorf("subscription is not active")
	}
	if sub.PaymentStatus != entity.PaymentStatusPaid {
		return nil, fmt.Errorf("subscription is not eligible for refund")
	}

	existingRefunds, err := uow.RefundRepository().FindAllWithDetails(ctx,
		specification.Filter("subscription_id", req.SubscriptionId),
	)
	if err != nil {
		return nil, err
	}

	for _, r := range existingRefunds {
		if r.Status == string(entity.RefundStatusPending) || r.Status == string(entity.RefundStatusApproved) {
			return nil, fmt.Errorf("refund already requested for this subscription")
		}
	}

	// Refund the full plan price; proration happens on the admin side if
	// needed
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}
	refundAmount := 0.0
	if plan != nil {
		refundAmount = plan.Price
	}

	refundId := uuid.New()
	refund := &entity.Refund{
		ID:             refundId,
		SubscriptionID: req.SubscriptionId,
		UserID:         userId,
		Amount:         refundAmount,
		Reason:         req.Reason,
		Status:         string(entity.RefundStatusPending),
		CreatedAt:      time.Now(),
	}

	if err := uow.RefundRepository().Create(ctx, refund); err != nil {
		return nil, err
	}

	s.publish(ctx, "REFUND_REQUESTED", map[string]interface{}{
		"refund_id":       refundId,
		"subscription_id": req.SubscriptionId,
		"user_id":         userId,
		"reason":          req.Reason,
		"amount":          refundAmount,
		"entity_type":     "refund",
		"entity_id":       refundId.String(),
		"occurred_at":     time.Now(),
	})

	return &dto.UserRefundResponse{
		RefundId: refundId.String(),
		Status:   string(entity.RefundStatusPending),
		Message:  "Your refund request has been submitted and is awaiting admin review.",
	}, nil
}

func refundListItem(ctx context.Context, uow unitofwork.UnitOfWork, r *entity.Refund) *dto.UserRefundListResponse {
	return &dto.UserRefundListResponse{
		Id:             r.ID,
		SubscriptionId: r.SubscriptionID,
		PlanName:       planName(ctx, uow, r.Subscription.PlanId),
		Amount:         r.Amount,
		Reason:         r.Reason,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
}

// GetRefunds lists the caller's refund requests newest first.
func (s *userService) GetRefunds(ctx context.Context, userId uuid.UUID) ([]*dto.UserRefundListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refunds, err := uow.RefundRepository().FindAllWithDetails(ctx,
		specification.Filter("user_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.UserRefundListResponse
	for _, r := range refunds {
		res = append(res, refundListItem(ctx, uow, r))
	}

	return res, nil
}

func (s *userService) GetRefundDetail(ctx context.Context, userId uuid.UUID, refundId uuid.UUID) (*dto.UserRefundListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refunds, err := uow.RefundRepository().FindAllWithDetails(ctx,
		specification.ByID{ID: refundId},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if len(refunds) == 0 {
		return nil, fmt.Errorf("refund not found")
	}

	return refundListItem(ctx, uow, refunds[0]), nil
}

// --- Billing ---

// GetBillingInfo returns the caller's default billing address, nil when
// none has been saved yet.
func (s *userService) GetBillingInfo(ctx context.Context, userId uuid.UUID) (*dto.UserBillingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	billing, err := uow.BillingRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("is_default", true),
	)
	if err != nil {
		return nil, err
	}

	if billing == nil {
		return nil, nil
	}

	return &dto.UserBillingResponse{
		Id:           billing.Id,
		FirstName:    billing.FirstName,
		LastName:     billing.LastName,
		Email:        billing.Email,
		Phone:        billing.Phone,
		AddressLine1: billing.AddressLine1,
		AddressLine2: billing.AddressLine2,
		City:         billing.City,
		State:        billing.State,
		PostalCode:   billing.PostalCode,
		Country:      billing.Country,
	}, nil
}

// UpdateBillingInfo upserts the default billing address.
func (s *userService) UpdateBillingInfo(ctx context.Context, userId uuid.UUID, req dto.UserBillingUpdateRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	billing, err := uow.BillingRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("is_default", true),
	)
	if err != nil {
		return err
	}

	if billing == nil {
		billing = &entity.BillingAddress{
			Id:        uuid.New(),
			UserId:    userId,
			IsDefault: true,
			CreatedAt: time.Now(),
		}
	}

	billing.FirstName = req.FirstName
	billing.LastName = req.LastName
	billing.Email = req.Email
	billing.Phone = req.Phone
	billing.AddressLine1 = req.AddressLine1
	billing.AddressLine2 = req.AddressLine2
	billing.City = req.City
	billing.State = req.State
	billing.PostalCode = req.PostalCode
	billing.Country = req.Country
	billing.UpdatedAt = time.Now()

	if billing.CreatedAt.IsZero() {
		billing.CreatedAt = time.Now()
		return uow.BillingRepository().Create(ctx, billing)
	}
	return uow.BillingRepository().Update(ctx, billing)
}

// --- Cancellation ---

// RequestCancellation opens a cancellation request on an active
// subscription. Access runs until the current period ends.
func (s *userService) RequestCancellation(ctx context.Context, userId uuid.UUID, req dto.UserCancellationRequest) (*dto.UserCancellationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := ownedSubscription(ctx, uow, userId, req.SubscriptionId)
	if err != nil {
		return nil, err
	}

	if sub.Status != entity.SubscriptionStatusActive {
		return nil, fmt.Errorf("subscription is not active")
	}

	existingCancellations, err := uow.CancellationRepository().FindAll(ctx,
		specification.Filter("subscription_id", req.SubscriptionId),
	)
	if err != nil {
		return nil, err
	}

	for _, c := range existingCancellations {
		if c.Status == string(entity.CancellationStatusPending) || c.Status == string(entity.CancellationStatusApproved) {
			return nil, fmt.Errorf("cancellation already requested for this subscription")
		}
	}

	cancellationId := uuid.New()
	cancellation := &entity.Cancellation{
		ID:             cancellationId,
		SubscriptionID: req.SubscriptionId,
		UserID:         userId,
		Reason:         req.Reason,
		Status:         string(entity.CancellationStatusPending),
		EffectiveDate:  sub.CurrentPeriodEnd,
		CreatedAt:      time.Now(),
	}

	if err := uow.CancellationRepository().Create(ctx, cancellation); err != nil {
		return nil, err
	}

	s.publish(ctx, "SUBSCRIPTION_CANCELLATION_REQUESTED", map[string]interface{}{
		"cancellation_id": cancellationId,
		"subscription_id": req.SubscriptionId,
		"user_id":         userId,
		"reason":          req.Reason,
		"entity_type":     "cancellation",
		"entity_id":       cancellationId.String(),
		"occurred_at":     time.Now(),
	})

	return &dto.UserCancellationResponse{
		CancellationId: cancellationId.String(),
		Status:         string(entity.CancellationStatusPending),
		Message:        "Your cancellation request has been submitted and is awaiting admin review.",
	}, nil
}

func cancellationListItem(ctx context.Context, uow unitofwork.UnitOfWork, c *entity.Cancellation) *dto.UserCancellationListResponse {
	return &dto.UserCancellationListResponse{
		Id:             c.ID,
		SubscriptionId: c.SubscriptionID,
		PlanName:       planName(ctx, uow, c.Subscription.PlanId),
		Reason:         c.Reason,
		Status:         c.Status,
		EffectiveDate:  c.EffectiveDate,
		CreatedAt:      c.CreatedAt,
	}
}

// GetCancellations lists the caller's cancellation requests newest first.
func (s *userService) GetCancellations(ctx context.Context, userId uuid.UUID) ([]*dto.UserCancellationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cancellations, err := uow.CancellationRepository().FindAllWithDetails(ctx,
		specification.Filter("user_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.UserCancellationListResponse
	for _, c := range cancellations {
		res = append(res, cancellationListItem(ctx, uow, c))
	}

	return res, nil
}

func (s *userService) GetCancellationDetail(ctx context.Context, userId uuid.UUID, cancellationId uuid.UUID) (*dto.UserCancellationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cancellations, err := uow.CancellationRepository().FindAllWithDetails(ctx,
		specification.ByID{ID: cancellationId},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if len(cancellations) == 0 {
		return nil, fmt.Errorf("cancellation not found")
	}

	return cancellationListItem(ctx, uow, cancellations[0]), nil
}
