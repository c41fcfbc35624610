package contract

import (
	"context"
	"time"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ExportRepository interface {
	Create(ctx context.Context, record *entity.ExportRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExportRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExportRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error // Hard delete all
	// CountCompletedSince counts completed exports at or after the cutoff,
	// which is what the monthly entitlement checks.
	CountCompletedSince(ctx context.Context, userId uuid.UUID, since time.Time) (int64, error)
}
