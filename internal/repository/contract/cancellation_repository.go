// FILE: internal/repository/contract/cancellation_repository.go
package contract

import (
	"context"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

// CancellationRepository persists cancellation requests and the admin
// decisions on them.
type CancellationRepository interface {
	Create(ctx context.Context, cancellation *entity.Cancellation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error)
	Update(ctx context.Context, cancellation *entity.Cancellation) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error // hard delete, account removal
}
