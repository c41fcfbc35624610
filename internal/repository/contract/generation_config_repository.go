package contract

import (
	"context"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

// IGenerationConfigRepository defines generation configuration repository operations
type IGenerationConfigRepository interface {
	// Setting methods
	FindAllSettings(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationSetting, error)
	FindSettingByKey(ctx context.Context, key string) (*entity.GenerationSetting, error)
	UpdateSetting(ctx context.Context, setting *entity.GenerationSetting) error
	CreateSetting(ctx context.Context, setting *entity.GenerationSetting) error

	// Report style methods
	FindAllStyles(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportStyle, error)
	FindStyleByKey(ctx context.Context, key string) (*entity.ReportStyle, error)
	FindStyleById(ctx context.Context, id uuid.UUID) (*entity.ReportStyle, error)
	CreateStyle(ctx context.Context, style *entity.ReportStyle) error
	UpdateStyle(ctx context.Context, style *entity.ReportStyle) error
	DeleteStyle(ctx context.Context, id uuid.UUID) error
}
