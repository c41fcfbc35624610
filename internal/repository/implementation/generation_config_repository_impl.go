package implementation

import (
	"context"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/model"
	"ai-reportgen-be/internal/repository/contract"
	"ai-reportgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type generationConfigRepository struct {
	db *gorm.DB
}

// NewGenerationConfigRepository creates a new generation config repository
func NewGenerationConfigRepository(db *gorm.DB) contract.IGenerationConfigRepository {
	return &generationConfigRepository{db: db}
}

// applySpecifications applies all specifications to the query
func (r *generationConfigRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// ============================================================================
// Setting Methods
// ============================================================================

func (r *generationConfigRepository) FindAllSettings(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationSetting, error) {
	var models []model.GenerationSetting
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.GenerationSetting, len(models))
	for i, m := range models {
		entities[i] = settingModelToEntity(&m)
	}

	return entities, nil
}

func (r *generationConfigRepository) FindSettingByKey(ctx context.Context, key string) (*entity.GenerationSetting, error) {
	var m model.GenerationSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return settingModelToEntity(&m), nil
}

func (r *generationConfigRepository) UpdateSetting(ctx context.Context, setting *entity.GenerationSetting) error {
	m := settingEntityToModel(setting)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *generationConfigRepository) CreateSetting(ctx context.Context, setting *entity.GenerationSetting) error {
	if setting.Id == uuid.Nil {
		setting.Id = uuid.New()
	}
	m := settingEntityToModel(setting)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	setting.Id = m.Id
	return nil
}

// ============================================================================
// Report Style Methods
// ============================================================================

func (r *generationConfigRepository) FindAllStyles(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportStyle, error) {
	var models []model.ReportStyle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	// Default ordering by sort_order
	query = query.Order("sort_order ASC, created_at ASC")

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.ReportStyle, len(models))
	for i, m := range models {
		entities[i] = styleModelToEntity(&m)
	}

	return entities, nil
}

func (r *generationConfigRepository) FindStyleByKey(ctx context.Context, key string) (*entity.ReportStyle, error) {
	var m model.ReportStyle
	if err := r.db.WithContext(ctx).Where("key = ? AND is_active = true", key).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return styleModelToEntity(&m), nil
}

func (r *generationConfigRepository) FindStyleById(ctx context.Context, id uuid.UUID) (*entity.ReportStyle, error) {
	var m model.ReportStyle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return styleModelToEntity(&m), nil
}

func (r *generationConfigRepository) CreateStyle(ctx context.Context, style *entity.ReportStyle) error {
	if style.Id == uuid.Nil {
		style.Id = uuid.New()
	}
	m := styleEntityToModel(style)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	style.Id = m.Id
	return nil
}

func (r *generationConfigRepository) UpdateStyle(ctx context.Context, style *entity.ReportStyle) error {
	m := styleEntityToModel(style)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *generationConfigRepository) DeleteStyle(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ReportStyle{}, "id = ?", id).Error
}

// ============================================================================
// Mappers
// ============================================================================

func settingModelToEntity(m *model.GenerationSetting) *entity.GenerationSetting {
	return &entity.GenerationSetting{
		Id:          m.Id,
		Key:         m.Key,
		Value:       m.Value,
		ValueType:   m.ValueType,
		Description: m.Description,
		Category:    m.Category,
		IsSecret:    m.IsSecret,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func settingEntityToModel(e *entity.GenerationSetting) *model.GenerationSetting {
	return &model.GenerationSetting{
		Id:          e.Id,
		Key:         e.Key,
		Value:       e.Value,
		ValueType:   e.ValueType,
		Description: e.Description,
		Category:    e.Category,
		IsSecret:    e.IsSecret,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func styleModelToEntity(m *model.ReportStyle) *entity.ReportStyle {
	return &entity.ReportStyle{
		Id:            m.Id,
		Key:           m.Key,
		Name:          m.Name,
		Description:   m.Description,
		SystemPrompt:  m.SystemPrompt,
		ModelOverride: m.ModelOverride,
		IsActive:      m.IsActive,
		SortOrder:     m.SortOrder,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func styleEntityToModel(e *entity.ReportStyle) *model.ReportStyle {
	return &model.ReportStyle{
		Id:            e.Id,
		Key:           e.Key,
		Name:          e.Name,
		Description:   e.Description,
		SystemPrompt:  e.SystemPrompt,
		ModelOverride: e.ModelOverride,
		IsActive:      e.IsActive,
		SortOrder:     e.SortOrder,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
