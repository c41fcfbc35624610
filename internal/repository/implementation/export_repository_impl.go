package implementation

import (
	"context"
	"errors"
	"time"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/mapper"
	"ai-reportgen-be/internal/model"
	"ai-reportgen-be/internal/repository/contract"
	"ai-reportgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExportMapper
}

func NewExportRepository(db *gorm.DB) contract.ExportRepository {
	return &ExportRepositoryImpl{
		db:     db,
		mapper: mapper.NewExportMapper(),
	}
}

func (r *ExportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExportRepositoryImpl) Create(ctx context.Context, record *entity.ExportRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExportRecord, error) {
	var m model.ExportRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExportRecord, error) {
	var models []*model.ExportRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ExportRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ExportRepositoryImpl) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userId).
		Delete(&model.ExportRecord{}).Error
}

func (r *ExportRepositoryImpl) CountCompletedSince(ctx context.Context, userId uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ExportRecord{}).
		Where("user_id = ? AND status = ? AND created_at >= ?", userId, string(entity.ExportStatusCompleted), since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
