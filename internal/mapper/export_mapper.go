package mapper

import (
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/model"
)

type ExportMapper struct{}

func NewExportMapper() *ExportMapper {
	return &ExportMapper{}
}

func (m *ExportMapper) ToEntity(r *model.ExportRecord) *entity.ExportRecord {
	if r == nil {
		return nil
	}
	return &entity.ExportRecord{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		UserId:     r.UserId,
		Format:     entity.ExportFormat(r.Format),
		Filename:   r.Filename,
		SizeBytes:  r.SizeBytes,
		Status:     entity.ExportStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func (m *ExportMapper) ToModel(r *entity.ExportRecord) *model.ExportRecord {
	if r == nil {
		return nil
	}
	return &model.ExportRecord{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		UserId:     r.UserId,
		Format:     string(r.Format),
		Filename:   r.Filename,
		SizeBytes:  r.SizeBytes,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func (m *ExportMapper) ToEntities(records []*model.ExportRecord) []*entity.ExportRecord {
	entities := make([]*entity.ExportRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
