package mapper

import (
	"encoding/json"
	"time"

	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DatasetMapper struct{}

func NewDatasetMapper() *DatasetMapper {
	return &DatasetMapper{}
}

func (m *DatasetMapper) ToEntity(d *model.Dataset) *entity.Dataset {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	// Corrupt JSONB degrades to an empty dataset rather than failing the read
	var columns []string
	_ = json.Unmarshal(d.Columns, &columns)
	var rows []map[string]any
	_ = json.Unmarshal(d.Rows, &rows)

	return &entity.Dataset{
		Id:               d.Id,
		Name:             d.Name,
		OriginalFilename: d.OriginalFilename,
		UserId:           d.UserId,
		Columns:          columns,
		Rows:             rows,
		RowCount:         d.RowCount,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        d.DeletedAt.Valid,
	}
}

func (m *DatasetMapper) ToModel(d *entity.Dataset) *model.Dataset {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	columnsJSON, _ := json.Marshal(d.Columns)
	rowsJSON, _ := json.Marshal(d.Rows)

	return &model.Dataset{
		Id:               d.Id,
		Name:             d.Name,
		OriginalFilename: d.OriginalFilename,
		UserId:           d.UserId,
		Columns:          datatypes.JSON(columnsJSON),
		Rows:             datatypes.JSON(rowsJSON),
		RowCount:         d.RowCount,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *DatasetMapper) ToEntities(datasets []*model.Dataset) []*entity.Dataset {
	entities := make([]*entity.Dataset, len(datasets))
	for i, d := range datasets {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
