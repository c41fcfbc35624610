package specification

import "gorm.io/gorm"

// DocumentSearchQuery filters documents by title or content explicitly
type DocumentSearchQuery struct {
	Query string
}

func (s DocumentSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	// Search in Title OR Content
	// Using ILIKE for Postgres (case insensitive)
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}

// ByDatasetName filters documents by their source dataset's name (case-insensitive)
type ByDatasetName struct {
	Name string
}

func (s ByDatasetName) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Name + "%"
	return db.Joins("JOIN datasets ON datasets.id = documents.dataset_id").
		Where("datasets.name ILIKE ?", pattern)
}

// ByDocumentTitle filters documents by partial title match (case-insensitive)
type ByDocumentTitle struct {
	Title string
}

func (s ByDocumentTitle) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Title + "%"
	return db.Where("title ILIKE ?", pattern)
}
