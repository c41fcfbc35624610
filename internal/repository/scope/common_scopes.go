package scope

import "gorm.io/gorm"

// OrderByCreatedDesc sorts newest first, the default for history listings.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
