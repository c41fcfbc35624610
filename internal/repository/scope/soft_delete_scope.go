package scope

import "gorm.io/gorm"

// WithSoftDelete includes soft-deleted rows in the query.
func WithSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

// ExcludeSoftDelete spells out the default filter, for queries that start
// from an unscoped session.
func ExcludeSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}
