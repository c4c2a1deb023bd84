package scope

import "gorm.io/gorm"

// NewestFirst orders documents by creation time, ties broken by id so paging is stable.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("documents.created_at DESC").Order("documents.id ASC")
}

func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
