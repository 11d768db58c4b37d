package repository

import "gorm.io/gorm"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// paginate returns a scope applying sane page/limit defaults.
func paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
