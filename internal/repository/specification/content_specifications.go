package specification

import (
	"time"

	"gorm.io/gorm"
)

// UpcomingEvents keeps events that have not yet started (or are ongoing).
type UpcomingEvents struct {
	Now time.Time
}

func (s UpcomingEvents) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("starts_at >= ? OR (ends_at IS NOT NULL AND ends_at >= ?)", s.Now, s.Now)
}

// ByCategory filters resources by category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// TitleContains does a case-insensitive substring match on title.
type TitleContains struct {
	Term string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Term+"%")
}
