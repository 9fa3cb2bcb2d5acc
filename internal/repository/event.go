package repository

import (
	"time"

	"gorm.io/gorm"
)

// UpcomingEvents keeps events that have not ended at now
func UpcomingEvents(now time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("end_time >= ?", now)
	}
}

// ByCreator filters events created by userKey
func ByCreator(userKey string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_key = ?", userKey)
	}
}
