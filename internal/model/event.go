package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title        string         `gorm:"column:title;size:200;not null"`
	Description  *string        `gorm:"column:description;type:text"`
	StartTime    time.Time      `gorm:"column:start_time;not null;index"`
	EndTime      time.Time      `gorm:"column:end_time;not null"`
	Place        *string        `gorm:"column:place;size:255"`
	MaxAttendees *int           `gorm:"column:max_attendees"`
	GameID       *uint          `gorm:"column:game_id;index"`
	Game         *Game          `gorm:"foreignKey:GameID"`
	CreatorKey   string         `gorm:"column:creator_key;size:255;not null;index"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb"`
}
