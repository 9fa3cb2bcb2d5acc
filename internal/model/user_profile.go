package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfile is keyed by the identity provider subject; it is a versioned row
type UserProfile struct {
	gorm.Model
	UserKey         string          `gorm:"column:user_key;size:255;not null;uniqueIndex:idx_user_profiles_user_key,where:deleted_at IS NULL"`
	Username        string          `gorm:"column:username;size:50;not null;uniqueIndex:idx_user_profiles_username,where:deleted_at IS NULL"`
	DisplayName     *string         `gorm:"column:display_name;size:100"`
	Bio             *string         `gorm:"column:bio;size:500"`
	BirthDate       *datatypes.Date `gorm:"column:birth_date"`
	Gender          *string         `gorm:"column:gender;size:20"`
	Region          *string         `gorm:"column:region;size:50"`
	ProfileImageURL *string         `gorm:"column:profile_image_url;size:2048"`
	BannerImageURL  *string         `gorm:"column:banner_image_url;size:2048"`
	RowVersion      string          `gorm:"column:row_version;size:64;not null;default:'0'"`
}

func (p *UserProfile) GetRowVersion() string { return p.RowVersion }
