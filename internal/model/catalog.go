package model

import "gorm.io/gorm"

type Game struct {
	gorm.Model
	Name        string  `gorm:"column:name;size:150;not null;uniqueIndex:idx_games_name,where:deleted_at IS NULL"`
	Description *string `gorm:"column:description;type:text"`
	Logo        *string `gorm:"column:logo;size:2048"`
}

type Platform struct {
	gorm.Model
	Name string `gorm:"column:name;size:150;not null;uniqueIndex:idx_platforms_name,where:deleted_at IS NULL"`
}

type Distributor struct {
	gorm.Model
	Name        string  `gorm:"column:name;size:150;not null;uniqueIndex:idx_distributors_name,where:deleted_at IS NULL"`
	Description *string `gorm:"column:description;type:text"`
	Website     *string `gorm:"column:website;size:2048"`
	Logo        *string `gorm:"column:logo;size:2048"`
}

type Language struct {
	gorm.Model
	Name    string  `gorm:"column:name;size:150;not null"`
	Code    string  `gorm:"column:code;size:10;not null;uniqueIndex:idx_languages_code,where:deleted_at IS NULL"`
	FlagURL *string `gorm:"column:flag_url;size:2048"`
}
