package model

import "gorm.io/gorm"

// GameRank is one tier of a game's ranking ladder; Order sorts tiers within a game
type GameRank struct {
	gorm.Model
	GameID uint    `gorm:"column:game_id;not null;index:idx_game_ranks_game_order,priority:1"`
	Game   *Game   `gorm:"foreignKey:GameID"`
	Name   string  `gorm:"column:name;size:150;not null"`
	Image  *string `gorm:"column:image;size:2048"`
	Order  int     `gorm:"column:order;not null;default:0;index:idx_game_ranks_game_order,priority:2"`
}
