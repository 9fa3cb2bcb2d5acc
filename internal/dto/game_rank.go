package dto

import "time"

type CreateGameRankRequest struct {
	GameID uint    `json:"gameId" validate:"required,gt=0"`
	Name   string  `json:"name" validate:"required,min=1,max=150"`
	Image  *string `json:"image" validate:"omitempty,url,max=2048"`
	Order  int     `json:"order" validate:"gte=0"`
}

type UpdateGameRankRequest struct {
	GameID *uint   `json:"gameId" validate:"omitempty,gt=0"`
	Name   *string `json:"name" validate:"omitempty,min=1,max=150"`
	Image  *string `json:"image" validate:"omitempty,url,max=2048"`
	Order  *int    `json:"order" validate:"omitempty,gte=0"`
}

type GameRankResponse struct {
	ID        uint      `json:"id"`
	GameID    uint      `json:"gameId"`
	Name      string    `json:"name"`
	Image     *string   `json:"image"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GameRankFilter holds the list filters of GET /game-ranks
type GameRankFilter struct {
	GameID uint `form:"gameId" validate:"omitempty,gt=0"`
}
