package dto

import "time"

type CreateLobbyRequest struct {
	GameID      uint     `json:"gameId" validate:"required,gt=0"`
	Region      string   `json:"region" validate:"required,min=1,max=50"`
	Mode        string   `json:"mode" validate:"required,min=1,max=50"`
	MinTeamSize int      `json:"minTeamSize" validate:"required,gte=1,lte=100"`
	MaxTeamSize int      `json:"maxTeamSize" validate:"required,gtefield=MinTeamSize,lte=100"`
	IsPrivate   bool     `json:"isPrivate"`
	Note        *string  `json:"note" validate:"omitempty,max=500"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

// UpdateLobbyRequest is a partial update. RowVersion is the token read with
// the lobby; omitting it makes the update unconditional unless the server requires it.
type UpdateLobbyRequest struct {
	Region      *string   `json:"region" validate:"omitempty,min=1,max=50"`
	Mode        *string   `json:"mode" validate:"omitempty,min=1,max=50"`
	MinTeamSize *int      `json:"minTeamSize" validate:"omitempty,gte=1,lte=100"`
	MaxTeamSize *int      `json:"maxTeamSize" validate:"omitempty,gte=1,lte=100"`
	IsPrivate   *bool     `json:"isPrivate"`
	Note        *string   `json:"note" validate:"omitempty,max=500"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	RowVersion  *string   `json:"rowVersion" validate:"omitempty,max=64"`
}

type LobbyResponse struct {
	ID          uint      `json:"id"`
	GameID      uint      `json:"gameId"`
	Region      string    `json:"region"`
	Mode        string    `json:"mode"`
	MinTeamSize int       `json:"minTeamSize"`
	MaxTeamSize int       `json:"maxTeamSize"`
	IsPrivate   bool      `json:"isPrivate"`
	Note        *string   `json:"note"`
	OwnerID     string    `json:"ownerId"`
	Tags        []string  `json:"tags"`
	MemberCount int64     `json:"memberCount"`
	RowVersion  string    `json:"rowVersion"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type LobbyMemberResponse struct {
	LobbyID  uint      `json:"lobbyId"`
	UserID   string    `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}

// LobbyFilter holds the list filters of GET /lobbies
type LobbyFilter struct {
	GameID uint   `form:"gameId" validate:"omitempty,gt=0"`
	Region string `form:"region" validate:"omitempty,max=50"`
}
