package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lobby is a versioned row: every successful update replaces RowVersion
type Lobby struct {
	gorm.Model
	GameID      uint                        `gorm:"column:game_id;not null;index"`
	Game        *Game                       `gorm:"foreignKey:GameID"`
	Region      string                      `gorm:"column:region;size:50;not null;index"`
	Mode        string                      `gorm:"column:mode;size:50;not null"`
	MinTeamSize int                         `gorm:"column:min_team_size;not null;default:1"`
	MaxTeamSize int                         `gorm:"column:max_team_size;not null"`
	IsPrivate   bool                        `gorm:"column:is_private;not null;default:false"`
	Note        *string                     `gorm:"column:note;size:500"`
	OwnerKey    string                      `gorm:"column:owner_key;size:255;not null;index"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb"`
	RowVersion  string                      `gorm:"column:row_version;size:64;not null;default:'0'"`
	Members     []LobbyMember               `gorm:"foreignKey:LobbyID"`
}

func (l *Lobby) GetRowVersion() string { return l.RowVersion }

// LobbyMember rows are hard-deleted when a user leaves
type LobbyMember struct {
	ID       uint      `gorm:"primaryKey"`
	LobbyID  uint      `gorm:"column:lobby_id;not null;uniqueIndex:idx_lobby_members_lobby_user,priority:1"`
	UserKey  string    `gorm:"column:user_key;size:255;not null;uniqueIndex:idx_lobby_members_lobby_user,priority:2;index"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"`
}
