package dto

import (
	"encoding/json"
	"time"
)

type CreateEventRequest struct {
	Title        string          `json:"title" validate:"required,min=1,max=200"`
	Description  *string         `json:"description" validate:"omitempty,max=2000"`
	StartTime    time.Time       `json:"startTime" validate:"required"`
	EndTime      time.Time       `json:"endTime" validate:"required,gtfield=StartTime"`
	Place        *string         `json:"place" validate:"omitempty,max=255"`
	MaxAttendees *int            `json:"maxAttendees" validate:"omitempty,gt=0"`
	GameID       *uint           `json:"gameId" validate:"omitempty,gt=0"`
	Metadata     json.RawMessage `json:"metadata"`
}

type UpdateEventRequest struct {
	Title        *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string         `json:"description" validate:"omitempty,max=2000"`
	StartTime    *time.Time      `json:"startTime"`
	EndTime      *time.Time      `json:"endTime"`
	Place        *string         `json:"place" validate:"omitempty,max=255"`
	MaxAttendees *int            `json:"maxAttendees" validate:"omitempty,gt=0"`
	GameID       *uint           `json:"gameId" validate:"omitempty,gt=0"`
	Metadata     json.RawMessage `json:"metadata"`
}

type EventResponse struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      time.Time       `json:"endTime"`
	Place        *string         `json:"place"`
	MaxAttendees *int            `json:"maxAttendees"`
	GameID       *uint           `json:"gameId"`
	CreatorID    string          `json:"creatorId"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// EventFilter holds the list filters of GET /events
type EventFilter struct {
	GameID    uint   `form:"gameId" validate:"omitempty,gt=0"`
	Upcoming  bool   `form:"upcoming"`
	CreatorID string `form:"creatorId" validate:"omitempty,max=255"`
}
