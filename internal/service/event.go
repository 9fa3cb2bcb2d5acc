package service

import (
	"context"
	"strings"
	"time"

	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"gorm.io/datatypes"
)

type EventService = ResourceService[model.Event, dto.EventResponse]

var errEventWindow = apperrors.WithMessage(apperrors.ErrInvalidInput, "endTime must be after startTime")

// NewEventService builds the events service. Event lists depend on the
// current time so they are not cached.
func NewEventService(store Store[model.Event]) *EventService {
	return NewResourceService(store, nil, ResourceConfig[model.Event, dto.EventResponse]{
		Name:        "events",
		ToResponse:  ToEventResponse,
		Authorize:   authorizeEventCreator,
		CheckUpdate: checkEventWindow,
	})
}

func authorizeEventCreator(ctx context.Context, existing *model.Event) error {
	if ctxutil.GetUserKey(ctx) != existing.CreatorKey {
		return apperrors.ErrForbidden
	}
	return nil
}

func checkEventWindow(existing *model.Event, u map[string]interface{}) error {
	start, end := existing.StartTime, existing.EndTime
	if v, ok := u["start_time"].(time.Time); ok {
		start = v
	}
	if v, ok := u["end_time"].(time.Time); ok {
		end = v
	}
	if !end.After(start) {
		return errEventWindow
	}
	return nil
}

func ToEventResponse(e *model.Event) dto.EventResponse {
	resp := dto.EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Place:        e.Place,
		MaxAttendees: e.MaxAttendees,
		GameID:       e.GameID,
		CreatorID:    e.CreatorKey,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if len(e.Metadata) > 0 {
		resp.Metadata = []byte(e.Metadata)
	}
	return resp
}

// NewEvent builds an event owned by creatorKey
func NewEvent(req *dto.CreateEventRequest, creatorKey string) (*model.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errEventWindow
	}
	event := &model.Event{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		StartTime:    req.StartTime.UTC(),
		EndTime:      req.EndTime.UTC(),
		Place:        req.Place,
		MaxAttendees: req.MaxAttendees,
		GameID:       req.GameID,
		CreatorKey:   creatorKey,
	}
	if len(req.Metadata) > 0 {
		event.Metadata = datatypes.JSON(req.Metadata)
	}
	return event, nil
}

func EventUpdates(req *dto.UpdateEventRequest) map[string]interface{} {
	u := updates{}
	u.trimmed("title", req.Title)
	u.set("description", req.Description)
	if req.StartTime != nil {
		u["start_time"] = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		u["end_time"] = req.EndTime.UTC()
	}
	u.set("place", req.Place)
	setField(u, "max_attendees", req.MaxAttendees)
	setField(u, "game_id", req.GameID)
	if len(req.Metadata) > 0 {
		u["metadata"] = datatypes.JSON(req.Metadata)
	}
	return u
}
