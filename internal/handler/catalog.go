package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

type (
	GameHandler        = ResourceHandler[model.Game, dto.GameResponse, dto.CreateGameRequest, dto.UpdateGameRequest]
	PlatformHandler    = ResourceHandler[model.Platform, dto.PlatformResponse, dto.CreatePlatformRequest, dto.UpdatePlatformRequest]
	DistributorHandler = ResourceHandler[model.Distributor, dto.DistributorResponse, dto.CreateDistributorRequest, dto.UpdateDistributorRequest]
	LanguageHandler    = ResourceHandler[model.Language, dto.LanguageResponse, dto.CreateLanguageRequest, dto.UpdateLanguageRequest]
	GameRankHandler    = ResourceHandler[model.GameRank, dto.GameRankResponse, dto.CreateGameRankRequest, dto.UpdateGameRankRequest]
	EventHandler       = ResourceHandler[model.Event, dto.EventResponse, dto.CreateEventRequest, dto.UpdateEventRequest]
)

func NewGameHandler(svc *service.GameService, v *validation.Validator) *GameHandler {
	return NewResourceHandler(svc, v, func(_ *gin.Context, req *dto.CreateGameRequest) (*model.Game, error) {
		return service.NewGame(req), nil
	}, service.GameUpdates, nil)
}

func NewPlatformHandler(svc *service.PlatformService, v *validation.Validator) *PlatformHandler {
	return NewResourceHandler(svc, v, func(_ *gin.Context, req *dto.CreatePlatformRequest) (*model.Platform, error) {
		return service.NewPlatform(req), nil
	}, service.PlatformUpdates, nil)
}

func NewDistributorHandler(svc *service.DistributorService, v *validation.Validator) *DistributorHandler {
	return NewResourceHandler(svc, v, func(_ *gin.Context, req *dto.CreateDistributorRequest) (*model.Distributor, error) {
		return service.NewDistributor(req), nil
	}, service.DistributorUpdates, nil)
}

func NewLanguageHandler(svc *service.LanguageService, v *validation.Validator) *LanguageHandler {
	return NewResourceHandler(svc, v, func(_ *gin.Context, req *dto.CreateLanguageRequest) (*model.Language, error) {
		return service.NewLanguage(req), nil
	}, service.LanguageUpdates, nil)
}

func NewGameRankHandler(svc *service.GameRankService, v *validation.Validator) *GameRankHandler {
	return NewResourceHandler(svc, v, func(_ *gin.Context, req *dto.CreateGameRankRequest) (*model.GameRank, error) {
		return service.NewGameRank(req), nil
	}, service.GameRankUpdates, gameRankFilter)
}

func NewEventHandler(svc *service.EventService, v *validation.Validator) *EventHandler {
	return NewResourceHandler(svc, v, func(c *gin.Context, req *dto.CreateEventRequest) (*model.Event, error) {
		return service.NewEvent(req, userKey(c))
	}, service.EventUpdates, eventFilter)
}

func gameRankFilter(c *gin.Context, v *validation.Validator, params *service.ListParams) bool {
	var f dto.GameRankFilter
	if !bindQuery(c, v, &f) {
		return false
	}
	if f.GameID > 0 {
		params.Filters["gameId"] = strconv.FormatUint(uint64(f.GameID), 10)
		params.Scopes = append(params.Scopes, repository.ByGame(f.GameID))
	}
	return true
}

func eventFilter(c *gin.Context, v *validation.Validator, params *service.ListParams) bool {
	var f dto.EventFilter
	if !bindQuery(c, v, &f) {
		return false
	}
	if f.GameID > 0 {
		params.Filters["gameId"] = strconv.FormatUint(uint64(f.GameID), 10)
		params.Scopes = append(params.Scopes, repository.ByGame(f.GameID))
	}
	if f.Upcoming {
		params.Filters["upcoming"] = "true"
		params.Scopes = append(params.Scopes, repository.UpcomingEvents(time.Now().UTC()))
	}
	if f.CreatorID != "" {
		params.Filters["creatorId"] = f.CreatorID
		params.Scopes = append(params.Scopes, repository.ByCreator(f.CreatorID))
	}
	return true
}

func lobbyFilter(c *gin.Context, v *validation.Validator, params *service.ListParams) bool {
	var f dto.LobbyFilter
	if !bindQuery(c, v, &f) {
		return false
	}
	if f.GameID > 0 {
		params.Filters["gameId"] = strconv.FormatUint(uint64(f.GameID), 10)
		params.Scopes = append(params.Scopes, repository.ByGame(f.GameID))
	}
	if f.Region != "" {
		params.Filters["region"] = f.Region
		params.Scopes = append(params.Scopes, repository.ByRegion(f.Region))
	}
	return true
}
