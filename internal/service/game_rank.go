package service

import (
	"strings"

	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
)

type GameRankService = ResourceService[model.GameRank, dto.GameRankResponse]

func NewGameRankService(store Store[model.GameRank], cache *CacheService) *GameRankService {
	return NewResourceService(store, cache, ResourceConfig[model.GameRank, dto.GameRankResponse]{
		Name:        "game_ranks",
		CachePrefix: constants.CacheKeyGameRanks,
		ToResponse:  ToGameRankResponse,
	})
}

func ToGameRankResponse(r *model.GameRank) dto.GameRankResponse {
	return dto.GameRankResponse{
		ID:        r.ID,
		GameID:    r.GameID,
		Name:      r.Name,
		Image:     r.Image,
		Order:     r.Order,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewGameRank(req *dto.CreateGameRankRequest) *model.GameRank {
	return &model.GameRank{
		GameID: req.GameID,
		Name:   strings.TrimSpace(req.Name),
		Image:  req.Image,
		Order:  req.Order,
	}
}

func GameRankUpdates(req *dto.UpdateGameRankRequest) map[string]interface{} {
	u := updates{}
	setField(u, "game_id", req.GameID)
	u.trimmed("name", req.Name)
	u.set("image", req.Image)
	setField(u, "order", req.Order)
	return u
}
