package service

import (
	"strings"

	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
)

type (
	GameService        = ResourceService[model.Game, dto.GameResponse]
	PlatformService    = ResourceService[model.Platform, dto.PlatformResponse]
	DistributorService = ResourceService[model.Distributor, dto.DistributorResponse]
	LanguageService    = ResourceService[model.Language, dto.LanguageResponse]
)

func NewGameService(store Store[model.Game], cache *CacheService) *GameService {
	return NewResourceService(store, cache, ResourceConfig[model.Game, dto.GameResponse]{
		Name:        "games",
		CachePrefix: constants.CacheKeyGames,
		ToResponse:  ToGameResponse,
	})
}

func NewPlatformService(store Store[model.Platform], cache *CacheService) *PlatformService {
	return NewResourceService(store, cache, ResourceConfig[model.Platform, dto.PlatformResponse]{
		Name:        "platforms",
		CachePrefix: constants.CacheKeyPlatforms,
		ToResponse:  ToPlatformResponse,
	})
}

func NewDistributorService(store Store[model.Distributor], cache *CacheService) *DistributorService {
	return NewResourceService(store, cache, ResourceConfig[model.Distributor, dto.DistributorResponse]{
		Name:        "distributors",
		CachePrefix: constants.CacheKeyDistributors,
		ToResponse:  ToDistributorResponse,
	})
}

func NewLanguageService(store Store[model.Language], cache *CacheService) *LanguageService {
	return NewResourceService(store, cache, ResourceConfig[model.Language, dto.LanguageResponse]{
		Name:        "languages",
		CachePrefix: constants.CacheKeyLanguages,
		ToResponse:  ToLanguageResponse,
	})
}

func ToGameResponse(g *model.Game) dto.GameResponse {
	return dto.GameResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Logo:        g.Logo,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func NewGame(req *dto.CreateGameRequest) *model.Game {
	return &model.Game{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Logo:        req.Logo,
	}
}

func GameUpdates(req *dto.UpdateGameRequest) map[string]interface{} {
	u := updates{}
	u.trimmed("name", req.Name)
	u.set("description", req.Description)
	u.set("logo", req.Logo)
	return u
}

func ToPlatformResponse(p *model.Platform) dto.PlatformResponse {
	return dto.PlatformResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPlatform(req *dto.CreatePlatformRequest) *model.Platform {
	return &model.Platform{Name: strings.TrimSpace(req.Name)}
}

func PlatformUpdates(req *dto.UpdatePlatformRequest) map[string]interface{} {
	u := updates{}
	u.trimmed("name", req.Name)
	return u
}

func ToDistributorResponse(d *model.Distributor) dto.DistributorResponse {
	return dto.DistributorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Website:     d.Website,
		Logo:        d.Logo,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewDistributor(req *dto.CreateDistributorRequest) *model.Distributor {
	return &model.Distributor{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Website:     req.Website,
		Logo:        req.Logo,
	}
}

func DistributorUpdates(req *dto.UpdateDistributorRequest) map[string]interface{} {
	u := updates{}
	u.trimmed("name", req.Name)
	u.set("description", req.Description)
	u.set("website", req.Website)
	u.set("logo", req.Logo)
	return u
}

func ToLanguageResponse(l *model.Language) dto.LanguageResponse {
	return dto.LanguageResponse{
		ID:        l.ID,
		Name:      l.Name,
		Code:      l.Code,
		FlagURL:   l.FlagURL,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func NewLanguage(req *dto.CreateLanguageRequest) *model.Language {
	return &model.Language{
		Name:    strings.TrimSpace(req.Name),
		Code:    strings.ToLower(strings.TrimSpace(req.Code)),
		FlagURL: req.FlagURL,
	}
}

func LanguageUpdates(req *dto.UpdateLanguageRequest) map[string]interface{} {
	u := updates{}
	u.trimmed("name", req.Name)
	if req.Code != nil {
		u["code"] = strings.ToLower(strings.TrimSpace(*req.Code))
	}
	u.set("flag_url", req.FlagURL)
	return u
}
