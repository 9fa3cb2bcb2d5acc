package repository

import (
	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"gorm.io/gorm"
)

var commonSort = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func withCommonSort(extra map[string]string) map[string]string {
	out := make(map[string]string, len(commonSort)+len(extra))
	for k, v := range commonSort {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func NewGameRepository(db *gorm.DB) *CRUDRepository[model.Game] {
	return NewCRUDRepository[model.Game](db, Options{
		Name:          "games",
		Sort:          SortSpec{Columns: withCommonSort(map[string]string{"name": "name"}), Default: "created_at"},
		SearchColumns: []string{"name"},
	})
}

func NewPlatformRepository(db *gorm.DB) *CRUDRepository[model.Platform] {
	return NewCRUDRepository[model.Platform](db, Options{
		Name:          "platforms",
		Sort:          SortSpec{Columns: withCommonSort(map[string]string{"name": "name"}), Default: "created_at"},
		SearchColumns: []string{"name"},
	})
}

func NewDistributorRepository(db *gorm.DB) *CRUDRepository[model.Distributor] {
	return NewCRUDRepository[model.Distributor](db, Options{
		Name:          "distributors",
		Sort:          SortSpec{Columns: withCommonSort(map[string]string{"name": "name"}), Default: "created_at"},
		SearchColumns: []string{"name", "description"},
	})
}

func NewLanguageRepository(db *gorm.DB) *CRUDRepository[model.Language] {
	return NewCRUDRepository[model.Language](db, Options{
		Name:          "languages",
		Sort:          SortSpec{Columns: withCommonSort(map[string]string{"name": "name", "code": "code"}), Default: "name", DefaultAsc: true},
		SearchColumns: []string{"name", "code"},
	})
}

func NewGameRankRepository(db *gorm.DB) *CRUDRepository[model.GameRank] {
	return NewCRUDRepository[model.GameRank](db, Options{
		Name:          "game_ranks",
		Sort:          SortSpec{Columns: withCommonSort(map[string]string{"name": "name", "order": "order", "gameId": "game_id"}), Default: "order", DefaultAsc: true},
		SearchColumns: []string{"name"},
	})
}

func NewEventRepository(db *gorm.DB) *CRUDRepository[model.Event] {
	return NewCRUDRepository[model.Event](db, Options{
		Name: "events",
		Sort: SortSpec{
			Columns:    withCommonSort(map[string]string{"title": "title", "startTime": "start_time", "endTime": "end_time"}),
			Default:    "start_time",
			DefaultAsc: true,
		},
		SearchColumns: []string{"title", "place"},
	})
}

// ByGame filters rows by game_id
func ByGame(gameID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("game_id = ?", gameID)
	}
}

// ByUserKey filters rows by user_key
func ByUserKey(userKey string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_key = ?", userKey)
	}
}
