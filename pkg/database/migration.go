package database

import (
	"context"
	"fmt"

	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the API, parents before children
func Models() []interface{} {
	return []interface{}{
		&model.Game{},
		&model.Platform{},
		&model.Distributor{},
		&model.Language{},
		&model.GameRank{},
		&model.Event{},
		&model.Lobby{},
		&model.LobbyMember{},
		&model.UserProfile{},
	}
}

// AutoMigrate creates or updates the schema and then the search indexes
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.InfoWithContext(ctx, "Schema migrated").Int("tables", len(Models())).Log()

	return CreateIndexes(ctx, db)
}
