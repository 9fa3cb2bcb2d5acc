package database

import (
	"context"
	"fmt"

	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"gorm.io/gorm"
)

// searchIndexes back the case-insensitive ILIKE search and the default list
// orderings. Struct tags cannot express expression indexes.
var searchIndexes = []string{
	"CREATE EXTENSION IF NOT EXISTS pg_trgm",

	"CREATE INDEX IF NOT EXISTS idx_games_name_trgm ON games USING GIN (name gin_trgm_ops) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_platforms_name_trgm ON platforms USING GIN (name gin_trgm_ops) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_distributors_name_trgm ON distributors USING GIN (name gin_trgm_ops) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_events_title_trgm ON events USING GIN (title gin_trgm_ops) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_user_profiles_username_trgm ON user_profiles USING GIN (username gin_trgm_ops) WHERE deleted_at IS NULL",

	"CREATE INDEX IF NOT EXISTS idx_lobbies_region_lower ON lobbies (LOWER(region)) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_lobbies_created_at ON lobbies (created_at DESC) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_events_upcoming ON events (start_time) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_lobby_members_joined_at ON lobby_members (lobby_id, joined_at)",
}

// CreateIndexes applies searchIndexes. Every statement is idempotent; the
// first failure stops the run.
func CreateIndexes(ctx context.Context, db *gorm.DB) error {
	for _, stmt := range searchIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index %q: %w", stmt, err)
		}
	}
	logger.InfoWithContext(ctx, "Indexes ensured").Int("statements", len(searchIndexes)).Log()
	return nil
}
