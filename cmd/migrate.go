package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/ufukozendev/noobgg-sub002/pkg/database"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"gorm.io/gorm"
)

const maintenanceTimeout = 5 * time.Minute

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), database.AutoMigrate)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default platforms and languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), database.Seed)
		},
	}
}

// withDatabase runs a one-off maintenance task against a fresh pool
func withDatabase(parent context.Context, task func(ctx context.Context, db *gorm.DB) error) error {
	cfg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	ctx, cancel := context.WithTimeout(parent, maintenanceTimeout)
	defer cancel()
	return task(ctx, db)
}
