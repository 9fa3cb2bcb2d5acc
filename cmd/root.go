package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ufukozendev/noobgg-sub002/config"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "noobgg",
		Short:         "noobgg community API",
		Long:          `noobgg serves the game catalog, events, lobbies and user profiles of the noob.gg community over a versioned JSON API.`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(tokenCmd())
	return root
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// loadRuntime reads the configuration and starts the logger every command shares
func loadRuntime() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.GetLogger().Info("Configuration loaded",
		zap.String("app_name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("version", constants.AppVersion),
	)
	return cfg, nil
}
