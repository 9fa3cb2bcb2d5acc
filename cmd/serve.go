package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ufukozendev/noobgg-sub002/pkg/database"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"go.uber.org/zap"
)

type serveFlags struct {
	port            string
	migrate         bool
	shutdownTimeout time.Duration
}

func serveCmd() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &flags)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.port, "port", "p", "", "listen port, overrides APP_PORT")
	fs.BoolVar(&flags.migrate, "migrate", false, "run schema migrations before serving")
	fs.DurationVar(&flags.shutdownTimeout, "shutdown-timeout", 15*time.Second, "grace period for in-flight requests on shutdown")
	return cmd
}

func runServe(parent context.Context, flags *serveFlags) error {
	cfg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if flags.port != "" {
		cfg.App.Port = flags.port
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if flags.migrate {
		if err := database.AutoMigrate(ctx, app.db); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           app.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.GetLogger().Info("Server starting", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.GetLogger().Error("Server stopped unexpectedly", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	logger.GetLogger().Info("Shutting down server", zap.Duration("grace_period", flags.shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), flags.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.GetLogger().Info("Server stopped")
	return nil
}
