package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/config"
	"github.com/retailops/backoffice/internal/handlers"
	"github.com/retailops/backoffice/internal/server"
	"github.com/retailops/backoffice/internal/services"
	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/store/migrations"
	"github.com/retailops/backoffice/pkg/listing"
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the back-office API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "port the API server listens on")
	flags.StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "folder holding the built admin frontend")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode: dev or prod")
	flags.StringVar(&cfg.Database.Path, "database-path", cfg.Database.Path, "path to the database file")
	flags.StringVar(&cfg.Auth.JWTSecret, "auth-jwt-secret", cfg.Auth.JWTSecret, "secret used to sign bearer tokens")
	flags.DurationVar(&cfg.Auth.TokenTTL, "auth-token-ttl", cfg.Auth.TokenTTL, "bearer token lifetime")
	flags.StringVar(&cfg.Uploads.Folder, "uploads-folder", cfg.Uploads.Folder, "root folder for uploaded content")

	return cmd
}

func validateConfiguration(cfg *config.Configuration) error {
	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port: %d", cfg.Server.HTTPPort)
	}

	switch cfg.Server.ServerMode {
	case server.DevServer:
	case server.ProductionServer:
		if cfg.Server.StaticsFolder == "" {
			return fmt.Errorf("statics folder must be set in prod mode")
		}
	default:
		return fmt.Errorf("invalid server mode: %s", cfg.Server.ServerMode)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token-ttl: %s", cfg.Auth.TokenTTL)
	}
	if cfg.Uploads.Folder == "" {
		return fmt.Errorf("uploads folder cannot be empty")
	}

	return nil
}

func run(ctx context.Context, cfg *config.Configuration) error {
	logger := zap.S().Named("run")

	db, err := store.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	st := store.NewStore(db)
	engine := listing.NewEngine(db)
	auth := services.NewAuthService(st.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	uploads := services.NewUploadService(cfg.Uploads.Folder)
	brands := services.NewStoreService(st.Brands())

	importer, err := services.NewImporter(st.Stores(), brands)
	if err != nil {
		return fmt.Errorf("failed to build importer: %w", err)
	}
	exporter, err := services.NewExporter(db, engine, st.Stores(), brands)
	if err != nil {
		return fmt.Errorf("failed to build exporter: %w", err)
	}

	handler := handlers.New(engine, st, auth, uploads, importer, exporter)

	srv, err := server.NewServer(cfg, handler.RegisterRoutes)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode)
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)
	logger.Infow("server stopped")

	return nil
}
