// Package app assembles the service: config, logger, store, blob driver,
// services, router and the HTTP server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aussiebroadwan/authabl/internal/auth/blob"
	"github.com/aussiebroadwan/authabl/internal/auth/blob/drivers/memory"
	blobminio "github.com/aussiebroadwan/authabl/internal/auth/blob/drivers/minio"
	httpapi "github.com/aussiebroadwan/authabl/internal/auth/http"
	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/authabl/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	blob blob.Store

	tokenService        *service.TokenService
	sessionService      *service.SessionService
	clientService       *service.ClientService
	userService         *service.UserService
	codeService         *service.CodeService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authabl",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initBlob(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("authabl starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully drains the server, stops housekeeping and closes the
// store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down authabl...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("authabl stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initBlob() error {
	switch app.cfg.BlobDriver {
	case "minio":
		mc, err := minio.New(app.cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(app.cfg.MinioAccessKey, app.cfg.MinioSecretKey, ""),
			Secure: app.cfg.MinioUseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize minio client: %w", err)
		}
		bl, err := blobminio.NewClient(context.Background(), mc, app.cfg.MinioBucket)
		if err != nil {
			return fmt.Errorf("failed to initialize blob store: %w", err)
		}
		app.blob = bl
		app.logger.Info("blob store ready", "driver", "minio", "bucket", app.cfg.MinioBucket)
	default:
		// In-process archive store. Archives do not survive a restart; fine
		// for dev, wrong for production.
		app.blob = memory.NewStore()
		app.logger.Warn("blob store ready", "driver", "memory")
	}
	return nil
}

func (app *Application) initServices() {
	app.clientService = &service.ClientService{Store: app.db}
	app.sessionService = &service.SessionService{Store: app.db, Blob: app.blob}
	app.userService = &service.UserService{Store: app.db, Sessions: app.sessionService}

	app.tokenService = &service.TokenService{
		Store:         app.db,
		Clients:       app.clientService,
		Issuer:        app.cfg.Issuer,
		AccessSecret:  []byte(app.cfg.AccessSecret),
		RefreshSecret: []byte(app.cfg.RefreshSecret),
	}

	app.codeService = &service.CodeService{
		Store:    app.db,
		Users:    app.userService,
		Sessions: app.sessionService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.cfg.SuperadminSecret, BuildVersion, app.db, app.logger)
	router.TokenService = app.tokenService
	router.SessionService = app.sessionService
	router.ClientService = app.clientService
	router.UserService = app.userService
	router.CodeService = app.codeService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
