// Package server initializes and runs the index set management server.
// It wires configuration, storage backends, the job manager and the HTTP
// API, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/indexkeeper/internal/logging"
	"github.com/dmitrijs2005/indexkeeper/internal/server/api"
	"github.com/dmitrijs2005/indexkeeper/internal/server/config"
	"github.com/dmitrijs2005/indexkeeper/internal/server/indices"
	"github.com/dmitrijs2005/indexkeeper/internal/server/jobs"
	"github.com/dmitrijs2005/indexkeeper/internal/server/registry"
	"github.com/dmitrijs2005/indexkeeper/internal/server/repositories/indexsets"
	"github.com/dmitrijs2005/indexkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/indexkeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	jobs    *jobs.Manager
	service *services.IndexSetService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var db *sql.DB
	var repo indexsets.Repository

	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database dsn configured, using in-memory storage")
		repo = indexsets.NewMemoryRepository()
	} else {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm := repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		repo = rm.IndexSets(db)
	}

	store, err := indices.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("index store init error: %w", err)
	}

	jm := jobs.NewManager(logger)
	reg := registry.NewStoreRegistry(repo, store)
	svc := services.NewIndexSetService(repo, reg, jm, logger)

	return &App{config: cfg, logger: logger, db: db, jobs: jm, service: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or
// an OS signal arrives, then drains in-flight cleanup jobs before
// returning.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	router := mux.NewRouter()
	handler := api.NewHandler(app.service, app.logger, app.config.SecretKey)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		app.logger.Error(ctx, "http server error", "error", runErr.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
	}

	app.logger.Info(shutdownCtx, "waiting for background jobs")
	app.jobs.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
		}
	}

	app.logger.Info(shutdownCtx, "app stopped")
	return runErr
}
