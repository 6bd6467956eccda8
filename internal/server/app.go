// Package server initializes and runs the triplog resource server: it picks
// a storage backend, wires the HTTP API and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/avilov/triplog/internal/logging"
	"github.com/avilov/triplog/internal/server/config"
	"github.com/avilov/triplog/internal/server/httpapi"
	"github.com/avilov/triplog/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.Store
	db     *sql.DB
}

// NewApp selects the storage backend from the config and wires the
// application together. An empty DSN selects the in-memory store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	app := &App{config: c, logger: logger}

	if c.DatabaseDSN == "" {
		logger.Info(ctx, "using in-memory store, data will not survive a restart")
		app.store = storage.NewMemoryStore()
		return app, nil
	}

	db, err := storage.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.store = storage.NewPostgresStore(db)
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := httpapi.NewHandler(app.store, app.logger)
	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: httpapi.NewRouter(handler, app.logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		_ = app.db.Close()
	}
}
