package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/avilov/triplog/internal/client/api"
	"github.com/avilov/triplog/internal/client/config"
	"github.com/avilov/triplog/internal/client/localdb"
	"github.com/avilov/triplog/internal/client/repositories/session"
	"github.com/avilov/triplog/internal/client/services"
	"github.com/avilov/triplog/internal/logging"

	_ "modernc.org/sqlite"
)

// App glues the services together and carries the interactive state of one
// client run. Everything happens on the goroutine driving the REPL; network
// calls suspend the current command, never run in parallel with another.
type App struct {
	config      *config.Config
	logger      logging.Logger
	authService services.AuthService
	tripService services.TripService
	db          *sql.DB
	reader      *bufio.Reader
}

// NewApp opens the local database, builds the REST client and the services,
// and rehydrates any persisted session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr)

	db, err := localdb.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("init local db: %w", err)
	}

	apiClient := api.NewRESTClient(c.ServerBaseURL)
	store := session.NewSQLiteRepository(db)

	as := services.NewAuthService(apiClient, store, logger)
	ts := services.NewTripService(apiClient, logger)

	app := &App{
		config:      c,
		logger:      logger,
		authService: as,
		tripService: ts,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
	}

	if err := as.Restore(ctx); err != nil {
		logger.Warn(ctx, "session restore failed", "error", err)
	}
	return app, nil
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.Current()
	return ok
}

// Run loads the restored user's trips (if any) and drives the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("triplog CLI (type 'help' for commands)")

	if u, ok := a.authService.Current(); ok {
		printlnFn("Welcome back,", u.FullName)
		if err := a.tripService.Load(ctx, u.ID); err != nil {
			printlnFn("Could not load your trips:", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) status() string {
	u, ok := a.authService.Current()
	if !ok {
		return ""
	}
	q := a.tripService.Query()
	s := u.Username
	if q.FavoritesOnly {
		s += " *fav"
	}
	return fmt.Sprintf("(%s)", s)
}
