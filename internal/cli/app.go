// Package cli implements the interactive TaskBuddy shell: a small REPL
// over the accounts service, the task store and the navigation guard.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/taskbuddy/taskbuddy/internal/accounts"
	"github.com/taskbuddy/taskbuddy/internal/config"
	"github.com/taskbuddy/taskbuddy/internal/guard"
	"github.com/taskbuddy/taskbuddy/internal/logging"
	"github.com/taskbuddy/taskbuddy/internal/storage"
	"github.com/taskbuddy/taskbuddy/internal/tasks"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	accounts accounts.Service
	store    *tasks.Store
	guard    *guard.Guard

	reader *bufio.Reader
	out    io.Writer

	// view is the currently rendered route; pending remembers a view the
	// guard bounced to login, to return to after authentication.
	view    string
	pending string
}

// NewApp opens local storage and wires up the services.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	kv := storage.NewSQLiteKV(db)
	acc := accounts.NewService(kv, log)
	store := tasks.NewStore(tasks.NewKVCollections(kv, log), log)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		accounts: acc,
		store:    store,
		guard:    guard.New(acc),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		view:     guard.LoginRoute,
	}, nil
}

// Close releases the underlying database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run hydrates the persisted session, binds the task store to it, and
// hands control to the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.accounts.InitFromStorage(ctx); err != nil {
		return err
	}

	userID := ""
	if u, ok := a.accounts.Current(); ok {
		userID = u.ID
		a.view = guard.DefaultRoute
	}
	if err := a.store.Bind(ctx, userID); err != nil {
		return err
	}

	a.repl(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.accounts.IsLoggedIn()
}
