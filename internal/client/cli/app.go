// Package cli implements the interactive fleetctl shell: login/logout,
// resource listings and a status prompt, wired over the resilient API
// client and the session manager.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	_ "modernc.org/sqlite"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
	"github.com/rentafleet/fleetapi-go/internal/client/config"
	"github.com/rentafleet/fleetapi-go/internal/client/connectivity"
	"github.com/rentafleet/fleetapi-go/internal/client/fleet"
	"github.com/rentafleet/fleetapi-go/internal/client/session"
	"github.com/rentafleet/fleetapi-go/internal/client/tokenstore"
	"github.com/rentafleet/fleetapi-go/internal/logging"
	"github.com/rentafleet/fleetapi-go/internal/retryx"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	monitor *connectivity.Monitor
	session *session.Manager
	fleet   *fleet.Service
	reader  *bufio.Reader
}

// NewApp wires the whole client: one token store and one connectivity
// monitor shared by everything, a bare API client for the session
// manager, and a refreshing API client for the business facade.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	db, err := tokenstore.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}
	store := tokenstore.NewSQLiteStore(db)

	monitor := connectivity.New(connectivity.HTTPProbe(cfg.BaseURL, nil), log)

	policy := retryx.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		Factor:      cfg.RetryBackoffFactor,
	}

	authAPI := api.New(api.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Retry:   policy,
		Tokens:  store,
		Monitor: monitor,
		Logger:  log,
	})

	mgr := session.NewManager(session.Options{
		API:             authAPI,
		Store:           store,
		Monitor:         monitor,
		RefreshInterval: cfg.RefreshInterval,
		Logger:          log,
	})

	apiClient := api.New(api.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout,
		Retry:     policy,
		Tokens:    store,
		Monitor:   monitor,
		Refresher: mgr,
		Logger:    log,
	})

	return &App{
		config:  cfg,
		log:     log,
		db:      db,
		monitor: monitor,
		session: mgr,
		fleet:   fleet.NewService(apiClient),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the local database handle.
func (a *App) Close() error {
	return a.db.Close()
}
