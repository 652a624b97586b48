// Package app is the composition root a UI embeds: it wires storage,
// session, notifications, the HTTP client, and the per-entity stores into
// one explicitly-passed context object, so nothing in the module relies on
// ambient singletons.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/api"
	"tally/internal/config"
	"tally/internal/log"
	"tally/internal/notify"
	"tally/internal/session"
	"tally/internal/settings"
	"tally/internal/storage"
	"tally/internal/store"
)

// App bundles the client layer's state. Construct one per process with New
// and pass it to the UI.
type App struct {
	Config        *config.Config
	Logger        *log.Logger
	Session       *session.Session
	Notifications *notify.Queue
	Client        *api.Client
	Settings      *settings.Settings

	Tags         *store.Tags
	Transactions *store.Transactions
	Recurring    *store.Recurring
	Reports      *store.Reports

	closer io.Closer
}

// Options are the injectable collaborators.
type Options struct {
	// Storage overrides the SQLite store (tests use storage.NewMemory).
	Storage storage.KeyValue
	// NavigateToLogin is invoked when a request comes back 401 and the
	// session has been cleared; the UI routes to its login view.
	NavigateToLogin func()
	// Logger overrides the default text logger.
	Logger *log.Logger
}

// New validates cfg and wires the full client layer. The session is
// restored from storage so an API key from a previous run survives.
func New(cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentApp})
	}

	var closer io.Closer
	kv := opts.Storage
	if kv == nil {
		sq, err := storage.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		kv = sq
		closer = sq
	}

	sess := session.New(kv)
	if err := sess.LoadFromStorage(); err != nil {
		logger.Warn("restore session", log.FieldError, err)
	}

	prefs := settings.New(kv)
	if err := prefs.LoadFromStorage(); err != nil {
		logger.Warn("restore settings", log.FieldError, err)
	}

	queue := notify.NewQueue()
	client := api.New(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	}, sess, queue, opts.NavigateToLogin, logger)

	tags := store.NewTags(client, logger)
	app := &App{
		Config:        cfg,
		Logger:        logger,
		Session:       sess,
		Notifications: queue,
		Client:        client,
		Settings:      prefs,
		Tags:          tags,
		Transactions:  store.NewTransactions(client, tags, logger),
		Recurring:     store.NewRecurring(client, logger),
		Reports:       store.NewReports(client, logger),
		closer:        closer,
	}
	return app, nil
}

// RefreshAll repopulates every store. Tags load first because transaction
// normalization resolves tag ids against their list; the rest load
// concurrently. Entity-store failures surface as empty lists per their
// contract; only the reports fetch can return an error.
func (a *App) RefreshAll(ctx context.Context) error {
	a.Tags.Fetch(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Transactions.Fetch(ctx)
		return nil
	})
	g.Go(func() error {
		a.Recurring.Fetch(ctx)
		return nil
	})
	g.Go(func() error {
		_, err := a.Reports.FetchMonth(ctx, store.MonthKey(time.Now()))
		return err
	})
	return g.Wait()
}

// Close releases the underlying storage, if this App owns one.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
