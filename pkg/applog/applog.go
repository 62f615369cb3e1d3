// Package applog provides the public API for the AppLog job application
// tracker: an App facade owning the SQLite store plus the job and template
// services. Implementation details stay internal.
package applog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/victord03/applog/internal/store"
)

// ExportStats and ImportStats report what a snapshot operation did.
type (
	ExportStats = store.ExportStats
	ImportStats = store.ImportStats
)

// Config configures an App.
type Config struct {
	// Path is the SQLite database file, created on first open.
	// ":memory:" opens a throwaway store.
	Path string
	// Logger receives structured logs. Nil disables logging.
	Logger *zerolog.Logger
}

// App bundles the services over one open store.
//
// Example:
//
//	app, err := applog.Open(applog.Config{Path: ".applog-db/applog.db"})
//	if err != nil {
//	    return err
//	}
//	defer app.Close()
//	job, err := app.Jobs.Create(ctx, map[string]any{
//	    "company_name": "Acme",
//	    "job_title":    "Backend Engineer",
//	    "job_url":      "https://acme.example/jobs/1",
//	})
type App struct {
	Jobs      *JobService
	Templates *TemplateService

	store  *store.Store
	logger zerolog.Logger
}

// Open opens or creates the store at cfg.Path and wires the services.
func Open(cfg Config) (*App, error) {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	st, err := store.Open(cfg.Path, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// Service log lines carry the short store identity for correlation.
	logger = logger.With().Str("store", shortID(st.Info().StoreID)).Logger()

	return &App{
		Jobs:      newJobService(st, logger),
		Templates: newTemplateService(st, logger),
		store:     st,
		logger:    logger,
	}, nil
}

// shortID truncates a store UUID for log fields.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Close releases the store. Close is idempotent.
func (a *App) Close() error {
	return a.store.Close()
}

// Export writes the full collection to path as a JSONL snapshot.
func (a *App) Export(ctx context.Context, path string) (ExportStats, error) {
	return a.store.ExportJSONL(ctx, path)
}

// Import restores entities from a JSONL snapshot, skipping duplicates.
func (a *App) Import(ctx context.Context, path string) (ImportStats, error) {
	return a.store.ImportJSONL(ctx, path)
}

// StoreID returns the stable identity assigned when the store was first
// created.
func (a *App) StoreID() string {
	return a.store.Info().StoreID
}
