// Shared helpers for applog CLI commands.
package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/victord03/applog/pkg/applog"
	"github.com/victord03/applog/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "applog.db"

// userErrors lists the validation sentinels that map to exit code 1.
// Everything else coming back from the services is a system error.
var userErrors = []error{
	types.ErrEmptyData,
	types.ErrUnknownField,
	types.ErrInvalidStatus,
	types.ErrInvalidValue,
	types.ErrNameRequired,
	types.ErrContentRequired,
	types.ErrDuplicateURL,
}

// validStatusesStr is a comma-separated list of valid statuses for error output.
var validStatusesStr = statusList()

// openApp resolves the data directory and opens the application services
// over the store inside it. The caller must defer app.Close().
func openApp() (*applog.App, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logger := newLogger()
	app, err := applog.Open(applog.Config{
		Path:   filepath.Join(dataDir, dbFileName),
		Logger: &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return app, nil
}

// isUserError reports whether err wraps one of the validation sentinels.
func isUserError(err error) bool {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// parseID converts a positional id argument to an int64 key.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q (expected a positive integer)", arg)
	}
	return id, nil
}

// statusList renders the valid statuses in declaration order.
func statusList() string {
	statuses := types.Statuses()
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}
