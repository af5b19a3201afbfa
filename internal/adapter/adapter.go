// Package adapter opens database connections for named connection
// profiles. Profiles map to a registered driver by type; postgres is the
// primary target, duckdb covers local development against a file.
package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
)

// Profile holds one connection's settings, resolved from configuration.
type Profile struct {
	// Type selects the driver: "postgres" (default) or "duckdb".
	Type string

	// Network databases.
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string

	// File-based databases (DuckDB). Empty means in-memory.
	Path string
}

// dsnFunc builds the driver name and DSN for a profile.
type dsnFunc func(Profile) (driver, dsn string)

var drivers = map[string]dsnFunc{
	"postgres": postgresDSN,
	"duckdb":   duckdbDSN,
}

// Types returns the registered profile types, sorted.
func Types() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens and pings a connection for the profile. The caller owns the
// returned handle. If logger is nil, a discard logger is used.
func Open(ctx context.Context, p Profile, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	typ := p.Type
	if typ == "" {
		typ = "postgres"
	}
	build, ok := drivers[typ]
	if !ok {
		return nil, &UnknownTypeError{Type: typ, Available: Types()}
	}

	driver, dsn := build(p)
	logger.Debug("opening connection", "type", typ, "database", p.Database)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", typ, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", typ, err)
	}
	return db, nil
}

// UnknownTypeError is returned when a profile names an unregistered type.
type UnknownTypeError struct {
	Type      string
	Available []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown connection type %q (available: %v)", e.Type, e.Available)
}
