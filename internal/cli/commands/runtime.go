package commands

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/leapstack-labs/sqlview/internal/adapter"
	"github.com/leapstack-labs/sqlview/internal/catalog"
	"github.com/leapstack-labs/sqlview/internal/config"
	"github.com/leapstack-labs/sqlview/internal/depgraph"
	"github.com/leapstack-labs/sqlview/internal/source"
	"github.com/spf13/cobra"
)

// Runtime carries what every command needs once the root command has
// loaded configuration.
type Runtime struct {
	Config *config.Config
	Logger *slog.Logger
}

type runtimeKey struct{}

// WithRuntime returns a context carrying the runtime.
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// getRuntime extracts the runtime stored by the root command.
func getRuntime(cmd *cobra.Command) *Runtime {
	if rt, ok := cmd.Context().Value(runtimeKey{}).(*Runtime); ok {
		return rt
	}
	// Commands are only reachable through the root command, which always
	// stores a runtime; this covers direct construction in tests.
	return &Runtime{Config: &config.Config{}, Logger: slog.New(slog.DiscardHandler)}
}

// loadCatalog scans the configured directories and materializes the
// catalog and its dependency graph. Both are rebuilt from source on every
// invocation; nothing is persisted between runs.
func loadCatalog(rt *Runtime) (*catalog.Catalog, *depgraph.Graph, error) {
	dirs, err := rt.Config.ResolveDirectories()
	if err != nil {
		return nil, nil, err
	}
	sources, err := source.Discover(dirs)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Extract(sources)
	if err != nil {
		return nil, nil, err
	}
	graph := depgraph.Build(cat, nil)
	rt.Logger.Debug("catalog loaded",
		"objects", cat.Len(),
		"edges", graph.EdgeCount(),
		"files", len(sources))
	return cat, graph, nil
}

// openDB opens the configured connection profile.
func openDB(ctx context.Context, rt *Runtime) (*sql.DB, error) {
	profile, err := rt.Config.ResolveConnection()
	if err != nil {
		return nil, err
	}
	return adapter.Open(ctx, profile, rt.Logger)
}
