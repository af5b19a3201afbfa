// Package config loads sqlview settings: named connection profiles and
// named directory sets, plus which of each the current invocation uses.
package config

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leapstack-labs/sqlview/internal/adapter"
)

// Connection is one named connection profile from the settings file.
type Connection struct {
	Type     string `koanf:"type"` // postgres (default) or duckdb
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
	Path     string `koanf:"path"` // duckdb file path
}

// Profile converts the connection to an adapter profile.
func (c Connection) Profile() adapter.Profile {
	return adapter.Profile{
		Type:     c.Type,
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		User:     c.User,
		Password: c.Password,
		SSLMode:  c.SSLMode,
		Path:     c.Path,
	}
}

// Config is the fully resolved configuration for one invocation.
type Config struct {
	// UseConnection names the connection profile to open.
	UseConnection string `koanf:"use_connection"`
	// UseDirectories names the directory sets to scan for SQL files.
	UseDirectories []string `koanf:"use_directories"`

	// Verbose raises logging to full statement text; Quiet silences
	// everything but errors. Default is step names only.
	Verbose bool `koanf:"verbose"`
	Quiet   bool `koanf:"quiet"`

	// Connections maps profile name to connection settings.
	Connections map[string]Connection `koanf:"connections"`
	// Directories maps set name to a list of directories searched
	// recursively for .sql files.
	Directories map[string][]string `koanf:"directories"`
}

// ResolveConnection returns the adapter profile for the selected
// connection name.
func (c *Config) ResolveConnection() (adapter.Profile, error) {
	name := c.UseConnection
	if name == "" {
		name = "default"
	}
	conn, ok := c.Connections[name]
	if !ok {
		return adapter.Profile{}, fmt.Errorf(
			"unrecognized connection name %q (available: %v)", name, sortedKeys(c.Connections))
	}
	return conn.Profile(), nil
}

// ResolveDirectories expands the selected directory set names into a
// flat, ordered list of directories.
func (c *Config) ResolveDirectories() ([]string, error) {
	names := c.UseDirectories
	if len(names) == 0 {
		names = []string{"default"}
	}
	var dirs []string
	for _, name := range names {
		set, ok := c.Directories[name]
		if !ok {
			return nil, fmt.Errorf(
				"unrecognized directory set %q (available: %v)", name, sortedKeys(c.Directories))
		}
		dirs = append(dirs, set...)
	}
	return dirs, nil
}

// LogLevel maps the verbosity tier to a slog level: quiet shows errors
// only, default shows step names, verbose shows statement text.
func (c *Config) LogLevel() slog.Level {
	switch {
	case c.Quiet:
		return slog.LevelError
	case c.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
