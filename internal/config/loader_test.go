package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
connections:
  default:
    type: postgres
    host: localhost
    port: 5432
    database: app
    user: app
  analytics:
    type: duckdb
    path: analytics.duckdb
directories:
  default:
    - views
  reporting:
    - reports/views
    - reports/functions
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "sqlview.yaml", sampleConfig)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.UseConnection)
	assert.Equal(t, []string{"default"}, cfg.UseDirectories)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Quiet)

	profile, err := cfg.ResolveConnection()
	require.NoError(t, err)
	assert.Equal(t, "postgres", profile.Type)
	assert.Equal(t, "app", profile.Database)

	dirs, err := cfg.ResolveDirectories()
	require.NoError(t, err)
	assert.Equal(t, []string{"views"}, dirs)
}

func TestLoad_FindsConfigFileUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "sqlview.yaml", sampleConfig)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Contains(t, cfg.Connections, "analytics")
}

func TestLoad_AcceptsYmlExtension(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "sqlview.yml", sampleConfig)
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Contains(t, cfg.Connections, "default")
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_NoConfigFileStillLoadsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.UseConnection)
	assert.Empty(t, cfg.Connections)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "sqlview.yaml", sampleConfig)
	t.Setenv("SQLVIEW_USE_CONNECTION", "analytics")
	t.Setenv("SQLVIEW_VERBOSE", "true")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "analytics", cfg.UseConnection)
	assert.True(t, cfg.Verbose)

	profile, err := cfg.ResolveConnection()
	require.NoError(t, err)
	assert.Equal(t, "duckdb", profile.Type)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "sqlview.yaml", sampleConfig)
	t.Setenv("SQLVIEW_USE_CONNECTION", "analytics")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("connection", "c", "", "")
	flags.StringSliceP("directories", "d", nil, "")
	flags.BoolP("quiet", "q", false, "")
	require.NoError(t, flags.Parse([]string{"-c", "default", "-d", "reporting", "-q"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.UseConnection)
	assert.Equal(t, []string{"reporting"}, cfg.UseDirectories)
	assert.True(t, cfg.Quiet)

	dirs, err := cfg.ResolveDirectories()
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/views", "reports/functions"}, dirs)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "sqlview.yaml", sampleConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("connection", "c", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.UseConnection)
}

func TestResolveConnection_UnknownName(t *testing.T) {
	cfg := &Config{
		UseConnection: "staging",
		Connections:   map[string]Connection{"default": {}, "prod": {}},
	}
	_, err := cfg.ResolveConnection()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"staging"`)
	assert.Contains(t, err.Error(), "default")
	assert.Contains(t, err.Error(), "prod")
}

func TestResolveDirectories_UnknownSet(t *testing.T) {
	cfg := &Config{
		UseDirectories: []string{"nope"},
		Directories:    map[string][]string{"default": {"views"}},
	}
	_, err := cfg.ResolveDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{}).LogLevel())
	assert.Equal(t, slog.LevelDebug, (&Config{Verbose: true}).LogLevel())
	assert.Equal(t, slog.LevelError, (&Config{Quiet: true}).LogLevel())
	// Quiet wins when both are set.
	assert.Equal(t, slog.LevelError, (&Config{Verbose: true, Quiet: true}).LogLevel())
}
