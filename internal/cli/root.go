// Package cli provides the command-line interface for sqlview.
package cli

import (
	"log/slog"

	"github.com/leapstack-labs/sqlview/internal/cli/commands"
	"github.com/leapstack-labs/sqlview/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlview",
		Short: "sqlview - dependency-aware SQL view and function sync",
		Long: `sqlview keeps a database schema in sync with view and function
definitions kept in SQL source files.

It scans configured directories for definitions, infers the dependency
graph between them, and applies drops and creates in a safe order inside
a single transaction: either every step lands or nothing changes.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.LogLevel(),
			}))

			cmd.SetContext(commands.WithRuntime(cmd.Context(), &commands.Runtime{
				Config: cfg,
				Logger: logger,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlview.yaml, searched upward)")
	rootCmd.PersistentFlags().StringP("connection", "c", "", "Connection profile name (default: \"default\")")
	rootCmd.PersistentFlags().StringSliceP("directories", "d", nil, "Directory set names to scan (default: \"default\")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log full statement text")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Log errors only")

	rootCmd.AddCommand(commands.NewSyncCommand())
	rootCmd.AddCommand(commands.NewDropCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewDAGCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))

	return rootCmd
}
