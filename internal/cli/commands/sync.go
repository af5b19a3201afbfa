package commands

import (
	"github.com/leapstack-labs/sqlview/internal/plan"
	"github.com/spf13/cobra"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	var all bool
	var files []string

	cmd := &cobra.Command{
		Use:   "sync [names...]",
		Short: "Drop and recreate views/functions and everything that depends on them",
		Long: `Sync brings the named objects and their transitive dependents to their
latest source definitions.

Every dependent is torn down and rebuilt even if its own text is
unchanged, because a target's new shape may be incompatible with the
dependent's previous plan. All drops and creates run inside one
transaction: on any failure the schema is left exactly as it was.`,
		Example: `  # Sync one view and everything built on it
  sqlview sync daily_totals

  # Sync every object defined in a file
  sqlview sync --file reporting.sql

  # Sync the whole catalog
  sqlview sync --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTargets(all, args, files); err != nil {
				return err
			}
			action := plan.ActionSync
			if all {
				action = plan.ActionSyncAll
			}
			return runPlanned(cmd, plan.Request{Action: action, Names: args, Files: files})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Sync every object in the catalog")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Sync the objects defined in a source file (repeatable)")

	return cmd
}
