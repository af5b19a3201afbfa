package commands

import (
	"github.com/leapstack-labs/sqlview/internal/plan"
	"github.com/spf13/cobra"
)

// NewDropCommand creates the drop command.
func NewDropCommand() *cobra.Command {
	var all bool
	var files []string

	cmd := &cobra.Command{
		Use:   "drop [names...]",
		Short: "Drop views/functions and everything that depends on them",
		Long: `Drop removes the named objects together with their transitive
dependents, in reverse dependency order, without recreating anything.
All drops run inside one transaction.`,
		Example: `  # Drop a view and its dependents
  sqlview drop daily_totals

  # Drop every object defined in a file
  sqlview drop --file reporting.sql

  # Drop the whole catalog
  sqlview drop --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTargets(all, args, files); err != nil {
				return err
			}
			action := plan.ActionDrop
			if all {
				action = plan.ActionDropAll
			}
			return runPlanned(cmd, plan.Request{Action: action, Names: args, Files: files})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Drop every object in the catalog")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Drop the objects defined in a source file (repeatable)")

	return cmd
}
