package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlview/internal/plan"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managed views and functions with their dependencies",
		Long: `List shows the catalog built from the configured source directories:
every view and function, where it is defined, and which other managed
objects it depends on. No database connection is opened.`,
		Example: `  # Tabular listing
  sqlview list

  # Machine-readable listing
  sqlview list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := getRuntime(cmd)
			cat, graph, err := loadCatalog(rt)
			if err != nil {
				return err
			}

			infos := plan.Describe(cat, graph)
			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Name", "Kind", "Source", "Depends On"})
			for i, info := range infos {
				t.AppendRow(table.Row{
					i + 1,
					info.Name,
					info.Kind,
					info.SourceFile,
					strings.Join(info.DependsOn, ", "),
				})
			}
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table|json)")

	return cmd
}
