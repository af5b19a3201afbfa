package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewDAGCommand creates the dag command.
func NewDAGCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dag",
		Short: "Show the dependency graph",
		Long: `Dag prints every managed object with what it depends on and what is
built on top of it, in catalog order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := getRuntime(cmd)
			cat, graph, err := loadCatalog(rt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Dependency graph:")
			fmt.Fprintln(out)
			for _, def := range cat.Definitions() {
				fmt.Fprintf(out, "  %s [%s]\n", def.Name, def.Kind)
				if deps := graph.Dependencies(def.Name); len(deps) > 0 {
					fmt.Fprintf(out, "    depends on: %s\n", strings.Join(deps, ", "))
				}
				if users := graph.Dependents(def.Name); len(users) > 0 {
					fmt.Fprintf(out, "    used by: %s\n", strings.Join(users, ", "))
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Total: %d objects, %d dependencies\n",
				graph.NodeCount(), graph.EdgeCount())
			return nil
		},
	}

	return cmd
}
