package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlview/internal/executor"
	"github.com/leapstack-labs/sqlview/internal/plan"
	"github.com/spf13/cobra"
)

// runPlanned is the shared pipeline behind sync and drop: load the
// catalog, build the plan, open the connection, and apply everything in
// one transaction.
func runPlanned(cmd *cobra.Command, req plan.Request) error {
	rt := getRuntime(cmd)

	cat, graph, err := loadCatalog(rt)
	if err != nil {
		return err
	}

	p, err := plan.Build(cat, graph, req)
	if err != nil {
		return err
	}
	if len(p.Steps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do")
		return nil
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, rt)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := executor.New(db, rt.Logger).Apply(ctx, p)
	if err != nil {
		return err
	}

	var drops, creates int
	for _, rec := range records {
		if rec.Op == plan.OpCreate {
			creates++
		} else {
			drops++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d steps (%d dropped, %d created)\n",
		len(records), drops, creates)
	return nil
}

// validateTargets enforces that exactly one targeting mode is used.
func validateTargets(all bool, names, files []string) error {
	if all && (len(names) > 0 || len(files) > 0) {
		return fmt.Errorf("--all cannot be combined with names or --file")
	}
	if !all && len(names) == 0 && len(files) == 0 {
		return fmt.Errorf("specify object names, --file, or --all")
	}
	return nil
}
