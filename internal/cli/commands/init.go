package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configTemplate = `# sqlview configuration.
#
# Connection profiles. Select one with --connection (default: "default").
connections:
  default:
    type: postgres
    host: localhost
    port: 5432
    database: analytics
    user: postgres
    # password: ...
    # sslmode: require

# Directory sets searched recursively for .sql files.
# Select sets with --directories (default: "default").
directories:
  default:
    - views
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a sqlview.yaml and views directory",
		Example: `  # Initialize in the current directory
  sqlview init

  # Initialize a new project directory
  sqlview init my-views`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing sqlview.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "sqlview.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("sqlview.yaml already exists, use --force to overwrite")
	}
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	viewsDir := filepath.Join(dir, "views")
	if err := os.MkdirAll(viewsDir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", viewsDir, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s and %s/\n", configPath, viewsDir)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit the connection settings, add .sql files, then run: sqlview sync --all")
	return nil
}
