package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqlview/internal/plan"
	"github.com/spf13/cobra"
)

// debounceWindow coalesces bursts of filesystem events (editors often
// write several times per save) into one resync.
const debounceWindow = 500 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch source directories and resync on change",
		Long: `Watch runs a full sync, then keeps watching the configured directories
for .sql changes and resyncs the whole catalog after each change. A
failed resync is reported and watching continues; resyncs never overlap.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command) error {
	rt := getRuntime(cmd)
	ctx := cmd.Context()

	dirs, err := rt.Config.ResolveDirectories()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watchRecursive(watcher, dir); err != nil {
			return err
		}
	}

	resync := func() {
		if err := runPlanned(cmd, plan.Request{Action: plan.ActionSyncAll}); err != nil {
			rt.Logger.Error("sync failed", "error", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes\n", strings.Join(dirs, ", "))
	resync()

	// The stopped timer is our debounce: each relevant event rearms it.
	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch before files inside
			// them produce events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}
			if strings.EqualFold(filepath.Ext(event.Name), ".sql") {
				rt.Logger.Debug("source changed", "file", event.Name, "op", event.Op.String())
				timer.Reset(debounceWindow)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rt.Logger.Error("watch error", "error", err)
		case <-timer.C:
			resync()
		}
	}
}

// watchRecursive adds dir and every subdirectory to the watcher. A
// non-directory path is ignored.
func watchRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
