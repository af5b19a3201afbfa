// Package source discovers SQL files on disk and loads them for
// extraction.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlview/internal/catalog"
)

// Discover walks each directory recursively and returns the contents of
// every .sql file. Directories are visited in the given order and files
// within a directory in lexical order, so the resulting catalog order is
// stable across runs.
func Discover(dirs []string) ([]catalog.Source, error) {
	var sources []catalog.Source
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("source directory %s: %w", dir, err)
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".sql") {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			sources = append(sources, catalog.Source{Path: path, SQL: string(content)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}
