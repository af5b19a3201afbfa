package plan

import (
	"github.com/leapstack-labs/sqlview/internal/catalog"
	"github.com/leapstack-labs/sqlview/internal/depgraph"
)

// ObjectInfo is one row of the list output: a catalog entry with its
// direct dependencies. JSON tags keep the machine-readable form stable.
type ObjectInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	SourceFile string   `json:"source_file"`
	DependsOn  []string `json:"depends_on"`
}

// Describe summarizes the catalog and graph in catalog order. It performs
// no graph mutation and never fails.
func Describe(cat *catalog.Catalog, g *depgraph.Graph) []ObjectInfo {
	out := make([]ObjectInfo, 0, cat.Len())
	for _, def := range cat.Definitions() {
		deps := g.Dependencies(def.Name)
		dependsOn := make([]string, len(deps))
		copy(dependsOn, deps)
		out = append(out, ObjectInfo{
			Name:       def.Name,
			Kind:       def.Kind.String(),
			SourceFile: def.SourceFile,
			DependsOn:  dependsOn,
		})
	}
	return out
}
