// Package depgraph builds and queries the dependency graph over a catalog
// of view and function definitions. It supports transitive dependent
// closure and topological ordering with cycle detection, which together
// determine safe drop/create orderings.
package depgraph

import "fmt"

// Graph is a directed graph over catalog object names. An edge from a to
// b means b depends on a (b's definition references a). Node order is the
// catalog's first-seen order and is the tie-break for every query, so
// unchanged input always yields identical orderings.
type Graph struct {
	nodes      map[string]bool
	order      []string
	dependents map[string][]string // a -> names whose definitions reference a
	dependsOn  map[string][]string // b -> names b's definition references
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[string]bool),
		dependents: make(map[string][]string),
		dependsOn:  make(map[string][]string),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodes[name] {
		return
	}
	g.nodes[name] = true
	g.order = append(g.order, name)
	g.dependents[name] = []string{}
	g.dependsOn[name] = []string{}
}

// AddEdge records that dependent's definition references dependency.
// Both endpoints must already be nodes; self-loops are rejected.
func (g *Graph) AddEdge(dependency, dependent string) error {
	if !g.nodes[dependency] {
		return fmt.Errorf("unknown node %q", dependency)
	}
	if !g.nodes[dependent] {
		return fmt.Errorf("unknown node %q", dependent)
	}
	if dependency == dependent {
		return fmt.Errorf("self-reference on %q", dependency)
	}
	if !contains(g.dependents[dependency], dependent) {
		g.dependents[dependency] = append(g.dependents[dependency], dependent)
	}
	if !contains(g.dependsOn[dependent], dependency) {
		g.dependsOn[dependent] = append(g.dependsOn[dependent], dependency)
	}
	return nil
}

// Has reports whether name is a node.
func (g *Graph) Has(name string) bool {
	return g.nodes[name]
}

// Nodes returns all node names in catalog order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependencies returns the names the given object directly references.
func (g *Graph) Dependencies(name string) []string {
	return g.dependsOn[name]
}

// Dependents returns the names whose definitions directly reference the
// given object.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, deps := range g.dependents {
		count += len(deps)
	}
	return count
}

// TransitiveDependents returns the smallest set containing names that is
// closed under "depends on me": everything that would break if any member
// were dropped. The result is in catalog order. Names not in the graph
// are ignored.
func (g *Graph) TransitiveDependents(names []string) []string {
	member := make(map[string]bool)

	var mark func(name string)
	mark = func(name string) {
		if member[name] {
			return
		}
		member[name] = true
		for _, dep := range g.dependents[name] {
			mark(dep)
		}
	}

	for _, name := range names {
		if g.nodes[name] {
			mark(name)
		}
	}

	return g.inCatalogOrder(member)
}

// TopoOrder returns the members of nodeSet ordered so every dependency
// precedes its dependents, considering only edges between members of the
// set. This is the CREATE order; its reverse is the DROP order. A cycle
// within the induced subgraph fails with a CycleError naming its members.
func (g *Graph) TopoOrder(nodeSet []string) ([]string, error) {
	in := make(map[string]bool, len(nodeSet))
	for _, n := range nodeSet {
		if g.nodes[n] {
			in[n] = true
		}
	}

	const (
		white = iota // unvisited
		gray         // on the current DFS path
		black        // done
	)
	state := make(map[string]int, len(in))
	var order []string
	var stack []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		state[name] = gray
		stack = append(stack, name)
		for _, dep := range g.dependsOn[name] {
			if !in[dep] {
				continue
			}
			switch state[dep] {
			case white:
				if visit(dep) {
					return true
				}
			case gray:
				// Reconstruct the cycle from the DFS path.
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == dep {
						cycle = append(cycle, stack[i:]...)
						break
					}
				}
				return true
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = black
		order = append(order, name)
		return false
	}

	for _, name := range g.inCatalogOrder(in) {
		if state[name] == white {
			if visit(name) {
				return nil, &CycleError{Members: cycle}
			}
		}
	}
	return order, nil
}

// inCatalogOrder filters the graph's insertion order down to the members
// of the given set.
func (g *Graph) inCatalogOrder(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, name := range g.order {
		if set[name] {
			out = append(out, name)
		}
	}
	return out
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
