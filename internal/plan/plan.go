// Package plan turns user requests into ordered drop/create plans over a
// catalog and its dependency graph.
package plan

import (
	"github.com/leapstack-labs/sqlview/internal/catalog"
	"github.com/leapstack-labs/sqlview/internal/depgraph"
)

// Action is the requested operation.
type Action int

const (
	ActionSync Action = iota
	ActionSyncAll
	ActionDrop
	ActionDropAll
	ActionList
)

func (a Action) String() string {
	switch a {
	case ActionSync:
		return "sync"
	case ActionSyncAll:
		return "sync-all"
	case ActionDrop:
		return "drop"
	case ActionDropAll:
		return "drop-all"
	case ActionList:
		return "list"
	default:
		return "unknown"
	}
}

// Request describes what the user asked for. Names are object names;
// Files are source-file filters that resolve to the names defined in
// those files.
type Request struct {
	Action Action
	Names  []string
	Files  []string
}

// Op is a single plan step's operation.
type Op int

const (
	OpDrop Op = iota
	OpCreate
)

func (o Op) String() string {
	if o == OpCreate {
		return "create"
	}
	return "drop"
}

// Step is one DROP or CREATE against a specific definition.
type Step struct {
	Op  Op
	Def *catalog.Definition
}

// SQL returns the statement this step executes.
func (s Step) SQL() string {
	if s.Op == OpCreate {
		return s.Def.CreateSQL
	}
	return s.Def.DropSQL()
}

// Plan is an ordered list of steps, consumed once by the executor.
type Plan struct {
	Steps []Step
}

// Build translates a request into a plan. Every name and file filter is
// resolved against the catalog before any ordering work; a miss fails
// with an UnknownObjectError. A cycle among the objects the plan would
// touch surfaces as a depgraph.CycleError.
func Build(cat *catalog.Catalog, g *depgraph.Graph, req Request) (*Plan, error) {
	if req.Action == ActionList {
		return &Plan{}, nil
	}

	var affected []string
	switch req.Action {
	case ActionSyncAll, ActionDropAll:
		affected = cat.Names()
	default:
		targets, err := resolveTargets(cat, req)
		if err != nil {
			return nil, err
		}
		affected = g.TransitiveDependents(targets)
	}

	createOrder, err := g.TopoOrder(affected)
	if err != nil {
		return nil, err
	}

	p := &Plan{}
	// Drops run in reverse-dependency order: tear down dependents first.
	for i := len(createOrder) - 1; i >= 0; i-- {
		p.Steps = append(p.Steps, Step{Op: OpDrop, Def: cat.Get(createOrder[i])})
	}
	if req.Action == ActionSync || req.Action == ActionSyncAll {
		for _, name := range createOrder {
			p.Steps = append(p.Steps, Step{Op: OpCreate, Def: cat.Get(name)})
		}
	}
	return p, nil
}

// resolveTargets expands request names and file filters into catalog
// names, preserving request order and dropping duplicates.
func resolveTargets(cat *catalog.Catalog, req Request) ([]string, error) {
	seen := make(map[string]bool)
	var targets []string

	addName := func(name string) {
		if !seen[name] {
			seen[name] = true
			targets = append(targets, name)
		}
	}

	for _, raw := range req.Names {
		name := catalog.NormalizeName(raw)
		if !cat.Has(name) {
			return nil, &UnknownObjectError{Name: raw}
		}
		addName(name)
	}
	for _, file := range req.Files {
		names := cat.DefinedIn(file)
		if len(names) == 0 {
			return nil, &UnknownObjectError{Name: file, IsFile: true}
		}
		for _, name := range names {
			addName(name)
		}
	}
	return targets, nil
}
