// Package catalog extracts view and function definitions from SQL source
// files and holds them as an ordered, name-unique catalog.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies what sort of database object a definition creates.
// The set is closed: views and functions use different DDL syntax and
// nothing else is managed.
type Kind int

const (
	KindView Kind = iota
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is the line range a definition occupies in its source file.
// Lines are 1-based and inclusive.
type Span struct {
	StartLine int
	EndLine   int
}

func (s Span) String() string {
	if s.StartLine == s.EndLine {
		return fmt.Sprintf("line %d", s.StartLine)
	}
	return fmt.Sprintf("lines %d-%d", s.StartLine, s.EndLine)
}

// Definition is one view or function found while scanning sources.
// It is immutable after extraction.
type Definition struct {
	// Name is the object name, lowercased, with quoting stripped.
	// May be schema-qualified ("reporting.daily_totals").
	Name string
	// Kind is view or function.
	Kind Kind
	// SourceFile is the path the definition came from, for error attribution.
	SourceFile string
	// Span is the defining statement's line range within SourceFile.
	Span Span
	// CreateSQL is the verbatim defining statement, including whatever
	// OR REPLACE qualifiers the author wrote. Never rewritten.
	CreateSQL string
}

// DropSQL derives the removal statement from kind and name alone; it does
// not depend on the original source text.
func (d *Definition) DropSQL() string {
	switch d.Kind {
	case KindFunction:
		return fmt.Sprintf("DROP FUNCTION IF EXISTS %s CASCADE", d.Name)
	default:
		return fmt.Sprintf("DROP VIEW IF EXISTS %s CASCADE", d.Name)
	}
}

// Catalog is the set of definitions extracted in one invocation.
// Insertion order is first-seen order during extraction and is the
// tie-break order for all downstream planning, so repeated runs over
// unchanged input produce identical plans.
type Catalog struct {
	byName map[string]*Definition
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Definition)}
}

// add inserts a definition, rejecting duplicate names across the whole catalog.
func (c *Catalog) add(def *Definition) error {
	if prev, ok := c.byName[def.Name]; ok {
		return &ParseError{
			File: def.SourceFile,
			Line: def.Span.StartLine,
			Msg: fmt.Sprintf("%s %q already defined in %s (%s)",
				prev.Kind, def.Name, prev.SourceFile, prev.Span),
		}
	}
	c.byName[def.Name] = def
	c.order = append(c.order, def.Name)
	return nil
}

// Get returns the definition for a name, or nil if absent.
// Lookup is case-insensitive.
func (c *Catalog) Get(name string) *Definition {
	return c.byName[strings.ToLower(name)]
}

// Has reports whether a name is in the catalog.
func (c *Catalog) Has(name string) bool {
	return c.Get(name) != nil
}

// Names returns all names in insertion order. The slice is a copy.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Definitions returns all definitions in insertion order.
func (c *Catalog) Definitions() []*Definition {
	out := make([]*Definition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.order)
}

// DefinedIn returns the names defined in the given source file, in
// insertion order. The argument matches on exact path or on basename, so
// "views/users.sql" and "users.sql" both resolve the same file.
func (c *Catalog) DefinedIn(file string) []string {
	var out []string
	for _, name := range c.order {
		def := c.byName[name]
		if def.SourceFile == file || filepath.Base(def.SourceFile) == file {
			out = append(out, name)
		}
	}
	return out
}
