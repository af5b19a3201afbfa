package depgraph

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlview/internal/catalog"
)

// ReferenceScanner determines which of the candidate names a definition's
// text references. The graph layer is independent of the strategy; a SQL
// AST walk could replace the default token scan without touching any
// ordering code.
type ReferenceScanner interface {
	References(def *catalog.Definition, candidates []string) []string
}

// TokenScanner is the default ReferenceScanner. It scrubs comments and
// string literals from the definition, tokenizes the remainder into
// identifiers (dotted chains kept whole), and matches candidates
// case-insensitively as whole tokens. A qualified token also matches an
// unqualified candidate via its final component, so "public.users"
// references a catalog entry named "users". Substrings of longer
// identifiers never match.
type TokenScanner struct{}

var identPattern = regexp.MustCompile(`(?:"[^"]+"|[A-Za-z_][A-Za-z0-9_$]*)(?:\.(?:"[^"]+"|[A-Za-z_][A-Za-z0-9_$]*))*`)

// References returns the candidates referenced by def, in candidate order.
// def's own name never counts.
func (TokenScanner) References(def *catalog.Definition, candidates []string) []string {
	tokens := make(map[string]bool)
	for _, tok := range identPattern.FindAllString(catalog.ScrubSQL(def.CreateSQL), -1) {
		norm := catalog.NormalizeName(tok)
		tokens[norm] = true
		if i := strings.LastIndexByte(norm, '.'); i >= 0 {
			tokens[norm[i+1:]] = true
		}
	}

	var refs []string
	for _, cand := range candidates {
		if cand == def.Name {
			continue
		}
		if tokens[cand] {
			refs = append(refs, cand)
		}
	}
	return refs
}

// Build constructs the dependency graph for a catalog. A nil scanner uses
// the default TokenScanner. Building never fails: references to names
// outside the catalog are assumed to be base tables or other external
// objects and produce no edge, and self-references are dropped.
func Build(cat *catalog.Catalog, scanner ReferenceScanner) *Graph {
	if scanner == nil {
		scanner = TokenScanner{}
	}

	g := NewGraph()
	names := cat.Names()
	for _, name := range names {
		g.AddNode(name)
	}
	for _, def := range cat.Definitions() {
		for _, ref := range scanner.References(def, names) {
			if ref == def.Name {
				continue
			}
			// Endpoints are guaranteed catalog names; AddEdge cannot fail.
			_ = g.AddEdge(ref, def.Name)
		}
	}
	return g
}
