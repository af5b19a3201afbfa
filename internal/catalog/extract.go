package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// Source is one SQL input scanned for definitions. Path is kept for
// error attribution only; discovery of files is the caller's concern.
type Source struct {
	Path string
	SQL  string
}

// Definition markers. A statement is managed when, after comment and
// literal scrubbing, it opens with one of these. Everything else in a
// source file (tables, grants, plain queries) is ignored.
var (
	headPattern = regexp.MustCompile(`(?is)^\s*create\s+(?:or\s+replace\s+)?(view|function)\b(.*)`)
	namePattern = regexp.MustCompile(`^\s*((?:"[^"]+"|[A-Za-z_][A-Za-z0-9_$]*)(?:\.(?:"[^"]+"|[A-Za-z_][A-Za-z0-9_$]*))*)`)
)

// Extract scans the given sources, in order, and produces the catalog of
// view and function definitions. It fails with a ParseError when a
// definition's name cannot be determined or when the same name is defined
// twice anywhere in the set.
func Extract(sources []Source) (*Catalog, error) {
	cat := NewCatalog()
	for _, src := range sources {
		for _, stmt := range splitStatements(src.SQL) {
			scrubbed := ScrubSQL(stmt.text)
			head := headPattern.FindStringSubmatch(scrubbed)
			if head == nil {
				continue
			}

			kind := KindView
			if strings.EqualFold(head[1], "function") {
				kind = KindFunction
			}

			nm := namePattern.FindStringSubmatch(head[2])
			if nm == nil {
				return nil, &ParseError{
					File: src.Path,
					Line: stmt.startLine,
					Msg:  fmt.Sprintf("cannot determine %s name", kind),
				}
			}

			def := &Definition{
				Name:       NormalizeName(nm[1]),
				Kind:       kind,
				SourceFile: src.Path,
				Span:       Span{StartLine: stmt.startLine, EndLine: stmt.endLine},
				CreateSQL:  stmt.text,
			}
			if err := cat.add(def); err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

// NormalizeName lowercases an identifier and strips quoting, so lookups
// and dependency matching are case-insensitive. Schema qualification is
// preserved ("Reporting"."Daily" becomes reporting.daily).
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, `"`, "")
	return strings.ToLower(strings.TrimSpace(name))
}
