package depgraph

import (
	"reflect"
	"testing"

	"github.com/leapstack-labs/sqlview/internal/catalog"
)

func mustExtract(t *testing.T, sources []catalog.Source) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Extract(sources)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return cat
}

func TestTokenScanner_WholeTokenOnly(t *testing.T) {
	def := &catalog.Definition{
		Name:      "report",
		CreateSQL: "CREATE VIEW report AS SELECT * FROM users JOIN user_settings ON true",
	}
	// "user" is a substring of both "users" and "user_settings" but a
	// whole token of neither.
	got := TokenScanner{}.References(def, []string{"user", "users", "report"})
	if !reflect.DeepEqual(got, []string{"users"}) {
		t.Errorf("References = %v, want [users]", got)
	}
}

func TestTokenScanner_CaseInsensitive(t *testing.T) {
	def := &catalog.Definition{
		Name:      "v",
		CreateSQL: "CREATE VIEW v AS SELECT * FROM Daily_Totals",
	}
	got := TokenScanner{}.References(def, []string{"daily_totals"})
	if !reflect.DeepEqual(got, []string{"daily_totals"}) {
		t.Errorf("References = %v", got)
	}
}

func TestTokenScanner_IgnoresCommentsAndLiterals(t *testing.T) {
	def := &catalog.Definition{
		Name: "v",
		CreateSQL: "CREATE VIEW v AS -- uses old_view\n" +
			"SELECT 'old_view' AS label, x FROM base /* old_view */",
	}
	if got := (TokenScanner{}).References(def, []string{"old_view"}); len(got) != 0 {
		t.Errorf("names inside comments/literals must not count: %v", got)
	}
}

func TestTokenScanner_QualifiedReferenceMatchesUnqualifiedName(t *testing.T) {
	def := &catalog.Definition{
		Name:      "v",
		CreateSQL: "CREATE VIEW v AS SELECT * FROM public.users",
	}
	got := TokenScanner{}.References(def, []string{"users"})
	if !reflect.DeepEqual(got, []string{"users"}) {
		t.Errorf("References = %v, want [users]", got)
	}
}

func TestTokenScanner_SelfReferenceIgnored(t *testing.T) {
	def := &catalog.Definition{
		Name:      "recursive",
		CreateSQL: "CREATE VIEW recursive AS SELECT * FROM recursive WHERE depth < 5",
	}
	if got := (TokenScanner{}).References(def, []string{"recursive"}); len(got) != 0 {
		t.Errorf("self-reference must not count: %v", got)
	}
}

func TestBuild_ChainGraph(t *testing.T) {
	cat := mustExtract(t, []catalog.Source{{Path: "v.sql", SQL: `
CREATE VIEW a AS SELECT * FROM base_table;
CREATE VIEW b AS SELECT * FROM a;
CREATE VIEW c AS SELECT * FROM b;
`}})

	g := Build(cat, nil)

	if g.NodeCount() != 3 {
		t.Fatalf("node count = %d", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("edge count = %d (base_table must not be an edge)", g.EdgeCount())
	}
	if !reflect.DeepEqual(g.Dependencies("b"), []string{"a"}) {
		t.Errorf("b dependencies = %v", g.Dependencies("b"))
	}
	if !reflect.DeepEqual(g.Dependents("a"), []string{"b"}) {
		t.Errorf("a dependents = %v", g.Dependents("a"))
	}
}

func TestBuild_UnknownReferencesProduceNoEdges(t *testing.T) {
	cat := mustExtract(t, []catalog.Source{{Path: "v.sql", SQL: `
CREATE VIEW lonely AS SELECT * FROM some_external_table, another.schema_table;
`}})

	g := Build(cat, nil)
	if g.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0", g.EdgeCount())
	}
}

func TestBuild_FunctionDependencies(t *testing.T) {
	cat := mustExtract(t, []catalog.Source{{Path: "v.sql", SQL: `
CREATE VIEW totals AS SELECT day, amount FROM ledger;
CREATE FUNCTION totals_for(d date) RETURNS numeric AS $$
  SELECT sum(amount) FROM totals WHERE day = d;
$$ LANGUAGE sql;
`}})

	g := Build(cat, nil)
	if !reflect.DeepEqual(g.Dependencies("totals_for"), []string{"totals"}) {
		t.Errorf("totals_for dependencies = %v", g.Dependencies("totals_for"))
	}
}

// customScanner proves the ordering layer is independent of how
// references are found.
type customScanner struct{}

func (customScanner) References(def *catalog.Definition, candidates []string) []string {
	if def.Name == "b" {
		return []string{"a"}
	}
	return nil
}

func TestBuild_SwappableScanner(t *testing.T) {
	cat := mustExtract(t, []catalog.Source{{Path: "v.sql", SQL: `
CREATE VIEW a AS SELECT 1;
CREATE VIEW b AS SELECT 2;
`}})

	g := Build(cat, customScanner{})
	if !reflect.DeepEqual(g.Dependencies("b"), []string{"a"}) {
		t.Errorf("custom scanner edge missing: %v", g.Dependencies("b"))
	}
}
