package adapter

import (
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// duckdbDSN maps a profile to a duckdb file path. An empty path opens an
// in-memory database.
func duckdbDSN(p Profile) (string, string) {
	return "duckdb", p.Path
}
