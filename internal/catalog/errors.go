package catalog

import "fmt"

// ParseError reports a source text that could not be decomposed into
// definitions, or a name collision across the catalog. It is fatal: the
// caller aborts before any database interaction.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}
