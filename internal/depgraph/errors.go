package depgraph

import "strings"

// CycleError reports a circular dependency among the objects a plan would
// touch. The ordering engine never guesses a partial order; the user must
// fix the source.
type CycleError struct {
	// Members is the cycle path in reference order; the first member
	// closes the loop.
	Members []string
}

func (e *CycleError) Error() string {
	if len(e.Members) == 0 {
		return "circular dependency"
	}
	return "circular dependency: " +
		strings.Join(e.Members, " -> ") + " -> " + e.Members[0]
}
