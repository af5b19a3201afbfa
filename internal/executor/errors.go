package executor

import (
	"fmt"

	"github.com/leapstack-labs/sqlview/internal/catalog"
	"github.com/leapstack-labs/sqlview/internal/plan"
)

// ExecutionError reports a DDL statement failing against the live
// database. The whole transaction has been rolled back; every object in
// the plan remains in its pre-call state.
type ExecutionError struct {
	Name       string
	Kind       catalog.Kind
	Op         plan.Op
	StepIndex  int
	SourceFile string
	Span       catalog.Span
	Statement  string
	Err        error
}

func (e *ExecutionError) Error() string {
	if e.Op == plan.OpCreate {
		return fmt.Sprintf("step %d: create %s %q (%s, %s): %v",
			e.StepIndex+1, e.Kind, e.Name, e.SourceFile, e.Span, e.Err)
	}
	return fmt.Sprintf("step %d: drop %s %q (%s): %v",
		e.StepIndex+1, e.Kind, e.Name, e.Statement, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
