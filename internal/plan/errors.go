package plan

import "fmt"

// UnknownObjectError reports a request naming an object or source file
// not present in the catalog. It is raised before any plan is built or
// executed.
type UnknownObjectError struct {
	Name   string
	IsFile bool
}

func (e *UnknownObjectError) Error() string {
	if e.IsFile {
		return fmt.Sprintf("no managed definitions found in file %q", e.Name)
	}
	return fmt.Sprintf("unknown view or function %q", e.Name)
}
