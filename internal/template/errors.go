package template

import "fmt"

// DefinitionError reports a malformed template element: a bad rectangle, a
// duplicate region name, an unparseable page expression. A definition error
// aborts only the section or page it concerns, never the whole batch.
type DefinitionError struct {
	Op  string
	Err error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("template definition error in %s: %v", e.Op, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
