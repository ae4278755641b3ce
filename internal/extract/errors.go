package extract

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a method whose entire fallback chain is absent from
// this process. The dispatcher reports it explicitly rather than silently
// substituting another method.
var ErrUnavailable = errors.New("method unavailable")

// MethodError reports a backend failure for one section. Method errors
// trigger the fallback chain; if every fallback fails, only the affected
// section is marked failed.
type MethodError struct {
	Method Method
	Op     string
	Err    error
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("extraction method %s: %s: %v", e.Method, e.Op, e.Err)
}

func (e *MethodError) Unwrap() error {
	return e.Err
}
