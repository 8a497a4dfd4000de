package engine

import (
	"errors"
	"fmt"
)

// ErrEngineNotFound is returned when every resolution strategy is exhausted
// without locating an engine installation. Callers surface this as a
// user-facing failure; no installation is attempted.
var ErrEngineNotFound = errors.New("engine installation not found")

// ExecError wraps a failure raised by the engine while linting.
// It is propagated to the caller, never masked: silently returning no
// diagnostics on an engine crash would hide real problems from the user.
type ExecError struct {
	Engine string
	Path   string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("engine %s failed linting %s: %v", e.Engine, e.Path, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
