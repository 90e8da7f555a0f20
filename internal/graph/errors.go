package graph

import (
	"errors"
	"fmt"
)

// Error kinds raised during construction and validation. Queries on a
// validated graph never fail.
var (
	ErrBadFormat           = errors.New("bad task format")
	ErrNegativeDuration    = errors.New("negative duration")
	ErrDanglingPredecessor = errors.New("unknown predecessor")
	ErrCycle               = errors.New("dependency cycle")
)

// FormatError wraps a construction or validation failure with the task it
// concerns.
type FormatError struct {
	Kind error
	Task string
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Task == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	}
	if e.Msg == "" {
		return fmt.Sprintf("task %s: %s", e.Task, e.Kind.Error())
	}
	return fmt.Sprintf("task %s: %s: %s", e.Task, e.Kind.Error(), e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Kind }

func formatErrf(kind error, task, format string, args ...any) error {
	return &FormatError{Kind: kind, Task: task, Msg: fmt.Sprintf(format, args...)}
}
