package domain

import (
	"errors"
	"strings"
)

// Failure records one failed task.
type Failure struct {
	WorkingDir string
	Message    string
}

// String renders the failure as "<dir>: <message>".
func (f Failure) String() string {
	return f.WorkingDir + ": " + f.Message
}

// Failures accumulates task failures in the order they occurred.
type Failures []Failure

// Add appends a failure for the task.
func (f *Failures) Add(workingDir string, err error) {
	*f = append(*f, Failure{WorkingDir: workingDir, Message: err.Error()})
}

// Err converts the accumulated failures into a single error, or nil when there are none.
func (f Failures) Err(label string) error {
	if len(f) == 0 {
		return nil
	}
	return &RunError{Label: label, Failures: append([]Failure(nil), f...)}
}

// RunError is the consolidated failure of a run.
type RunError struct {
	Label    string
	Failures []Failure
}

// Error lists every failure on its own line, in occurrence order.
func (e *RunError) Error() string {
	var b strings.Builder
	b.WriteString(e.Label)
	b.WriteString(" completed with errors:")
	for _, f := range e.Failures {
		b.WriteByte('\n')
		b.WriteString(f.String())
	}
	return b.String()
}

// Is matches ErrRunFailed.
func (e *RunError) Is(target error) bool {
	return target == ErrRunFailed
}

// AsRunError extracts a RunError from an error chain.
func AsRunError(err error) (*RunError, bool) {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr, true
	}
	return nil, false
}
