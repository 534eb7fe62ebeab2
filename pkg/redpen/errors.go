package redpen

import "fmt"

// ValidationFault reports a validator that failed while validating a
// document, as opposed to reporting diagnostics. It aborts the run.
type ValidationFault struct {
	Validator string
	Document  string
	Err       error
}

func (e *ValidationFault) Error() string {
	return fmt.Sprintf("validator %s failed on %s: %v", e.Validator, e.Document, e.Err)
}

func (e *ValidationFault) Unwrap() error { return e.Err }
