package validator

import "fmt"

// ValidationError is a located diagnostic: the normal output of a
// successful run, not a failure of the engine.
type ValidationError struct {
	Validator     string `json:"validator"`
	Message       string `json:"message"`
	LineNumber    int    `json:"line"`
	StartPosition int    `json:"column"`
	Sentence      string `json:"sentence,omitempty"`
}

// String renders the diagnostic in the classic plain format.
func (e ValidationError) String() string {
	return fmt.Sprintf("ValidationError[%s], %s at line: %d", e.Validator, e.Message, e.LineNumber)
}
