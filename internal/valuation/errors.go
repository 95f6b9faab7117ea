package valuation

import (
	"fmt"
	"strings"
)

// InvalidInputError is the single fatal error of the pipeline: the declared
// policy facts are malformed and the engine refuses to value them. Every
// other failure mode is absorbed into a fallback plus a confidence penalty.
type InvalidInputError struct {
	// Fields names the offending input fields, in input order.
	Fields []string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("valuation: invalid input: %s", strings.Join(e.Fields, ", "))
}

// NewInvalidInputError builds an InvalidInputError for the named fields.
func NewInvalidInputError(fields ...string) *InvalidInputError {
	return &InvalidInputError{Fields: fields}
}
