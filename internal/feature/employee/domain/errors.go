// Package domain defines domain-level errors for the employee feature.
package domain

import (
	"errors"
	"strings"
)

var (
	// ErrEmployeeNotFound indicates that no employee matches the given id or email.
	// Absence is a normal outcome and is mapped to 404 by the transport layer.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDuplicateEmail indicates that another employee already holds the email.
	ErrDuplicateEmail = errors.New("employee with this email already exists")
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string
	Message string
	Value   string
}

// ValidationError carries the ordered list of violations found for a candidate record.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ErrStoreFailure marks an unexpected persistence error. Callers see it as an opaque failure.
var ErrStoreFailure = errors.New("store failure")
