package entity

import "fmt"

// ValidationError is returned by setters when a value is malformed or out of range.
// The receiver keeps its previous value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// MissingFieldError is returned when a required field is empty at the time
// the canonical string or the seal is produced.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no %s specified", e.Field)
}

// IntegrityError means the seal of an inbound payload does not match its data.
// The payload must be discarded.
type IntegrityError struct{}

func (e *IntegrityError) Error() string {
	return "seal mismatch: response is not valid"
}

type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}

// NotFoundError is returned when no stored record matches a lookup.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Key)
}
