package batch

import (
	"errors"
	"fmt"
)

// The engine's failures fall into four buckets. The routing layer maps them
// to status codes with errors.Is / errors.As; nothing here is retried.
var (
	ErrNotFound = errors.New("batch not found")
	ErrConflict = errors.New("batch already exists")
)

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence-collaborator failure.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
