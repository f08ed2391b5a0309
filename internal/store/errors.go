package store

import (
	"errors"
	"fmt"
)

// NotFoundError reports that an update or delete targeted an id that does
// not exist in its collection.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity kind and id.
func NewNotFoundError(kind string, id int) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is a NotFoundError (even when wrapped).
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// StorageError reports that the persistence adapter failed. The in-memory
// state has already been mutated when this surfaces; there is no rollback,
// and durable state catches up on the next successful write.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the given operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is a StorageError (even when wrapped).
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ImportError reports that seeding failed against the external source. The
// store is left in its pre-seeding state and the call is safe to retry.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("catalog import: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError wraps err as an ImportError.
func NewImportError(err error) *ImportError {
	return &ImportError{Err: err}
}

// IsImportError reports whether err is an ImportError (even when wrapped).
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}
