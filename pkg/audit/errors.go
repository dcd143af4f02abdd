package audit

import "fmt"

// StorageError represents an error from a storage backend operation.
type StorageError struct {
	// Backend is the backend name ("sqlite", "memory").
	Backend string

	// Operation is the operation that failed ("open", "store", "query", ...).
	Operation string

	// Cause is the underlying error.
	Cause error
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// Error returns the error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("audit storage %s: %s failed: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}
