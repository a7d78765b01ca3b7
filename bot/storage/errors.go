package storage

import "fmt"

// StorageError wraps a failure of the underlying store. It is not locally
// recoverable: callers propagate it out of the event-handling entry point.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Code classifies the error for handler summary logs.
func (e *StorageError) Code() string { return "STORAGE_ERROR" }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
