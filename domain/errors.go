package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCursorClosed is returned when trying to perform operations on a
	// closed [Cursor].
	ErrCursorClosed = errors.New("cursor is closed")
	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = errors.New("called Scan before calling Next")
	// ErrNotFound is returned when a single document was requested but
	// no document matches the query.
	ErrNotFound = errors.New("document not found")
	// ErrTargetNil is returned when a nil value is given as a decoding
	// target.
	ErrTargetNil = errors.New("target interface is nil")
	// ErrNonPointer is returned when the decoding target is not a pointer.
	ErrNonPointer = errors.New("target is not a pointer")
	// ErrCannotModifyID is returned when an update patch would change a
	// document id.
	ErrCannotModifyID = errors.New("cannot modify document id")
	// ErrUnknownRequest is returned by [Dispatcher.Write] for request
	// types it does not handle.
	ErrUnknownRequest = errors.New("unknown request")
)

// ErrDuplicateID is returned when inserting a document whose id is already
// stored or repeated within the same request.
type ErrDuplicateID struct {
	ID string
}

// Error implements [error].
func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate document id %q", e.ID)
}

// ErrDocumentType is returned when a value cannot be used as a document.
type ErrDocumentType struct {
	Reason string
}

// Error implements [error].
func (e ErrDocumentType) Error() string {
	return "invalid document: " + e.Reason
}

// ErrDecode wraps third party decoding errors.
type ErrDecode struct {
	Source any
	Target any
}

// Error implements [error].
func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T", e.Source, e.Target)
}

// ErrFieldName is returned when a document field cannot be exported under its
// name.
type ErrFieldName struct {
	Field  string
	Reason string
}

// Error implements [error].
func (e ErrFieldName) Error() string {
	return fmt.Sprintf("invalid field name %q: %s", e.Field, e.Reason)
}

// ErrFlushToStorage is returned when a file written by a [Storage] could not
// be synced or closed.
type ErrFlushToStorage struct {
	Name string
	Err  error
}

// Error implements [error].
func (e ErrFlushToStorage) Error() string {
	return fmt.Sprintf("flushing %s to storage: %v", e.Name, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e ErrFlushToStorage) Unwrap() error {
	return e.Err
}
