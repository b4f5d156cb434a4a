// Package domain contains domain-specific interfaces and option types for
// unitdb.
//
// This package defines the core interfaces that must be implemented by
// adapters, as well as functional options for configuring components like
// queries, cursors, matchers and the datastore itself.
package domain

import (
	"context"
	"io"
	"iter"
)

// Serializer converts documents to bytes for export.
type Serializer interface {
	// Serialize converts a document to bytes.
	Serialize(context.Context, any) ([]byte, error)
}

// Deserializer converts bytes back to documents.
type Deserializer interface {
	// Deserialize converts bytes back to a document.
	Deserialize(context.Context, []byte, any) error
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode copies source into target, which must be a pointer.
	Decode(source any, target any) error
}

// Normalizer canonicalizes values before they are compared, so dates, date
// strings and numeric timestamps can be compared with each other.
type Normalizer interface {
	// Normalize returns the comparable form of v.
	Normalize(v any) any
}

// Comparer provides ordering and comparison operations for different data
// types.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be ordered by relational
	// operators.
	Comparable(any, any) bool
}

// Getter represents a value that can be treated as undefined.
type Getter interface {
	// Get returns the value and a bool that indicates whether the value
	// counts as defined or not. A missing document field counts as
	// undefined. An explicit nil does not.
	Get() (value any, defined bool)
}

// IDGenerator is used to create unique IDs for new documents.
type IDGenerator interface {
	// GenerateID returns a new identifier. Identifiers must not collide
	// during the lifetime of a store.
	GenerateID() (string, error)
}

// Document represents a stored record. Implementations are not required to be
// safe for concurrent use.
type Document interface {
	// ID returns the document ID, or nil if unset.
	ID() any
	// D returns the subdocument for the given key, if any.
	D(string) Document
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Set sets the value under the given key.
	Set(string, any)
	// Unset unsets the value under the given key.
	Unset(string)
	// Iter returns an unordered sequence of key-value pairs in the
	// document.
	Iter() iter.Seq2[string, any]
	// Keys returns an unordered sequence of keys in the document.
	Keys() iter.Seq[string]
	// Values returns an unordered sequence of values in the document.
	Values() iter.Seq[any]
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Len returns the number of set fields in the document.
	Len() int
}

// Matcher evaluates whether documents match a query.
type Matcher interface {
	// SetQuery compiles the query used by subsequent calls to Match. A
	// nil or empty query matches every document.
	SetQuery(query any) error
	// Match reports whether doc satisfies the current query. Match never
	// fails: malformed operands and incomparable values are a non-match.
	Match(doc Document) bool
}

// Modifier applies update patches to documents.
type Modifier interface {
	// SetPatch validates patch and keeps it for subsequent calls to
	// Modify.
	SetPatch(patch any) error
	// Modify shallow-merges the current patch into doc, in place.
	Modify(doc Document)
}

// Projector reshapes query results.
type Projector interface {
	// Project returns projected copies of docs. An empty projection
	// returns docs unchanged.
	Project(docs []Document, proj map[string]uint8) ([]Document, error)
}

// Querier runs the result pipeline: filter, sort, skip, limit and project.
type Querier interface {
	// Query returns the documents that match the options.
	Query(docs []Document, opts ...QueryOption) ([]Document, error)
	// Count returns the number of documents matching query.
	Count(docs []Document, query any) (int64, error)
}

// Store is the ordered sequence of documents owned by one datastore.
type Store interface {
	// All returns the backing documents in insertion order. Callers must
	// not modify the returned slice.
	All() []Document
	// Len returns the number of stored documents.
	Len() int
	// HasID reports whether a document with the given id is stored.
	HasID(id string) bool
	// Append adds documents at the end of the sequence.
	Append(docs ...Document)
	// RemoveFunc removes every document for which del returns true and
	// returns how many were removed.
	RemoveFunc(del func(Document) bool) int
	// Reset removes all documents and returns how many were removed.
	Reset() int
}

// Dispatcher performs mutation requests against a [Store].
type Dispatcher interface {
	// Write executes req. A failed request leaves the store unchanged.
	Write(req Request) (WriteResult, error)
}

// Cursor provides iteration over query results.
type Cursor interface {
	// Scan decodes the current document into target.
	Scan(ctx context.Context, target any) error
	// Next advances the cursor to the next document, returning true if
	// available.
	Next() bool
	// Err returns any error that occurred during iteration.
	Err() error
	// Close releases cursor resources.
	Close() error
}

// Storage reads and writes the JSON lines files a datastore is exported to.
// It is used by the command line tool and never by the datastore itself.
type Storage interface {
	// Exists reports whether filename exists.
	Exists(filename string) (bool, error)
	// ReadFileStream opens filename for reading.
	ReadFileStream(filename string) (io.ReadCloser, error)
	// CrashSafeWriteFile replaces the content of filename with what write
	// produces. A crash leaves either the old or the new content.
	CrashSafeWriteFile(filename string, write func(io.Writer) error) error
}

// UnitDB is the main interface for interacting with the embedded store.
//
// A UnitDB holds its documents in memory only. It is not safe for concurrent
// use: confine an instance to one goroutine or serialize access to it.
type UnitDB interface {
	// Find returns a cursor over the documents matching query.
	Find(ctx context.Context, query any, options ...FindOption) (Cursor, error)
	// FindDocs returns the documents matching query. Unless a projection
	// is given, they are the stored documents themselves.
	FindDocs(ctx context.Context, query any, options ...FindOption) ([]Document, error)
	// FindOne decodes the first document matching query into target.
	FindOne(ctx context.Context, query any, target any, options ...FindOption) error
	// Count returns the number of documents matching query.
	Count(ctx context.Context, query any) (int64, error)
	// Stream calls fn with consecutive batches of the query result.
	Stream(ctx context.Context, query any, batch int, fn func([]Document) error, options ...FindOption) error
	// Insert adds a document and returns its id.
	Insert(ctx context.Context, doc any) (string, error)
	// InsertMany adds all documents or none and returns their ids.
	InsertMany(ctx context.Context, docs ...any) ([]string, error)
	// Update merges patch into every document matching query.
	Update(ctx context.Context, query any, patch any) (int64, error)
	// Remove deletes every document matching query.
	Remove(ctx context.Context, query any) (int64, error)
	// Clear deletes every document.
	Clear(ctx context.Context) (int64, error)
	// Write executes a mutation request.
	Write(ctx context.Context, req Request) (WriteResult, error)
	// Export writes every document as a JSON line.
	Export(ctx context.Context, w io.Writer) error
	// Import reads JSON lines and inserts them as one bulk insert.
	Import(ctx context.Context, r io.Reader) (int64, error)
}
