package domain

import "context"

// IDField is the document key holding the document identity.
const IDField = "id"

// DefaultLimit is the maximum number of documents returned by a query when no
// positive limit is given.
const DefaultLimit = 1000

// Undefined is the value of a missing field. As an update patch value it
// removes the field from the target document.
type Undefined struct{}

// Get implements [Getter].
func (Undefined) Get() (any, bool) { return nil, false }

// Sort represents an ordered list of fields which should be used to sort query
// results, applied in sequence.
type Sort = []SortName

// SortName represents a single field and the order which should be used to sort
// it. A positive Order value means ascending order and a negative value means
// descending order.
type SortName struct {
	Key   string
	Order int64
}

// DocumentFactory represents a function that constructs [Document] instances
// from structured data types. If nil is provided, returns an empty document.
type DocumentFactory = func(any) (Document, error)

// CursorFactory represents a function that constructs [Cursor] instances from a
// set of documents with configurable options.
type CursorFactory = func(context.Context, []Document, ...CursorOption) (Cursor, error)

// Request is a mutation handled by a [Dispatcher]. The concrete request types
// are [Insert], [BulkInsert], [Update], [Delete] and [Clear].
type Request interface {
	request()
}

// Insert adds one document. Maps are stored as they are, so the caller's map
// receives the generated id.
type Insert struct {
	Doc any
}

// BulkInsert adds several documents at once. Either all of them are stored or
// none is.
type BulkInsert struct {
	Docs []any
}

// Update shallow-merges Patch into every document matching Query.
type Update struct {
	Query any
	Patch any
}

// Delete removes every document matching Query.
type Delete struct {
	Query any
}

// Clear removes every document.
type Clear struct{}

func (Insert) request()     {}
func (BulkInsert) request() {}
func (Update) request()     {}
func (Delete) request()     {}
func (Clear) request()      {}

// WriteResult describes the outcome of a [Request].
type WriteResult struct {
	// IDs holds the ids of inserted documents, in request order.
	IDs []string
	// Docs holds the inserted documents, in request order.
	Docs []Document
	// N is the number of inserted, updated or removed documents.
	N int64
}

// IsUnsafeKey reports whether key must be skipped wherever user supplied keys
// are interpreted (queries, patches and projections).
func IsUnsafeKey(key string) bool {
	switch key {
	case "__proto__", "constructor", "prototype":
		return true
	default:
		return false
	}
}
