// Package unitdb provides an embedded, in-memory document store with a small
// MongoDB-like query language.
//
// The basic usage starts with creating a new [UnitDB] instance, which can be
// done by calling [NewDB]. Documents are kept in process memory only: use
// [UnitDB.Export] and [UnitDB.Import] to move them in and out as JSON lines.
//
// A UnitDB is not safe for concurrent use. Confine each instance to one
// goroutine or serialize access to it.
package unitdb

import (
	"io"
	"log/slog"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/datastore"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/modifier"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/projector"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// IDField is the document key holding the document id.
const IDField = domain.IDField

// DefaultLimit is the maximum number of documents returned by a query without
// a positive limit.
const DefaultLimit = domain.DefaultLimit

// Unset, used as a value in an update patch, removes the field from the
// matched documents. In a query it only matches missing fields.
var Unset = domain.Undefined{}

var (
	// ErrCursorClosed is returned when trying to perform operations on a
	// closed [Cursor].
	ErrCursorClosed = domain.ErrCursorClosed
	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = domain.ErrScanBeforeNext
	// ErrNotFound is returned when [UnitDB.FindOne] cannot find any
	// matching result for the given query.
	ErrNotFound = domain.ErrNotFound
	// ErrTargetNil is returned when user provides a nil value as a target
	// to decode data, for example, calling [UnitDB.FindOne].
	ErrTargetNil = domain.ErrTargetNil
	// ErrNonPointer is returned when a decoding target is not a pointer.
	ErrNonPointer = domain.ErrNonPointer
	// ErrCannotModifyID is returned when an update patch contains the id
	// field.
	ErrCannotModifyID = domain.ErrCannotModifyID
	// ErrUnknownRequest is returned by [UnitDB.Write] for unsupported
	// request types.
	ErrUnknownRequest = domain.ErrUnknownRequest
	// ErrMixedOperators is returned when a field condition mixes operators
	// and plain fields.
	ErrMixedOperators = matcher.ErrMixedOperators
	// ErrMixOmitType is returned when a projection mixes included and
	// omitted fields.
	ErrMixOmitType = projector.ErrMixOmitType
)

// ErrUnknownOperator is returned when a query uses an unsupported operator.
type ErrUnknownOperator = matcher.ErrUnknownOperator

// ErrCompArgType is returned when a logical operator has an argument of the
// wrong type.
type ErrCompArgType = matcher.ErrCompArgType

// ErrModQuery is returned when an update patch is not an object.
type ErrModQuery = modifier.ErrModQuery

// ErrDuplicateID is returned when an inserted document reuses a stored id.
type ErrDuplicateID = domain.ErrDuplicateID

// ErrDocumentType is returned when an user passes a value that is invalid or
// contains an invalid sub value for creating a document.
type ErrDocumentType = domain.ErrDocumentType

// ErrFieldName is returned by [UnitDB.Export] for documents with field names
// that cannot be exported.
type ErrFieldName = domain.ErrFieldName

// ErrDecode is returned by [Decoder.Decode] to easily wrap third party decoding
// errors.
type ErrDecode = domain.ErrDecode

// NewDB creates a new, empty UnitDB instance with the provided options:
//
// - [WithLogger]: sets the logger.
//
// - [WithIDGenerator]: sets the idgenerator to create new document ids.
//
// - [WithRandomReader]: sets the reader to be used by the IDGenerator.
//
// - [WithStore]: sets the store holding the documents.
//
// - [WithDispatcher]: sets the dispatcher performing mutations.
//
// - [WithQuerier]: sets the querier running the read pipeline.
//
// - [WithMatcher]: sets the matcher implementation for query evaluation.
//
// - [WithModifier]: sets the modifier implementation for document updates.
//
// - [WithComparer]: sets the comparer for value comparison operations.
//
// - [WithNormalizer]: sets the normalizer applied before comparisons.
//
// - [WithDocumentFactory]: sets the function for creating [Document] instances.
//
// - [WithDecoder]: sets the decoder for data format conversions.
//
// - [WithCursorFactory]: sets the function for creating cursor instances.
//
// - [WithSerializer]: sets the serializer used by [UnitDB.Export].
//
// - [WithDeserializer]: sets the deserializer used by [UnitDB.Import].
func NewDB(options ...Option) UnitDB {
	return datastore.NewDatastore(options...)
}

// UnitDB defines the main interface for interacting with the store.
type UnitDB = domain.UnitDB

// Request is a mutation passed to [UnitDB.Write].
type Request = domain.Request

// WriteResult describes the outcome of a [Request].
type WriteResult = domain.WriteResult

// Insert returns a request adding doc. Maps are stored as they are and receive
// the generated id.
func Insert(doc any) Request {
	return domain.Insert{Doc: doc}
}

// BulkInsert returns a request adding all docs or none of them.
func BulkInsert(docs ...any) Request {
	return domain.BulkInsert{Docs: docs}
}

// Update returns a request merging patch into every document matching query.
func Update(query, patch any) Request {
	return domain.Update{Query: query, Patch: patch}
}

// Delete returns a request removing every document matching query.
func Delete(query any) Request {
	return domain.Delete{Query: query}
}

// Clear returns a request removing every document.
func Clear() Request {
	return domain.Clear{}
}

// Serializer converts documents to bytes for export.
type Serializer = domain.Serializer

// Deserializer converts bytes back to documents.
type Deserializer = domain.Deserializer

// Decoder converts between different data representations.
type Decoder = domain.Decoder

// Comparer provides ordering and comparison for different data types.
type Comparer = domain.Comparer

// Normalizer turns values into their comparable form.
type Normalizer = domain.Normalizer

// Document represents a stored record.
type Document = domain.Document

// M is a shorthand for documents, queries and patches.
type M = map[string]any

// Matcher evaluates whether documents match query criteria.
type Matcher = domain.Matcher

// Modifier applies update patches to documents.
type Modifier = domain.Modifier

// Querier runs the read pipeline.
type Querier = domain.Querier

// Store holds the documents of a [UnitDB].
type Store = domain.Store

// Dispatcher performs mutation requests.
type Dispatcher = domain.Dispatcher

// Cursor provides iteration over query results.
type Cursor = domain.Cursor

// IDGenerator is used to create unique IDs for new instances of [Document].
type IDGenerator = domain.IDGenerator

// Sort represents an ordered list of fields which should be used, respectively,
// to sort the results of a query.
type Sort = domain.Sort

// SortName represents a single field and the order which should be used to sort
// it, a positive value meaning ascending order and a negative value meaning
// descending order.
type SortName = domain.SortName

// DocumentFactory represents a [Document] constructor that can be
// reimplemented. It should accept structured data types and create an
// equivalent [Document], respecting the given structure. If nil is given as
// argument, a document of length 0 should be returned.
type DocumentFactory = domain.DocumentFactory

// CursorFactory represents a [Cursor] constructor that can be reimplemented. It
// should receive an ordered set of documents and allow user to scan them into
// a data type of their choice.
type CursorFactory = domain.CursorFactory

// FindOption configures query behavior through the functional options pattern.
type FindOption = domain.FindOption

// WithProjection specifies which fields to include (1) or exclude (0) from
// query results.
func WithProjection(p map[string]uint8) FindOption {
	return domain.WithProjection(p)
}

// WithSkip sets the number of documents to skip in query results.
func WithSkip(s int64) FindOption {
	return domain.WithSkip(s)
}

// WithLimit sets the maximum number of documents to return.
func WithLimit(l int64) FindOption {
	return domain.WithLimit(l)
}

// WithSort specifies the sort order for query results.
func WithSort(s Sort) FindOption {
	return domain.WithSort(s)
}

// Option configures datastore behavior through the functional options
// pattern.
type Option = datastore.Option

// WithLogger sets the logger. Writes are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return datastore.WithLogger(l)
}

// WithStore sets the store holding the documents.
func WithStore(s Store) Option {
	return datastore.WithStore(s)
}

// WithDispatcher sets the dispatcher performing mutations.
func WithDispatcher(d Dispatcher) Option {
	return datastore.WithDispatcher(d)
}

// WithQuerier sets the querier running the read pipeline.
func WithQuerier(q Querier) Option {
	return datastore.WithQuerier(q)
}

// WithSerializer sets the serializer for converting documents to bytes.
func WithSerializer(s Serializer) Option {
	return datastore.WithSerializer(s)
}

// WithDeserializer sets the deserializer for converting bytes to documents.
func WithDeserializer(d Deserializer) Option {
	return datastore.WithDeserializer(d)
}

// WithComparer sets the comparer for value comparison operations.
func WithComparer(c Comparer) Option {
	return datastore.WithComparer(c)
}

// WithNormalizer sets the normalizer applied to values before comparisons.
func WithNormalizer(n Normalizer) Option {
	return datastore.WithNormalizer(n)
}

// WithDocumentFactory sets the factory function for creating [Document]
// instances.
func WithDocumentFactory(d DocumentFactory) Option {
	return datastore.WithDocumentFactory(d)
}

// WithDecoder sets the decoder for data format conversions.
func WithDecoder(d Decoder) Option {
	return datastore.WithDecoder(d)
}

// WithMatcher sets the matcher implementation for query evaluation.
func WithMatcher(m Matcher) Option {
	return datastore.WithMatcher(m)
}

// WithCursorFactory sets the factory function for creating cursor instances.
func WithCursorFactory(c CursorFactory) Option {
	return datastore.WithCursorFactory(c)
}

// WithModifier sets the modifier implementation for document updates.
func WithModifier(m Modifier) Option {
	return datastore.WithModifier(m)
}

// WithIDGenerator sets the idgenerator to create new document ids.
func WithIDGenerator(ig IDGenerator) Option {
	return datastore.WithIDGenerator(ig)
}

// WithRandomReader sets the reader to be used by the IDGenerator.
func WithRandomReader(r io.Reader) Option {
	return datastore.WithRandomReader(r)
}
