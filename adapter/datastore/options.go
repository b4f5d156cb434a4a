package datastore

import (
	"io"
	"log/slog"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// WithStore sets the store holding the documents.
func WithStore(s domain.Store) Option {
	return func(dso *Datastore) {
		dso.store = s
	}
}

// WithDispatcher sets the dispatcher performing mutations. It must write to
// the same store as the datastore.
func WithDispatcher(d domain.Dispatcher) Option {
	return func(dso *Datastore) {
		dso.dispatcher = d
	}
}

// WithQuerier sets the querier running the read pipeline.
func WithQuerier(q domain.Querier) Option {
	return func(dso *Datastore) {
		dso.querier = q
	}
}

// WithSerializer sets the serializer used by Export.
func WithSerializer(s domain.Serializer) Option {
	return func(dso *Datastore) {
		dso.serializer = s
	}
}

// WithDeserializer sets the deserializer used by Import.
func WithDeserializer(d domain.Deserializer) Option {
	return func(dso *Datastore) {
		dso.deserializer = d
	}
}

// WithComparer sets the comparer for value comparison operations.
func WithComparer(c domain.Comparer) Option {
	return func(dso *Datastore) {
		dso.comparer = c
	}
}

// WithNormalizer sets the normalizer applied to values before matching.
func WithNormalizer(n domain.Normalizer) Option {
	return func(dso *Datastore) {
		dso.normalizer = n
	}
}

// WithDocumentFactory sets the factory function for creating document instances.
func WithDocumentFactory(d domain.DocumentFactory) Option {
	return func(dso *Datastore) {
		dso.documentFactory = d
	}
}

// WithDecoder sets the decoder used to scan results into user types.
func WithDecoder(d domain.Decoder) Option {
	return func(dso *Datastore) {
		dso.decoder = d
	}
}

// WithMatcher sets the matcher implementation for query evaluation.
func WithMatcher(m domain.Matcher) Option {
	return func(dso *Datastore) {
		dso.matcher = m
	}
}

// WithCursorFactory sets the factory function for creating cursor instances.
func WithCursorFactory(c domain.CursorFactory) Option {
	return func(dso *Datastore) {
		dso.cursorFactory = c
	}
}

// WithModifier sets the modifier implementation for document updates.
func WithModifier(m domain.Modifier) Option {
	return func(dso *Datastore) {
		dso.modifier = m
	}
}

// WithIDGenerator sets the idgenerator to create new document ids.
func WithIDGenerator(ig domain.IDGenerator) Option {
	return func(dso *Datastore) {
		dso.idGenerator = ig
	}
}

// WithRandomReader sets the reader to be used by the IDGenerator.
func WithRandomReader(r io.Reader) Option {
	return func(dso *Datastore) {
		dso.randomReader = r
	}
}

// WithLogger sets the logger. Nil values are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(dso *Datastore) {
		if l != nil {
			dso.log = l
		}
	}
}

// Option configures datastore behavior through the functional options
// pattern.
type Option func(*Datastore)
