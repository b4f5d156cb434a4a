package dispatcher

import (
	"log/slog"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// WithMatcher sets the matcher used to select the documents of updates and
// deletions.
func WithMatcher(m domain.Matcher) Option {
	return func(d *Dispatcher) {
		d.matcher = m
	}
}

// WithModifier sets the modifier used to apply update patches.
func WithModifier(m domain.Modifier) Option {
	return func(d *Dispatcher) {
		d.modifier = m
	}
}

// WithIDGenerator sets the generator of ids for inserted documents that do not
// have one.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(d *Dispatcher) {
		d.idGen = g
	}
}

// WithDocumentFactory sets the factory used to convert inserted values into
// documents.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(d *Dispatcher) {
		d.docFac = df
	}
}

// WithDecoder sets the decoder used to copy generated ids back into inserted
// structs.
func WithDecoder(dec domain.Decoder) Option {
	return func(d *Dispatcher) {
		d.decoder = dec
	}
}

// WithLogger sets the logger. Writes are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// Option configures dispatcher behavior through the functional options
// pattern.
type Option func(*Dispatcher)
