package projector

import "github.com/vinicius-lino-figueiredo/unitdb/domain"

// WithDocumentFactory sets the [domain.Document] factory function that will be
// used by [Projector] to create projected documents.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(p *Projector) {
		p.docFac = df
	}
}

// Option configures projector behavior through the functional options pattern.
type Option func(*Projector)
