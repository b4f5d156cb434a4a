package modifier

import "github.com/vinicius-lino-figueiredo/unitdb/domain"

// WithDocumentFactory sets the factory used to read patches.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(m *Modifier) {
		m.docFac = df
	}
}

// Option configures modifier behavior through the functional options pattern.
type Option func(*Modifier)
