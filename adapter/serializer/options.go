package serializer

import "github.com/vinicius-lino-figueiredo/unitdb/domain"

// Option configures a [Serializer].
type Option func(*Serializer)

// WithDocumentFactory sets the factory used to build the serialized copies.
func WithDocumentFactory(f domain.DocumentFactory) Option {
	return func(s *Serializer) {
		s.documentFactory = f
	}
}
