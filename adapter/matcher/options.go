package matcher

import "github.com/vinicius-lino-figueiredo/unitdb/domain"

// WithDocumentFactory sets the document factory used to convert struct
// conditions into documents.
func WithDocumentFactory(d domain.DocumentFactory) Option {
	return func(mo *Matcher) {
		mo.documentFactory = d
	}
}

// WithComparer sets the comparer implementation for value comparisons during
// matching.
func WithComparer(c domain.Comparer) Option {
	return func(mo *Matcher) {
		mo.comparer = c
	}
}

// WithNormalizer sets the normalizer applied to field values and operands
// before they are compared.
func WithNormalizer(n domain.Normalizer) Option {
	return func(mo *Matcher) {
		mo.normalizer = n
	}
}

// Option configures matcher behavior through the functional options pattern.
type Option func(*Matcher)
