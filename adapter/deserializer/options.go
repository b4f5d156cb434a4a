package deserializer

import "github.com/vinicius-lino-figueiredo/unitdb/domain"

// Option configures a [Deserializer].
type Option func(*Deserializer)

// WithDecoder sets the decoder used for targets that are not documents.
func WithDecoder(dec domain.Decoder) Option {
	return func(d *Deserializer) {
		d.decoder = dec
	}
}
