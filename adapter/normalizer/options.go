package normalizer

import "time"

// WithLocation sets the location used for date strings without an explicit
// zone. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		n.loc = loc
	}
}

// Option configures behavior through the functional options pattern.
type Option func(*Normalizer)
