// Package normalizer contains the default [domain.Normalizer] implementation,
// which turns dates and date strings into Unix milliseconds.
package normalizer

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// Normalizer implements [domain.Normalizer].
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a new implementation of [domain.Normalizer].
func NewNormalizer(opts ...Option) domain.Normalizer {
	n := Normalizer{loc: time.UTC}
	for _, opt := range opts {
		opt(&n)
	}
	return &n
}

// Normalize implements [domain.Normalizer].
func (n *Normalizer) Normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli()
	case *time.Time:
		if t == nil {
			return v
		}
		return t.UnixMilli()
	case string:
		if ms, ok := n.parse(t); ok {
			return ms
		}
		return t
	default:
		return v
	}
}

func (n *Normalizer) parse(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !n.dateLike(s) {
		return 0, false
	}
	t, err := dateparse.ParseIn(s, n.loc)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

// dateLike rejects strings dateparse would read as bare numbers or
// timestamps.
func (n *Normalizer) dateLike(s string) bool {
	if len(s) < 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}
