// Package deserializer contains the default [domain.Deserializer]
// implementation.
package deserializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// ErrTrailingData is returned when a line holds more than one JSON value.
var ErrTrailingData = errors.New("trailing data after JSON")

// NewDeserializer returns a new instance of domain.Deserializer.
func NewDeserializer(options ...Option) domain.Deserializer {
	d := &Deserializer{decoder: decoder.NewDecoder()}
	for _, option := range options {
		option(d)
	}
	return d
}

// Deserializer implements [domain.Deserializer]. It reads what
// [serializer.Serializer] writes: objects become [data.M] and date objects
// become [time.Time] values in UTC.
type Deserializer struct {
	decoder domain.Decoder
}

// Deserialize implements [domain.Deserializer].
func (d *Deserializer) Deserialize(ctx context.Context, b []byte, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if target == nil {
		return domain.ErrTargetNil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.ErrDocumentType{Reason: fmt.Sprintf("expected a JSON object, got %T", raw)}
	}
	doc := d.restoreDoc(obj)

	switch t := target.(type) {
	case *data.M:
		*t = doc
		return nil
	case *map[string]any:
		*t = doc
		return nil
	case *domain.Document:
		*t = doc
		return nil
	}
	return d.decoder.Decode(doc, target)
}

func (d *Deserializer) restoreDoc(obj map[string]any) data.M {
	doc := make(data.M, len(obj))
	for k, v := range obj {
		doc[k] = d.restore(v)
	}
	return doc
}

func (d *Deserializer) restore(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if date, ok := d.asDate(t); ok {
			return date
		}
		return d.restoreDoc(t)
	case []any:
		for n, item := range t {
			t[n] = d.restore(item)
		}
		return t
	default:
		return v
	}
}

func (d *Deserializer) asDate(obj map[string]any) (time.Time, bool) {
	if len(obj) != 1 {
		return time.Time{}, false
	}
	ms, ok := obj[serializer.DateKey].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
