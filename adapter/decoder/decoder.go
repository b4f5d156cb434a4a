// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"fmt"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// Decoder implements domain.Decoder. Struct fields are matched by their
// "unitdb" tag, like in [data.NewDocument].
type Decoder struct{}

// NewDecoder returns a new implementation of domain.Decoder.
func NewDecoder() domain.Decoder {
	return &Decoder{}
}

// Decode implements domain.Decoder.
func (d *Decoder) Decode(source any, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}

	value := reflect.ValueNoEscapeOf(target)
	if value.Kind() != reflect.Ptr {
		return domain.ErrNonPointer
	}
	if value.IsNil() {
		return domain.ErrTargetNil
	}

	if !value.Type().Elem().Implements(docReflectType) {
		source = d.adjustDoc(source)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		TagName:    data.TagName,
		Result:     target,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		errDec := domain.ErrDecode{Source: source, Target: target}
		return fmt.Errorf("%w: %w", errDec, err)
	}
	return nil
}

// adjustDoc turns documents into plain maps, which mapstructure knows how to
// read.
func (d *Decoder) adjustDoc(value any) any {
	switch t := value.(type) {
	case domain.Document:
		doc := make(map[string]any, t.Len())
		for k, v := range t.Iter() {
			doc[k] = d.adjustDoc(v)
		}
		return doc
	case []any:
		lst := make([]any, len(t))
		for n, v := range t {
			lst[n] = d.adjustDoc(v)
		}
		return lst
	default:
		return value
	}
}
