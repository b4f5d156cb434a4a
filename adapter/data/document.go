// Package data contains the default [domain.Document] implementation and the
// conversion of Go values into documents.
package data

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	goreflect "github.com/goccy/go-reflect"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// TagName is the struct tag read when converting structs into documents.
const TagName = "unitdb"

var timeTyp = goreflect.TypeOf(*new(time.Time))

// M implements domain.Document by using a hashed map. Duplicates replace old
// values.
type M map[string]any

// NewDocument returns a new instance of [domain.Document].
//
// Maps with string keys and [any] values are not copied: the returned document
// shares storage with the argument. Structs and typed maps are converted into a
// new [M].
func NewDocument(in any) (domain.Document, error) {
	switch t := in.(type) {
	case nil:
		return M{}, nil
	case M:
		if t == nil {
			return M{}, nil
		}
		return t, nil
	case domain.Document:
		return t, nil
	case map[string]any:
		if t == nil {
			return M{}, nil
		}
		return M(t), nil
	}
	if doc := parseSimple(in); doc != nil {
		return doc, nil
	}

	r := goreflect.ValueNoEscapeOf(in)
	k := r.Kind()
	for k == goreflect.Interface || k == reflect.Pointer {
		if r.IsNil() {
			return M{}, nil
		}
		r = r.Elem()
		k = r.Kind()
	}
	if k != goreflect.Struct && k != goreflect.Map {
		return nil, domain.ErrDocumentType{
			Reason: fmt.Sprintf("expected map or struct, got %s", r.Type().String()),
		}
	}
	if k == goreflect.Map && r.Type().Key().Kind() != reflect.String {
		return nil, domain.ErrDocumentType{
			Reason: fmt.Sprintf("map keys must be strings, got %s", r.Type().Key().String()),
		}
	}
	doc, err := parseReflect(r)
	if err != nil {
		return nil, err
	}
	return doc.(domain.Document), nil
}

// AsDocument reports whether v is a document-like value and returns it as a
// [domain.Document]. Plain maps are wrapped without copying.
func AsDocument(v any) (domain.Document, bool) {
	switch t := v.(type) {
	case domain.Document:
		return t, true
	case map[string]any:
		return M(t), true
	default:
		return nil, false
	}
}

func parseSimple(v any) domain.Document {
	switch t := v.(type) {
	case map[string]string:
		return parseMap(t)
	case map[string]bool:
		return parseMap(t)
	case map[string]int:
		return parseMap(t)
	case map[string]int64:
		return parseMap(t)
	case map[string]float64:
		return parseMap(t)
	case map[string]time.Time:
		return parseMap(t)
	default:
		return nil
	}
}

func parseMap[T any](v map[string]T) domain.Document {
	res := make(M, len(v))
	for k, v := range v {
		res[k] = v
	}
	return res
}

func parseReflect(r goreflect.Value) (any, error) {
	for r.Kind() == reflect.Pointer || r.Kind() == goreflect.Interface {
		if r.IsNil() {
			return nil, nil
		}
		r = r.Elem()
	}
	switch r.Kind() {
	case goreflect.Invalid:
		return nil, nil
	case goreflect.Slice:
		if r.IsNil() {
			return nil, nil
		}
		if r.Type().Elem().Kind() == reflect.Uint8 {
			return r.Interface(), nil
		}
		fallthrough
	case goreflect.Array:
		return parseList(r)
	case goreflect.Struct:
		if r.Type() == timeTyp {
			return r.Interface(), nil
		}
		return parseStruct(r)
	case goreflect.Map:
		if r.IsNil() {
			return nil, nil
		}
		return parseMapReflect(r)
	case goreflect.Chan, goreflect.Func:
		return nil, domain.ErrDocumentType{
			Reason: fmt.Sprintf("unsupported value of type %s", r.Type().String()),
		}
	default:
		return r.Interface(), nil
	}
}

func parseStruct(r goreflect.Value) (domain.Document, error) {
	typ := r.Type()
	numField := r.NumField()

	res := make(M, numField)

	for n := range numField {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}

		fieldInfo, err := parseField(r.Field(n), field)
		if err != nil {
			return nil, err
		}
		if fieldInfo == nil {
			continue
		}
		res[fieldInfo.name] = fieldInfo.value
	}
	return res, nil
}

func parseMapReflect(v goreflect.Value) (domain.Document, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, domain.ErrDocumentType{
			Reason: fmt.Sprintf("map keys must be strings, got %s", v.Type().Key().String()),
		}
	}
	res := make(M, v.Len())
	for _, k := range v.MapKeys() {
		var err error
		if res[k.String()], err = parseReflect(v.MapIndex(k)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type field struct {
	name  string
	value any
}

func parseField(r goreflect.Value, typ goreflect.StructField) (*field, error) {
	name := typ.Name
	var tagSegments []string
	if tag, ok := typ.Tag.Lookup(TagName); ok {
		if tag == "-" {
			return nil, nil
		}
		tagSegments = strings.Split(tag, ",")
		if tagSegments[0] != "" {
			name = tagSegments[0]
		}
		tagSegments = tagSegments[1:]
	}
	if slices.Contains(tagSegments, "omitempty") && isNullable(typ.Type) && r.IsNil() {
		return nil, nil
	}
	if slices.Contains(tagSegments, "omitzero") && r.IsZero() {
		return nil, nil
	}

	value, err := parseReflect(r)
	if err != nil {
		return nil, err
	}

	return &field{name: name, value: value}, nil
}

func parseList(r goreflect.Value) (any, error) {
	length := r.Len()
	res := make([]any, length)
	for i := range length {
		v, err := parseReflect(r.Index(i))
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func isNullable(t goreflect.Type) bool {
	k := t.Kind()
	return k == reflect.Pointer ||
		k == reflect.Slice ||
		k == reflect.Map ||
		k == reflect.Interface
}

// ID implements domain.Document
func (d M) ID() any {
	return d[domain.IDField]
}

// Get implements domain.Document
func (d M) Get(key string) any {
	return d[key]
}

// Set implements domain.Document
func (d M) Set(key string, value any) {
	d[key] = value
}

// Unset implements domain.Document
func (d M) Unset(key string) {
	delete(d, key)
}

// D implements domain.Document
func (d M) D(key string) domain.Document {
	doc, ok := AsDocument(d[key])
	if !ok {
		return nil
	}
	return doc
}

// Iter implements domain.Document.
func (d M) Iter() iter.Seq2[string, any] {
	return maps.All(d)
}

// Keys implements domain.Document.
func (d M) Keys() iter.Seq[string] {
	return maps.Keys(d)
}

// Len implements domain.Document.
func (d M) Len() int {
	return len(d)
}

// Values implements domain.Document.
func (d M) Values() iter.Seq[any] {
	return maps.Values(d)
}

// Has implements domain.Document.
func (d M) Has(key string) bool {
	_, has := d[key]
	return has
}
