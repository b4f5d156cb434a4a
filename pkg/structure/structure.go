// Package structure contains type-related operations, such as iterating over a
// value of type any and converting numbers.
package structure

import (
	"errors"
	"iter"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

var (
	// ErrNilObj may be returned by [Seq] or [Seq2] when a nil value is
	// passed as argument.
	ErrNilObj = errors.New("nil object")
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// ErrorNonObject is returned by [Seq2] when a value that is neither a struct,
// map nor a [domain.Document] is passed as argument.
type ErrorNonObject struct {
	Type reflect.Type
}

func (e ErrorNonObject) Error() string {
	return "expected an object, got " + typeName(e.Type)
}

// ErrorNonList is returned by [Seq] when a value that is neither a slice nor an
// array is passed as argument.
type ErrorNonList struct {
	Type reflect.Type
}

func (e ErrorNonList) Error() string {
	return "expected a list, got " + typeName(e.Type)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// Seq2 returns an iterator over the passed type. This method works for maps
// with string keys, structs and implementations of [domain.Document].
func Seq2(obj any) (iter.Seq2[string, any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	switch t := obj.(type) {
	case domain.Document:
		return t.Iter(), t.Len(), nil
	case map[string]any:
		return iterMap(t), len(t), nil
	case map[string]string:
		return iterMap(t), len(t), nil
	case map[string]int:
		return iterMap(t), len(t), nil
	case map[string]float64:
		return iterMap(t), len(t), nil
	case map[string]bool:
		return iterMap(t), len(t), nil
	case map[string]uint8:
		return iterMap(t), len(t), nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *regexp.Regexp, []byte, []any:
		return nil, 0, ErrorNonObject{Type: reflect.TypeOf(obj)}
	}
	return iterReflect(obj)
}

func iterReflect(obj any) (iter.Seq2[string, any], int, error) {
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}

	if v.Type().Implements(docReflectType) {
		doc := v.Interface().(domain.Document)
		return doc.Iter(), doc.Len(), nil
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		return iterReflectMap(v), v.Len(), nil
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			break
		}
		i, l := iterReflectStruct(v)
		return i, l, nil
	}
	return nil, 0, ErrorNonObject{Type: v.Type()}
}

func iterReflectMap(v reflect.Value) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range v.MapKeys() {
			if !yield(k.String(), v.MapIndex(k).Interface()) {
				return
			}
		}
	}
}

func iterReflectStruct(v reflect.Value) (iter.Seq2[string, any], int) {
	type pair struct {
		Key   string
		Value any
	}
	typ := v.Type()
	fields := make([]pair, 0, typ.NumField())
	for n := range typ.NumField() {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("unitdb"); ok {
			if tag == "-" {
				continue
			}
			if found := strings.IndexRune(tag, ','); found >= 0 {
				tag = tag[:found]
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, pair{Key: name, Value: v.Field(n).Interface()})
	}
	return func(yield func(string, any) bool) {
		for _, field := range fields {
			if !yield(field.Key, field.Value) {
				return
			}
		}
	}, len(fields)
}

func iterMap[T any](m map[string]T) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Seq returns an iterator over a slice or array of any type.
func Seq(obj any) (iter.Seq[any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	switch t := obj.(type) {
	case []any:
		return iterSlice(t), len(t), nil
	case []string:
		return iterSlice(t), len(t), nil
	case []int:
		return iterSlice(t), len(t), nil
	case []int64:
		return iterSlice(t), len(t), nil
	case []float64:
		return iterSlice(t), len(t), nil
	case []bool:
		return iterSlice(t), len(t), nil
	case []time.Time:
		return iterSlice(t), len(t), nil
	case []domain.Document:
		return iterSlice(t), len(t), nil
	case []map[string]any:
		return iterSlice(t), len(t), nil
	case string, []byte:
		return nil, 0, ErrorNonList{Type: reflect.TypeOf(obj)}
	}

	v := reflect.ValueNoEscapeOf(obj)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any) bool) {
			for i := range v.Len() {
				if !yield(v.Index(i).Interface()) {
					return
				}
			}
		}, v.Len(), nil
	}
	return nil, 0, ErrorNonList{Type: v.Type()}
}

func iterSlice[T any](m []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range m {
			if !yield(v) {
				return
			}
		}
	}
}

// AsInteger converts any built-in number to int and returns a flag that informs
// if the argument is a valid integer.
func AsInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		if trunc := math.Trunc(float64(t)); trunc == float64(t) {
			return int(trunc), true
		}
		return 0, false
	case float64:
		if trunc := math.Trunc(t); trunc == t {
			return int(trunc), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Contains checks if the given value is present in the slice.
func Contains[T any, S ~[]T](s S, t T, fn func(a T, b T) bool) bool {
	for _, i := range s {
		if fn(i, t) {
			return true
		}
	}
	return false
}
