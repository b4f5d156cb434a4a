// Package serializer contains the default [domain.Serializer] implementation.
package serializer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// DateKey is the key of the object that replaces a [time.Time] in serialized
// documents. Its value is the time in Unix milliseconds.
const DateKey = "$$date"

// Serializer implements domain.Serializer. Documents are written as a single
// JSON line.
type Serializer struct {
	documentFactory domain.DocumentFactory
}

// NewSerializer returns a new implementation of domain.Serializer.
func NewSerializer(options ...Option) domain.Serializer {
	s := &Serializer{documentFactory: data.NewDocument}
	for _, option := range options {
		option(s)
	}
	return s
}

// Serialize implements domain.Serializer.
func (s *Serializer) Serialize(ctx context.Context, obj any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc, ok := obj.(domain.Document); ok {
		cp, err := s.copyDoc(doc)
		if err != nil {
			return nil, err
		}
		obj = cp
	}
	return json.Marshal(obj)
}

func (s *Serializer) copyDoc(doc domain.Document) (domain.Document, error) {
	res, err := s.documentFactory(nil)
	if err != nil {
		return nil, err
	}

	for k, v := range doc.Iter() {
		if strings.HasPrefix(k, "$") {
			return nil, domain.ErrFieldName{Field: k, Reason: "names cannot start with '$'"}
		}
		if _, undefined := v.(domain.Undefined); undefined {
			continue
		}
		copied, err := s.copyAny(v)
		if err != nil {
			return nil, err
		}
		res.Set(k, copied)
	}
	return res, nil
}

func (s *Serializer) copyAny(v any) (any, error) {
	switch t := v.(type) {
	case domain.Document:
		return s.copyDoc(t)
	case map[string]any:
		return s.copyDoc(data.M(t))
	case []any:
		newList := make([]any, len(t))
		for n, itm := range t {
			newV, err := s.copyAny(itm)
			if err != nil {
				return nil, err
			}
			newList[n] = newV
		}
		return newList, nil
	case time.Time:
		return s.documentFactory(map[string]int64{DateKey: t.UnixMilli()})
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return s.copyAny(*t)
	default:
		return v, nil
	}
}
