// Package comparer contains the default [domain.Comparer] implementation, a
// total order over every value a document can hold.
package comparer

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"slices"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
	"github.com/vinicius-lino-figueiredo/unitdb/pkg/structure"
)

// rank is the position of a kind of value in the total order. Values of
// different ranks compare by rank alone.
type rank int

const (
	rankUndefined rank = iota
	rankNil
	rankNumber
	rankString
	rankBool
	rankTime
	rankList
	rankDoc
	// rankOther holds values no other rank accepts. Two of them cannot be
	// compared.
	rankOther
)

// Comparer implements domain.Comparer.
//
// Values are ordered by kind first: undefined, nil, numbers, strings,
// booleans, dates, lists and documents.
type Comparer struct{}

// NewComparer returns a new implementation of domain.Comparer.
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Comparable implements domain.Comparer.
func (c *Comparer) Comparable(a, b any) bool {
	ra, _ := c.classify(a)
	rb, _ := c.classify(b)
	if ra != rb {
		return false
	}
	return ra == rankNumber || ra == rankString || ra == rankTime
}

// Compare implements domain.Comparer.
func (c *Comparer) Compare(a any, b any) (int, error) {
	ra, va := c.classify(a)
	rb, vb := c.classify(b)

	if ra != rb {
		return cmp.Compare(ra, rb), nil
	}

	switch ra {
	case rankUndefined, rankNil:
		return 0, nil
	case rankNumber:
		// big.Float compares float64 and int64 without precision loss
		return va.(*big.Float).Cmp(vb.(*big.Float)), nil
	case rankString:
		return cmp.Compare(va.(string), vb.(string)), nil
	case rankBool:
		return c.compareBool(va.(bool), vb.(bool)), nil
	case rankTime:
		return va.(time.Time).Compare(vb.(time.Time)), nil
	case rankList:
		return c.compareList(va.([]any), vb.([]any))
	case rankDoc:
		return c.compareDoc(va.(domain.Document), vb.(domain.Document))
	}
	return 0, fmt.Errorf("cannot compare unexpected types %T and %T", a, b)
}

// classify returns the rank of v along with the value used to order it
// within that rank.
func (c *Comparer) classify(v any) (rank, any) {
	if g, ok := v.(domain.Getter); ok {
		val, defined := g.Get()
		if !defined {
			return rankUndefined, nil
		}
		v = val
	}

	switch t := v.(type) {
	case nil:
		return rankNil, nil
	case string:
		return rankString, t
	case bool:
		return rankBool, t
	case time.Time:
		return rankTime, t
	case []byte:
		return rankOther, t
	}
	if n, ok := c.asNumber(v); ok {
		return rankNumber, n
	}
	if doc, ok := c.asDocument(v); ok {
		return rankDoc, doc
	}
	if l, ok := c.asList(v); ok {
		return rankList, l
	}
	return rankOther, v
}

func (c *Comparer) compareList(a, b []any) (int, error) {
	for i := range min(len(a), len(b)) {
		comp, err := c.Compare(a[i], b[i])
		if err != nil || comp != 0 {
			return comp, err
		}
	}
	// a list sorts before any list it prefixes
	return cmp.Compare(len(a), len(b)), nil
}

func (c *Comparer) compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// compareDoc walks both documents in key order. A differing key name decides
// before any value is looked at.
func (c *Comparer) compareDoc(a domain.Document, b domain.Document) (int, error) {
	aKeys := slices.Sorted(a.Keys())
	bKeys := slices.Sorted(b.Keys())

	for i := range min(len(aKeys), len(bKeys)) {
		if comp := cmp.Compare(aKeys[i], bKeys[i]); comp != 0 {
			return comp, nil
		}
		comp, err := c.Compare(a.Get(aKeys[i]), b.Get(bKeys[i]))
		if err != nil || comp != 0 {
			return comp, err
		}
	}
	return cmp.Compare(len(aKeys), len(bKeys)), nil
}

// asDocument accepts documents, plain maps and maps with string keys of any
// value type. Typed maps are copied into a new document.
func (c *Comparer) asDocument(v any) (domain.Document, bool) {
	if doc, ok := data.AsDocument(v); ok {
		return doc, true
	}
	r := reflect.ValueNoEscapeOf(v)
	if r.Kind() != reflect.Map || r.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	doc, err := data.NewDocument(v)
	if err != nil {
		return nil, false
	}
	return doc, true
}

func (c *Comparer) asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	seq, l, err := structure.Seq(v)
	if err != nil {
		return nil, false
	}
	return slices.AppendSeq(make([]any, 0, l), seq), true
}

func (c *Comparer) asNumber(v any) (*big.Float, bool) {
	r := new(big.Float)
	switch n := v.(type) {
	case int:
		return r.SetInt64(int64(n)), true
	case int8:
		return r.SetInt64(int64(n)), true
	case int16:
		return r.SetInt64(int64(n)), true
	case int32:
		return r.SetInt64(int64(n)), true
	case int64:
		return r.SetInt64(n), true
	case uint:
		return r.SetUint64(uint64(n)), true
	case uint8:
		return r.SetUint64(uint64(n)), true
	case uint16:
		return r.SetUint64(uint64(n)), true
	case uint32:
		return r.SetUint64(uint64(n)), true
	case uint64:
		return r.SetUint64(n), true
	case float32:
		return c.asFloat(r, float64(n))
	case float64:
		return c.asFloat(r, n)
	}
	return nil, false
}

// NaN cannot be held by big.Float, so it does not rank as a number.
func (c *Comparer) asFloat(r *big.Float, f float64) (*big.Float, bool) {
	if math.IsNaN(f) {
		return nil, false
	}
	return r.SetFloat64(f), true
}
