// Package matcher contains the default implementation of [domain.Matcher]
// using basic mongo-like match API.
package matcher

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/normalizer"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
	"github.com/vinicius-lino-figueiredo/unitdb/pkg/structure"
)

var (
	// ErrMixedOperators is returned when user provides a field condition
	// with mixed use of normal fields and operators.
	ErrMixedOperators = errors.New("cannot mix operators and normal fields")
)

// ErrUnknownOperator is returned when user provides an unknown dollar field.
type ErrUnknownOperator struct {
	Operator string
}

// Error implements [error].
func (e ErrUnknownOperator) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Operator)
}

// ErrCompArgType is returned when a logic operator is called with an argument
// of invalid type.
type ErrCompArgType struct {
	Comp   string
	Want   string
	Actual any
}

// Error implements [error].
func (e ErrCompArgType) Error() string {
	return fmt.Sprintf(
		"%s value should be of type %s, got %T",
		e.Comp, e.Want, e.Actual,
	)
}

// Matcher implements [domain.Matcher].
//
// A query is compiled once by SetQuery into a [Query]. Operator clauses are
// conjunctive, both across fields and within a field. Malformed operands and
// values that cannot be compared never match, so Match cannot fail.
type Matcher struct {
	documentFactory domain.DocumentFactory
	comparer        domain.Comparer
	normalizer      domain.Normalizer
	query           Query
}

// NewMatcher returns a new implementation of domain.Matcher.
func NewMatcher(options ...Option) domain.Matcher {

	m := &Matcher{
		documentFactory: data.NewDocument,
		comparer:        comparer.NewComparer(),
		normalizer:      normalizer.NewNormalizer(),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// SetQuery implements [domain.Matcher].
func (m *Matcher) SetQuery(query any) error {
	qry, err := m.makeQuery(query)
	if err != nil {
		return err
	}
	m.query = qry
	return nil
}

func (m *Matcher) makeQuery(query any) (qry Query, err error) {
	query, ok := m.getConcrete(query)
	if !ok || query == nil {
		return qry, nil
	}
	i, l, err := structure.Seq2(query)
	if err != nil {
		return qry, fmt.Errorf("%w: %w", ErrCompArgType{Comp: "query", Want: "object", Actual: query}, err)
	}

	mapping := m.collect(i, l)
	fields := LogicOp{Type: And, Rules: make([]FieldRule, 0, len(mapping))}

	for _, key := range slices.Sorted(maps.Keys(mapping)) {
		if isOperator(key) {
			lo, err := m.makeLogicOp(key, mapping[key])
			if err != nil {
				return qry, err
			}
			qry.Lo = append(qry.Lo, lo)
			continue
		}
		fr, err := m.makeFieldRule(key, mapping[key])
		if err != nil {
			return qry, err
		}
		fields.Rules = append(fields.Rules, fr)
	}

	if len(fields.Rules) > 0 {
		qry.Lo = append(qry.Lo, fields)
	}
	return qry, nil
}

// collect copies the pairs of i into a map, leaving unsafe keys out.
func (m *Matcher) collect(i iter.Seq2[string, any], l int) map[string]any {
	mapping := make(map[string]any, l)
	for k, v := range i {
		if domain.IsUnsafeKey(k) {
			continue
		}
		mapping[k] = v
	}
	return mapping
}

func isOperator(key string) bool {
	return strings.HasPrefix(key, "$")
}

func (m *Matcher) makeLogicOp(name string, v any) (LogicOp, error) {
	typ, ok := logicOperators[name]
	if !ok {
		return LogicOp{}, ErrUnknownOperator{Operator: name}
	}

	if typ == Not {
		sub, err := m.makeQuery(v)
		if err != nil {
			return LogicOp{}, err
		}
		return LogicOp{Type: Not, Sub: []LogicOp{{Type: And, Sub: sub.Lo}}}, nil
	}

	items, l, err := structure.Seq(v)
	if err != nil {
		return LogicOp{}, fmt.Errorf("%w: %w", ErrCompArgType{Comp: name, Want: "list", Actual: v}, err)
	}
	lo := LogicOp{Type: typ, Sub: make([]LogicOp, 0, l)}
	for item := range items {
		sub, err := m.makeQuery(item)
		if err != nil {
			return LogicOp{}, err
		}
		lo.Sub = append(lo.Sub, LogicOp{Type: And, Sub: sub.Lo})
	}
	return lo, nil
}

func (m *Matcher) makeFieldRule(field string, obj any) (fr FieldRule, err error) {
	fr.Field = field

	obj, ok := m.getConcrete(obj)
	if !ok {
		obj = domain.Undefined{}
	}

	switch obj.(type) {
	case nil, domain.Undefined, *regexp.Regexp, time.Time:
		fr.Conds = []Cond{{Op: Eq, Val: m.normalizer.Normalize(obj)}}
		return fr, nil
	}

	i, l, err := structure.Seq2(obj)
	if err != nil {
		fr.Conds = []Cond{{Op: Eq, Val: m.normalizer.Normalize(obj)}}
		return fr, nil
	}

	mapping := m.collect(i, l)
	dollar := 0
	for k := range mapping {
		if isOperator(k) {
			dollar++
		}
	}

	switch {
	case len(mapping) == 0:
		// an empty operator clause has nothing to fail
		return fr, nil
	case dollar == 0:
		doc, err := m.documentFactory(obj)
		if err != nil {
			return fr, err
		}
		fr.Conds = []Cond{{Op: Eq, Val: doc}}
		return fr, nil
	case dollar != len(mapping):
		return fr, ErrMixedOperators
	}

	fr.Conds = make([]Cond, 0, len(mapping))
	for _, key := range slices.Sorted(maps.Keys(mapping)) {
		cond, err := m.makeCond(key, mapping[key])
		if err != nil {
			return fr, err
		}
		fr.Conds = append(fr.Conds, cond)
	}
	return fr, nil
}

func (m *Matcher) makeCond(k string, v any) (Cond, error) {
	op, ok := operators[k]
	if !ok {
		return Cond{}, ErrUnknownOperator{Operator: k}
	}
	switch op {
	case Regex:
		return m.makeRegex(v), nil
	case In, Nin:
		return m.makeList(op, v), nil
	case Exists:
		return Cond{Op: Exists, Val: m.truthy(v)}, nil
	default:
		return Cond{Op: op, Val: m.normalize(v)}, nil
	}
}

func (m *Matcher) makeRegex(v any) Cond {
	v, _ = m.getConcrete(v)
	switch t := v.(type) {
	case *regexp.Regexp:
		if t != nil {
			return Cond{Op: Regex, Val: t}
		}
	case string:
		if rgx, err := regexp.Compile(t); err == nil {
			return Cond{Op: Regex, Val: rgx}
		}
	}
	return Cond{Op: Fail}
}

func (m *Matcher) makeList(op uint8, v any) Cond {
	v, _ = m.getConcrete(v)
	seq, l, err := structure.Seq(v)
	if err != nil {
		return Cond{Op: Fail}
	}
	list := make([]any, 0, l)
	for item := range seq {
		list = append(list, m.normalize(item))
	}
	return Cond{Op: op, Val: list}
}

func (m *Matcher) truthy(v any) bool {
	value, ok := m.getConcrete(v)
	if !ok {
		return false
	}
	switch t := value.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if m.comparer.Comparable(value, 0) {
		c, err := m.comparer.Compare(value, 0)
		return err == nil && c != 0
	}
	return true
}

// Match implements [domain.Matcher].
func (m *Matcher) Match(doc domain.Document) bool {
	if doc == nil {
		doc = data.M(nil)
	}
	for _, lo := range m.query.Lo {
		if !m.matchLogicOp(doc, lo) {
			return false
		}
	}
	return true
}

func (m *Matcher) matchLogicOp(doc domain.Document, lo LogicOp) bool {
	switch lo.Type {
	case And:
		for _, sub := range lo.Sub {
			if !m.matchLogicOp(doc, sub) {
				return false
			}
		}
		for _, rule := range lo.Rules {
			if !m.matchRule(doc, rule) {
				return false
			}
		}
		return true
	case Or:
		for _, sub := range lo.Sub {
			if m.matchLogicOp(doc, sub) {
				return true
			}
		}
		return false
	case Not:
		return !m.matchLogicOp(doc, lo.Sub[0])
	default:
		return false
	}
}

func (m *Matcher) matchRule(doc domain.Document, rule FieldRule) bool {
	var raw any = domain.Undefined{}
	if doc.Has(rule.Field) {
		raw = doc.Get(rule.Field)
	}
	norm := m.normalize(raw)

	for _, cond := range rule.Conds {
		if !m.matchCond(raw, norm, cond) {
			return false
		}
	}
	return true
}

func (m *Matcher) matchCond(raw, norm any, cond Cond) bool {
	switch cond.Op {
	case Eq:
		return m.equal(norm, cond.Val)
	case Ne:
		return !m.equal(norm, cond.Val)
	case Lt:
		c, ok := m.order(norm, cond.Val)
		return ok && c < 0
	case Lte:
		c, ok := m.order(norm, cond.Val)
		return ok && c <= 0
	case Gt:
		c, ok := m.order(norm, cond.Val)
		return ok && c > 0
	case Gte:
		c, ok := m.order(norm, cond.Val)
		return ok && c >= 0
	case In:
		return structure.Contains(cond.Val.([]any), norm, m.equal)
	case Nin:
		return !structure.Contains(cond.Val.([]any), norm, m.equal)
	case Regex:
		str, ok := raw.(string)
		return ok && cond.Val.(*regexp.Regexp).MatchString(str)
	case Exists:
		_, missing := raw.(domain.Undefined)
		return !missing == cond.Val.(bool)
	default:
		return false
	}
}

// equal expects normalized values.
func (m *Matcher) equal(a, b any) bool {
	c, err := m.comparer.Compare(a, b)
	return err == nil && c == 0
}

// order expects normalized values. Values of different families, such as a
// string and a number, or a missing field, have no order.
func (m *Matcher) order(a, b any) (int, bool) {
	if !m.comparer.Comparable(a, b) {
		return 0, false
	}
	c, err := m.comparer.Compare(a, b)
	if err != nil {
		return 0, false
	}
	return c, true
}

func (m *Matcher) normalize(v any) any {
	concrete, ok := m.getConcrete(v)
	if !ok {
		return domain.Undefined{}
	}
	return m.normalizer.Normalize(concrete)
}

func (m *Matcher) getConcrete(v any) (res any, ok bool) {
	var g domain.Getter
	res = v
	for {
		if g, ok = res.(domain.Getter); !ok {
			return res, true
		}
		if res, ok = g.Get(); !ok {
			return nil, false
		}
	}
}
