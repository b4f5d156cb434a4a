// Package modifier contains a [domain.Modifier] implementation that merges
// update patches into documents.
package modifier

import (
	"fmt"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// ErrModQuery is returned when provided patch is not an object.
type ErrModQuery struct {
	Reason string
}

// Error implements [error].
func (e ErrModQuery) Error() string {
	return fmt.Sprintf("invalid update patch: %s", e.Reason)
}

type change struct {
	key   string
	value any
	unset bool
}

// Modifier implements [domain.Modifier].
//
// Patch fields replace document fields. A field whose value is undefined (see
// [domain.Getter]) is removed instead. Nested values are not copied.
type Modifier struct {
	docFac  domain.DocumentFactory
	changes []change
}

// NewModifier returns a new implementation of [domain.Modifier].
func NewModifier(opts ...Option) domain.Modifier {
	m := &Modifier{docFac: data.NewDocument}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPatch implements [domain.Modifier]. A patch that touches the document id
// is rejected with [domain.ErrCannotModifyID].
func (m *Modifier) SetPatch(patch any) error {
	changes, err := m.makeChanges(patch)
	if err != nil {
		return err
	}
	m.changes = changes
	return nil
}

func (m *Modifier) makeChanges(patch any) ([]change, error) {
	if patch == nil {
		return nil, nil
	}
	if _, ok := patch.(domain.Getter); ok {
		return nil, ErrModQuery{Reason: fmt.Sprintf("expected an object, got %T", patch)}
	}
	doc, err := m.docFac(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModQuery{Reason: "expected an object"}, err)
	}

	changes := make([]change, 0, doc.Len())
	for k, v := range doc.Iter() {
		if domain.IsUnsafeKey(k) {
			continue
		}
		if k == domain.IDField {
			return nil, domain.ErrCannotModifyID
		}
		value, defined := m.getConcrete(v)
		changes = append(changes, change{key: k, value: value, unset: !defined})
	}
	return changes, nil
}

// Modify implements [domain.Modifier].
func (m *Modifier) Modify(doc domain.Document) {
	for _, c := range m.changes {
		if c.unset {
			doc.Unset(c.key)
			continue
		}
		doc.Set(c.key, c.value)
	}
}

func (m *Modifier) getConcrete(v any) (any, bool) {
	for {
		g, ok := v.(domain.Getter)
		if !ok {
			return v, true
		}
		if v, ok = g.Get(); !ok {
			return nil, false
		}
	}
}
