// Package projector contains the default [domain.Projector] implementation.
package projector

import (
	"errors"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

var (
	// ErrMixOmitType is returned when user provides a projection object
	// with mixed "omit" and "show" operators.
	ErrMixOmitType = errors.New("can't both keep and omit fields except for id")
)

// Projector implements [domain.Projector].
type Projector struct {
	docFac domain.DocumentFactory
}

// NewProjector returns a new implementation of [domain.Projector].
func NewProjector(opts ...Option) domain.Projector {
	p := Projector{docFac: data.NewDocument}
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

// Project implements [domain.Projector].
//
// Projected documents are new values: changing them does not affect docs.
func (q *Projector) Project(docs []domain.Document, proj map[string]uint8) ([]domain.Document, error) {
	if len(proj) == 0 {
		return docs, nil
	}

	id, idMentioned := proj[domain.IDField]
	keepID := !idMentioned || id != 0
	projection := make([]string, 0, len(proj))

	fields := 0
	oneFields := 0
	for field, value := range proj {
		if field == domain.IDField || domain.IsUnsafeKey(field) {
			continue
		}
		fields++
		if value > 0 {
			oneFields++
		}
		if oneFields > 0 && oneFields != fields {
			return nil, ErrMixOmitType
		}
		projection = append(projection, field)
	}

	// only the id was mentioned, so it decides what is kept
	include := oneFields != 0 || (fields == 0 && keepID)

	res := make([]domain.Document, len(docs))
	for n, doc := range docs {
		projected, err := q.projectDoc(doc, projection, include)
		if err != nil {
			return nil, err
		}

		if keepID && doc.Has(domain.IDField) {
			projected.Set(domain.IDField, doc.ID())
		} else {
			projected.Unset(domain.IDField)
		}
		res[n] = projected
	}

	return res, nil
}

func (q *Projector) projectDoc(doc domain.Document, p []string, add bool) (domain.Document, error) {
	if add {
		return q.positiveProject(doc, p)
	}
	return q.negativeProject(doc, p)
}

func (q *Projector) positiveProject(doc domain.Document, p []string) (domain.Document, error) {
	res, err := q.docFac(nil)
	if err != nil {
		return nil, err
	}

	for _, field := range p {
		if doc.Has(field) {
			res.Set(field, doc.Get(field))
		}
	}
	return res, nil
}

func (q *Projector) negativeProject(doc domain.Document, p []string) (domain.Document, error) {
	res, err := q.docFac(nil)
	if err != nil {
		return nil, err
	}
	for k, v := range doc.Iter() {
		res.Set(k, v)
	}
	for _, field := range p {
		res.Unset(field)
	}
	return res, nil
}
