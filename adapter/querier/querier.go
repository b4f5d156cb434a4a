// Package querier contains the default [domain.Querier] implementation.
package querier

import (
	"fmt"
	"slices"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/projector"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// Querier implements [domain.Querier].
//
// Results go through filter, sort, skip, limit and projection, in that order.
type Querier struct {
	mtchr  domain.Matcher
	cmpr   domain.Comparer
	proj   domain.Projector
	docFac domain.DocumentFactory
}

// NewQuerier returns a new implementation of [domain.Querier].
func NewQuerier(opts ...Option) domain.Querier {
	q := Querier{
		docFac: data.NewDocument,
		cmpr:   comparer.NewComparer(),
	}
	for _, opt := range opts {
		opt(&q)
	}
	if q.proj == nil {
		q.proj = projector.NewProjector(
			projector.WithDocumentFactory(q.docFac),
		)
	}
	if q.mtchr == nil {
		q.mtchr = matcher.NewMatcher(
			matcher.WithComparer(q.cmpr),
			matcher.WithDocumentFactory(q.docFac),
		)
	}
	return &q
}

// Query implements [domain.Querier].
//
// The returned slice is always new. Unless a projection is given, its elements
// are the documents of docs.
func (q *Querier) Query(docs []domain.Document, opts ...domain.QueryOption) ([]domain.Document, error) {
	var options domain.QueryOptions
	for _, opt := range opts {
		opt(&options)
	}

	res, err := q.filter(docs, options.Query)
	if err != nil {
		return nil, err
	}

	if len(options.Sort) > 0 {
		if res, err = q.sort(res, options.Sort); err != nil {
			return nil, fmt.Errorf("sorting: %w", err)
		}
	}

	res = q.skipAndLimit(res, options.Skip, options.Limit)

	res, err = q.proj.Project(res, options.Projection)
	if err != nil {
		return nil, fmt.Errorf("projecting: %w", err)
	}
	return res, nil
}

// Count implements [domain.Querier].
func (q *Querier) Count(docs []domain.Document, query any) (int64, error) {
	if err := q.mtchr.SetQuery(query); err != nil {
		return 0, err
	}
	var n int64
	for _, doc := range docs {
		if q.mtchr.Match(doc) {
			n++
		}
	}
	return n, nil
}

func (q *Querier) filter(docs []domain.Document, query any) ([]domain.Document, error) {
	if err := q.mtchr.SetQuery(query); err != nil {
		return nil, err
	}

	res := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if q.mtchr.Match(doc) {
			res = append(res, doc)
		}
	}
	return res, nil
}

func (q *Querier) sort(docs []domain.Document, sort domain.Sort) ([]domain.Document, error) {
	var err error
	slices.SortStableFunc(docs, func(a, b domain.Document) int {
		if err != nil {
			return 0
		}
		for _, crit := range sort {
			comp, cErr := q.compareByCriterion(a, b, crit)
			if cErr != nil {
				err = cErr
				return 0
			}
			if comp != 0 {
				return comp
			}
		}
		return 0
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// compareByCriterion places documents without the sort key after the ones that
// have it, whatever the direction.
func (q *Querier) compareByCriterion(a, b domain.Document, crit domain.SortName) (int, error) {
	hasA, hasB := a.Has(crit.Key), b.Has(crit.Key)
	switch {
	case !hasA && !hasB:
		return 0, nil
	case !hasA:
		return 1, nil
	case !hasB:
		return -1, nil
	}

	comp, err := q.cmpr.Compare(a.Get(crit.Key), b.Get(crit.Key))
	if err != nil {
		return 0, fmt.Errorf("comparing %q: %w", crit.Key, err)
	}
	if crit.Order < 0 {
		return -comp, nil
	}
	return comp, nil
}

func (q *Querier) skipAndLimit(docs []domain.Document, skip, limit int64) []domain.Document {

	length := int64(len(docs))

	if limit <= 0 {
		limit = domain.DefaultLimit
	}

	skip = max(skip, 0)      // skip cannot be negative
	skip = min(skip, length) // cannot skip more than length

	limit = min(limit, length-skip) // cannot take more than what is left

	return docs[skip : skip+limit]
}
