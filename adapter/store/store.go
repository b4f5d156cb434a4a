// Package store contains the default [domain.Store] implementation, an
// insertion-ordered slice of documents with an id set.
package store

import (
	"slices"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// Store implements [domain.Store]. It is not safe for concurrent use.
type Store struct {
	docs []domain.Document
	ids  map[string]struct{}
}

// NewStore returns a new empty implementation of [domain.Store].
func NewStore() domain.Store {
	return &Store{ids: make(map[string]struct{})}
}

// All implements [domain.Store].
func (s *Store) All() []domain.Document {
	return s.docs
}

// Len implements [domain.Store].
func (s *Store) Len() int {
	return len(s.docs)
}

// HasID implements [domain.Store].
func (s *Store) HasID(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Append implements [domain.Store].
func (s *Store) Append(docs ...domain.Document) {
	for _, doc := range docs {
		if id, ok := doc.ID().(string); ok {
			s.ids[id] = struct{}{}
		}
	}
	s.docs = append(s.docs, docs...)
}

// RemoveFunc implements [domain.Store].
func (s *Store) RemoveFunc(del func(domain.Document) bool) int {
	before := len(s.docs)
	s.docs = slices.DeleteFunc(s.docs, func(doc domain.Document) bool {
		if !del(doc) {
			return false
		}
		if id, ok := doc.ID().(string); ok {
			delete(s.ids, id)
		}
		return true
	})
	return before - len(s.docs)
}

// Reset implements [domain.Store].
func (s *Store) Reset() int {
	n := len(s.docs)
	s.docs = nil
	clear(s.ids)
	return n
}
