package data

import (
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

type MTestSuite struct {
	suite.Suite
}

func (s *MTestSuite) TestSimpleMap() {
	obj := map[string]any{
		"yeah": "sure",
		"of":   "course",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{"yeah": "sure", "of": "course"}, doc)
}

// Plain maps share storage with the created document.
func (s *MTestSuite) TestSharedMap() {
	obj := map[string]any{"a": 1}

	doc, err := NewDocument(obj)
	s.NoError(err)
	doc.Set("id", "abc")
	s.Equal("abc", obj["id"])
}

func (s *MTestSuite) TestTypedMapIsCopied() {
	obj := map[string]int{"a": 1}

	doc, err := NewDocument(obj)
	s.NoError(err)
	doc.Set("a", 2)
	s.Equal(1, obj["a"])
	s.Equal(M{"a": 2}, doc)
}

func (s *MTestSuite) TestSimpleStruct() {
	obj := struct{ No, Yes string }{
		No:  "way",
		Yes: "indeed",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{"No": "way", "Yes": "indeed"}, doc)
}

func (s *MTestSuite) TestUnexportedField() {
	obj := struct{ No, yes string }{
		No:  "way",
		yes: "indeed",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{"No": "way"}, doc)
}

func (s *MTestSuite) TestTags() {
	obj := struct {
		Name    string `unitdb:"name"`
		Skip    string `unitdb:"-"`
		Ptr     *int   `unitdb:"ptr,omitempty"`
		Zero    int    `unitdb:"zero,omitzero"`
		Present int    `unitdb:",omitzero"`
	}{
		Name:    "a",
		Skip:    "b",
		Present: 3,
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{"name": "a", "Present": 3}, doc)
}

func (s *MTestSuite) TestPointerValue() {
	obj := &struct{ No, Yes string }{
		No:  "way",
		Yes: "indeed",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{"No": "way", "Yes": "indeed"}, doc)
}

func (s *MTestSuite) TestNilPointer() {
	var obj *struct{ A int }
	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{}, doc)
}

func (s *MTestSuite) TestNestedValues() {
	now := time.Now()
	type inner struct{ B int }
	obj := struct {
		A    inner
		L    []inner
		T    time.Time
		Raw  []byte
		Nest map[string]int
	}{
		A:    inner{B: 1},
		L:    []inner{{B: 2}},
		T:    now,
		Raw:  []byte("x"),
		Nest: map[string]int{"c": 3},
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{
		"A":    M{"B": 1},
		"L":    []any{M{"B": 2}},
		"T":    now,
		"Raw":  []byte("x"),
		"Nest": M{"c": 3},
	}, doc)
}

func (s *MTestSuite) TestNilArg() {
	doc, err := NewDocument(nil)
	s.NoError(err)
	s.Equal(M{}, doc)
}

func (s *MTestSuite) TestNonStructArg() {
	_, err := NewDocument(1)
	s.ErrorAs(err, new(domain.ErrDocumentType))

	_, err = NewDocument(map[int]string{1: "a"})
	s.ErrorAs(err, new(domain.ErrDocumentType))
}

func (s *MTestSuite) TestUnsupportedField() {
	_, err := NewDocument(struct{ C chan int }{C: make(chan int)})
	s.ErrorAs(err, new(domain.ErrDocumentType))
}

func (s *MTestSuite) TestAsDocument() {
	doc, ok := AsDocument(map[string]any{"a": 1})
	s.True(ok)
	s.Equal(M{"a": 1}, doc)

	doc, ok = AsDocument(M{"b": 2})
	s.True(ok)
	s.Equal(M{"b": 2}, doc)

	_, ok = AsDocument([]any{})
	s.False(ok)
}

func (s *MTestSuite) TestID() {
	s.Nil(M{}.ID())
	s.Equal("abc", M{"id": "abc"}.ID())
}

func (s *MTestSuite) TestIterationFunctions() {
	doc := M{"a": 1, "b": 2}

	keys := slices.Sorted(doc.Keys())
	s.Equal([]string{"a", "b"}, keys)

	values := slices.Collect(doc.Values())
	s.ElementsMatch([]any{1, 2}, values)

	s.Equal(map[string]any{"a": 1, "b": 2}, maps.Collect(doc.Iter()))
}

func (s *MTestSuite) TestSetUnsetHas() {
	doc := M{}
	doc.Set("a", nil)
	s.True(doc.Has("a"))
	s.Equal(1, doc.Len())
	doc.Unset("a")
	s.False(doc.Has("a"))
	s.Zero(doc.Len())
}

func (s *MTestSuite) TestD() {
	doc := M{"a": M{"b": 1}, "c": map[string]any{"d": 2}, "e": 3}
	s.Equal(M{"b": 1}, doc.D("a"))
	s.Equal(M{"d": 2}, doc.D("c"))
	s.Nil(doc.D("e"))
	s.Nil(doc.D("f"))
}

func TestMTestSuite(t *testing.T) {
	suite.Run(t, new(MTestSuite))
}
