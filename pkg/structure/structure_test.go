package structure

import (
	"maps"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
)

type StructureTestSuite struct {
	suite.Suite
}

func (s *StructureTestSuite) collect(obj any) map[string]any {
	i, l, err := Seq2(obj)
	s.Require().NoError(err)
	res := maps.Collect(i)
	s.Len(res, l)
	return res
}

func (s *StructureTestSuite) TestSeq2Maps() {
	s.Equal(map[string]any{"a": 1}, s.collect(map[string]any{"a": 1}))
	s.Equal(map[string]any{"a": 1}, s.collect(data.M{"a": 1}))
	s.Equal(map[string]any{"a": "b"}, s.collect(map[string]string{"a": "b"}))
	s.Equal(map[string]any{"a": 2}, s.collect(map[string]int{"a": 2}))
	s.Equal(map[string]any{"a": 2.5}, s.collect(map[string]float64{"a": 2.5}))
	s.Equal(map[string]any{"a": true}, s.collect(map[string]bool{"a": true}))
	s.Equal(map[string]any{"a": uint8(1)}, s.collect(map[string]uint8{"a": 1}))
	s.Equal(map[string]any{"a": int8(3)}, s.collect(map[string]int8{"a": 3}))
}

func (s *StructureTestSuite) TestSeq2Struct() {
	obj := struct {
		A      int
		B      string `unitdb:"b"`
		C      bool   `unitdb:"-"`
		D      int    `unitdb:",omitzero"`
		hidden int
	}{A: 1, B: "x", C: true, hidden: 2}

	s.Equal(map[string]any{"A": 1, "b": "x", "D": 0}, s.collect(obj))
	s.Equal(map[string]any{"A": 1, "b": "x", "D": 0}, s.collect(&obj))
}

func (s *StructureTestSuite) TestSeq2Primitive() {
	for _, v := range []any{
		"a", true, 1, int8(1), uint(1), 1.5, float32(1),
		time.Now(), regexp.MustCompile("a"), []byte("a"), []any{1},
	} {
		_, _, err := Seq2(v)
		s.ErrorAs(err, new(ErrorNonObject), "%T", v)
	}
}

func (s *StructureTestSuite) TestSeq2NilArgument() {
	_, _, err := Seq2(nil)
	s.ErrorIs(err, ErrNilObj)

	var ptr *struct{ A int }
	_, _, err = Seq2(ptr)
	s.ErrorIs(err, ErrNilObj)
}

func (s *StructureTestSuite) TestSeq2NonStringKey() {
	_, _, err := Seq2(map[int]any{1: 1})
	s.ErrorAs(err, new(ErrorNonObject))
}

func (s *StructureTestSuite) TestSeq2Stop() {
	i, _, err := Seq2(map[string]any{"a": 1, "b": 2, "c": 3})
	s.Require().NoError(err)
	count := 0
	for range i {
		count++
		break
	}
	s.Equal(1, count)
}

func (s *StructureTestSuite) TestSeqSlices() {
	cases := []struct {
		in  any
		out []any
	}{
		{[]any{1, "a"}, []any{1, "a"}},
		{[]string{"a", "b"}, []any{"a", "b"}},
		{[]int{1, 2}, []any{1, 2}},
		{[]int64{1}, []any{int64(1)}},
		{[]float64{1.5}, []any{1.5}},
		{[]bool{true}, []any{true}},
		{[]uint16{7}, []any{uint16(7)}},
		{[2]int{3, 4}, []any{3, 4}},
		{[]any{}, []any{}},
	}
	for _, c := range cases {
		i, l, err := Seq(c.in)
		s.Require().NoError(err)
		s.Len(c.out, l)
		res := make([]any, 0, l)
		s.Equal(c.out, slices.AppendSeq(res, i))
	}
}

func (s *StructureTestSuite) TestSeqPrimitive() {
	for _, v := range []any{"a", []byte("a"), 1, true, map[string]any{}} {
		_, _, err := Seq(v)
		s.ErrorAs(err, new(ErrorNonList), "%T", v)
	}
}

func (s *StructureTestSuite) TestSeqNilArgument() {
	_, _, err := Seq(nil)
	s.ErrorIs(err, ErrNilObj)
}

func (s *StructureTestSuite) TestSeqStop() {
	i, _, err := Seq([]int{1, 2, 3})
	s.Require().NoError(err)
	count := 0
	for range i {
		count++
		break
	}
	s.Equal(1, count)
}

func (s *StructureTestSuite) TestAsInteger() {
	for _, v := range []any{
		int(1), int8(1), int16(1), int32(1), int64(1),
		uint(1), uint8(1), uint16(1), uint32(1), uint64(1),
		float32(1), float64(1),
	} {
		n, ok := AsInteger(v)
		s.True(ok, "%T", v)
		s.Equal(1, n)
	}

	_, ok := AsInteger(1.5)
	s.False(ok)
	_, ok = AsInteger(float32(1.5))
	s.False(ok)
	_, ok = AsInteger("1")
	s.False(ok)
}

func (s *StructureTestSuite) TestContains() {
	eq := func(a, b int) bool { return a == b }
	s.True(Contains([]int{1, 2, 3}, 2, eq))
	s.False(Contains([]int{1, 2, 3}, 4, eq))
	s.False(Contains([]int(nil), 4, eq))
}

func (s *StructureTestSuite) TestErrorMessages() {
	_, _, err := Seq(1)
	s.EqualError(err, "expected a list, got int")
	_, _, err = Seq2(1)
	s.EqualError(err, "expected an object, got int")
}

func TestStructureTestSuite(t *testing.T) {
	suite.Run(t, new(StructureTestSuite))
}
