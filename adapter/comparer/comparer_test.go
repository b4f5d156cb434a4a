package comparer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

type getter struct {
	value   any
	defined bool
}

func (g getter) Get() (any, bool) { return g.value, g.defined }

type ComparerTestSuite struct {
	suite.Suite
	c *Comparer
}

func (s *ComparerTestSuite) SetupTest() {
	s.c = NewComparer().(*Comparer)
}

func (s *ComparerTestSuite) compare(a, b any) int {
	s.T().Helper()
	comp, err := s.c.Compare(a, b)
	s.Require().NoError(err)
	return comp
}

// Every value sorts before the ones after it and equals itself.
func (s *ComparerTestSuite) TestOrder() {
	ordered := []any{
		domain.Undefined{},
		nil,
		math.Inf(-1),
		-12,
		int64(0),
		uint8(1),
		2.5,
		math.Inf(1),
		"",
		"A",
		"a",
		"ab",
		false,
		true,
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 0, 0, 0, 1, time.UTC),
		[]any{},
		[]any{nil},
		[]any{1},
		[]any{1, 0},
		[]any{"a"},
		data.M{},
		data.M{"a": 1},
		data.M{"a": 1, "b": nil},
		data.M{"a": 2},
		data.M{"b": 0},
	}

	for i, a := range ordered {
		s.Zero(s.compare(a, a), "%v", a)
		for _, b := range ordered[i+1:] {
			s.Equal(-1, s.compare(a, b), "%v < %v", a, b)
			s.Equal(1, s.compare(b, a), "%v > %v", b, a)
		}
	}
}

// Stored dates are Unix milliseconds, so they sort among numbers and before
// any string or time.Time.
func (s *ComparerTestSuite) TestNormalizedDates() {
	early := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	late := early.Add(time.Millisecond)

	s.Equal(-1, s.compare(early.UnixMilli(), late.UnixMilli()))
	s.Zero(s.compare(early.UnixMilli(), float64(early.UnixMilli())))
	s.Equal(1, s.compare(late.UnixMilli(), int(early.UnixMilli())))
	s.Equal(-1, s.compare(late.UnixMilli(), "2024-02-29"))
	s.Equal(-1, s.compare(late.UnixMilli(), early))

	s.True(s.c.Comparable(early.UnixMilli(), 0))
	s.False(s.c.Comparable(early.UnixMilli(), early))
}

func (s *ComparerTestSuite) TestLargeIntegers() {
	s.Equal(1, s.compare(int64(1<<53+1), float64(1<<53)))
	s.Equal(1, s.compare(uint64(math.MaxUint64), int64(math.MaxInt64)))
	s.Zero(s.compare(int32(7), 7.0))
}

func (s *ComparerTestSuite) TestComparable() {
	now := time.Now()
	cases := []struct {
		name string
		a, b any
		ok   bool
	}{
		{name: "Numbers", a: 1, b: 2.5, ok: true},
		{name: "MixedIntegers", a: uint16(3), b: int64(-3), ok: true},
		{name: "Strings", a: "a", b: "b", ok: true},
		{name: "Times", a: now, b: now.Add(time.Hour), ok: true},
		{name: "DefinedGetter", a: getter{value: 1, defined: true}, b: 2, ok: true},
		{name: "NumberString", a: 1, b: "1"},
		{name: "StringTime", a: "2020-01-01", b: now},
		{name: "Bools", a: true, b: false},
		{name: "Nils", a: nil, b: nil},
		{name: "Undefined", a: domain.Undefined{}, b: 1},
		{name: "UndefinedGetter", a: 1, b: getter{value: 1}},
		{name: "Lists", a: []any{1}, b: []any{2}},
		{name: "Docs", a: data.M{"a": 1}, b: data.M{"a": 2}},
		{name: "NaN", a: math.NaN(), b: 1},
		{name: "Unsupported", a: make(chan int), b: make(chan int)},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.ok, s.c.Comparable(tc.a, tc.b))
			s.Equal(tc.ok, s.c.Comparable(tc.b, tc.a))
		})
	}
}

// NaN has no place among numbers. It sorts after every supported value.
func (s *ComparerTestSuite) TestNaN() {
	s.Equal(1, s.compare(math.NaN(), 1))
	s.Equal(1, s.compare(float32(math.NaN()), data.M{}))
	s.Equal(-1, s.compare([]any{1}, math.NaN()))

	_, err := s.c.Compare(math.NaN(), math.NaN())
	s.Error(err)
}

func (s *ComparerTestSuite) TestTypedLists() {
	s.Zero(s.compare([]int{1, 2}, []any{1, 2}))
	s.Zero(s.compare([2]int64{1, 2}, []any{1.0, 2}))
	s.Equal(-1, s.compare([]string{"a"}, []any{"b"}))
	s.Equal(-1, s.compare([]bool{true}, []bool{true, false}))
	s.Equal(1, s.compare([]float64{0}, "0"))
}

// Typed maps compare as documents. Key names decide before values.
func (s *ComparerTestSuite) TestTypedMaps() {
	s.Zero(s.compare(map[string]int{"a": 1}, data.M{"a": 1.0}))
	s.Zero(s.compare(map[string]string{"x": "y"}, map[string]any{"x": "y"}))
	s.Equal(-1, s.compare(map[string]int{"a": 9}, map[string]uint{"b": 0}))
	s.Equal(1, s.compare(map[string]bool{"a": true, "b": false}, data.M{"a": true}))
	s.Equal(1, s.compare(map[string]int{}, []any{}))
}

func (s *ComparerTestSuite) TestGetter() {
	s.Zero(s.compare(getter{value: 5, defined: true}, 5))
	s.Zero(s.compare(getter{}, domain.Undefined{}))
	s.Zero(s.compare(getter{defined: true}, nil))
	s.Equal(1, s.compare(getter{defined: true}, getter{}))
	s.Equal(-1, s.compare(data.M{"a": 1}, getter{value: data.M{"a": 1, "b": 2}, defined: true}))
}

// A supported value sorts before an unsupported one, but two unsupported
// values cannot be ordered. Nested values follow the same rule.
func (s *ComparerTestSuite) TestUnsupported() {
	s.Equal(-1, s.compare(1, make(chan int)))
	s.Equal(1, s.compare(func() {}, data.M{}))

	for _, pair := range [][2]any{
		{make(chan int), func() {}},
		{[]byte("a"), []byte("a")},
		{map[int]string{1: "a"}, struct{}{}},
		{[]any{make(chan int)}, []any{func() {}}},
		{data.M{"a": make(chan int)}, data.M{"a": func() {}}},
	} {
		_, err := s.c.Compare(pair[0], pair[1])
		s.ErrorContains(err, "cannot compare unexpected types")
	}
}

func TestComparerTestSuite(t *testing.T) {
	suite.Run(t, new(ComparerTestSuite))
}
