package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type NormalizerTestSuite struct {
	suite.Suite
	n *Normalizer
}

func (s *NormalizerTestSuite) SetupTest() {
	s.n = NewNormalizer().(*Normalizer)
}

func (s *NormalizerTestSuite) TestTime() {
	t := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	s.Equal(t.UnixMilli(), s.n.Normalize(t))
	s.Equal(t.UnixMilli(), s.n.Normalize(&t))

	var nilTime *time.Time
	s.Equal(nilTime, s.n.Normalize(nilTime))
}

func (s *NormalizerTestSuite) TestDateStrings() {
	expected := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	s.Equal(expected, s.n.Normalize("2025-05-05"))
	s.Equal(expected, s.n.Normalize("2025-05-05T00:00:00Z"))
	s.Equal(expected, s.n.Normalize(" 2025-05-05T00:00:00Z "))
	s.Equal(expected+int64(time.Hour/time.Millisecond), s.n.Normalize("2025-05-05T00:00:00-01:00"))
}

// Date and string representations of the same instant normalize equally.
func (s *NormalizerTestSuite) TestDateAndStringAgree() {
	t := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	s.Equal(s.n.Normalize(t), s.n.Normalize(t.Format(time.RFC3339)))
}

func (s *NormalizerTestSuite) TestLocation() {
	loc := time.FixedZone("X", 3600)
	s.n = NewNormalizer(WithLocation(loc)).(*Normalizer)
	expected := time.Date(2025, 5, 5, 0, 0, 0, 0, loc).UnixMilli()
	s.Equal(expected, s.n.Normalize("2025-05-05"))
}

func (s *NormalizerTestSuite) TestNonDateStrings() {
	for _, v := range []string{"", "abc", "yeah", "hello world", "10", "123456", "1700000000000"} {
		s.Equal(v, s.n.Normalize(v), v)
	}

	// years alone and month-year pairs are left as strings
	s.Equal("2025", s.n.Normalize("2025"))
	s.Equal("March 2020", s.n.Normalize("March 2020"))

	// dateparse accepts dotted numbers as dates
	s.IsType(int64(0), s.n.Normalize("1.2.3.4"))
}

func (s *NormalizerTestSuite) TestPassThrough() {
	for _, v := range []any{nil, 1, 2.5, true, []any{1}, map[string]any{"a": 1}} {
		s.Equal(v, s.n.Normalize(v))
	}
}

func TestNormalizerTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}
