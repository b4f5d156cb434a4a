package deserializer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

var ctx = context.Background()

type decoderMock struct{ mock.Mock }

// Decode implements [domain.Decoder].
func (d *decoderMock) Decode(source any, target any) error {
	return d.Called(source, target).Error(0)
}

type DeserializerTestSuite struct {
	suite.Suite
	d *Deserializer
}

func (s *DeserializerTestSuite) SetupTest() {
	s.d = NewDeserializer().(*Deserializer)
}

func (s *DeserializerTestSuite) read(v any) data.M {
	b, err := json.Marshal(v)
	s.Require().NoError(err)
	var r data.M
	s.Require().NoError(s.d.Deserialize(ctx, b, &r))
	return r
}

// Can deserialize scalars.
func (s *DeserializerTestSuite) TestScalars() {
	r := s.read(data.M{"s": "Some string", "t": true, "i": 5, "n": 6.2, "z": nil})
	s.Equal(data.M{"s": "Some string", "t": true, "i": 5.0, "n": 6.2, "z": nil}, r)
}

// Can deserialize time.Time.
func (s *DeserializerTestSuite) TestDate() {
	d := time.Now()
	r := s.read(data.M{"test": data.M{"$$date": d.UnixMilli()}})
	date, ok := r["test"].(time.Time)
	s.Require().True(ok)
	s.Equal(d.UnixMilli(), date.UnixMilli())
	s.Equal(time.UTC, date.Location())
}

// Objects holding more than a date key are kept as documents.
func (s *DeserializerTestSuite) TestNotADate() {
	r := s.read(data.M{"a": data.M{"$$date": 1, "b": 2}, "c": data.M{"$$date": "x"}})
	s.Equal(data.M{"$$date": 1.0, "b": 2.0}, r["a"])
	s.Equal(data.M{"$$date": "x"}, r["c"])
}

// Can deserialize sub objects and sub arrays.
func (s *DeserializerTestSuite) TestNested() {
	d := time.Now()
	r := s.read(data.M{
		"doc":  data.M{"something": 39, "also": data.M{"$$date": d.UnixMilli()}},
		"list": []any{39, data.M{"$$date": d.UnixMilli()}, data.M{"again": "yes"}},
	})
	s.Equal(39.0, r.D("doc").Get("something"))
	s.Equal(d.UnixMilli(), r.D("doc").Get("also").(time.Time).UnixMilli())

	list := r["list"].([]any)
	s.Equal(39.0, list[0])
	s.Equal(d.UnixMilli(), list[1].(time.Time).UnixMilli())
	s.Equal(data.M{"again": "yes"}, list[2])
}

// Reads what the serializer writes.
func (s *DeserializerTestSuite) TestSerializerOutput() {
	d := time.UnixMilli(1700000000000).UTC()
	b, err := serializer.NewSerializer().Serialize(ctx, data.M{"id": "a", "at": d, "l": []any{"x"}})
	s.Require().NoError(err)

	var r data.M
	s.NoError(s.d.Deserialize(ctx, b, &r))
	s.Equal(data.M{"id": "a", "at": d, "l": []any{"x"}}, r)
}

func (s *DeserializerTestSuite) TestTargets() {
	b := []byte(`{"a":"b"}`)

	var m map[string]any
	s.NoError(s.d.Deserialize(ctx, b, &m))
	s.Equal(map[string]any{"a": "b"}, m)

	var doc domain.Document
	s.NoError(s.d.Deserialize(ctx, b, &doc))
	s.Equal(data.M{"a": "b"}, doc)

	var st struct {
		A string `unitdb:"a"`
	}
	s.NoError(s.d.Deserialize(ctx, b, &st))
	s.Equal("b", st.A)
}

func (s *DeserializerTestSuite) TestDecoderError() {
	errDec := errors.New("decode")
	dec := new(decoderMock)
	dec.On("Decode", data.M{"a": "b"}, mock.Anything).Return(errDec).Once()
	s.d = NewDeserializer(WithDecoder(dec)).(*Deserializer)

	var st struct{ A string }
	s.ErrorIs(s.d.Deserialize(ctx, []byte(`{"a":"b"}`), &st), errDec)
	dec.AssertExpectations(s.T())
}

// Can deserialize strings despite of line breaks.
func (s *DeserializerTestSuite) TestStringWithLineBreak() {
	badString := "world\r\nearth\nother\rline"
	r := s.read(data.M{"test": badString})
	s.Equal(badString, r["test"])
}

// Deserialization with a canceled context should fail.
func (s *DeserializerTestSuite) TestContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var v data.M
	err := s.d.Deserialize(ctx, []byte(`{"hello":"world"}`), &v)
	s.ErrorIs(err, context.Canceled)
	s.Nil(v)
}

// Deserialize returns error if target is nil.
func (s *DeserializerTestSuite) TestNilTarget() {
	err := s.d.Deserialize(ctx, []byte(`{"a":1}`), nil)
	s.ErrorIs(err, domain.ErrTargetNil)
}

func (s *DeserializerTestSuite) TestInvalidInput() {
	target := data.M{}
	s.ErrorIs(s.d.Deserialize(ctx, []byte("{"), &target), io.ErrUnexpectedEOF)
	s.ErrorIs(s.d.Deserialize(ctx, []byte(`{"a":1} {}`), &target), ErrTrailingData)
	s.ErrorAs(s.d.Deserialize(ctx, []byte(`[1]`), &target), &domain.ErrDocumentType{})
}

func TestDeserializerTestSuite(t *testing.T) {
	suite.Run(t, new(DeserializerTestSuite))
}
