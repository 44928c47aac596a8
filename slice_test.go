package velocypack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceNoneAndIllegal(t *testing.T) {
	require.True(t, NoneSlice().IsNone())
	s := NewSlice([]byte{headIllegal})
	require.True(t, s.IsIllegal())
}

func TestSliceScalarsFromBuilder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewNullValue()))
	s := b.Slice()
	require.True(t, s.IsNull())
	require.Equal(t, Null, s.Type())
}

func TestSliceShortStringByteSize(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewStringValue("hi")))
	s := b.Slice()
	sz, err := s.ByteSize()
	require.NoError(t, err)
	require.Equal(t, 3, sz) // head + 2 bytes
	n, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestSliceUIntWidths(t *testing.T) {
	cases := []uint64{10, 300, 100000, 5000000000}
	for _, v := range cases {
		b := NewBuilder()
		require.NoError(t, b.Add(NewUIntValue(v)))
		s := b.Slice()
		require.True(t, s.IsUInt(), "value %d", v)
		got, err := s.GetUInt()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestSliceBinaryRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	b := NewBuilder()
	require.NoError(t, b.Add(NewBinaryValue(payload)))
	s := b.Slice()
	require.True(t, s.IsBinary())
	got, err := s.GetBinary()
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestSliceTaggedRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewTaggedValue(7, NewIntValue(99))))
	s := b.Slice()
	require.True(t, s.IsTagged())
	tag, inner, err := s.GetTag()
	require.NoError(t, err)
	require.EqualValues(t, 7, tag)
	v, err := inner.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 99, v)
}

func TestSliceTaggedLongID(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewTaggedValue(1<<40, NewBoolValue(true))))
	s := b.Slice()
	require.Equal(t, headTaggedLong, s.Head())
	tag, inner, err := s.GetTag()
	require.NoError(t, err)
	require.EqualValues(t, 1<<40, tag)
	bv, err := inner.GetBool()
	require.NoError(t, err)
	require.True(t, bv)
}

func TestSliceCustomRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewCustomValue(0xf1, []byte("abc"))))
	s := b.Slice()
	require.True(t, s.IsCustom())
	code, payload, err := s.GetCustom()
	require.NoError(t, err)
	require.Equal(t, byte(0xf1), code)
	require.Equal(t, []byte("abc"), payload)
}

func TestSliceCustomZeroLength(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewCustomValue(0xf0, nil)))
	s := b.Slice()
	code, payload, err := s.GetCustom()
	require.NoError(t, err)
	require.Equal(t, byte(0xf0), code)
	require.Empty(t, payload)
}

func TestSliceWrongAccessorFails(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewBoolValue(true)))
	s := b.Slice()
	_, err := s.GetInt()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidValueType))
}

func TestSliceIndexOutOfBounds(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Add(NewIntValue(1)))
	require.NoError(t, b.Close())
	s := b.Slice()
	_, err := s.At(5)
	require.Error(t, err)
	require.True(t, IsKind(err, ErrIndexOutOfBounds))
}
