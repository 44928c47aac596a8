package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	vpack "github.com/arangodb/go-velocypack"
)

func TestParseScalars(t *testing.T) {
	cases := map[string]func(t *testing.T, s vpack.Slice){
		"null":  func(t *testing.T, s vpack.Slice) { require.True(t, s.IsNull()) },
		"true":  func(t *testing.T, s vpack.Slice) { v, err := s.GetBool(); require.NoError(t, err); require.True(t, v) },
		"false": func(t *testing.T, s vpack.Slice) { v, err := s.GetBool(); require.NoError(t, err); require.False(t, v) },
		"42":    func(t *testing.T, s vpack.Slice) { v, err := s.GetInt(); require.NoError(t, err); require.EqualValues(t, 42, v) },
		"-7":    func(t *testing.T, s vpack.Slice) { v, err := s.GetInt(); require.NoError(t, err); require.EqualValues(t, -7, v) },
		"3.5":   func(t *testing.T, s vpack.Slice) { v, err := s.GetDouble(); require.NoError(t, err); require.Equal(t, 3.5, v) },
		`"hi"`:  func(t *testing.T, s vpack.Slice) { v, err := s.GetString(); require.NoError(t, err); require.Equal(t, "hi", v) },
	}
	for input, check := range cases {
		s, err := Parse([]byte(input))
		require.NoError(t, err, input)
		check(t, s)
	}
}

func TestParseArray(t *testing.T) {
	s, err := Parse([]byte(`[1, "two", true, null]`))
	require.NoError(t, err)
	require.True(t, s.IsArray())
	n, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestParseNestedObject(t *testing.T) {
	s, err := Parse([]byte(`{"a": 1, "b": {"c": [1,2,3]}}`))
	require.NoError(t, err)
	require.True(t, s.IsObject())

	b, err := s.Get("b")
	require.NoError(t, err)
	require.True(t, b.IsObject())
	c, err := b.Get("c")
	require.NoError(t, err)
	require.True(t, c.IsArray())
	n, err := c.Length()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestParseUnicodeEscape(t *testing.T) {
	s, err := Parse([]byte("\"\\u00e9\""))
	require.NoError(t, err)
	v, err := s.GetString()
	require.NoError(t, err)
	require.Equal(t, "é", v)
}

func TestParseSurrogatePair(t *testing.T) {
	s, err := Parse([]byte("\"\\ud83d\\ude00\""))
	require.NoError(t, err)
	v, err := s.GetString()
	require.NoError(t, err)
	require.Equal(t, "😀", v)
}

func TestParseTrailingContentFails(t *testing.T) {
	_, err := Parse([]byte(`1 2`))
	require.Error(t, err)
	require.True(t, vpack.IsKind(err, vpack.ErrParseError))
}

func TestParseControlCharacterFails(t *testing.T) {
	_, err := Parse([]byte("\"a\x01b\""))
	require.Error(t, err)
	require.True(t, vpack.IsKind(err, vpack.ErrUnexpectedControlCharacter))
}

func TestParseObjectRequiresQuotedKey(t *testing.T) {
	_, err := Parse([]byte(`{a: 1}`))
	require.Error(t, err)
	require.True(t, vpack.IsKind(err, vpack.ErrExpectingAttributeName))
}

func TestParseLargeIntegerOverflowsToDouble(t *testing.T) {
	s, err := Parse([]byte(`123456789012345678901234567890`))
	require.NoError(t, err)
	require.True(t, s.IsDouble())
}

func TestParseIntegerBeyondInt64BecomesUInt(t *testing.T) {
	s, err := Parse([]byte(`18446744073709551615`)) // math.MaxUint64
	require.NoError(t, err)
	require.True(t, s.IsUInt())
	v, err := s.GetUInt()
	require.NoError(t, err)
	require.Equal(t, uint64(18446744073709551615), v)
}

func TestParseIntegerBeyondUint64OverflowsToDouble(t *testing.T) {
	s, err := Parse([]byte(`18446744073709551616`)) // math.MaxUint64 + 1
	require.NoError(t, err)
	require.True(t, s.IsDouble())
}
