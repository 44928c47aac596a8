package velocypack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSONScalars(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenObject(nil, false))
	require.NoError(t, b.AddKeyValue("b", NewBoolValue(true)))
	require.NoError(t, b.AddKeyValue("a", NewIntValue(1)))
	require.NoError(t, b.AddKeyValue("c", NewStringValue("hi\n\"there\"")))
	require.NoError(t, b.Close())

	text, err := b.Slice().ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":true,"c":"hi\n\"there\""}`, text)
}

func TestToJSONUnsupportedTypeFailsByDefault(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewMinKeyValue()))
	_, err := b.Slice().ToJSON()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrNoJsonEquivalent))
}

func TestToJSONUnsupportedTypeNullBehavior(t *testing.T) {
	opts := DefaultOptions()
	opts.UnsupportedTypeBehavior = NullOnUnsupported
	b := NewBuilderWithOptions(opts)
	require.NoError(t, b.Add(NewMinKeyValue()))
	text, err := b.Slice().ToJSON()
	require.NoError(t, err)
	require.Equal(t, "null", text)
}

func TestToJSONEscapeForwardSlashes(t *testing.T) {
	opts := DefaultOptions()
	opts.EscapeForwardSlashes = true
	b := NewBuilderWithOptions(opts)
	require.NoError(t, b.Add(NewStringValue("a/b")))
	text, err := b.Slice().ToJSON()
	require.NoError(t, err)
	require.Equal(t, `"a\/b"`, text)
}

func TestToJSONBuiltArray(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Add(NewIntValue(1)))
	require.NoError(t, b.Add(NewDoubleValue(2.5)))
	require.NoError(t, b.Add(NewStringValue("x")))
	require.NoError(t, b.Close())

	text, err := b.Slice().ToJSON()
	require.NoError(t, err)
	require.Equal(t, `[1,2.5,"x"]`, text)
}
