package velocypack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// failingWriter always fails, so streamSink has a real write error to wrap.
type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func testValue(t *testing.T) Slice {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.Add(NewStringValue("hello")))
	return b.Slice()
}

func TestBufferSink(t *testing.T) {
	s := testValue(t)
	buf := NewBuffer()
	require.NoError(t, s.WriteTo(NewBufferSink(buf)))
	require.Equal(t, s.Bytes(), buf.Bytes())
}

func TestStringSink(t *testing.T) {
	s := testValue(t)
	var out string
	require.NoError(t, s.WriteTo(NewStringSink(&out)))
	require.Equal(t, string(s.Bytes()), out)
}

func TestLengthSink(t *testing.T) {
	s := testValue(t)
	sink := NewLengthSink()
	require.NoError(t, s.WriteTo(sink))
	sz, err := s.ByteSize()
	require.NoError(t, err)
	require.Equal(t, sz, sink.Length)
}

func TestStreamSink(t *testing.T) {
	s := testValue(t)
	var buf bytes.Buffer
	sink := NewStreamSink(&buf)
	require.NoError(t, s.WriteTo(sink))
	require.NoError(t, sink.Err())
	require.Equal(t, s.Bytes(), buf.Bytes())
}

func TestStreamSinkWrapsWriteError(t *testing.T) {
	s := testValue(t)
	cause := errors.New("disk full")
	sink := NewStreamSink(failingWriter{err: cause})
	require.NoError(t, s.WriteTo(sink))

	err := sink.Err()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInternalError))
	require.ErrorIs(t, err, cause)
}
