package velocypack

import "io"

// Sink is the capability set Slice.WriteTo copies an encoded value through:
// push one byte, append bytes of known length, and reserve additional
// capacity ahead of a batch of writes. It mirrors the polymorphic Sink used
// by the reference implementation, collapsed into a Go interface with a
// small set of concrete implementations. The Builder itself writes straight
// into its Buffer, not through a Sink.
type Sink interface {
	PushByte(c byte)
	Append(p []byte)
	Reserve(n int)
}

// bufferSink appends into a caller-supplied Buffer.
type bufferSink struct {
	buf *Buffer
}

// NewBufferSink returns a Sink that appends to buf.
func NewBufferSink(buf *Buffer) Sink { return &bufferSink{buf: buf} }

func (s *bufferSink) PushByte(c byte)   { s.buf.Push(c) }
func (s *bufferSink) Append(p []byte)   { s.buf.Append(p) }
func (s *bufferSink) Reserve(n int)     { s.buf.Reserve(n) }

// stringSink appends to a *string; Go strings are immutable, so every write
// concatenates onto *out and re-assigns it. It exists for parity with the reference
// implementation's StringSink, e.g. when embedding encoded bytes into a
// larger textual payload.
type stringSink struct {
	out *string
}

// NewStringSink returns a Sink that appends encoded bytes to *out as text.
func NewStringSink(out *string) Sink { return &stringSink{out: out} }

func (s *stringSink) PushByte(c byte) { *s.out += string(c) }
func (s *stringSink) Append(p []byte) { *s.out += string(p) }
func (s *stringSink) Reserve(int)     {}

// lengthSink discards bytes and only counts how many would have been
// written. Used to measure an encoded size without allocating it.
type lengthSink struct {
	Length int
}

// NewLengthSink returns a Sink that produces no bytes, only a running count.
func NewLengthSink() *lengthSink { return &lengthSink{} }

func (s *lengthSink) PushByte(byte)   { s.Length++ }
func (s *lengthSink) Append(p []byte) { s.Length += len(p) }
func (s *lengthSink) Reserve(int)     {}

// streamSink writes straight through to an io.Writer. The core never
// assumes the underlying stream is seekable, so it buffers entire compounds
// before calling Append/PushByte on this sink rather than back-patching it.
type streamSink struct {
	w   io.Writer
	err error
}

// NewStreamSink returns a Sink that forwards bytes to w. The first write
// error is sticky and retrievable via Err.
func NewStreamSink(w io.Writer) *streamSink { return &streamSink{w: w} }

func (s *streamSink) PushByte(c byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write([]byte{c})
}

func (s *streamSink) Append(p []byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write(p)
}

func (s *streamSink) Reserve(int) {}

// Err returns the first write error encountered, if any, wrapped so
// errors.Is/As still reach the underlying io.Writer failure through Unwrap.
func (s *streamSink) Err() error {
	if s.err == nil {
		return nil
	}
	return wrapError(ErrInternalError, s.err, "stream sink write failed")
}
