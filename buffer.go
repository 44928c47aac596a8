package velocypack

import (
	"sync"
	"unicode/utf8"

	"github.com/arangodb/go-velocypack/internal"
)

// Buffer is an owned, growable byte region. It is the sole heap owner of the
// bytes a Builder produces; a Builder holds exactly one Buffer at a time and
// may Release it to hand ownership to the caller once the top-level value is
// sealed. It also serves as the scratch buffer ToJSON accumulates text into,
// via WriteByte/WriteString/WriteRune and the pool below.
type Buffer struct {
	data []byte
}

const minBufferCapacity = 64

// NewBuffer returns an empty Buffer with a small initial capacity, so that
// encoding a single scalar value rarely needs more than one growth.
func NewBuffer() *Buffer {
	return &Buffer{data: make([]byte, 0, minBufferCapacity)}
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer's contents. The returned slice aliases the
// Buffer's storage and is invalidated by the next mutating call.
func (b *Buffer) Bytes() []byte { return b.data }

// Reserve guarantees capacity for at least n additional bytes, growing by
// doubling (never shrinking) if necessary.
func (b *Buffer) Reserve(n int) {
	need := len(b.data) + n
	if cap(b.data) >= need {
		return
	}
	newCap := internal.Max(cap(b.data)*2, minBufferCapacity)
	newCap = internal.Max(newCap, need)
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Push appends a single byte.
func (b *Buffer) Push(c byte) {
	b.Reserve(1)
	b.data = append(b.data, c)
}

// Append appends p in full.
func (b *Buffer) Append(p []byte) {
	b.Reserve(len(p))
	b.data = append(b.data, p...)
}

// ResetTo truncates the buffer back to size n, which must not exceed Len().
// It does not release capacity.
func (b *Buffer) ResetTo(n int) {
	b.data = b.data[:n]
}

// Release transfers ownership of the underlying bytes to the caller. The
// Buffer must not be used afterward.
func (b *Buffer) Release() []byte {
	out := b.data
	b.data = nil
	return out
}

// Write implements io.Writer, so a Buffer can be handed to fmt.Fprintf and
// similar text-building helpers.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.Push(c)
	return nil
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	b.Append([]byte(s))
	return len(s), nil
}

// WriteRune appends the UTF-8 encoding of r.
func (b *Buffer) WriteRune(r rune) (int, error) {
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	b.Append(enc[:n])
	return n, nil
}

// String returns the buffer's contents as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

var scratchBufferPool = sync.Pool{New: func() any { return NewBuffer() }}

// getScratchBuffer returns a reset Buffer from the pool. Used by ToJSON to
// accumulate output without allocating a fresh Buffer per call.
func getScratchBuffer() *Buffer {
	b := scratchBufferPool.Get().(*Buffer)
	b.ResetTo(0)
	return b
}

func putScratchBuffer(b *Buffer) {
	if b != nil {
		scratchBufferPool.Put(b)
	}
}
