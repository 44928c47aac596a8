package velocypack

import (
	"math"

	"github.com/arangodb/go-velocypack/internal"
)

// writeValue appends the encoding of v to the buffer. It never opens a
// compound; Value only carries scalars.
func (b *Builder) writeValue(v Value) error {
	switch v.kind {
	case Null:
		b.buf.Push(headNull)
	case Bool:
		if v.boolVal {
			b.buf.Push(headTrue)
		} else {
			b.buf.Push(headFalse)
		}
	case Int:
		b.writeInt(v.intVal)
	case UInt:
		b.writeUInt(v.uintVal)
	case Double:
		b.buf.Push(headDouble)
		var tmp [8]byte
		internal.LE.PutUint64(tmp[:], math.Float64bits(v.doubleVal))
		b.buf.Append(tmp[:])
	case String:
		b.writeString(v.stringVal)
	case Binary:
		b.writeBinary(v.binary)
	case UTCDate:
		b.buf.Push(headUTCDate)
		var tmp [8]byte
		internal.LE.PutUint64(tmp[:], uint64(v.intVal))
		b.buf.Append(tmp[:])
	case MinKey:
		b.buf.Push(headMinKey)
	case MaxKey:
		b.buf.Push(headMaxKey)
	case BCD:
		b.writeBCD(v)
	case Tagged:
		if err := b.writeTagged(v); err != nil {
			return err
		}
	case External:
		b.buf.Push(headExternal)
		var tmp [8]byte
		internal.LE.PutUint64(tmp[:], v.uintVal)
		b.buf.Append(tmp[:])
	case Custom:
		b.writeCustom(v)
	default:
		return newError(ErrBuilderUnexpectedType, "Value has no compound representation")
	}
	return nil
}

// writeInt picks SmallInt for -6..9, otherwise the narrowest Int width that
// preserves v's two's complement bit pattern.
func (b *Builder) writeInt(v int64) {
	if v >= -6 && v <= 9 {
		if v >= 0 {
			b.buf.Push(headSmallIntPosFirst + byte(v))
		} else {
			b.buf.Push(headSmallIntNegFirst + byte(v+6))
		}
		return
	}
	w := intWidthFor(v)
	b.buf.Push(headIntFirst + byte(w-1))
	var tmp [8]byte
	internal.PutUintWidth(tmp[:], uint64(v), w)
	b.buf.Append(tmp[:w])
}

func intWidthFor(v int64) int {
	for _, w := range [4]int{1, 2, 4, 8} {
		bits := uint(w) * 8
		min := -(int64(1) << (bits - 1))
		max := (int64(1) << (bits - 1)) - 1
		if w == 8 || (v >= min && v <= max) {
			return w
		}
	}
	return 8
}

// writeUInt picks SmallInt for 0..9, otherwise the narrowest UInt width.
func (b *Builder) writeUInt(v uint64) {
	if v <= 9 {
		b.buf.Push(headSmallIntPosFirst + byte(v))
		return
	}
	w := internal.WidthFor(v)
	b.buf.Push(headUIntFirst + byte(w-1))
	var tmp [8]byte
	internal.PutUintWidth(tmp[:], v, w)
	b.buf.Append(tmp[:w])
}

// writeString appends a short-form string (<=126 bytes) or long-form
// (headStringLong plus an 8-byte length) encoding.
func (b *Builder) writeString(s string) {
	n := len(s)
	if n <= 126 {
		b.buf.Push(headStringShortFirst + byte(n))
		b.buf.Append([]byte(s))
		return
	}
	b.buf.Push(headStringLong)
	var tmp [8]byte
	internal.LE.PutUint64(tmp[:], uint64(n))
	b.buf.Append(tmp[:])
	b.buf.Append([]byte(s))
}

func (b *Builder) writeBinary(p []byte) {
	w := internal.WidthFor(uint64(len(p)))
	b.buf.Push(headBinaryFirst + byte(w-1))
	var tmp [8]byte
	internal.PutUintWidth(tmp[:], uint64(len(p)), w)
	b.buf.Append(tmp[:w])
	b.buf.Append(p)
}

// writeBCD serializes the packed-BCD nibble stream (two decimal digits per
// byte, most significant nibble first, zero-padded at the front on an odd
// digit count) for v's decimal magnitude.
func (b *Builder) writeBCD(v Value) {
	digits := v.decimal.String()
	if v.decimal.Sign() < 0 {
		digits = digits[1:] // sign is carried by the head byte family, not the digit stream
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	packed := make([]byte, len(digits)/2)
	for i := range packed {
		hi := digits[2*i] - '0'
		lo := digits[2*i+1] - '0'
		packed[i] = hi<<4 | lo
	}
	base := headBCDPosFirst
	if v.negative {
		base = headBCDNegFirst
	}
	w := internal.WidthFor(uint64(len(packed)))
	b.buf.Push(base + byte(w-1))
	var lenBuf [8]byte
	internal.PutUintWidth(lenBuf[:], uint64(len(packed)), w)
	b.buf.Append(lenBuf[:w])
	var expBuf [4]byte
	internal.LE.PutUint32(expBuf[:], uint32(v.exponent))
	b.buf.Append(expBuf[:])
	b.buf.Append(packed)
}

func (b *Builder) writeTagged(v Value) error {
	if v.tagID <= 0xff {
		b.buf.Push(headTaggedShort)
		b.buf.Push(byte(v.tagID))
	} else {
		b.buf.Push(headTaggedLong)
		var tmp [8]byte
		internal.LE.PutUint64(tmp[:], v.tagID)
		b.buf.Append(tmp[:])
	}
	return b.writeValue(*v.inner)
}

func (b *Builder) writeCustom(v Value) {
	if len(v.binary) == 0 {
		b.buf.Push(0xf0)
		return
	}
	w := internal.WidthFor(uint64(len(v.binary)))
	head := byte(0xf1)
	switch w {
	case 1:
		head = 0xf1
	case 2:
		head = 0xf2
	case 4:
		head = 0xf4
	case 8:
		head = 0xf8
	}
	b.buf.Push(head)
	var tmp [8]byte
	internal.PutUintWidth(tmp[:], uint64(len(v.binary)), w)
	b.buf.Append(tmp[:w])
	b.buf.Append(v.binary)
}

// writeKeyString writes an object attribute name, substituting a translated
// single-byte SmallInt encoding when Options.Translator recognizes name.
func (b *Builder) writeKeyString(name string) error {
	if b.opts.Translator != nil {
		if id, ok := b.opts.Translator.Translate(name); ok {
			b.buf.Push(headSmallIntPosFirst + id)
			return nil
		}
	}
	b.writeString(name)
	return nil
}
