package velocypack

import (
	"math"
	"math/big"

	"github.com/arangodb/go-velocypack/internal"
)

// Slice is a non-owning, zero-copy view over an encoded value: a pointer to
// its head byte plus (implicitly) everything after it. Every accessor reads
// directly from the underlying bytes; constructing a Slice never allocates
// or copies.
//
// A Slice is only valid for as long as the Buffer backing it is unmodified;
// it does not pin or extend that Buffer's lifetime.
type Slice struct {
	data []byte
	opts *Options
}

// NewSlice wraps data, whose first byte must be the head byte of a single
// encoded value, using DefaultOptions for navigation (attribute
// translation, if any).
func NewSlice(data []byte) Slice {
	return Slice{data: data, opts: DefaultOptions()}
}

// NewSliceWithOptions is NewSlice with explicit Options, needed when
// Options.Translator is in play.
func NewSliceWithOptions(data []byte, opts *Options) Slice {
	if opts == nil {
		opts = DefaultOptions()
	}
	return Slice{data: data, opts: opts}
}

var noneSlice = Slice{data: []byte{headNone}, opts: DefaultOptions()}

// NoneSlice returns the canonical Slice representing absence - e.g. what
// Get returns for a missing key.
func NoneSlice() Slice { return noneSlice }

// WriteTo copies this value's encoded bytes into sink, reserving capacity
// first. It is how a completed value moves out to a caller-supplied
// destination (a growable buffer, a string, a length counter, a stream)
// without the core knowing which.
func (s Slice) WriteTo(sink Sink) error {
	sz, err := s.ByteSize()
	if err != nil {
		return err
	}
	sink.Reserve(sz)
	sink.Append(s.data[:sz])
	return nil
}

// Bytes returns the raw bytes this Slice views, from its head byte to the
// end of the backing storage (which may extend past this value's own
// ByteSize if it shares a buffer with sibling values).
func (s Slice) Bytes() []byte { return s.data }

// Head returns the first byte of the view.
func (s Slice) Head() byte {
	if len(s.data) == 0 {
		return headNone
	}
	return s.data[0]
}

// Type reports the logical type this Slice decodes to.
func (s Slice) Type() Type { return typeOf(s.Head()) }

func (s Slice) IsNone() bool     { return s.Type() == None }
func (s Slice) IsIllegal() bool  { return s.Type() == Illegal }
func (s Slice) IsNull() bool     { return s.Type() == Null }
func (s Slice) IsBool() bool     { return s.Type() == Bool }
func (s Slice) IsArray() bool    { return s.Type() == Array }
func (s Slice) IsObject() bool   { return s.Type() == Object }
func (s Slice) IsDouble() bool   { return s.Type() == Double }
func (s Slice) IsUTCDate() bool  { return s.Type() == UTCDate }
func (s Slice) IsExternal() bool { return s.Type() == External }
func (s Slice) IsMinKey() bool   { return s.Type() == MinKey }
func (s Slice) IsMaxKey() bool   { return s.Type() == MaxKey }
func (s Slice) IsInt() bool      { return s.Type() == Int }
func (s Slice) IsUInt() bool     { return s.Type() == UInt }
func (s Slice) IsSmallInt() bool { return s.Type() == SmallInt }
func (s Slice) IsString() bool   { return s.Type() == String }
func (s Slice) IsBinary() bool   { return s.Type() == Binary }
func (s Slice) IsBCD() bool      { return s.Type() == BCD }
func (s Slice) IsCustom() bool   { return s.Type() == Custom }
func (s Slice) IsTagged() bool   { return s.Type() == Tagged }

// IsNumber reports whether the value is Int, UInt, SmallInt, or Double.
func (s Slice) IsNumber() bool {
	switch s.Type() {
	case Int, UInt, SmallInt, Double:
		return true
	default:
		return false
	}
}

func errShortInput(kind ErrorKind) *Error {
	return newError(kind, "buffer too short to hold a complete value")
}

// ByteSize returns the total encoded length of the value this Slice points
// at, including its head byte. Fixed-width tags resolve in O(1) without
// touching anything but the head byte; variable-width tags read one more
// width field; compounds read their stored total-length field.
func (s Slice) ByteSize() (int, error) {
	h := s.Head()
	if sz, ok := fixedSize(h); ok {
		return sz, nil
	}
	switch {
	case h == headStringLong:
		if len(s.data) < 9 {
			return 0, errShortInput(ErrInternalError)
		}
		n := internal.LE.Uint64(s.data[1:9])
		return 9 + int(n), nil

	case h >= headBinaryFirst && h <= headBinaryFirst+7:
		w := int(h-headBinaryFirst) + 1
		if len(s.data) < 1+w {
			return 0, errShortInput(ErrInternalError)
		}
		n := internal.UintWidth(s.data[1:1+w], w)
		return 1 + w + int(n), nil

	case h >= headBCDPosFirst && h <= headBCDPosFirst+7:
		w := int(h-headBCDPosFirst) + 1
		if len(s.data) < 1+w+4 {
			return 0, errShortInput(ErrInternalError)
		}
		n := internal.UintWidth(s.data[1:1+w], w)
		return 1 + w + 4 + int(n), nil

	case h >= headBCDNegFirst && h <= headBCDNegFirst+7:
		w := int(h-headBCDNegFirst) + 1
		if len(s.data) < 1+w+4 {
			return 0, errShortInput(ErrInternalError)
		}
		n := internal.UintWidth(s.data[1:1+w], w)
		return 1 + w + 4 + int(n), nil

	case h == headTaggedShort:
		if len(s.data) < 2 {
			return 0, errShortInput(ErrInternalError)
		}
		inner := Slice{data: s.data[2:], opts: s.opts}
		innerSz, err := inner.ByteSize()
		if err != nil {
			return 0, err
		}
		return 2 + innerSz, nil

	case h == headTaggedLong:
		if len(s.data) < 9 {
			return 0, errShortInput(ErrInternalError)
		}
		inner := Slice{data: s.data[9:], opts: s.opts}
		innerSz, err := inner.ByteSize()
		if err != nil {
			return 0, err
		}
		return 9 + innerSz, nil

	case h >= headCustomFirst:
		return customByteSize(s.data)

	case isArrayHead(h) || isObjectHead(h):
		return s.compoundByteSize()

	default:
		return 0, newError(ErrInternalError, "reserved head byte")
	}
}

// customByteSize implements the implementation-defined length discovery for
// Custom types (0xf0..0xff). 0xf0 is a zero-length marker; 0xf1/0xf2/0xf4/
//0xf8 carry a 1/2/4/8-byte little-endian length prefix, mirroring Binary's
// scheme. The remaining codes are reserved for future use and report
// NotImplemented, per the format's "must not crash, must report
// NotImplemented" requirement.
func customByteSize(data []byte) (int, error) {
	h := data[0]
	switch h {
	case 0xf0:
		return 1, nil
	case 0xf1, 0xf2, 0xf4, 0xf8:
		w := customWidthFor(h)
		if len(data) < 1+w {
			return 0, errShortInput(ErrInternalError)
		}
		n := internal.UintWidth(data[1:1+w], w)
		return 1 + w + int(n), nil
	default:
		return 0, errNotImplemented
	}
}

func customWidthFor(h byte) int {
	switch h {
	case 0xf1:
		return 1
	case 0xf2:
		return 2
	case 0xf4:
		return 4
	case 0xf8:
		return 8
	default:
		return 0
	}
}

// GetBool returns the boolean value. Errors with InvalidValueType if the
// Slice is not a Bool.
func (s Slice) GetBool() (bool, error) {
	switch s.Head() {
	case headTrue:
		return true, nil
	case headFalse:
		return false, nil
	default:
		return false, newError(ErrInvalidValueType, "expected Bool")
	}
}

// GetDouble returns the float64 value. Errors with InvalidValueType if the
// Slice is not a Double.
func (s Slice) GetDouble() (float64, error) {
	if s.Head() != headDouble {
		return 0, newError(ErrInvalidValueType, "expected Double")
	}
	if len(s.data) < 9 {
		return 0, errShortInput(ErrInternalError)
	}
	bits := internal.LE.Uint64(s.data[1:9])
	return math.Float64frombits(bits), nil
}

// GetSmallInt returns the value of a SmallInt (-6..9). Errors with
// InvalidValueType otherwise.
func (s Slice) GetSmallInt() (int64, error) {
	h := s.Head()
	switch {
	case h >= headSmallIntPosFirst && h <= headSmallIntPosFirst+9:
		return int64(h - headSmallIntPosFirst), nil
	case h >= headSmallIntNegFirst && h <= headSmallIntNegFirst+5:
		return int64(h-headSmallIntNegFirst) - 6, nil
	default:
		return 0, newError(ErrInvalidValueType, "expected SmallInt")
	}
}

// GetInt returns the value as a signed integer, accepting Int, UInt (if it
// fits in int64), and SmallInt.
func (s Slice) GetInt() (int64, error) {
	h := s.Head()
	switch {
	case h >= headIntFirst && h <= headIntFirst+7:
		w := int(h-headIntFirst) + 1
		if len(s.data) < 1+w {
			return 0, errShortInput(ErrInternalError)
		}
		return signExtend(internal.UintWidth(s.data[1:1+w], w), w), nil
	case h >= headUIntFirst && h <= headUIntFirst+7:
		u, err := s.GetUInt()
		if err != nil {
			return 0, err
		}
		if u > math.MaxInt64 {
			return 0, newError(ErrNumberOutOfRange, "UInt value overflows int64")
		}
		return int64(u), nil
	case h >= headSmallIntPosFirst && h <= headSmallIntNegFirst+5:
		return s.GetSmallInt()
	default:
		return 0, newError(ErrInvalidValueType, "expected Int, UInt, or SmallInt")
	}
}

func signExtend(u uint64, width int) int64 {
	bits := uint(width) * 8
	shift := 64 - bits
	return int64(u<<shift) >> shift
}

// GetUInt returns the value as an unsigned integer, accepting UInt, Int (if
// non-negative), and SmallInt (if non-negative).
func (s Slice) GetUInt() (uint64, error) {
	h := s.Head()
	switch {
	case h >= headUIntFirst && h <= headUIntFirst+7:
		w := int(h-headUIntFirst) + 1
		if len(s.data) < 1+w {
			return 0, errShortInput(ErrInternalError)
		}
		return internal.UintWidth(s.data[1:1+w], w), nil
	case h >= headIntFirst && h <= headIntFirst+7:
		v, err := s.GetInt()
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, newError(ErrNumberOutOfRange, "Int value is negative")
		}
		return uint64(v), nil
	case h >= headSmallIntPosFirst && h <= headSmallIntNegFirst+5:
		v, err := s.GetSmallInt()
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, newError(ErrNumberOutOfRange, "SmallInt value is negative")
		}
		return uint64(v), nil
	default:
		return 0, newError(ErrInvalidValueType, "expected UInt, Int, or SmallInt")
	}
}

// GetUTCDate returns the millisecond-since-epoch payload of a UTCDate.
func (s Slice) GetUTCDate() (int64, error) {
	if s.Head() != headUTCDate {
		return 0, newError(ErrInvalidValueType, "expected UTCDate")
	}
	if len(s.data) < 9 {
		return 0, errShortInput(ErrInternalError)
	}
	return int64(internal.LE.Uint64(s.data[1:9])), nil
}

// GetExternal returns the opaque pointer-width payload of an External
// value.
func (s Slice) GetExternal() (uint64, error) {
	if s.Head() != headExternal {
		return 0, newError(ErrInvalidValueType, "expected External")
	}
	if len(s.data) < 9 {
		return 0, errShortInput(ErrInternalError)
	}
	return internal.LE.Uint64(s.data[1:9]), nil
}

// stringBytes returns the raw UTF-8 payload of a String value without
// copying.
func (s Slice) stringBytes() ([]byte, error) {
	h := s.Head()
	switch {
	case h >= headStringShortFirst && h <= 0xbe:
		n := int(h - headStringShortFirst)
		if len(s.data) < 1+n {
			return nil, errShortInput(ErrInternalError)
		}
		return s.data[1 : 1+n], nil
	case h == headStringLong:
		if len(s.data) < 9 {
			return nil, errShortInput(ErrInternalError)
		}
		n := int(internal.LE.Uint64(s.data[1:9]))
		if len(s.data) < 9+n {
			return nil, errShortInput(ErrInternalError)
		}
		return s.data[9 : 9+n], nil
	default:
		return nil, newError(ErrInvalidValueType, "expected String")
	}
}

// GetString copies the String payload into a new Go string.
func (s Slice) GetString() (string, error) {
	b, err := s.stringBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetStringView returns the String payload as a []byte aliasing the
// Slice's underlying bytes; it must not be mutated or retained past the
// backing Buffer's lifetime.
func (s Slice) GetStringView() ([]byte, error) { return s.stringBytes() }

// GetBinary returns the Binary payload, aliasing the Slice's underlying
// bytes.
func (s Slice) GetBinary() ([]byte, error) {
	h := s.Head()
	if h < headBinaryFirst || h > headBinaryFirst+7 {
		return nil, newError(ErrInvalidValueType, "expected Binary")
	}
	w := int(h-headBinaryFirst) + 1
	if len(s.data) < 1+w {
		return nil, errShortInput(ErrInternalError)
	}
	n := int(internal.UintWidth(s.data[1:1+w], w))
	if len(s.data) < 1+w+n {
		return nil, errShortInput(ErrInternalError)
	}
	return s.data[1+w : 1+w+n], nil
}

// GetBCD returns the decimal magnitude, power-of-ten exponent, and sign of
// a BCD value.
func (s Slice) GetBCD() (magnitude *big.Int, exponent int32, negative bool, err error) {
	h := s.Head()
	var base byte
	switch {
	case h >= headBCDPosFirst && h <= headBCDPosFirst+7:
		base, negative = headBCDPosFirst, false
	case h >= headBCDNegFirst && h <= headBCDNegFirst+7:
		base, negative = headBCDNegFirst, true
	default:
		return nil, 0, false, newError(ErrInvalidValueType, "expected BCD")
	}
	w := int(h-base) + 1
	if len(s.data) < 1+w+4 {
		return nil, 0, false, errShortInput(ErrInternalError)
	}
	n := int(internal.UintWidth(s.data[1:1+w], w))
	exponent = int32(internal.LE.Uint32(s.data[1+w : 1+w+4]))
	start := 1 + w + 4
	if len(s.data) < start+n {
		return nil, 0, false, errShortInput(ErrInternalError)
	}
	magnitude = bcdBytesToInt(s.data[start : start+n])
	return magnitude, exponent, negative, nil
}

// bcdBytesToInt decodes a packed-BCD nibble stream (two decimal digits per
// byte, most significant nibble first) into its magnitude.
func bcdBytesToInt(b []byte) *big.Int {
	result := new(big.Int)
	ten := big.NewInt(10)
	for _, by := range b {
		hi, lo := by>>4, by&0x0f
		if hi <= 9 {
			result.Mul(result, ten)
			result.Add(result, big.NewInt(int64(hi)))
		}
		if lo <= 9 {
			result.Mul(result, ten)
			result.Add(result, big.NewInt(int64(lo)))
		}
	}
	return result
}

// GetTag returns the tag id and the inner Slice of a Tagged value.
func (s Slice) GetTag() (tagID uint64, inner Slice, err error) {
	switch s.Head() {
	case headTaggedShort:
		if len(s.data) < 2 {
			return 0, Slice{}, errShortInput(ErrInternalError)
		}
		return uint64(s.data[1]), Slice{data: s.data[2:], opts: s.opts}, nil
	case headTaggedLong:
		if len(s.data) < 9 {
			return 0, Slice{}, errShortInput(ErrInternalError)
		}
		return internal.LE.Uint64(s.data[1:9]), Slice{data: s.data[9:], opts: s.opts}, nil
	default:
		return 0, Slice{}, newError(ErrInvalidValueType, "expected Tagged")
	}
}

// GetCustom returns the type code and payload of a Custom value.
func (s Slice) GetCustom() (typeCode byte, payload []byte, err error) {
	h := s.Head()
	if h < headCustomFirst {
		return 0, nil, newError(ErrInvalidValueType, "expected Custom")
	}
	switch h {
	case 0xf0:
		return h, nil, nil
	case 0xf1, 0xf2, 0xf4, 0xf8:
		w := customWidthFor(h)
		if len(s.data) < 1+w {
			return 0, nil, errShortInput(ErrInternalError)
		}
		n := int(internal.UintWidth(s.data[1:1+w], w))
		if len(s.data) < 1+w+n {
			return 0, nil, errShortInput(ErrInternalError)
		}
		return h, s.data[1+w : 1+w+n], nil
	default:
		return 0, nil, errNotImplemented
	}
}
