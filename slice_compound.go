package velocypack

import (
	"bytes"

	"github.com/arangodb/go-velocypack/internal"
)

// compoundHeader describes a fixed-width array/object head byte
// (0x02..0x09, 0x0b..0x12): the byte width of the length/offset fields and
// whether the family carries an index table.
type compoundHeader struct {
	width   int
	indexed bool // false only for the no-index array family (0x02..0x05)
}

// compoundByteSize reads the stored total-length field of an indexed or
// compact compound. Both families store their own total size, so this is
// O(1) (amortized, for the compact varint) regardless of member count.
func (s Slice) compoundByteSize() (int, error) {
	h := s.Head()
	switch {
	case h == headArrayEmpty || h == headObjectEmpty:
		return 1, nil
	case h == headArrayCompact || h == headObjectCompact:
		if len(s.data) < 2 {
			return 0, errShortInput(ErrInternalError)
		}
		n, consumed := internal.GetVarintForward(s.data[1:])
		if consumed == 0 {
			return 0, errShortInput(ErrInternalError)
		}
		return int(n), nil
	default:
		w, _, ok := arrayHeadWidth(h)
		if !ok {
			w, _, ok = objectHeadWidth(h)
		}
		if !ok {
			return 0, newError(ErrInternalError, "not a compound head byte")
		}
		if len(s.data) < 1+w {
			return 0, errShortInput(ErrInternalError)
		}
		return int(internal.UintWidth(s.data[1:1+w], w)), nil
	}
}

// header returns payloadStart for an array/object head byte in the
// fixed-width families, given its width and whether it is indexed.
// payloadStart is the offset, from the value's first byte, at which the
// first member begins when the header carries no alignment padding.
func header(h byte, width int, indexed bool) (payloadStart int) {
	payloadStart = 1 + width
	if indexed && width == 8 {
		payloadStart += width // nr_items stored in the header for w==8
	}
	return payloadStart
}

// Length reports the number of members (arrays, objects) or the byte
// length of the UTF-8 payload (strings). It errors with InvalidValueType
// for every other type.
func (s Slice) Length() (int, error) {
	h := s.Head()
	switch {
	case h >= headStringShortFirst && h <= 0xbe:
		return int(h - headStringShortFirst), nil
	case h == headStringLong:
		if len(s.data) < 9 {
			return 0, errShortInput(ErrInternalError)
		}
		return int(internal.LE.Uint64(s.data[1:9])), nil
	case h == headArrayEmpty || h == headObjectEmpty:
		return 0, nil
	case isArrayHead(h) || isObjectHead(h):
		return s.memberCount()
	default:
		return 0, newError(ErrInvalidValueType, "expected Array, Object, or String")
	}
}

func (s Slice) memberCount() (int, error) {
	h := s.Head()
	byteSize, err := s.ByteSize()
	if err != nil {
		return 0, err
	}
	if h == headArrayCompact || h == headObjectCompact {
		n, consumed := internal.GetVarintBackward(s.data[:byteSize], byteSize)
		if consumed == 0 {
			return 0, newError(ErrInternalError, "malformed compact trailer")
		}
		return int(n), nil
	}

	w, indexed, ok := arrayHeadWidth(h)
	if !ok {
		w, indexed, ok = objectHeadWidth(h)
	}
	if !ok {
		return 0, newError(ErrInternalError, "not a compound head byte")
	}

	if !indexed {
		// Homogeneous, no index table: count = (size - header) / stride.
		start := header(h, w, false)
		if byteSize == start {
			return 0, nil
		}
		first := Slice{data: s.data[start:byteSize], opts: s.opts}
		stride, err := first.ByteSize()
		if err != nil {
			return 0, err
		}
		if stride == 0 {
			return 0, newError(ErrInternalError, "zero-size member")
		}
		return (byteSize - start) / stride, nil
	}

	if w == 8 {
		nrItemsOff := 1 + w
		if len(s.data) < nrItemsOff+w {
			return 0, errShortInput(ErrInternalError)
		}
		return int(internal.UintWidth(s.data[nrItemsOff:nrItemsOff+w], w)), nil
	}
	// w in {1,2,4}: nr_items trailer is the last w bytes of the value.
	if byteSize < w {
		return 0, errShortInput(ErrInternalError)
	}
	return int(internal.UintWidth(s.data[byteSize-w:byteSize], w)), nil
}

// indexTableBounds returns the [start, end) byte range of the index table
// for an indexed compound, given its already-computed byteSize and member
// count.
func indexTableBounds(byteSize, w, count int) (start, end int) {
	if w == 8 {
		end = byteSize
	} else {
		end = byteSize - w // trailing nr_items
	}
	start = end - count*w
	return start, end
}

// memberOffset returns the byte offset, from the value's start, of member
// i in an indexed compound.
func (s Slice) memberOffset(i, byteSize, w, count int) (int, error) {
	if i < 0 || i >= count {
		return 0, newError(ErrIndexOutOfBounds, "index out of range")
	}
	start, _ := indexTableBounds(byteSize, w, count)
	entryOff := start + i*w
	if entryOff+w > len(s.data) {
		return 0, errShortInput(ErrInternalError)
	}
	return int(internal.UintWidth(s.data[entryOff:entryOff+w], w)), nil
}

// At returns the i-th element of an array. Errors with InvalidValueType if
// the Slice is not an Array, IndexOutOfBounds if i is out of range.
func (s Slice) At(i int) (Slice, error) {
	h := s.Head()
	if !isArrayHead(h) {
		return Slice{}, newError(ErrInvalidValueType, "expected Array")
	}
	if h == headArrayEmpty {
		return Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
	}
	if h == headArrayCompact {
		return s.compactAt(i)
	}
	byteSize, err := s.ByteSize()
	if err != nil {
		return Slice{}, err
	}
	w, indexed, _ := arrayHeadWidth(h)
	if !indexed {
		start := header(h, w, false)
		count, err := s.memberCount()
		if err != nil {
			return Slice{}, err
		}
		if i < 0 || i >= count {
			return Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
		}
		first := Slice{data: s.data[start:byteSize], opts: s.opts}
		stride, err := first.ByteSize()
		if err != nil {
			return Slice{}, err
		}
		off := start + i*stride
		return Slice{data: s.data[off:], opts: s.opts}, nil
	}
	count, err := s.memberCount()
	if err != nil {
		return Slice{}, err
	}
	off, err := s.memberOffset(i, byteSize, w, count)
	if err != nil {
		return Slice{}, err
	}
	return Slice{data: s.data[off:], opts: s.opts}, nil
}

// compactAt scans compact-array members from the start, since there is no
// index table; O(i).
func (s Slice) compactAt(i int) (Slice, error) {
	count, err := s.memberCount()
	if err != nil {
		return Slice{}, err
	}
	if i < 0 || i >= count {
		return Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
	}
	byteSize, err := s.ByteSize()
	if err != nil {
		return Slice{}, err
	}
	_, lenWidth := internal.GetVarintForward(s.data[1:])
	cursor := 1 + lenWidth
	for idx := 0; ; idx++ {
		if cursor >= byteSize {
			return Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
		}
		member := Slice{data: s.data[cursor:byteSize], opts: s.opts}
		sz, err := member.ByteSize()
		if err != nil {
			return Slice{}, err
		}
		if idx == i {
			return member, nil
		}
		cursor += sz
	}
}

// KeyAt returns the i-th member's key (as a String slice, or as a SmallInt
// translated-key id if Options.Translator decoding is in play).
func (s Slice) KeyAt(i int) (Slice, error) {
	key, _, err := s.memberAt(i)
	return key, err
}

// ValueAt returns the i-th member's value.
func (s Slice) ValueAt(i int) (Slice, error) {
	_, val, err := s.memberAt(i)
	return val, err
}

func (s Slice) memberAt(i int) (key, val Slice, err error) {
	h := s.Head()
	if !isObjectHead(h) {
		return Slice{}, Slice{}, newError(ErrInvalidValueType, "expected Object")
	}
	if h == headObjectEmpty {
		return Slice{}, Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
	}
	if h == headObjectCompact {
		return s.compactMemberAt(i)
	}
	byteSize, err := s.ByteSize()
	if err != nil {
		return Slice{}, Slice{}, err
	}
	w, _, _ := objectHeadWidth(h)
	count, err := s.memberCount()
	if err != nil {
		return Slice{}, Slice{}, err
	}
	off, err := s.memberOffset(i, byteSize, w, count)
	if err != nil {
		return Slice{}, Slice{}, err
	}
	key = Slice{data: s.data[off:], opts: s.opts}
	keySize, err := key.ByteSize()
	if err != nil {
		return Slice{}, Slice{}, err
	}
	val = Slice{data: s.data[off+keySize:], opts: s.opts}
	return key, val, nil
}

func (s Slice) compactMemberAt(i int) (key, val Slice, err error) {
	if i < 0 {
		return Slice{}, Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
	}
	byteSize, err := s.ByteSize()
	if err != nil {
		return Slice{}, Slice{}, err
	}
	_, lenWidth := internal.GetVarintForward(s.data[1:])
	cursor := 1 + lenWidth
	for idx := 0; ; idx++ {
		if cursor >= byteSize {
			return Slice{}, Slice{}, newError(ErrIndexOutOfBounds, "index out of range")
		}
		k := Slice{data: s.data[cursor:byteSize], opts: s.opts}
		kSize, err := k.ByteSize()
		if err != nil {
			return Slice{}, Slice{}, err
		}
		v := Slice{data: s.data[cursor+kSize : byteSize], opts: s.opts}
		vSize, err := v.ByteSize()
		if err != nil {
			return Slice{}, Slice{}, err
		}
		if idx == i {
			return k, v, nil
		}
		cursor += kSize + vSize
	}
}

// keyName resolves a member key Slice to its logical attribute name,
// following attribute translation if the key was stored as a translated
// SmallInt id.
func (s Slice) keyName(key Slice) (string, error) {
	if key.IsString() {
		return key.GetString()
	}
	if key.IsSmallInt() && s.opts != nil && s.opts.Translator != nil {
		id, err := key.GetSmallInt()
		if err != nil {
			return "", err
		}
		if name, ok := s.opts.Translator.Untranslate(byte(id)); ok {
			return name, nil
		}
	}
	return "", newError(ErrInternalError, "key is neither a String nor a known translated id")
}

// KeyNameAt returns the i-th member's attribute name, resolving translated
// SmallInt keys the same way Get does.
func (s Slice) KeyNameAt(i int) (string, error) {
	key, err := s.KeyAt(i)
	if err != nil {
		return "", err
	}
	return s.keyName(key)
}

// HasKey reports whether key names a member of this object.
func (s Slice) HasKey(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return !v.IsNone(), nil
}

// Get returns the value stored under key, or NoneSlice() if absent. It
// errors with InvalidValueType if the Slice is not an Object.
func (s Slice) Get(key string) (Slice, error) {
	h := s.Head()
	if !isObjectHead(h) {
		return Slice{}, newError(ErrInvalidValueType, "expected Object")
	}
	if h == headObjectEmpty {
		return NoneSlice(), nil
	}
	if h == headObjectCompact {
		return s.getLinear(key)
	}
	w, sorted, _ := objectHeadWidth(h)
	if sorted {
		return s.getSorted(key, w)
	}
	return s.getLinear(key)
}

func (s Slice) getLinear(key string) (Slice, error) {
	n, err := s.Length()
	if err != nil {
		return Slice{}, err
	}
	for i := 0; i < n; i++ {
		k, v, err := s.memberAt(i)
		if err != nil {
			return Slice{}, err
		}
		name, err := s.keyName(k)
		if err != nil {
			return Slice{}, err
		}
		if name == key {
			return v, nil
		}
	}
	return NoneSlice(), nil
}

func (s Slice) getSorted(key string, w int) (Slice, error) {
	byteSize, err := s.ByteSize()
	if err != nil {
		return Slice{}, err
	}
	count, err := s.memberCount()
	if err != nil {
		return Slice{}, err
	}
	needle := []byte(key)
	lo, hi := 0, count-1
	for lo <= hi {
		mid := (lo + hi) / 2
		off, err := s.memberOffset(mid, byteSize, w, count)
		if err != nil {
			return Slice{}, err
		}
		k := Slice{data: s.data[off:], opts: s.opts}
		kb, err := k.stringBytes()
		if err != nil {
			// Translated key: fall back to linear scan semantics for
			// this single comparison by resolving its name.
			name, nerr := s.keyName(k)
			if nerr != nil {
				return Slice{}, nerr
			}
			kb = []byte(name)
		}
		switch bytes.Compare(kb, needle) {
		case 0:
			keySize, err := k.ByteSize()
			if err != nil {
				return Slice{}, err
			}
			return Slice{data: s.data[off+keySize:], opts: s.opts}, nil
		case -1:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return NoneSlice(), nil
}
