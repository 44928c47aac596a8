package velocypack

import (
	"sort"

	"github.com/arangodb/go-velocypack/internal"
)

// maxForWidth is the largest unsigned value a width-byte little endian
// field can hold.
func maxForWidth(w int) uint64 {
	switch w {
	case 1:
		return 0xff
	case 2:
		return 0xffff
	case 4:
		return 0xffffffff
	default:
		return ^uint64(0)
	}
}

// Close finalizes the innermost open compound: it picks a head byte family
// and byte width, builds the index table (sorting it for objects when
// requested), and shifts the member payload left out of the placeholder
// header reserved at Open time and into its final, narrower one.
func (b *Builder) Close() error {
	if len(b.stack) == 0 {
		return newError(ErrBuilderNeedOpenCompound, "no open array or object to close")
	}
	oc := b.stack[len(b.stack)-1]
	if oc.isObject && oc.keyPending {
		return newError(ErrBuilderKeyMustBeString, "object member has a key but no value")
	}

	membersEnd := b.buf.Len()
	if len(oc.offsets) == 0 {
		head := byte(headArrayEmpty)
		if oc.isObject {
			head = headObjectEmpty
		}
		b.buf.ResetTo(oc.start)
		b.buf.Push(head)
	} else if oc.isObject && b.opts.CheckAttributeUniqueness {
		if err := b.checkUnique(oc.offsets, membersEnd); err != nil {
			return err
		}
	}

	if len(oc.offsets) > 0 {
		var err error
		switch {
		case oc.isObject && b.opts.BuildUnindexedObjects:
			err = b.closeCompact(&oc, membersEnd)
		case oc.explicitCompact:
			err = b.closeCompact(&oc, membersEnd)
		case !oc.isObject && b.opts.BuildUnindexedArrays && b.homogeneous(oc.offsets, membersEnd):
			err = b.closeNoIndexArray(&oc, membersEnd)
		default:
			err = b.closeIndexed(&oc, membersEnd)
		}
		if err != nil {
			return err
		}
	}

	b.stack = b.stack[:len(b.stack)-1]
	wasObjectValue := len(b.stack) > 0 && b.stack[len(b.stack)-1].isObject
	b.recordMemberStart(oc.start, wasObjectValue)
	return nil
}

func (b *Builder) checkUnique(offsets []int, membersEnd int) error {
	seen := make(map[string]bool, len(offsets))
	for _, off := range offsets {
		name, err := b.keyNameAt(off, membersEnd)
		if err != nil {
			return err
		}
		if seen[name] {
			return newError(ErrDuplicateAttributeName, "duplicate attribute name: "+name)
		}
		seen[name] = true
	}
	return nil
}

func (b *Builder) keyNameAt(off, membersEnd int) (string, error) {
	key := Slice{data: b.buf.data[off:membersEnd], opts: b.opts}
	return key.keyName(key)
}

// homogeneous reports whether every member starting at the given offsets
// (ending at membersEnd, or the next offset) has the same byte size.
func (b *Builder) homogeneous(offsets []int, membersEnd int) bool {
	if len(offsets) == 0 {
		return false
	}
	size := -1
	for i, off := range offsets {
		end := membersEnd
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		s := Slice{data: b.buf.data[off:end], opts: b.opts}
		sz, err := s.ByteSize()
		if err != nil || sz != end-off {
			return false
		}
		if size == -1 {
			size = sz
		} else if sz != size {
			return false
		}
	}
	return size > 0
}

// closeNoIndexArray lays out a homogeneous array without an index table:
// head byte + length field only, members packed contiguously.
func (b *Builder) closeNoIndexArray(oc *openCompound, membersEnd int) error {
	payloadStart := oc.start + reservedHeaderSize
	payloadLen := membersEnd - payloadStart

	var w int
	for _, cand := range [3]int{1, 2, 4} {
		headerSize := 1 + cand
		total := headerSize + payloadLen
		if uint64(total) <= maxForWidth(cand) {
			w = cand
			break
		}
	}
	if w == 0 {
		w = 8
	}
	headerSize := 1 + w
	total := headerSize + payloadLen

	b.shiftPayload(oc.start, payloadStart, headerSize, payloadLen)
	b.buf.ResetTo(oc.start + headerSize + payloadLen)

	head := headForArray(w, false)
	b.writeCompoundHeader(oc.start, head, w, uint64(total), false, 0, headerSize)
	return nil
}

// closeIndexed lays out an indexed array or object: head byte + length
// field (+ nr_items in-header for width 8) + members + index table (+
// nr_items trailer for width < 8).
func (b *Builder) closeIndexed(oc *openCompound, membersEnd int) error {
	payloadStart := oc.start + reservedHeaderSize
	payloadLen := membersEnd - payloadStart

	offsets := append([]int(nil), oc.offsets...)
	sorted := b.opts.SortAttributeNames
	if oc.sortedOverride != nil {
		sorted = *oc.sortedOverride
	}
	if oc.isObject && sorted {
		if err := b.sortMemberOffsets(offsets, membersEnd); err != nil {
			return err
		}
	}
	count := len(offsets)

	relOffset := func(w, headerSize int, absOff int) uint64 {
		return uint64(absOff-payloadStart) + uint64(headerSize)
	}

	var w int
	for _, cand := range [3]int{1, 2, 4} {
		headerSize := 1 + cand
		indexLen := count * cand
		trailerLen := cand
		total := headerSize + payloadLen + indexLen + trailerLen
		maxOffset := relOffset(cand, headerSize, payloadStart+payloadLen)
		if uint64(total) <= maxForWidth(cand) && maxOffset <= maxForWidth(cand) {
			w = cand
			break
		}
	}
	var headerSize, indexLen, trailerLen int
	if w == 0 {
		w = 8
		headerSize = 1 + w + w
		if b.opts.PaddingBehavior == UsePadding {
			if pad := (w - headerSize%w) % w; pad != 0 {
				headerSize += pad
			}
		}
		indexLen = count * w
		trailerLen = 0
	} else {
		headerSize = 1 + w
		indexLen = count * w
		trailerLen = w
	}
	total := headerSize + payloadLen + indexLen + trailerLen

	b.shiftPayload(oc.start, payloadStart, headerSize, payloadLen)

	// Build the index table right after the (already shifted) payload.
	tableStart := oc.start + headerSize + payloadLen
	b.buf.ResetTo(tableStart)
	var entry [8]byte
	for _, absOff := range offsets {
		off := relOffset(w, headerSize, absOff)
		internal.PutUintWidth(entry[:], off, w)
		b.buf.Append(entry[:w])
	}
	if trailerLen > 0 {
		internal.PutUintWidth(entry[:], uint64(count), w)
		b.buf.Append(entry[:w])
	}

	var head byte
	if oc.isObject {
		head = headForObject(w, sorted)
	} else {
		head = headForArray(w, true)
	}
	nrItemsInHeader := w == 8
	b.writeCompoundHeader(oc.start, head, w, uint64(total), nrItemsInHeader, uint64(count), headerSize)
	return nil
}

// closeCompact lays out the variable-length, unindexed, unsorted form: head
// byte + forward varint(total size) + members + backward varint(count).
func (b *Builder) closeCompact(oc *openCompound, membersEnd int) error {
	payloadStart := oc.start + reservedHeaderSize
	payloadLen := membersEnd - payloadStart
	count := len(oc.offsets)
	countFieldSize := internal.SizeOfVarint(uint64(count))

	lenFieldSize := 1
	for i := 0; i < 4; i++ {
		headerSize := 1 + lenFieldSize
		total := headerSize + payloadLen + countFieldSize
		next := internal.SizeOfVarint(uint64(total))
		if next == lenFieldSize {
			break
		}
		lenFieldSize = next
	}
	headerSize := 1 + lenFieldSize
	total := headerSize + payloadLen + countFieldSize

	b.shiftPayload(oc.start, payloadStart, headerSize, payloadLen)
	b.buf.ResetTo(oc.start + headerSize + payloadLen)

	var trailer [10]byte
	n := internal.PutVarintBackward(trailer[:countFieldSize], uint64(count))
	b.buf.Append(trailer[:n])

	head := byte(headArrayCompact)
	if oc.isObject {
		head = headObjectCompact
	}
	b.buf.data[oc.start] = head
	var lenBuf [10]byte
	internal.PutVarintForward(lenBuf[:lenFieldSize], uint64(total))
	copy(b.buf.data[oc.start+1:oc.start+1+lenFieldSize], lenBuf[:lenFieldSize])
	return nil
}

// shiftPayload moves the member bytes occupying
// [oldPayloadStart, oldPayloadStart+payloadLen) down to start at
// compoundStart+newHeaderSize, closing the gap left by the placeholder
// header.
func (b *Builder) shiftPayload(compoundStart, oldPayloadStart, newHeaderSize, payloadLen int) {
	newStart := compoundStart + newHeaderSize
	if newStart == oldPayloadStart || payloadLen == 0 {
		return
	}
	copy(b.buf.data[newStart:newStart+payloadLen], b.buf.data[oldPayloadStart:oldPayloadStart+payloadLen])
}

// writeCompoundHeader writes the head byte and length field, and the
// nr_items field when it lives in the header (width 8), zeroing any
// alignment padding between it and the payload.
func (b *Builder) writeCompoundHeader(start int, head byte, w int, total uint64, nrItemsInHeader bool, count uint64, headerSize int) {
	b.buf.data[start] = head
	internal.PutUintWidth(b.buf.data[start+1:start+1+w], total, w)
	cursor := start + 1 + w
	if nrItemsInHeader {
		internal.PutUintWidth(b.buf.data[cursor:cursor+w], count, w)
		cursor += w
	}
	for ; cursor < start+headerSize; cursor++ {
		b.buf.data[cursor] = 0
	}
}

// sortMemberOffsets sorts offsets in place by attribute name, byte-for-byte
// comparable with the raw key bytes Slice.Get uses for its binary search.
func (b *Builder) sortMemberOffsets(offsets []int, membersEnd int) error {
	type keyedOffset struct {
		off int
		key string
	}
	pairs := make([]keyedOffset, len(offsets))
	for i, off := range offsets {
		name, err := b.keyNameAt(off, membersEnd)
		if err != nil {
			return err
		}
		pairs[i] = keyedOffset{off: off, key: name}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	for i, p := range pairs {
		offsets[i] = p.off
	}
	return nil
}
