package velocypack

// This file holds the pure head-byte classification tables both the
// Builder (choosing a head byte) and Slice (interpreting one) share. None of
// it touches a Buffer; it is just arithmetic on the tag byte.

// typeOf maps a head byte to its logical Type. It never reads beyond the
// head byte itself.
func typeOf(h byte) Type {
	switch {
	case h == headNone:
		return None
	case h == headArrayEmpty:
		return Array
	case h >= headArrayNoIdx1 && h <= headArrayNoIdx1+3:
		return Array
	case h >= headArrayIdx1 && h <= headArrayIdx1+3:
		return Array
	case h == headObjectEmpty:
		return Object
	case h >= headObjectSort1 && h <= headObjectSort1+3:
		return Object
	case h >= headObjectUns1 && h <= headObjectUns1+3:
		return Object
	case h == headArrayCompact:
		return Array
	case h == headObjectCompact:
		return Object
	case h == headIllegal:
		return Illegal
	case h == headNull:
		return Null
	case h == headFalse, h == headTrue:
		return Bool
	case h == headDouble:
		return Double
	case h == headUTCDate:
		return UTCDate
	case h == headExternal:
		return External
	case h == headMinKey:
		return MinKey
	case h == headMaxKey:
		return MaxKey
	case h >= headIntFirst && h <= headIntFirst+7:
		return Int
	case h >= headUIntFirst && h <= headUIntFirst+7:
		return UInt
	case h >= headSmallIntPosFirst && h <= headSmallIntPosFirst+9:
		return SmallInt
	case h >= headSmallIntNegFirst && h <= headSmallIntNegFirst+5:
		return SmallInt
	case h >= headStringShortFirst && h <= 0xbe:
		return String
	case h == headStringLong:
		return String
	case h >= headBinaryFirst && h <= headBinaryFirst+7:
		return Binary
	case h >= headBCDPosFirst && h <= headBCDPosFirst+7:
		return BCD
	case h >= headBCDNegFirst && h <= headBCDNegFirst+7:
		return BCD
	case h == headTaggedShort, h == headTaggedLong:
		return Tagged
	case h >= headCustomFirst:
		return Custom
	default:
		// 0x15, 0x16, 0xd8..0xed: reserved, never produced; treat as
		// Illegal so a stray byte fails loudly instead of silently
		// misparsing as something structured.
		return Illegal
	}
}

// isArrayHead/isObjectHead classify the compound families.
func isArrayHead(h byte) bool {
	return h == headArrayEmpty ||
		(h >= headArrayNoIdx1 && h <= headArrayNoIdx1+3) ||
		(h >= headArrayIdx1 && h <= headArrayIdx1+3) ||
		h == headArrayCompact
}

func isObjectHead(h byte) bool {
	return h == headObjectEmpty ||
		(h >= headObjectSort1 && h <= headObjectSort1+3) ||
		(h >= headObjectUns1 && h <= headObjectUns1+3) ||
		h == headObjectCompact
}

// widthByIndex maps 0,1,2,3 to the byte widths 1,2,4,8 the four-wide head
// byte families use.
var widthByIndex = [4]int{1, 2, 4, 8}

func widthIndexOf(width int) int {
	switch width {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		panic("velocypack: invalid width")
	}
}

// arrayHeadWidth returns the byte width and whether h carries an index
// table, for h in the 0x02..0x09 families. ok is false otherwise.
func arrayHeadWidth(h byte) (width int, indexed bool, ok bool) {
	switch {
	case h >= headArrayNoIdx1 && h <= headArrayNoIdx1+3:
		return widthByIndex[h-headArrayNoIdx1], false, true
	case h >= headArrayIdx1 && h <= headArrayIdx1+3:
		return widthByIndex[h-headArrayIdx1], true, true
	default:
		return 0, false, false
	}
}

func headForArray(width int, indexed bool) byte {
	idx := widthIndexOf(width)
	if indexed {
		return headArrayIdx1 + byte(idx)
	}
	return headArrayNoIdx1 + byte(idx)
}

// objectHeadWidth returns the byte width and whether h is the sorted
// family, for h in the 0x0b..0x12 range. ok is false otherwise.
func objectHeadWidth(h byte) (width int, sorted bool, ok bool) {
	switch {
	case h >= headObjectSort1 && h <= headObjectSort1+3:
		return widthByIndex[h-headObjectSort1], true, true
	case h >= headObjectUns1 && h <= headObjectUns1+3:
		return widthByIndex[h-headObjectUns1], false, true
	default:
		return 0, false, false
	}
}

func headForObject(width int, sorted bool) byte {
	idx := widthIndexOf(width)
	if sorted {
		return headObjectSort1 + byte(idx)
	}
	return headObjectUns1 + byte(idx)
}

// fixedSize returns the total byte size (including the head byte) of a
// value whose size is fully determined by its head byte alone - true for
// every singleton and every fixed-width scalar, including short strings
// (whose length is encoded as head-0x40) and the Int/UInt/SmallInt
// families (whose payload width is encoded in the specific head byte, not
// read from the payload). ok is false for every head byte whose size
// requires reading further bytes (long string, binary, BCD, tagged,
// custom, compounds).
func fixedSize(h byte) (size int, ok bool) {
	switch {
	case h == headNone, h == headArrayEmpty, h == headObjectEmpty,
		h == headIllegal, h == headNull, h == headFalse, h == headTrue,
		h == headMinKey, h == headMaxKey:
		return 1, true
	case h == headDouble:
		return 9, true
	case h == headUTCDate:
		return 9, true
	case h == headExternal:
		return 9, true
	case h >= headIntFirst && h <= headIntFirst+7:
		return 2 + int(h-headIntFirst), true
	case h >= headUIntFirst && h <= headUIntFirst+7:
		return 2 + int(h-headUIntFirst), true
	case h >= headSmallIntPosFirst && h <= headSmallIntPosFirst+9:
		return 1, true
	case h >= headSmallIntNegFirst && h <= headSmallIntNegFirst+5:
		return 1, true
	case h >= headStringShortFirst && h <= 0xbe:
		return 1 + int(h-headStringShortFirst), true
	default:
		return 0, false
	}
}
