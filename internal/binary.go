// Package internal holds the byte-level machinery the core builds on: little
// endian primitive encoding and variable-width length fields. None of it
// understands VPack head bytes; that lives one level up, in the velocypack
// package itself.
package internal

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

var LE = binary.LittleEndian

// Max returns the larger of a and b. Used by Buffer's growth arithmetic,
// where both operands are plain integer magnitudes rather than domain types
// worth their own comparison method.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// PutUintWidth writes the low width*8 bits of v into dst (len(dst) >= width)
// as little endian. width must be 1, 2, 4, or 8.
func PutUintWidth(dst []byte, v uint64, width int) {
	switch width {
	case 1:
		dst[0] = byte(v)
	case 2:
		LE.PutUint16(dst, uint16(v))
	case 4:
		LE.PutUint32(dst, uint32(v))
	case 8:
		LE.PutUint64(dst, v)
	default:
		panic("internal: invalid width")
	}
}

// UintWidth reads a width-byte little endian unsigned integer from src.
func UintWidth(src []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(LE.Uint16(src))
	case 4:
		return uint64(LE.Uint32(src))
	case 8:
		return LE.Uint64(src)
	default:
		panic("internal: invalid width")
	}
}

// WidthFor returns the narrowest width in {1, 2, 4, 8} that can hold n.
func WidthFor(n uint64) int {
	switch {
	case n <= 0xff:
		return 1
	case n <= 0xffff:
		return 2
	case n <= 0xffffffff:
		return 4
	default:
		return 8
	}
}
