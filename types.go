package velocypack

// Type is the logical VPack value type a Slice decodes to. It is distinct
// from the physical head byte, which additionally selects a width family.
type Type int

const (
	None Type = iota
	Illegal
	Null
	Bool
	Array
	Object
	Double
	UTCDate
	External
	MinKey
	MaxKey
	Int
	UInt
	SmallInt
	String
	Binary
	BCD
	Custom
	Tagged
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Illegal:
		return "Illegal"
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Array:
		return "Array"
	case Object:
		return "Object"
	case Double:
		return "Double"
	case UTCDate:
		return "UTCDate"
	case External:
		return "External"
	case MinKey:
		return "MinKey"
	case MaxKey:
		return "MaxKey"
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case SmallInt:
		return "SmallInt"
	case String:
		return "String"
	case Binary:
		return "Binary"
	case BCD:
		return "BCD"
	case Custom:
		return "Custom"
	case Tagged:
		return "Tagged"
	default:
		return "Unknown"
	}
}

// Head byte constants, normative per the format description. Ranges are
// expressed as the first byte of the family; width is derived from the
// offset within the range.
const (
	headNone          byte = 0x00
	headArrayEmpty    byte = 0x01
	headArrayNoIdx1   byte = 0x02 // .. 0x05
	headArrayIdx1     byte = 0x06 // .. 0x09
	headObjectEmpty   byte = 0x0a
	headObjectSort1   byte = 0x0b // .. 0x0e
	headObjectUns1    byte = 0x0f // .. 0x12
	headArrayCompact  byte = 0x13
	headObjectCompact byte = 0x14
	// 0x15, 0x16 reserved
	headIllegal          byte = 0x17
	headNull             byte = 0x18
	headFalse            byte = 0x19
	headTrue             byte = 0x1a
	headDouble           byte = 0x1b
	headUTCDate          byte = 0x1c
	headExternal         byte = 0x1d
	headMinKey           byte = 0x1e
	headMaxKey           byte = 0x1f
	headIntFirst         byte = 0x20 // .. 0x27, 1..8 bytes
	headUIntFirst        byte = 0x28 // .. 0x2f, 1..8 bytes
	headSmallIntPosFirst byte = 0x30 // .. 0x39, values 0..9
	headSmallIntNegFirst byte = 0x3a // .. 0x3f, values -6..-1
	headStringShortFirst byte = 0x40 // .. 0xbe, length = head-0x40 (0..126)
	headStringLong       byte = 0xbf
	headBinaryFirst      byte = 0xc0 // .. 0xc7, 1..8 byte length
	headBCDPosFirst      byte = 0xc8 // .. 0xcf
	headBCDNegFirst      byte = 0xd0 // .. 0xd7
	// 0xd8 .. 0xed reserved
	headTaggedShort byte = 0xee // 1-byte tag id
	headTaggedLong  byte = 0xef // 8-byte tag id
	headCustomFirst byte = 0xf0 // .. 0xff
)

const (
	smallIntPosCount = 10 // 0..9
	smallIntNegCount = 6  // -6..-1
)
