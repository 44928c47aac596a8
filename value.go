package velocypack

import "math/big"

// Value is a lightweight carrier for scalar input to the Builder. Compound
// values (arrays, objects) are not represented here; they are built with
// Builder.OpenArray/OpenObject/Close instead, since their content is only
// known incrementally.
//
// Value is deliberately a plain struct rather than an interface so that
// constructing one does not allocate; the exception is NewTaggedValue, which
// keeps its inner Value behind a pointer.
type Value struct {
	kind Type

	boolVal   bool
	intVal    int64
	uintVal   uint64
	doubleVal float64
	stringVal string
	binary    []byte

	// BCD: decimal is the big-endian BCD nibble stream's decimal magnitude,
	// exponent the power-of-ten scale. Sign is carried by kind's caller
	// via negative, since BCD splits positive/negative head bytes.
	decimal  *big.Int
	exponent int32
	negative bool

	tagID uint64
	inner *Value

	customType byte
}

// ValuePair couples an attribute name with its Value. No Builder method
// takes ValuePairs; AddKeyValue takes the name and Value separately.
type ValuePair struct {
	Key   string
	Value Value
}

// NewNullValue returns the Null value.
func NewNullValue() Value { return Value{kind: Null} }

// NewBoolValue returns a Bool value.
func NewBoolValue(b bool) Value { return Value{kind: Bool, boolVal: b} }

// NewIntValue returns a signed integer value. The Builder picks SmallInt
// encoding automatically when v is in -6..9.
func NewIntValue(v int64) Value { return Value{kind: Int, intVal: v} }

// NewUIntValue returns an unsigned integer value.
func NewUIntValue(v uint64) Value { return Value{kind: UInt, uintVal: v} }

// NewDoubleValue returns a Double (IEEE-754 binary64) value.
func NewDoubleValue(v float64) Value { return Value{kind: Double, doubleVal: v} }

// NewStringValue returns a String value. s must be valid UTF-8.
func NewStringValue(s string) Value { return Value{kind: String, stringVal: s} }

// NewBinaryValue returns a Binary value wrapping p. p is not copied.
func NewBinaryValue(p []byte) Value { return Value{kind: Binary, binary: p} }

// NewUTCDateValue returns a UTCDate value, millis since the Unix epoch.
func NewUTCDateValue(millis int64) Value { return Value{kind: UTCDate, intVal: millis} }

// NewMinKeyValue returns the MinKey sentinel value.
func NewMinKeyValue() Value { return Value{kind: MinKey} }

// NewMaxKeyValue returns the MaxKey sentinel value.
func NewMaxKeyValue() Value { return Value{kind: MaxKey} }

// NewBCDValue returns a BCD value with the given decimal magnitude,
// exponent, and sign. The magnitude must be non-negative; use negative to
// select the 0xd0..0xd7 (negative) head byte family.
func NewBCDValue(magnitude *big.Int, exponent int32, negative bool) Value {
	return Value{kind: BCD, decimal: magnitude, exponent: exponent, negative: negative}
}

// NewTaggedValue returns a Tagged value: tagID identifies the tag namespace,
// inner is the value it annotates.
func NewTaggedValue(tagID uint64, inner Value) Value {
	return Value{kind: Tagged, tagID: tagID, inner: &inner}
}

// NewExternalValue returns an External value wrapping an opaque pointer-
// width payload. The core never dereferences it; External is never produced
// by the Parser and exists for completeness with the format's head byte
// table.
func NewExternalValue(ptr uint64) Value { return Value{kind: External, uintVal: ptr} }

// NewCustomValue returns a Custom value carrying payload, the
// implementation-defined content. The Builder picks the head byte from the
// payload length: 0xf0 when it is empty, otherwise 0xf1/0xf2/0xf4/0xf8 for a
// 1/2/4/8-byte length prefix. typeCode is kept on the Value but does not
// affect the encoding.
func NewCustomValue(typeCode byte, payload []byte) Value {
	return Value{kind: Custom, customType: typeCode, binary: payload}
}

// Type reports the logical type this Value will encode as.
func (v Value) Type() Type { return v.kind }
