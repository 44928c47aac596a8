package velocypack

// PaddingBehavior controls whether 8-byte-width indexed compound headers are
// padded to a multiple of 8 bytes, so that the first member starts on an
// 8-byte boundary relative to the start of the value.
type PaddingBehavior int

const (
	UsePadding PaddingBehavior = iota
	NoPadding
)

// UnsupportedTypeBehavior controls what Slice.ToJSON does when it encounters
// a value with no JSON equivalent, such as UTCDate, MinKey, MaxKey, BCD,
// Tagged, External or Custom.
type UnsupportedTypeBehavior int

const (
	FailOnUnsupported UnsupportedTypeBehavior = iota
	NullOnUnsupported
	ConvertUnsupportedToString
)

// AttributeTranslator substitutes well-known attribute names with a single
// byte encoding (builder_encode.go reuses the SmallInt byte range 0x30..0x39 for
// this). Implementations are expected to be consistent for the lifetime of
// a Builder/Slice pairing.
type AttributeTranslator interface {
	// Translate returns the translated byte and true if name is known.
	Translate(name string) (byte, bool)
	// Untranslate is the inverse of Translate.
	Untranslate(b byte) (string, bool)
}

// Options configures Builder, Parser, and Slice navigation. The zero value
// is not valid; use DefaultOptions.
type Options struct {
	// SortAttributeNames, when true (the default), makes the Builder emit
	// sorted-key object layouts with a binary-searchable index.
	SortAttributeNames bool

	// CheckAttributeUniqueness, when true, makes Builder.Close fail with
	// DuplicateAttributeName if an object has repeated keys.
	CheckAttributeUniqueness bool

	// BuildUnindexedArrays, when true, makes the Builder prefer the
	// no-index-table array layout whenever members are homogeneous in
	// byte size.
	BuildUnindexedArrays bool

	// BuildUnindexedObjects, when true, makes the Builder emit the
	// unsorted, unindexed object layout unconditionally.
	BuildUnindexedObjects bool

	// KeepTopLevelOpen, when true, lets the Builder start another
	// top-level value in the same Buffer after the previous one is
	// complete. Close still finalizes the top-level compound; it does not
	// stay open for more members.
	KeepTopLevelOpen bool

	// PaddingBehavior controls alignment padding in 8-byte-width headers.
	PaddingBehavior PaddingBehavior

	// EscapeUnicode makes JSON-producing helpers emit \uXXXX for non-ASCII
	// runes instead of raw UTF-8.
	EscapeUnicode bool

	// EscapeForwardSlashes makes JSON-producing helpers emit \/ for '/'.
	EscapeForwardSlashes bool

	// UnsupportedTypeBehavior controls behavior when ToJSON encounters a
	// value with no JSON equivalent.
	UnsupportedTypeBehavior UnsupportedTypeBehavior

	// Translator, when non-nil, enables translated-keys mode in the
	// Builder and Slice key accessors. Optional; nil by default.
	Translator AttributeTranslator
}

// DefaultOptions returns the Options the Builder and Parser use unless the
// caller supplies its own.
func DefaultOptions() *Options {
	return &Options{
		SortAttributeNames:      true,
		CheckAttributeUniqueness: false,
		BuildUnindexedArrays:    false,
		BuildUnindexedObjects:   false,
		KeepTopLevelOpen:        false,
		PaddingBehavior:         UsePadding,
		EscapeUnicode:           false,
		EscapeForwardSlashes:    false,
		UnsupportedTypeBehavior: FailOnUnsupported,
	}
}
