package velocypack

// reservedHeaderSize is the worst-case header a compound can need: 1 head
// byte + up to 8 bytes of length field + up to 8 bytes of nr_items (only
// used together when width is 8). The Builder always reserves this much
// space when a compound is opened, then shifts its members left once at
// Close, once the true header size is known. This trades a bit of copying
// for never having to grow a header in place while members are still being
// written - the strategy the format's design notes call out explicitly as
// equivalent to back-patching.
const reservedHeaderSize = 1 + 8 + 8

type openCompound struct {
	start           int // absolute offset in the buffer of the placeholder header
	isObject        bool
	explicitCompact bool
	sortedOverride  *bool // nil: fall back to Options.SortAttributeNames

	offsets []int // absolute offsets of each member's first byte

	keyPending    bool
	pendingKeyLen int // byte length of the key just written, for value bookkeeping
}

// Builder incrementally assembles a single encoded VPack value. It is not
// safe for concurrent use.
type Builder struct {
	buf   *Buffer
	opts  *Options
	stack []openCompound
	// sealed is true once a complete top-level value exists and no
	// compound is open; further Add/Open calls fail unless
	// Options.KeepTopLevelOpen permits starting a new top-level value.
	sealed bool
}

// NewBuilder returns an empty Builder using DefaultOptions.
func NewBuilder() *Builder {
	return NewBuilderWithOptions(DefaultOptions())
}

// NewBuilderWithOptions returns an empty Builder using opts.
func NewBuilderWithOptions(opts *Options) *Builder {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Builder{buf: NewBuffer(), opts: opts}
}

// Bytes returns the encoded bytes built so far. It is meaningful once the
// top-level value is complete (IsClosed returns true).
func (b *Builder) Bytes() []byte { return b.buf.Bytes() }

// Slice returns a Slice over the completed top-level value.
func (b *Builder) Slice() Slice {
	return NewSliceWithOptions(b.buf.Bytes(), b.opts)
}

// IsClosed reports whether every opened compound has been closed.
func (b *Builder) IsClosed() bool { return len(b.stack) == 0 }

// IsEmpty reports whether nothing has been written yet.
func (b *Builder) IsEmpty() bool { return b.buf.Len() == 0 }

func (b *Builder) top() *openCompound {
	if len(b.stack) == 0 {
		return nil
	}
	return &b.stack[len(b.stack)-1]
}

// checkCanWriteValue validates the state machine transition for "about to
// write a scalar or open a nested compound" and returns whether this write
// lands as an object member's value (true) or as an array element/
// top-level value (false).
func (b *Builder) checkCanWriteValue() (asObjectValue bool, err error) {
	top := b.top()
	if top == nil {
		if b.sealed && !b.opts.KeepTopLevelOpen {
			return false, newError(ErrBuilderNotSealed, "top-level value already complete")
		}
		return false, nil
	}
	if top.isObject {
		if !top.keyPending {
			return false, newError(ErrBuilderKeyMustBeString, "object member needs a key before a value")
		}
		return true, nil
	}
	return false, nil
}

// Add writes a scalar value: as the top-level value, as the next array
// element, or as the value half of a pending object member (after AddKey).
func (b *Builder) Add(v Value) error {
	asObjectValue, err := b.checkCanWriteValue()
	if err != nil {
		return err
	}
	off := b.buf.Len()
	if err := b.writeValue(v); err != nil {
		return err
	}
	b.recordMemberStart(off, asObjectValue)
	return nil
}

// recordMemberStart records off as a member's start offset in the
// enclosing compound (if any) and, for object values, clears the pending
// key flag; if there is no enclosing compound this was the top-level value
// and the Builder becomes sealed.
func (b *Builder) recordMemberStart(off int, asObjectValue bool) {
	top := b.top()
	if top == nil {
		b.sealed = true
		return
	}
	if top.isObject {
		// The member's offset is where its key started, not off (the
		// value's start); AddKey already recorded that.
		top.keyPending = false
		return
	}
	top.offsets = append(top.offsets, off)
}

// AddKey writes an attribute name inside an open object and marks it
// pending a value. It errors with BuilderNeedOpenObject if the top compound
// is not an object, BuilderKeyAlreadyWritten if a key is already pending.
func (b *Builder) AddKey(name string) error {
	top := b.top()
	if top == nil || !top.isObject {
		return newError(ErrBuilderNeedOpenObject, "AddKey requires an open object")
	}
	if top.keyPending {
		return newError(ErrBuilderKeyAlreadyWritten, "previous key has no value yet")
	}
	memberStart := b.buf.Len()
	if err := b.writeKeyString(name); err != nil {
		return err
	}
	top.keyPending = true
	top.offsets = append(top.offsets, memberStart)
	return nil
}

// AddKeyValue is AddKey followed by Add, for the common case where the
// value is a scalar known up front.
func (b *Builder) AddKeyValue(name string, v Value) error {
	if err := b.AddKey(name); err != nil {
		return err
	}
	return b.Add(v)
}

// OpenArray opens a new array compound as the top-level value, the next
// array element, or an object member's value. compact requests the
// variable-length 0x13 layout at Close instead of automatic width
// selection.
func (b *Builder) OpenArray(compact bool) error {
	asObjectValue, err := b.checkCanWriteValue()
	if err != nil {
		return err
	}
	off := b.buf.Len()
	b.buf.Reserve(reservedHeaderSize)
	for i := 0; i < reservedHeaderSize; i++ {
		b.buf.Push(0)
	}
	b.stack = append(b.stack, openCompound{start: off, isObject: false, explicitCompact: compact})
	b.markPendingConsumedByOpen(asObjectValue)
	return nil
}

// OpenObject opens a new object compound. sorted overrides
// Options.SortAttributeNames for this object only; pass nil to inherit.
func (b *Builder) OpenObject(sorted *bool, compact bool) error {
	asObjectValue, err := b.checkCanWriteValue()
	if err != nil {
		return err
	}
	off := b.buf.Len()
	b.buf.Reserve(reservedHeaderSize)
	for i := 0; i < reservedHeaderSize; i++ {
		b.buf.Push(0)
	}
	b.stack = append(b.stack, openCompound{start: off, isObject: true, explicitCompact: compact, sortedOverride: sorted})
	b.markPendingConsumedByOpen(asObjectValue)
	return nil
}

// AddRaw copies s's already-encoded bytes verbatim as the next array
// element, object member value, or top-level value. It is how the
// collection algebra moves values between Slices and Builders without
// re-encoding them.
func (b *Builder) AddRaw(s Slice) error {
	asObjectValue, err := b.checkCanWriteValue()
	if err != nil {
		return err
	}
	sz, err := s.ByteSize()
	if err != nil {
		return err
	}
	off := b.buf.Len()
	b.buf.Append(s.data[:sz])
	b.recordMemberStart(off, asObjectValue)
	return nil
}

// AddKeyRaw is AddKey followed by AddRaw.
func (b *Builder) AddKeyRaw(name string, s Slice) error {
	if err := b.AddKey(name); err != nil {
		return err
	}
	return b.AddRaw(s)
}

// markPendingConsumedByOpen clears the enclosing object's pending-key flag
// when the compound just opened is that key's value; it does not touch the
// new compound's own offsets list (populated by its own AddKey/Add calls).
func (b *Builder) markPendingConsumedByOpen(asObjectValue bool) {
	if !asObjectValue {
		return
	}
	// The compound we just pushed is at the top; its enclosing object is
	// one below it.
	enclosing := &b.stack[len(b.stack)-2]
	enclosing.keyPending = false
}
