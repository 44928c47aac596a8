package velocypack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderScalarTopLevel(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewIntValue(5)))
	require.True(t, b.IsClosed())
	s := b.Slice()
	require.True(t, s.IsSmallInt())
	v, err := s.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 5, v)
}

func TestBuilderSecondTopLevelValueFails(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewIntValue(1)))
	err := b.Add(NewIntValue(2))
	require.Error(t, err)
	require.True(t, IsKind(err, ErrBuilderNotSealed))
}

func TestBuilderSmallIntRange(t *testing.T) {
	cases := []int64{-6, -1, 0, 9}
	for _, v := range cases {
		b := NewBuilder()
		require.NoError(t, b.Add(NewIntValue(v)))
		s := b.Slice()
		require.True(t, s.IsSmallInt(), "value %d should encode as SmallInt", v)
		got, err := s.GetSmallInt()
		require.NoError(t, err)
		require.EqualValues(t, v, got)
	}
}

func TestBuilderIntWidthSelection(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewIntValue(-100000)))
	s := b.Slice()
	require.True(t, s.IsInt())
	v, err := s.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, -100000, v)
}

func TestBuilderArrayRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Add(NewIntValue(1)))
	require.NoError(t, b.Add(NewStringValue("two")))
	require.NoError(t, b.Add(NewBoolValue(true)))
	require.NoError(t, b.Close())

	s := b.Slice()
	require.True(t, s.IsArray())
	n, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	el0, err := s.At(0)
	require.NoError(t, err)
	iv, err := el0.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 1, iv)

	el1, err := s.At(1)
	require.NoError(t, err)
	sv, err := el1.GetString()
	require.NoError(t, err)
	require.Equal(t, "two", sv)

	el2, err := s.At(2)
	require.NoError(t, err)
	bv, err := el2.GetBool()
	require.NoError(t, err)
	require.True(t, bv)
}

func TestBuilderEmptyArrayAndObject(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Close())
	s := b.Slice()
	require.True(t, s.IsArray())
	n, err := s.Length()
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, headArrayEmpty, s.Head())

	b2 := NewBuilder()
	require.NoError(t, b2.OpenObject(nil, false))
	require.NoError(t, b2.Close())
	s2 := b2.Slice()
	require.True(t, s2.IsObject())
	require.Equal(t, headObjectEmpty, s2.Head())
}

func TestBuilderObjectSortedLookup(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenObject(nil, false))
	require.NoError(t, b.AddKeyValue("zebra", NewIntValue(1)))
	require.NoError(t, b.AddKeyValue("apple", NewIntValue(2)))
	require.NoError(t, b.AddKeyValue("mango", NewIntValue(3)))
	require.NoError(t, b.Close())

	s := b.Slice()
	require.True(t, s.IsObject())

	keys := []string{}
	n, err := s.Length()
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		name, err := s.KeyNameAt(i)
		require.NoError(t, err)
		keys = append(keys, name)
	}
	require.Equal(t, []string{"apple", "mango", "zebra"}, keys)

	v, err := s.Get("mango")
	require.NoError(t, err)
	got, err := v.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 3, got)

	missing, err := s.Get("nope")
	require.NoError(t, err)
	require.True(t, missing.IsNone())
}

func TestBuilderObjectUnsortedPreservesOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.SortAttributeNames = false
	b := NewBuilderWithOptions(opts)
	require.NoError(t, b.OpenObject(nil, false))
	require.NoError(t, b.AddKeyValue("zebra", NewIntValue(1)))
	require.NoError(t, b.AddKeyValue("apple", NewIntValue(2)))
	require.NoError(t, b.Close())

	s := b.Slice()
	name0, err := s.KeyNameAt(0)
	require.NoError(t, err)
	require.Equal(t, "zebra", name0)

	v, err := s.Get("apple")
	require.NoError(t, err)
	got, err := v.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 2, got)
}

func TestBuilderNestedCompound(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenObject(nil, false))
	require.NoError(t, b.AddKey("nested"))
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Add(NewIntValue(1)))
	require.NoError(t, b.Add(NewIntValue(2)))
	require.NoError(t, b.Close())
	require.NoError(t, b.AddKeyValue("flag", NewBoolValue(false)))
	require.NoError(t, b.Close())

	s := b.Slice()
	nested, err := s.Get("nested")
	require.NoError(t, err)
	require.True(t, nested.IsArray())
	n, err := nested.Length()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	flag, err := s.Get("flag")
	require.NoError(t, err)
	fv, err := flag.GetBool()
	require.NoError(t, err)
	require.False(t, fv)
}

func TestBuilderDuplicateAttributeName(t *testing.T) {
	opts := DefaultOptions()
	opts.CheckAttributeUniqueness = true
	b := NewBuilderWithOptions(opts)
	require.NoError(t, b.OpenObject(nil, false))
	require.NoError(t, b.AddKeyValue("a", NewIntValue(1)))
	require.NoError(t, b.AddKeyValue("a", NewIntValue(2)))
	err := b.Close()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrDuplicateAttributeName))
}

func TestBuilderKeyMustPrecedeValue(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenObject(nil, false))
	err := b.Add(NewIntValue(1))
	require.Error(t, err)
	require.True(t, IsKind(err, ErrBuilderKeyMustBeString))
}

func TestBuilderCloseWithoutOpenFails(t *testing.T) {
	b := NewBuilder()
	err := b.Close()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrBuilderNeedOpenCompound))
}

func TestBuilderCompactArray(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenArray(true))
	require.NoError(t, b.Add(NewIntValue(1)))
	require.NoError(t, b.Add(NewIntValue(2)))
	require.NoError(t, b.Add(NewIntValue(3)))
	require.NoError(t, b.Close())

	s := b.Slice()
	require.Equal(t, headArrayCompact, s.Head())
	n, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, 3, n)
	el, err := s.At(1)
	require.NoError(t, err)
	v, err := el.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 2, v)
}

func TestBuilderBuildUnindexedArraysOmitsIndexTable(t *testing.T) {
	opts := DefaultOptions()
	opts.BuildUnindexedArrays = true
	b := NewBuilderWithOptions(opts)
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Add(NewIntValue(1)))
	require.NoError(t, b.Add(NewIntValue(2)))
	require.NoError(t, b.Add(NewIntValue(3)))
	require.NoError(t, b.Close())

	s := b.Slice()
	require.True(t, s.Head() >= headArrayNoIdx1 && s.Head() <= headArrayNoIdx1+3)
	n, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, 3, n)
	el, err := s.At(1)
	require.NoError(t, err)
	v, err := el.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 2, v)

	indexed := NewBuilder()
	require.NoError(t, indexed.OpenArray(false))
	require.NoError(t, indexed.Add(NewIntValue(1)))
	require.NoError(t, indexed.Add(NewIntValue(2)))
	require.NoError(t, indexed.Add(NewIntValue(3)))
	require.NoError(t, indexed.Close())

	indexedSlice := indexed.Slice()
	require.True(t, indexedSlice.Head() >= headArrayIdx1 && indexedSlice.Head() <= headArrayIdx1+3)

	noIdxSize, err := s.ByteSize()
	require.NoError(t, err)
	indexedSize, err := indexedSlice.ByteSize()
	require.NoError(t, err)
	require.Less(t, noIdxSize, indexedSize)
}

func TestBuilderBuildUnindexedObjectsUsesCompact(t *testing.T) {
	opts := DefaultOptions()
	opts.BuildUnindexedObjects = true
	b := NewBuilderWithOptions(opts)
	require.NoError(t, b.OpenObject(nil, false))
	require.NoError(t, b.AddKeyValue("b", NewIntValue(1)))
	require.NoError(t, b.AddKeyValue("a", NewIntValue(2)))
	require.NoError(t, b.Close())

	s := b.Slice()
	require.Equal(t, headObjectCompact, s.Head())
	name0, err := s.KeyNameAt(0)
	require.NoError(t, err)
	require.Equal(t, "b", name0, "compact objects preserve insertion order")
}

func TestBuilderDoubleAndStrings(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenArray(false))
	require.NoError(t, b.Add(NewDoubleValue(3.5)))
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	require.NoError(t, b.Add(NewStringValue(string(long))))
	require.NoError(t, b.Close())

	s := b.Slice()
	d, err := s.At(0)
	require.NoError(t, err)
	dv, err := d.GetDouble()
	require.NoError(t, err)
	require.Equal(t, 3.5, dv)

	str, err := s.At(1)
	require.NoError(t, err)
	require.Equal(t, headStringLong, str.Head())
	got, err := str.GetString()
	require.NoError(t, err)
	require.Equal(t, string(long), got)
}
