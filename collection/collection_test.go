package collection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	vpack "github.com/arangodb/go-velocypack"
	"github.com/arangodb/go-velocypack/parser"
)

func requireKeys(t *testing.T, want []string, got []string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func mustParse(t *testing.T, s string) vpack.Slice {
	t.Helper()
	v, err := parser.Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func TestKeysAndValues(t *testing.T) {
	obj := mustParse(t, `{"a":1,"b":2,"c":3}`)
	keys, err := Keys(obj)
	require.NoError(t, err)
	requireKeys(t, []string{"a", "b", "c"}, keys)

	values, err := Values(obj)
	require.NoError(t, err)
	n, err := values.Length()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestKeysOnNonObjectFails(t *testing.T) {
	_, err := Keys(mustParse(t, `null`))
	require.Error(t, err)
	require.True(t, vpack.IsKind(err, vpack.ErrInvalidValueType))

	_, err = Keys(mustParse(t, `[]`))
	require.Error(t, err)
	require.True(t, vpack.IsKind(err, vpack.ErrInvalidValueType))
}

func TestForEachStopsEarly(t *testing.T) {
	arr := mustParse(t, `[1,2,3,4,5]`)
	var seen []int64
	err := ForEach(arr, func(v vpack.Slice, i int) bool {
		n, _ := v.GetInt()
		seen = append(seen, n)
		return n < 3
	})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, seen)
}

func TestFilter(t *testing.T) {
	arr := mustParse(t, `[1,2,3,4,5,6]`)
	even, err := Filter(arr, func(v vpack.Slice, i int) bool {
		n, _ := v.GetInt()
		return n%2 == 0
	})
	require.NoError(t, err)
	n, err := even.Length()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestMap(t *testing.T) {
	arr := mustParse(t, `[1,2,3]`)
	doubled, err := Map(arr, func(v vpack.Slice, i int) vpack.Value {
		n, _ := v.GetInt()
		return vpack.NewIntValue(n * 2)
	})
	require.NoError(t, err)
	el, err := doubled.At(1)
	require.NoError(t, err)
	v, err := el.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 4, v)
}

func TestFindAnyAllContains(t *testing.T) {
	arr := mustParse(t, `[1,2,3]`)
	gt2 := func(v vpack.Slice, i int) bool { n, _ := v.GetInt(); return n > 2 }

	found, err := Find(arr, gt2)
	require.NoError(t, err)
	v, err := found.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 3, v)

	ok, err := Any(arr, gt2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Contains(arr, func(v vpack.Slice, i int) bool { n, _ := v.GetInt(); return n == 100 })
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = All(arr, func(v vpack.Slice, i int) bool { n, _ := v.GetInt(); return n > 0 })
	require.NoError(t, err)
	require.True(t, ok)

	empty := mustParse(t, `[]`)
	ok, err = All(empty, gt2)
	require.NoError(t, err)
	require.True(t, ok, "All on empty array is true")

	ok, err = Any(empty, gt2)
	require.NoError(t, err)
	require.False(t, ok, "Any on empty array is false")
}

func TestKeepAndRemove(t *testing.T) {
	obj := mustParse(t, `{"a":1,"b":2,"c":3}`)

	kept, err := Keep(obj, []string{"a", "c"})
	require.NoError(t, err)
	keptKeys, err := Keys(kept)
	require.NoError(t, err)
	requireKeys(t, []string{"a", "c"}, keptKeys)

	removed, err := Remove(obj, []string{"a", "c"})
	require.NoError(t, err)
	removedKeys, err := Keys(removed)
	require.NoError(t, err)
	requireKeys(t, []string{"b"}, removedKeys)
}

func TestMergeNonRecursiveRightWins(t *testing.T) {
	left := mustParse(t, `{"a":1,"b":{"x":1}}`)
	right := mustParse(t, `{"b":{"y":2},"c":3}`)

	merged, err := Merge(left, right, false, false)
	require.NoError(t, err)

	b, err := merged.Get("b")
	require.NoError(t, err)
	require.True(t, b.IsObject())
	n, err := b.Length()
	require.NoError(t, err)
	require.Equal(t, 1, n, "non-recursive merge lets right fully replace the object")

	c, err := merged.Get("c")
	require.NoError(t, err)
	cv, err := c.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 3, cv)
}

func TestMergeRecursive(t *testing.T) {
	left := mustParse(t, `{"a":1,"b":{"x":1,"y":1}}`)
	right := mustParse(t, `{"b":{"y":2,"z":3}}`)

	merged, err := Merge(left, right, true, false)
	require.NoError(t, err)

	b, err := merged.Get("b")
	require.NoError(t, err)
	x, err := b.Get("x")
	require.NoError(t, err)
	xv, err := x.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 1, xv)

	y, err := b.Get("y")
	require.NoError(t, err)
	yv, err := y.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 2, yv)

	z, err := b.Get("z")
	require.NoError(t, err)
	zv, err := z.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 3, zv)
}

func TestMergeNullMeansRemove(t *testing.T) {
	left := mustParse(t, `{"a":1,"b":2}`)
	right := mustParse(t, `{"a":null,"c":3}`)

	merged, err := Merge(left, right, false, true)
	require.NoError(t, err)

	has, err := merged.HasKey("a")
	require.NoError(t, err)
	require.False(t, has)

	c, err := merged.Get("c")
	require.NoError(t, err)
	cv, err := c.GetInt()
	require.NoError(t, err)
	require.EqualValues(t, 3, cv)
}

func TestMergeOnNonObjectFails(t *testing.T) {
	_, err := Merge(mustParse(t, `[]`), mustParse(t, `{}`), false, false)
	require.Error(t, err)
	require.True(t, vpack.IsKind(err, vpack.ErrInvalidValueType))
}
