// Package collection implements the key/value enumeration and
// transformation algebra over VPack arrays and objects: keys, values,
// forEach, filter, map, find, contains, any, all, keep, remove, and merge.
// Every function is a stateless free function over Slices; the ones that
// produce a new value return it sealed in a fresh Builder's Slice.
package collection

import (
	vpack "github.com/arangodb/go-velocypack"
)

// Predicate is the callback shape for Find, Filter, Contains, Any, and All.
type Predicate func(v vpack.Slice, index int) bool

// Transform is the callback shape for Map.
type Transform func(v vpack.Slice, index int) vpack.Value

// Visitor is the callback shape for ForEach. Returning false stops
// iteration early.
type Visitor func(v vpack.Slice, index int) bool

func errNotArray() error  { return vpack.NewError(vpack.ErrInvalidValueType, "expected Array") }
func errNotObject() error { return vpack.NewError(vpack.ErrInvalidValueType, "expected Object") }

// Keys returns the object's attribute names in stored order (the sorted
// order, for a sorted layout).
func Keys(obj vpack.Slice) ([]string, error) {
	if !obj.IsObject() {
		return nil, errNotObject()
	}
	n, err := obj.Length()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		name, err := obj.KeyNameAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = name
	}
	return out, nil
}

// Values returns the object's member values, in stored order, as a fresh
// array Slice.
func Values(obj vpack.Slice) (vpack.Slice, error) {
	if !obj.IsObject() {
		return vpack.Slice{}, errNotObject()
	}
	n, err := obj.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	b := vpack.NewBuilder()
	if err := b.OpenArray(false); err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < n; i++ {
		v, err := obj.ValueAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		if err := b.AddRaw(v); err != nil {
			return vpack.Slice{}, err
		}
	}
	if err := b.Close(); err != nil {
		return vpack.Slice{}, err
	}
	return b.Slice(), nil
}

// ForEach iterates arr's elements in order, calling fn until it returns
// false or the array is exhausted.
func ForEach(arr vpack.Slice, fn Visitor) error {
	if !arr.IsArray() {
		return errNotArray()
	}
	n, err := arr.Length()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		el, err := arr.At(i)
		if err != nil {
			return err
		}
		if !fn(el, i) {
			return nil
		}
	}
	return nil
}

// Filter returns a new array containing arr's elements for which fn
// returns true, preserving order.
func Filter(arr vpack.Slice, fn Predicate) (vpack.Slice, error) {
	if !arr.IsArray() {
		return vpack.Slice{}, errNotArray()
	}
	n, err := arr.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	b := vpack.NewBuilder()
	if err := b.OpenArray(false); err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < n; i++ {
		el, err := arr.At(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		if fn(el, i) {
			if err := b.AddRaw(el); err != nil {
				return vpack.Slice{}, err
			}
		}
	}
	if err := b.Close(); err != nil {
		return vpack.Slice{}, err
	}
	return b.Slice(), nil
}

// Map returns a new array holding fn's result for each element of arr, in
// order.
func Map(arr vpack.Slice, fn Transform) (vpack.Slice, error) {
	if !arr.IsArray() {
		return vpack.Slice{}, errNotArray()
	}
	n, err := arr.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	b := vpack.NewBuilder()
	if err := b.OpenArray(false); err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < n; i++ {
		el, err := arr.At(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		if err := b.Add(fn(el, i)); err != nil {
			return vpack.Slice{}, err
		}
	}
	if err := b.Close(); err != nil {
		return vpack.Slice{}, err
	}
	return b.Slice(), nil
}

// Find returns the first element for which fn returns true, or the None
// Slice if none does.
func Find(arr vpack.Slice, fn Predicate) (vpack.Slice, error) {
	if !arr.IsArray() {
		return vpack.Slice{}, errNotArray()
	}
	n, err := arr.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < n; i++ {
		el, err := arr.At(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		if fn(el, i) {
			return el, nil
		}
	}
	return vpack.NoneSlice(), nil
}

// Contains reports whether any element of arr satisfies fn.
func Contains(arr vpack.Slice, fn Predicate) (bool, error) { return Any(arr, fn) }

// Any reports whether any element of arr satisfies fn; false on an empty
// array.
func Any(arr vpack.Slice, fn Predicate) (bool, error) {
	el, err := Find(arr, fn)
	if err != nil {
		return false, err
	}
	return !el.IsNone(), nil
}

// All reports whether every element of arr satisfies fn; true on an empty
// array.
func All(arr vpack.Slice, fn Predicate) (bool, error) {
	if !arr.IsArray() {
		return false, errNotArray()
	}
	n, err := arr.Length()
	if err != nil {
		return false, err
	}
	for i := 0; i < n; i++ {
		el, err := arr.At(i)
		if err != nil {
			return false, err
		}
		if !fn(el, i) {
			return false, nil
		}
	}
	return true, nil
}

// Keep returns a new object containing only obj's members whose key is in
// keys, preserving obj's stored order.
func Keep(obj vpack.Slice, keys []string) (vpack.Slice, error) {
	return keepOrRemove(obj, keys, true)
}

// Remove returns a new object containing obj's members whose key is not in
// keys, preserving obj's stored order. It is the complement of Keep.
func Remove(obj vpack.Slice, keys []string) (vpack.Slice, error) {
	return keepOrRemove(obj, keys, false)
}

func keepOrRemove(obj vpack.Slice, keys []string, keep bool) (vpack.Slice, error) {
	if !obj.IsObject() {
		return vpack.Slice{}, errNotObject()
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	n, err := obj.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	b := vpack.NewBuilder()
	// An unsorted layout stores members in insertion order, which here is
	// obj's stored order.
	unsorted := false
	if err := b.OpenObject(&unsorted, false); err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < n; i++ {
		name, err := obj.KeyNameAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		if set[name] != keep {
			continue
		}
		val, err := obj.ValueAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		if err := b.AddKeyRaw(name, val); err != nil {
			return vpack.Slice{}, err
		}
	}
	if err := b.Close(); err != nil {
		return vpack.Slice{}, err
	}
	return b.Slice(), nil
}

// Merge combines left and right into a new object: keys present in right
// override left. When recursive is true, a key present as an object on
// both sides is merged recursively instead of right winning outright. When
// nullMeansRemove is true, a null value on the right side drops the key
// from the result instead of setting it to null. Members are added in
// left's order followed by the keys right introduces, but the result is
// built with default Options as a sorted-layout object, so its stored order
// is by key.
func Merge(left, right vpack.Slice, recursive, nullMeansRemove bool) (vpack.Slice, error) {
	if !left.IsObject() || !right.IsObject() {
		return vpack.Slice{}, errNotObject()
	}

	order := make([]string, 0)
	values := make(map[string]vpack.Slice)
	present := make(map[string]bool)

	ln, err := left.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < ln; i++ {
		name, err := left.KeyNameAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		val, err := left.ValueAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		order = append(order, name)
		values[name] = val
		present[name] = true
	}

	rn, err := right.Length()
	if err != nil {
		return vpack.Slice{}, err
	}
	for i := 0; i < rn; i++ {
		name, err := right.KeyNameAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}
		rval, err := right.ValueAt(i)
		if err != nil {
			return vpack.Slice{}, err
		}

		if nullMeansRemove && rval.IsNull() {
			if present[name] {
				present[name] = false
				delete(values, name)
			}
			continue
		}

		if recursive && present[name] && values[name].IsObject() && rval.IsObject() {
			merged, err := Merge(values[name], rval, true, nullMeansRemove)
			if err != nil {
				return vpack.Slice{}, err
			}
			values[name] = merged
			continue
		}

		if !present[name] {
			order = append(order, name)
			present[name] = true
		}
		values[name] = rval
	}

	b := vpack.NewBuilder()
	if err := b.OpenObject(nil, false); err != nil {
		return vpack.Slice{}, err
	}
	for _, name := range order {
		if !present[name] {
			continue
		}
		if err := b.AddKeyRaw(name, values[name]); err != nil {
			return vpack.Slice{}, err
		}
	}
	if err := b.Close(); err != nil {
		return vpack.Slice{}, err
	}
	return b.Slice(), nil
}
