package pmap

import (
	"github.com/orizon-lang/persist/order"
	"github.com/orizon-lang/persist/rbtree"
)

// Union is the left-biased union: on key collision, m1's value wins.
func Union[K, V any](m1, m2 *Map[K, V]) *Map[K, V] {
	return UnionWith(func(l, _ V) V { return l }, m1, m2)
}

// UnionWith merges m1 and m2, combining collisions with f(v1, v2).
// v1 is always the value from m1 and v2 the value from m2, regardless
// of which tree is folded into which for efficiency.
//
// When the two trees have unequal black-heights, the shallower tree
// is folded into the deeper one to cut work. Folding m2 into m1 would
// call f with the arguments in the "wrong" order relative to the
// contract above, so that fold swaps them back.
func UnionWith[K, V any](f func(v1, v2 V) V, m1, m2 *Map[K, V]) *Map[K, V] {
	return UnionWithKey(func(_ K, v1, v2 V) V { return f(v1, v2) }, m1, m2)
}

// UnionWithKey is UnionWith with the colliding key also passed to f.
func UnionWithKey[K, V any](f func(k K, v1, v2 V) V, m1, m2 *Map[K, V]) *Map[K, V] {
	if m1.t.BlackHeight() <= m2.t.BlackHeight() {
		out := m2.t
		m1.ForEach(func(k K, v1 V) {
			out = out.InsertWith(func(_ K, newValue, oldValue V) V { return f(k, newValue, oldValue) }, k, v1)
		})

		return wrap(out)
	}

	out := m1.t
	m2.ForEach(func(k K, v2 V) {
		out = out.InsertWith(func(_ K, newValue, oldValue V) V { return f(k, oldValue, newValue) }, k, v2)
	})

	return wrap(out)
}

// Intersection keeps the pairs whose key is in both maps, with m2's
// value.
func Intersection[K, V any](m1, m2 *Map[K, V]) *Map[K, V] {
	return IntersectionWith(func(_, v2 V) V { return v2 }, m1, m2)
}

// IntersectionWith keeps pairs whose key is in both maps, combining
// with f(v1, v2) where v1 comes from m1 and v2 from m2.
func IntersectionWith[K, V any](f func(v1, v2 V) V, m1, m2 *Map[K, V]) *Map[K, V] {
	return IntersectionWithKey(func(_ K, v1, v2 V) V { return f(v1, v2) }, m1, m2)
}

// IntersectionWithKey folds through adjustWithKey-equivalent logic so
// f(k, v1, v2) is applied exactly where both m1 and m2 contain k.
func IntersectionWithKey[K, V any](f func(k K, v1, v2 V) V, m1, m2 *Map[K, V]) *Map[K, V] {
	out := rbtree.Empty[K, V](m1.Comparator())

	m1.ForEach(func(k K, v1 V) {
		if v2, ok := m2.t.Get(k); ok {
			out = out.Insert(k, f(k, v1, v2))
		}
	})

	return wrap(out)
}

// Difference keeps the pairs of m1 whose key is absent from m2.
func Difference[K, V any](m1, m2 *Map[K, V]) *Map[K, V] {
	out := m1.t
	m2.ForEach(func(k K, _ V) {
		out = out.Remove(k)
	})

	return wrap(out)
}

// DifferenceWith keeps every pair of m1; where m2 also holds the key,
// f(v1, v2) decides the outcome: Some(v') keeps the pair with value
// v', None drops it.
func DifferenceWith[K, V any](f func(v1, v2 V) (V, bool), m1, m2 *Map[K, V]) *Map[K, V] {
	return DifferenceWithKey(func(_ K, v1, v2 V) (V, bool) { return f(v1, v2) }, m1, m2)
}

// DifferenceWithKey is DifferenceWith with the shared key also passed
// to f.
func DifferenceWithKey[K, V any](f func(k K, v1, v2 V) (V, bool), m1, m2 *Map[K, V]) *Map[K, V] {
	out := m1.t

	m1.ForEach(func(k K, v1 V) {
		v2, ok := m2.t.Get(k)
		if !ok {
			return
		}

		if v, keep := f(k, v1, v2); keep {
			out = out.Insert(k, v)
		} else {
			out = out.Remove(k)
		}
	})

	return wrap(out)
}

// Invert builds Map[V, Set[K]] by folding every (k, v) pair of m with
// insertWith(set-union).
func Invert[K, V any](m *Map[K, V], cmpV order.CompareFunc[V], cmpK order.CompareFunc[K]) *Map[V, *Set[K]] {
	out := New[V, *Set[K]](cmpV)

	m.ForEach(func(k K, v V) {
		singleton := SingletonSet(cmpK, k)
		out = out.InsertWith(func(_ V, newSet, oldSet *Set[K]) *Set[K] {
			return SetUnion(oldSet, newSet)
		}, v, singleton)
	})

	return out
}

// IsSubmapOf reports whether every pair of m1 appears in m2.
func IsSubmapOf[K, V any](m1, m2 *Map[K, V], eq func(a, b V) bool) bool {
	return m1.t.ForAll(func(k K, v1 V) bool {
		v2, ok := m2.t.Get(k)

		return ok && eq(v1, v2)
	})
}

// IsProperSubmapOf reports whether m1 is a submap of m2 and strictly
// smaller.
func IsProperSubmapOf[K, V any](m1, m2 *Map[K, V], eq func(a, b V) bool) bool {
	return m1.Size() < m2.Size() && IsSubmapOf(m1, m2, eq)
}
