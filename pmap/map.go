// Package pmap implements the persistent, ordered key-value Map: a
// thin adapter over rbtree.Tree that adds set-theoretic combinators,
// submap predicates, applicative traversal, and unfold.
package pmap

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/persist/order"
	"github.com/orizon-lang/persist/rbtree"
)

// Map is a persistent ordered mapping from K to V. The zero value is
// not ready to use; construct one with New.
type Map[K, V any] struct {
	t *rbtree.Tree[K, V]
}

// New returns the empty map ordered by cmp.
func New[K, V any](cmp order.CompareFunc[K]) *Map[K, V] {
	return &Map[K, V]{t: rbtree.Empty[K, V](cmp)}
}

// FromList builds a map from pairs, later pairs overwriting earlier
// ones on key collision, matching the law fromList(toList(m)) = m.
func FromList[K, V any](cmp order.CompareFunc[K], pairs []rbtree.Pair[K, V]) *Map[K, V] {
	m := New[K, V](cmp)
	for _, p := range pairs {
		m = m.Insert(p.Key, p.Value)
	}

	return m
}

func wrap[K, V any](t *rbtree.Tree[K, V]) *Map[K, V] {
	return &Map[K, V]{t: t}
}

// Tree exposes the underlying rbtree.Tree, for packages (delaymap,
// internal combinators) that need direct tree-level operations.
func (m *Map[K, V]) Tree() *rbtree.Tree[K, V] { return m.t }

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.t.IsEmpty() }

// Size counts the entries.
func (m *Map[K, V]) Size() int { return m.t.Size() }

// Comparator returns the ordering the map was built with.
func (m *Map[K, V]) Comparator() order.CompareFunc[K] { return m.t.Comparator() }

// Get returns the value stored for k, if any.
func (m *Map[K, V]) Get(k K) (V, bool) { return m.t.Get(k) }

// GetWithDefault returns the value for k, or def if absent.
func (m *Map[K, V]) GetWithDefault(k K, def V) V {
	if v, ok := m.t.Get(k); ok {
		return v
	}

	return def
}

// MemberOf reports whether k is present.
func (m *Map[K, V]) MemberOf(k K) bool { return m.t.MemberOf(k) }

// Insert adds or overwrites k ↦ v.
func (m *Map[K, V]) Insert(k K, v V) *Map[K, V] { return wrap(m.t.Insert(k, v)) }

// InsertWith inserts v for a missing k, or replaces the existing
// value with f(k, v, existing) otherwise.
func (m *Map[K, V]) InsertWith(f func(k K, vNew, vOld V) V, k K, v V) *Map[K, V] {
	return wrap(m.t.InsertWith(f, k, v))
}

// Remove deletes k, if present.
func (m *Map[K, V]) Remove(k K) *Map[K, V] { return wrap(m.t.Remove(k)) }

// MinimumKey returns the pair with the smallest key.
func (m *Map[K, V]) MinimumKey() (K, V, bool) { return m.t.MinimumKey() }

// MaximumKey returns the pair with the largest key.
func (m *Map[K, V]) MaximumKey() (K, V, bool) { return m.t.MaximumKey() }

// ForEach visits every pair in ascending key order.
func (m *Map[K, V]) ForEach(f func(k K, v V)) { m.t.ForEach(f) }

// ToList returns every pair in ascending key order.
func (m *Map[K, V]) ToList() []rbtree.Pair[K, V] {
	var out []rbtree.Pair[K, V]
	m.ForEach(func(k K, v V) { out = append(out, rbtree.Pair[K, V]{Key: k, Value: v}) })

	return out
}

// Query returns every pair where p(k) = EqualTo, in ascending key
// order.
func (m *Map[K, V]) Query(p func(k K) order.Ordering) []rbtree.Pair[K, V] {
	return m.t.Query(p)
}

// String renders the map as its in-order pair sequence.
func (m *Map[K, V]) String() string {
	var b strings.Builder

	b.WriteByte('{')

	first := true
	m.ForEach(func(k K, v V) {
		if !first {
			b.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&b, "%v: %v", k, v)
	})
	b.WriteByte('}')

	return b.String()
}

// Equal reports whether m and other hold the same pairs, comparing
// values with eq.
func (m *Map[K, V]) Equal(other *Map[K, V], eq func(a, b V) bool) bool {
	return m.t.Equal(other.t, eq)
}

// Compare orders m and other lexicographically by in-order pair
// sequence, using cmpV to order values.
func (m *Map[K, V]) Compare(other *Map[K, V], cmpV order.CompareFunc[V]) order.Ordering {
	left, right := m.ToList(), other.ToList()
	cmp := m.Comparator()

	for i := 0; i < len(left) && i < len(right); i++ {
		if o := cmp(left[i].Key, right[i].Key); o != order.EqualTo {
			return o
		}

		if o := cmpV(left[i].Value, right[i].Value); o != order.EqualTo {
			return o
		}
	}

	switch {
	case len(left) < len(right):
		return order.LessThan
	case len(left) > len(right):
		return order.GreaterThan
	default:
		return order.EqualTo
	}
}
