package delaymap

import (
	"github.com/orizon-lang/persist/order"
	"github.com/orizon-lang/persist/rbtree"
)

// DelayMap is a persistent ordered map whose values are Thunks: an
// entry's value computation runs at most once, lazily by default, and
// only if some read actually forces it. The zero value is not ready
// to use; construct one with New.
type DelayMap[K, V any] struct {
	t *rbtree.Tree[K, *Thunk[V]]
}

// New returns the empty DelayMap ordered by cmp.
func New[K, V any](cmp order.CompareFunc[K]) *DelayMap[K, V] {
	return &DelayMap[K, V]{t: rbtree.Empty[K, *Thunk[V]](cmp)}
}

func wrap[K, V any](t *rbtree.Tree[K, *Thunk[V]]) *DelayMap[K, V] {
	return &DelayMap[K, V]{t: t}
}

// IsEmpty reports whether the map has no entries.
func (m *DelayMap[K, V]) IsEmpty() bool { return m.t.IsEmpty() }

// Size counts the entries; does not force any value.
func (m *DelayMap[K, V]) Size() int { return m.t.Size() }

// MemberOf reports whether k is present; does not force its value.
func (m *DelayMap[K, V]) MemberOf(k K) bool { return m.t.MemberOf(k) }

// Comparator returns the ordering the map was built with.
func (m *DelayMap[K, V]) Comparator() order.CompareFunc[K] { return m.t.Comparator() }

// Remove deletes k, if present.
func (m *DelayMap[K, V]) Remove(k K) *DelayMap[K, V] { return wrap(m.t.Remove(k)) }

// Get forces and returns the value at k, if present. Only k's own
// Thunk is forced.
func (m *DelayMap[K, V]) Get(k K) (V, bool) {
	th, ok := m.t.Get(k)
	if !ok {
		var zero V

		return zero, false
	}

	return th.Force(), true
}

// GetWithDefault forces and returns the value at k, or def if absent.
func (m *DelayMap[K, V]) GetWithDefault(k K, def V) V {
	if v, ok := m.Get(k); ok {
		return v
	}

	return def
}

// ToList forces every value and returns the pairs in ascending key
// order.
func (m *DelayMap[K, V]) ToList() []rbtree.Pair[K, V] {
	var out []rbtree.Pair[K, V]
	m.t.ForEach(func(k K, th *Thunk[V]) {
		out = append(out, rbtree.Pair[K, V]{Key: k, Value: th.Force()})
	})

	return out
}
