package pmap

import (
	"github.com/orizon-lang/persist/internal/fork"
	"github.com/orizon-lang/persist/order"
	"github.com/orizon-lang/persist/rbtree"
)

// Count returns the number of pairs satisfying pred, always
// sequential. Use CountPure when pred is known pure and eligible for
// fork-join dispatch (5).
func (m *Map[K, V]) Count(pred func(k K, v V) bool) int {
	n := 0
	m.ForEach(func(k K, v V) {
		if pred(k, v) {
			n++
		}
	})

	return n
}

// CountPure is Count's purity-reified entry point, dispatching to
// RBT::parCount once the map clears PAR_THRESHOLD.
func (m *Map[K, V]) CountPure(pred func(k K, v V) bool) int {
	return m.t.CountPure(pred)
}

// MinimumValueBy returns the pair minimizing by(k, v), ties broken
// left-first.
func MinimumValueBy[K, V, S any](m *Map[K, V], by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	return rbtree.MinimumByPure(m.t, by, cmp)
}

// MaximumValueBy returns the pair maximizing by(k, v), ties broken
// left-first.
func MaximumValueBy[K, V, S any](m *Map[K, V], by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	return rbtree.MaximumByPure(m.t, by, cmp)
}

// ParMinimumValueBy is the explicit parallel variant of
// MinimumValueBy, dispatched with an externally supplied pool and
// recursion budget.
func ParMinimumValueBy[K, V, S any](m *Map[K, V], p *fork.Pool, budget int, by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	return rbtree.ParMinimumBy(m.t, p, budget, by, cmp)
}

// ParMaximumValueBy is the explicit parallel variant of
// MaximumValueBy.
func ParMaximumValueBy[K, V, S any](m *Map[K, V], p *fork.Pool, budget int, by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	return rbtree.ParMaximumBy(m.t, p, budget, by, cmp)
}
