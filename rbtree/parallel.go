package rbtree

import (
	"github.com/orizon-lang/persist/internal/fork"
	"github.com/orizon-lang/persist/order"
)

// MapWithKeyPure is the purity-reified entry point for mapWithKey:
// callers assert f is pure by calling this instead of MapWithKey, and
// parallel dispatch engages once 2^blackHeight(t) clears
// PAR_THRESHOLD.
func (t *Tree[K, V]) MapWithKeyPure(f func(k K, v V) V) *Tree[K, V] {
	if !eligibleForParallel(t.root) {
		return t.MapWithKey(f)
	}

	p := fork.NewPool(fork.InitialBudget())

	return &Tree[K, V]{root: parMapWithKey(p, fork.InitialBudget(), t.root, f), cmp: t.cmp}
}

// ParMapWithKey is the explicit parallel variant, dispatched with an
// externally supplied pool and recursion budget.
func (t *Tree[K, V]) ParMapWithKey(p *fork.Pool, budget int, f func(k K, v V) V) *Tree[K, V] {
	return &Tree[K, V]{root: parMapWithKey(p, budget, t.root, f), cmp: t.cmp}
}

func parMapWithKey[K, V any](p *fork.Pool, budget int, n *node[K, V], f func(k K, v V) V) *node[K, V] {
	if n == nil {
		return nil
	}

	if budget <= 1 {
		return seqMapWithKey(n, f)
	}

	childBudget := fork.Split(budget)

	newLeft, newRight := fork.Fork2(p, budget,
		func() *node[K, V] { return parMapWithKey(p, childBudget, n.left, f) },
		func() *node[K, V] { return parMapWithKey(p, childBudget, n.right, f) },
	)

	return &node[K, V]{color: n.color, left: newLeft, key: n.key, value: f(n.key, n.value), right: newRight}
}

func seqCount[K, V any](n *node[K, V], pred func(k K, v V) bool) int {
	if n == nil {
		return 0
	}

	c := seqCount(n.left, pred) + seqCount(n.right, pred)
	if pred(n.key, n.value) {
		c++
	}

	return c
}

// CountPure counts pairs satisfying pred, dispatching to parCount when
// the tree is large enough and pred is asserted pure by the caller.
func (t *Tree[K, V]) CountPure(pred func(k K, v V) bool) int {
	if !eligibleForParallel(t.root) {
		return seqCount(t.root, pred)
	}

	p := fork.NewPool(fork.InitialBudget())

	return parCount(p, fork.InitialBudget(), t.root, pred)
}

// ParCount is the explicit parallel variant of count.
func (t *Tree[K, V]) ParCount(p *fork.Pool, budget int, pred func(k K, v V) bool) int {
	return parCount(p, budget, t.root, pred)
}

func parCount[K, V any](p *fork.Pool, budget int, n *node[K, V], pred func(k K, v V) bool) int {
	if n == nil {
		return 0
	}

	if budget <= 1 {
		return seqCount(n, pred)
	}

	childBudget := fork.Split(budget)

	lc, rc := fork.Fork2(p, budget,
		func() int { return parCount(p, childBudget, n.left, pred) },
		func() int { return parCount(p, childBudget, n.right, pred) },
	)

	here := 0
	if pred(n.key, n.value) {
		here = 1
	}

	return lc + here + rc
}

// byResult carries a candidate pair and its derived score through a
// min/max fold; has is false for "no candidate yet" (an empty
// subtree), so combine can treat it as an identity element.
type byResult[K, V, S any] struct {
	key   K
	value V
	score S
	has   bool
}

// combineBy keeps whichever of a, b scores lower (less) under cmp,
// breaking ties in favor of a. Callers always pass a as the earlier
// (more left, or more central) candidate, preserving a left-first
// tie-break. cmp selects min- vs max-by: pass it as-is for minBy, or a
// flipped comparator for maxBy.
func combineBy[K, V, S any](cmp order.CompareFunc[S], a, b byResult[K, V, S]) byResult[K, V, S] {
	if !a.has {
		return b
	}

	if !b.has {
		return a
	}

	if cmp(b.score, a.score) == order.LessThan {
		return b
	}

	return a
}

func seqMinimumBy[K, V, S any](n *node[K, V], by func(k K, v V) S, cmp order.CompareFunc[S]) byResult[K, V, S] {
	if n == nil {
		return byResult[K, V, S]{}
	}

	left := seqMinimumBy(n.left, by, cmp)
	here := byResult[K, V, S]{key: n.key, value: n.value, score: by(n.key, n.value), has: true}
	right := seqMinimumBy(n.right, by, cmp)

	return combineBy(cmp, combineBy(cmp, left, here), right)
}

func flip[S any](cmp order.CompareFunc[S]) order.CompareFunc[S] {
	return func(a, b S) order.Ordering { return cmp(b, a) }
}

// MinimumByPure returns the pair with the smallest by(k, v) (ties
// broken left-first), dispatching to the parallel walk once the tree
// is large enough to clear PAR_THRESHOLD. A free function, not a
// method: Go methods cannot introduce a type parameter (S) beyond the
// receiver's.
func MinimumByPure[K, V, S any](t *Tree[K, V], by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	var r byResult[K, V, S]
	if !eligibleForParallel(t.root) {
		r = seqMinimumBy(t.root, by, cmp)
	} else {
		p := fork.NewPool(fork.InitialBudget())
		r = parMinimumBy(p, fork.InitialBudget(), t.root, by, cmp)
	}

	return r.key, r.value, r.has
}

// MaximumByPure returns the pair with the largest by(k, v) (ties broken
// left-first), dispatching to the parallel walk once eligible.
func MaximumByPure[K, V, S any](t *Tree[K, V], by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	var r byResult[K, V, S]

	flipped := flip(cmp)
	if !eligibleForParallel(t.root) {
		r = seqMinimumBy(t.root, by, flipped)
	} else {
		p := fork.NewPool(fork.InitialBudget())
		r = parMinimumBy(p, fork.InitialBudget(), t.root, by, flipped)
	}

	return r.key, r.value, r.has
}

func parMinimumBy[K, V, S any](p *fork.Pool, budget int, n *node[K, V], by func(k K, v V) S, cmp order.CompareFunc[S]) byResult[K, V, S] {
	if n == nil {
		return byResult[K, V, S]{}
	}

	if budget <= 1 {
		return seqMinimumBy(n, by, cmp)
	}

	childBudget := fork.Split(budget)

	left, right := fork.Fork2(p, budget,
		func() byResult[K, V, S] { return parMinimumBy(p, childBudget, n.left, by, cmp) },
		func() byResult[K, V, S] { return parMinimumBy(p, childBudget, n.right, by, cmp) },
	)

	here := byResult[K, V, S]{key: n.key, value: n.value, score: by(n.key, n.value), has: true}

	return combineBy(cmp, combineBy(cmp, left, here), right)
}

// ParMinimumBy is the explicit parallel variant of minimumValueBy.
func ParMinimumBy[K, V, S any](t *Tree[K, V], p *fork.Pool, budget int, by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	r := parMinimumBy(p, budget, t.root, by, cmp)

	return r.key, r.value, r.has
}

// ParMaximumBy is the explicit parallel variant of maximumValueBy.
func ParMaximumBy[K, V, S any](t *Tree[K, V], p *fork.Pool, budget int, by func(k K, v V) S, cmp order.CompareFunc[S]) (K, V, bool) {
	r := parMinimumBy(p, budget, t.root, by, flip(cmp))

	return r.key, r.value, r.has
}

// eligibleForParallel reports whether 2^blackHeight(t) clears
// PAR_THRESHOLD.
func eligibleForParallel[K, V any](n *node[K, V]) bool {
	h := blackHeight(n)
	if h >= 31 { // avoid overflow; no real tree needs this many black levels.
		return true
	}

	return 1<<uint(h) >= fork.Threshold
}
