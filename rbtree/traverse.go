package rbtree

import "github.com/orizon-lang/persist/order"

// ForEach visits every pair in ascending key order.
func (t *Tree[K, V]) ForEach(f func(k K, v V)) {
	forEach(t.root, f)
}

func forEach[K, V any](n *node[K, V], f func(k K, v V)) {
	if n == nil {
		return
	}

	forEach(n.left, f)
	f(n.key, n.value)
	forEach(n.right, f)
}

// FoldLeftWith folds in ascending key order, accumulating into acc.
// A free function, not a method: Go methods cannot introduce their own
// type parameters beyond the receiver's.
func FoldLeftWith[K, V, Acc any](t *Tree[K, V], seed Acc, f func(acc Acc, k K, v V) Acc) Acc {
	acc := seed
	t.ForEach(func(k K, v V) { acc = f(acc, k, v) })

	return acc
}

// FoldRightWith folds in descending key order, accumulating into acc.
func FoldRightWith[K, V, Acc any](t *Tree[K, V], seed Acc, f func(k K, v V, acc Acc) Acc) Acc {
	acc := seed
	foldRight(t.root, &acc, f)

	return acc
}

func foldRight[K, V, Acc any](n *node[K, V], acc *Acc, f func(k K, v V, acc Acc) Acc) {
	if n == nil {
		return
	}

	foldRight(n.right, acc, f)
	*acc = f(n.key, n.value, *acc)
	foldRight(n.left, acc, f)
}

// ReduceLeft folds in ascending key order using the first pair as the
// seed; returns false on an empty tree.
func (t *Tree[K, V]) ReduceLeft(f func(acc V, k K, v V) V) (V, bool) {
	var acc V

	seen := false
	t.ForEach(func(k K, v V) {
		if !seen {
			acc = v
			seen = true

			return
		}

		acc = f(acc, k, v)
	})

	return acc, seen
}

// ReduceRight folds in descending key order using the last pair (by
// key order) as the seed; returns false on an empty tree.
func (t *Tree[K, V]) ReduceRight(f func(k K, v V, acc V) V) (V, bool) {
	var acc V

	seen := false
	foldRight(t.root, &acc, func(k K, v V, _ V) V {
		if !seen {
			acc = v
			seen = true

			return acc
		}

		acc = f(k, v, acc)

		return acc
	})

	return acc, seen
}

// FindLeft returns the first pair (ascending key order) for which p
// holds.
func (t *Tree[K, V]) FindLeft(p func(k K, v V) bool) (K, V, bool) {
	return findLeft(t.root, p)
}

func findLeft[K, V any](n *node[K, V], p func(k K, v V) bool) (K, V, bool) {
	if n == nil {
		var zk K

		var zv V

		return zk, zv, false
	}

	if k, v, ok := findLeft(n.left, p); ok {
		return k, v, true
	}

	if p(n.key, n.value) {
		return n.key, n.value, true
	}

	return findLeft(n.right, p)
}

// FindRight returns the last pair (ascending key order) for which p
// holds.
func (t *Tree[K, V]) FindRight(p func(k K, v V) bool) (K, V, bool) {
	return findRight(t.root, p)
}

func findRight[K, V any](n *node[K, V], p func(k K, v V) bool) (K, V, bool) {
	if n == nil {
		var zk K

		var zv V

		return zk, zv, false
	}

	if k, v, ok := findRight(n.right, p); ok {
		return k, v, true
	}

	if p(n.key, n.value) {
		return n.key, n.value, true
	}

	return findRight(n.left, p)
}

// Exists reports whether any pair satisfies p.
func (t *Tree[K, V]) Exists(p func(k K, v V) bool) bool {
	_, _, ok := t.FindLeft(p)

	return ok
}

// ForAll reports whether every pair satisfies p.
func (t *Tree[K, V]) ForAll(p func(k K, v V) bool) bool {
	return !t.Exists(func(k K, v V) bool { return !p(k, v) })
}

func seqMapWithKey[K, V any](n *node[K, V], f func(k K, v V) V) *node[K, V] {
	if n == nil {
		return nil
	}

	return &node[K, V]{
		color: n.color,
		left:  seqMapWithKey(n.left, f),
		key:   n.key,
		value: f(n.key, n.value),
		right: seqMapWithKey(n.right, f),
	}
}

// MapWithKey returns a tree of the same shape with every value
// replaced by f(k, v). This is the always-sequential form; use
// MapWithKeyPure when f is known pure and eligible for fork-join
// dispatch.
func (t *Tree[K, V]) MapWithKey(f func(k K, v V) V) *Tree[K, V] {
	return &Tree[K, V]{root: seqMapWithKey(t.root, f), cmp: t.cmp}
}

// Query returns every pair where p(k) = EqualTo, in ascending key
// order. p is a three-way probe against an implicit target: EqualTo
// means k matches (and both subtrees may still hold further matches),
// LessThan means every match lies left of k, GreaterThan means every
// match lies right of k.
func (t *Tree[K, V]) Query(p func(k K) order.Ordering) []Pair[K, V] {
	var out []Pair[K, V]

	t.QueryWith(p, func(k K, v V) { out = append(out, Pair[K, V]{k, v}) })

	return out
}

// QueryWith applies f to every pair where p(k) = EqualTo, in ascending
// key order, pruning subtrees p rules out entirely.
func (t *Tree[K, V]) QueryWith(p func(k K) order.Ordering, f func(k K, v V)) {
	queryWith(t.root, p, f)
}

func queryWith[K, V any](n *node[K, V], p func(k K) order.Ordering, f func(k K, v V)) {
	if n == nil {
		return
	}

	switch p(n.key) {
	case order.LessThan:
		queryWith(n.left, p, f)
	case order.GreaterThan:
		queryWith(n.right, p, f)
	default:
		queryWith(n.left, p, f)
		f(n.key, n.value)
		queryWith(n.right, p, f)
	}
}
