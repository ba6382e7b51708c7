package rbtree

import "github.com/orizon-lang/persist/order"

// balance restores the no-red-red invariant after inserting a Red
// node: the four classic Red-Red shapes (LL, LR, RL, RR). Any other
// shape is rebuilt unchanged. Deletion's rebalancing runs through the
// separate rotate/rotateLeftDB/rotateRightDB case analysis in
// delete.go, not through balance.
func balance[K, V any](color Color, l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	switch {
	case color == Black && isRed(l) && isRed(l.left):
		return &node[K, V]{
			color: Red,
			left:  &node[K, V]{color: Black, left: l.left.left, key: l.left.key, value: l.left.value, right: l.left.right},
			key:   l.key, value: l.value,
			right: &node[K, V]{color: Black, left: l.right, key: k, value: v, right: r},
		}
	case color == Black && isRed(l) && isRed(l.right):
		return &node[K, V]{
			color: Red,
			left:  &node[K, V]{color: Black, left: l.left, key: l.key, value: l.value, right: l.right.left},
			key:   l.right.key, value: l.right.value,
			right: &node[K, V]{color: Black, left: l.right.right, key: k, value: v, right: r},
		}
	case color == Black && isRed(r) && isRed(r.left):
		return &node[K, V]{
			color: Red,
			left:  &node[K, V]{color: Black, left: l, key: k, value: v, right: r.left.left},
			key:   r.left.key, value: r.left.value,
			right: &node[K, V]{color: Black, left: r.left.right, key: r.key, value: r.value, right: r.right},
		}
	case color == Black && isRed(r) && isRed(r.right):
		return &node[K, V]{
			color: Red,
			left:  &node[K, V]{color: Black, left: l, key: k, value: v, right: r.left},
			key:   r.key, value: r.value,
			right: &node[K, V]{color: Black, left: r.right.left, key: r.right.key, value: r.right.value, right: r.right.right},
		}
	default:
		return &node[K, V]{color: color, left: l, key: k, value: v, right: r}
	}
}

// blacken forces the root Black. Used both after Insert (the root may
// have come back Red with a Red child) and after Remove (any residual
// DoubleBlackLeaf/DoubleBlack root is resolved to the plain Leaf/Black
// form).
func blacken[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}

	if n.dbLeaf {
		return nil
	}

	if n.color == Black {
		return n
	}

	c := *n
	c.color = Black

	return &c
}

func insert[K, V any](cmp order.CompareFunc[K], t *node[K, V], k K, v V) *node[K, V] {
	if t == nil {
		return &node[K, V]{color: Red, key: k, value: v}
	}

	switch cmp(k, t.key) {
	case order.LessThan:
		return balance(t.color, insert(cmp, t.left, k, v), t.key, t.value, t.right)
	case order.GreaterThan:
		return balance(t.color, t.left, t.key, t.value, insert(cmp, t.right, k, v))
	default:
		c := *t
		c.value = v

		return &c
	}
}

func insertWith[K, V any](cmp order.CompareFunc[K], t *node[K, V], f func(k K, vNew, vOld V) V, k K, v V) *node[K, V] {
	if t == nil {
		return &node[K, V]{color: Red, key: k, value: v}
	}

	switch cmp(k, t.key) {
	case order.LessThan:
		return balance(t.color, insertWith(cmp, t.left, f, k, v), t.key, t.value, t.right)
	case order.GreaterThan:
		return balance(t.color, t.left, t.key, t.value, insertWith(cmp, t.right, f, k, v))
	default:
		c := *t
		c.value = f(k, v, t.value)

		return &c
	}
}

// updateWith never changes tree shape, so it needs no rebalancing: a
// miss (f returns false, or the key is absent) returns the identical
// node pointer so structural sharing propagates all the way to the
// root unchanged.
func updateWith[K, V any](cmp order.CompareFunc[K], t *node[K, V], k K, f func(k K, vOld V) (V, bool)) *node[K, V] {
	if t == nil {
		return nil
	}

	switch cmp(k, t.key) {
	case order.LessThan:
		newLeft := updateWith(cmp, t.left, k, f)
		if newLeft == t.left {
			return t
		}

		c := *t
		c.left = newLeft

		return &c
	case order.GreaterThan:
		newRight := updateWith(cmp, t.right, k, f)
		if newRight == t.right {
			return t
		}

		c := *t
		c.right = newRight

		return &c
	default:
		nv, ok := f(k, t.value)
		if !ok {
			return t
		}

		c := *t
		c.value = nv

		return &c
	}
}

// Insert adds or overwrites the mapping for k, returning a new tree.
func (t *Tree[K, V]) Insert(k K, v V) *Tree[K, V] {
	return &Tree[K, V]{root: blacken(insert(t.cmp, t.root, k, v)), cmp: t.cmp}
}

// InsertWith adds k/v, or if k is already present replaces the stored
// value with f(k, v, existing).
func (t *Tree[K, V]) InsertWith(f func(k K, vNew, vOld V) V, k K, v V) *Tree[K, V] {
	return &Tree[K, V]{root: blacken(insertWith(t.cmp, t.root, f, k, v)), cmp: t.cmp}
}

// UpdateWith replaces the value at k with f(k, v) when f returns true;
// leaves the tree unchanged (same shape, same shared nodes) otherwise,
// including when k is absent.
func (t *Tree[K, V]) UpdateWith(k K, f func(k K, vOld V) (V, bool)) *Tree[K, V] {
	newRoot := updateWith(t.cmp, t.root, k, f)
	if newRoot == t.root {
		return t
	}

	return &Tree[K, V]{root: newRoot, cmp: t.cmp}
}
