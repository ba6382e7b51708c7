package rbtree

import (
	"fmt"

	"github.com/orizon-lang/persist/order"
)

// redden flips the root Red when both its children are Black nodes
// with all-Black children. This is the precondition removeHelper's
// descent relies on so it never has to special-case a DoubleBlack at
// the very root of a one- or two-level tree.
func redden[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return n
	}

	if isBlack(n.left) && allChildrenBlack(n.left) && isBlack(n.right) && allChildrenBlack(n.right) {
		c := *n
		c.color = Red

		return &c
	}

	return n
}

func allChildrenBlack[K, V any](n *node[K, V]) bool {
	if n == nil {
		return true
	}

	return isBlack(n.left) && isBlack(n.right)
}

// rotate is the twelve-configuration rebalancer invoked on every
// rebuild along remove's return path. It is the identity unless one
// child carries a DoubleBlack marker, in which case it dispatches to
// the left- or right-side case analysis.
func rotate[K, V any](pc Color, l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	switch {
	case isDoubleBlack(l):
		if r == nil {
			panic(fmt.Sprintf("rbtree: invalid tree: DoubleBlack node at key %v has an empty sibling", k))
		}

		return rotateLeftDB(pc, l, k, v, r)
	case isDoubleBlack(r):
		if l == nil {
			panic(fmt.Sprintf("rbtree: invalid tree: DoubleBlack node at key %v has an empty sibling", k))
		}

		return rotateRightDB(pc, l, k, v, r)
	default:
		return &node[K, V]{color: pc, left: l, key: k, value: v, right: r}
	}
}

// rotateLeftDB handles a DoubleBlack left child l with sibling w (the
// right child), covering six of the twelve configurations: sibling
// red (case 1, falls through after a rotation), sibling black with
// both children black (case 2, pushes the double-black up), sibling
// black with only its near child red (case 3, rotates the sibling and
// falls into case 4), and sibling black with its far child red (case
// 4, fully absorbs the double-black).
func rotateLeftDB[K, V any](pc Color, l *node[K, V], k K, v V, w *node[K, V]) *node[K, V] {
	if isRed(w) {
		newLeft := rotateLeftDB(Red, l, k, v, w.left)

		return &node[K, V]{color: Black, left: newLeft, key: w.key, value: w.value, right: w.right}
	}

	if isBlack(w.left) && isBlack(w.right) {
		newColor := Black
		if pc == Black {
			newColor = DoubleBlack
		}

		return &node[K, V]{
			color: newColor,
			left:  clearDoubleBlack(l), key: k, value: v,
			right: &node[K, V]{color: Red, left: w.left, key: w.key, value: w.value, right: w.right},
		}
	}

	if isBlack(w.right) {
		wLeft := w.left
		w = &node[K, V]{
			color: Black,
			left:  wLeft.left, key: wLeft.key, value: wLeft.value,
			right: &node[K, V]{color: Red, left: wLeft.right, key: w.key, value: w.value, right: w.right},
		}
	}

	wr := w.right

	return &node[K, V]{
		color: pc,
		left:  &node[K, V]{color: Black, left: clearDoubleBlack(l), key: k, value: v, right: w.left},
		key:   w.key, value: w.value,
		right: &node[K, V]{color: Black, left: wr.left, key: wr.key, value: wr.value, right: wr.right},
	}
}

// rotateRightDB mirrors rotateLeftDB for a DoubleBlack right child.
func rotateRightDB[K, V any](pc Color, w *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	if isRed(w) {
		newRight := rotateRightDB(Red, w.right, k, v, r)

		return &node[K, V]{color: Black, left: w.left, key: w.key, value: w.value, right: newRight}
	}

	if isBlack(w.left) && isBlack(w.right) {
		newColor := Black
		if pc == Black {
			newColor = DoubleBlack
		}

		return &node[K, V]{
			color: newColor,
			left:  &node[K, V]{color: Red, left: w.left, key: w.key, value: w.value, right: w.right},
			key:   k, value: v, right: clearDoubleBlack(r),
		}
	}

	if isBlack(w.left) {
		wRight := w.right
		w = &node[K, V]{
			color: Black,
			left:  &node[K, V]{color: Red, left: w.left, key: w.key, value: w.value, right: wRight.left},
			key:   wRight.key, value: wRight.value,
			right: wRight.right,
		}
	}

	wl := w.left

	return &node[K, V]{
		color: pc,
		left:  &node[K, V]{color: Black, left: wl.left, key: wl.key, value: wl.value, right: wl.right},
		key:   w.key, value: w.value,
		right: &node[K, V]{color: Black, left: w.right, key: k, value: v, right: clearDoubleBlack(r)},
	}
}

// minDelete descends the leftmost spine, returning the leftmost pair
// and the subtree with that node spliced out.
func minDelete[K, V any](t *node[K, V]) (K, V, *node[K, V]) {
	switch {
	case t.left == nil && t.right == nil && t.color == Red:
		return t.key, t.value, nil
	case t.left == nil && t.right == nil && t.color == Black:
		return t.key, t.value, &node[K, V]{color: DoubleBlack, dbLeaf: true}
	case t.left == nil && isRed(t.right) && t.color == Black:
		return t.key, t.value, &node[K, V]{color: Black, left: t.right.left, key: t.right.key, value: t.right.value, right: t.right.right}
	case t.left != nil:
		k, v, l2 := minDelete(t.left)

		return k, v, rotate(t.color, l2, t.key, t.value, t.right)
	default:
		// Reached only if invariant 1 (BST) or 3 (uniform black-height)
		// was already violated before this call: a Black node with a
		// nil left child must have a nil or single-Red right child.
		panic(fmt.Sprintf("rbtree: unreachable: minDelete on malformed subtree at key %v", t.key))
	}
}

// removeNode splices out a matched node, handling the three terminal
// shapes directly and falling back to successor-splicing otherwise.
func removeNode[K, V any](t *node[K, V]) *node[K, V] {
	switch {
	case t.left == nil && t.right == nil && t.color == Red:
		return nil
	case t.left == nil && t.right == nil && t.color == Black:
		return &node[K, V]{color: DoubleBlack, dbLeaf: true}
	case t.left == nil && isRed(t.right) && t.color == Black:
		return &node[K, V]{color: Black, left: t.right.left, key: t.right.key, value: t.right.value, right: t.right.right}
	case t.right == nil && isRed(t.left) && t.color == Black:
		return &node[K, V]{color: Black, left: t.left.left, key: t.left.key, value: t.left.value, right: t.left.right}
	default:
		k, v, r2 := minDelete(t.right)

		return rotate(t.color, t.left, k, v, r2)
	}
}

func removeHelper[K, V any](cmp order.CompareFunc[K], t *node[K, V], k K) *node[K, V] {
	if t == nil {
		return nil
	}

	switch cmp(k, t.key) {
	case order.LessThan:
		return rotate(t.color, removeHelper(cmp, t.left, k), t.key, t.value, t.right)
	case order.GreaterThan:
		return rotate(t.color, t.left, t.key, t.value, removeHelper(cmp, t.right, k))
	default:
		return removeNode(t)
	}
}

// Remove deletes the mapping for k if present, returning a new tree
// with all invariants restored. Removing an absent key is a no-op that
// returns the identical tree.
func (t *Tree[K, V]) Remove(k K) *Tree[K, V] {
	if !t.MemberOf(k) {
		return t
	}

	raw := removeHelper(t.cmp, redden(t.root), k)

	if PersistAssertInvariants && raw != nil && raw.color == DoubleBlack {
		panic(fmt.Sprintf("rbtree: invariant violated: DoubleBlack escaped to root after removing %v", k))
	}

	return &Tree[K, V]{root: blacken(raw), cmp: t.cmp}
}
