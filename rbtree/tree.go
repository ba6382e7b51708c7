// Package rbtree implements the immutable, ordered key-value red/black
// tree that backs pmap and delaymap. Every mutating operation returns a
// new Tree that shares unchanged subtrees with its input; nothing here
// ever mutates a node reachable from a tree a caller still holds.
package rbtree

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/persist/order"
)

// Color is a node's red/black/double-black tag. DoubleBlack only ever
// appears as a transient value inside Remove; PersistAssertInvariants
// can be set in tests to check it never escapes to a returned root.
type Color uint8

const (
	Black Color = iota
	Red
	DoubleBlack
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Black:
		return "Black"
	case DoubleBlack:
		return "DoubleBlack"
	default:
		return "Color(?)"
	}
}

// PersistAssertInvariants enables debug-only invariant checks (root
// never DoubleBlack after Remove, black-height/no-red-red on demand via
// CheckInvariants). Off by default; tests turn it on explicitly.
var PersistAssertInvariants = false

// node is the internal representation. A nil *node is the black empty
// Leaf. A non-nil node with dbLeaf set is the transient
// DoubleBlackLeaf; its color is DoubleBlack and all its other fields
// are unused zero values.
type node[K, V any] struct {
	color  Color
	left   *node[K, V]
	key    K
	value  V
	right  *node[K, V]
	dbLeaf bool
}

func colorOf[K, V any](n *node[K, V]) Color {
	if n == nil {
		return Black
	}

	return n.color
}

func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && !n.dbLeaf && n.color == Red
}

func isBlack[K, V any](n *node[K, V]) bool {
	return colorOf(n) == Black && (n == nil || !n.dbLeaf)
}

func isDoubleBlack[K, V any](n *node[K, V]) bool {
	return n != nil && (n.dbLeaf || n.color == DoubleBlack)
}

// clearDoubleBlack drops one level of "extra black" from a node known
// to carry it: a DoubleBlackLeaf becomes a Leaf, a DoubleBlack node
// becomes Black. Called only on nodes already known isDoubleBlack.
func clearDoubleBlack[K, V any](n *node[K, V]) *node[K, V] {
	if n.dbLeaf {
		return nil
	}

	c := *n
	c.color = Black

	return &c
}

// Tree is a persistent, ordered key-value map with O(log n) insert,
// lookup, and remove, built for structural sharing across versions.
type Tree[K, V any] struct {
	root *node[K, V]
	cmp  order.CompareFunc[K]
}

// Pair is an in-order (key, value) observation, returned by traversal
// and query operations.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Empty returns the empty tree ordered by cmp.
func Empty[K, V any](cmp order.CompareFunc[K]) *Tree[K, V] {
	return &Tree[K, V]{cmp: cmp}
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// Size counts the entries in the tree by a full traversal, O(n). This
// library keeps no separate count so that node reuse under structural
// sharing never needs to thread a size delta back up the call stack.
func (t *Tree[K, V]) Size() int {
	n := 0
	t.ForEach(func(K, V) { n++ })

	return n
}

// Comparator returns the ordering the tree was built with.
func (t *Tree[K, V]) Comparator() order.CompareFunc[K] {
	return t.cmp
}

// Get returns the value stored for k, if any.
func (t *Tree[K, V]) Get(k K) (V, bool) {
	n := t.root
	for n != nil {
		switch t.cmp(k, n.key) {
		case order.LessThan:
			n = n.left
		case order.GreaterThan:
			n = n.right
		default:
			return n.value, true
		}
	}

	var zero V

	return zero, false
}

// MemberOf reports whether k is present.
func (t *Tree[K, V]) MemberOf(k K) bool {
	_, ok := t.Get(k)

	return ok
}

// MinimumKey returns the leftmost pair.
func (t *Tree[K, V]) MinimumKey() (K, V, bool) {
	n := t.root
	if n == nil {
		var zk K

		var zv V

		return zk, zv, false
	}

	for n.left != nil {
		n = n.left
	}

	return n.key, n.value, true
}

// MaximumKey returns the rightmost pair.
func (t *Tree[K, V]) MaximumKey() (K, V, bool) {
	n := t.root
	if n == nil {
		var zk K

		var zv V

		return zk, zv, false
	}

	for n.right != nil {
		n = n.right
	}

	return n.key, n.value, true
}

// BlackHeight returns the number of Black nodes on the path from the
// root to the leftmost leaf.
func (t *Tree[K, V]) BlackHeight() int {
	return blackHeight(t.root)
}

func blackHeight[K, V any](n *node[K, V]) int {
	h := 0
	for n != nil {
		if n.color == Black {
			h++
		}

		n = n.left
	}

	return h
}

// String renders the tree as its in-order pair sequence, matching the
// equality contract of Map: two trees with the same pairs in the same
// order render identically.
func (t *Tree[K, V]) String() string {
	var b strings.Builder

	b.WriteByte('{')

	first := true
	t.ForEach(func(k K, v V) {
		if !first {
			b.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&b, "%v: %v", k, v)
	})
	b.WriteByte('}')

	return b.String()
}

// Equal reports whether t and other yield the same in-order pair
// sequence, using eq to compare values (keys are compared with t's own
// comparator).
func (t *Tree[K, V]) Equal(other *Tree[K, V], eq func(a, b V) bool) bool {
	var left, right []Pair[K, V]

	t.ForEach(func(k K, v V) { left = append(left, Pair[K, V]{k, v}) })
	other.ForEach(func(k K, v V) { right = append(right, Pair[K, V]{k, v}) })

	if len(left) != len(right) {
		return false
	}

	for i := range left {
		if t.cmp(left[i].Key, right[i].Key) != order.EqualTo || !eq(left[i].Value, right[i].Value) {
			return false
		}
	}

	return true
}

// CheckInvariants walks the tree and reports the first violation of
// the BST, no-red-red, or uniform-black-height invariants it finds.
// Intended for tests, not called on any hot path.
func (t *Tree[K, V]) CheckInvariants() error {
	_, _, err := checkInvariants(t.root, t.cmp)

	return err
}

func checkInvariants[K, V any](n *node[K, V], cmp order.CompareFunc[K]) (minMax *[2]K, blackH int, err error) {
	if n == nil {
		return nil, 0, nil
	}

	if n.dbLeaf || n.color == DoubleBlack {
		return nil, 0, fmt.Errorf("rbtree: DoubleBlack marker in externally observable tree at key %v", n.key)
	}

	if n.color == Red && (isRed(n.left) || isRed(n.right)) {
		return nil, 0, fmt.Errorf("rbtree: red node with red child at key %v", n.key)
	}

	lRange, lh, err := checkInvariants(n.left, cmp)
	if err != nil {
		return nil, 0, err
	}

	if lRange != nil && cmp(lRange[1], n.key) != order.LessThan {
		return nil, 0, fmt.Errorf("rbtree: BST violation, left subtree key %v not < %v", lRange[1], n.key)
	}

	rRange, rh, err := checkInvariants(n.right, cmp)
	if err != nil {
		return nil, 0, err
	}

	if rRange != nil && cmp(rRange[0], n.key) != order.GreaterThan {
		return nil, 0, fmt.Errorf("rbtree: BST violation, right subtree key %v not > %v", rRange[0], n.key)
	}

	if lh != rh {
		return nil, 0, fmt.Errorf("rbtree: black-height mismatch at key %v (%d vs %d)", n.key, lh, rh)
	}

	h := lh
	if n.color == Black {
		h++
	}

	lo, hi := n.key, n.key
	if lRange != nil {
		lo = lRange[0]
	}

	if rRange != nil {
		hi = rRange[1]
	}

	return &[2]K{lo, hi}, h, nil
}
