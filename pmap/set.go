package pmap

import (
	"github.com/orizon-lang/persist/order"
	"github.com/orizon-lang/persist/rbtree"
)

// Set is a persistent ordered set, used by Invert to collect the keys
// that map to a common value. Grounded on the same rbtree.Tree as Map,
// with values erased to struct{}.
type Set[K any] struct {
	t *rbtree.Tree[K, struct{}]
}

// NewSet returns the empty set ordered by cmp.
func NewSet[K any](cmp order.CompareFunc[K]) *Set[K] {
	return &Set[K]{t: rbtree.Empty[K, struct{}](cmp)}
}

// SingletonSet returns a set containing exactly k.
func SingletonSet[K any](cmp order.CompareFunc[K], k K) *Set[K] {
	return NewSet[K](cmp).Insert(k)
}

// Insert adds k, a no-op if already present.
func (s *Set[K]) Insert(k K) *Set[K] {
	return &Set[K]{t: s.t.Insert(k, struct{}{})}
}

// Has reports whether k is a member.
func (s *Set[K]) Has(k K) bool { return s.t.MemberOf(k) }

// Size counts the members.
func (s *Set[K]) Size() int { return s.t.Size() }

// ToSlice returns the members in ascending order.
func (s *Set[K]) ToSlice() []K {
	var out []K
	s.t.ForEach(func(k K, _ struct{}) { out = append(out, k) })

	return out
}

// SetUnion merges a and b, folding the shallower tree into the deeper
// one, mirroring the rule pmap.Union applies to whole maps.
func SetUnion[K any](a, b *Set[K]) *Set[K] {
	shallow, deep := a, b
	if a.t.BlackHeight() > b.t.BlackHeight() {
		shallow, deep = b, a
	}

	out := deep.t

	shallow.t.ForEach(func(k K, _ struct{}) {
		out = out.Insert(k, struct{}{})
	})

	return &Set[K]{t: out}
}
