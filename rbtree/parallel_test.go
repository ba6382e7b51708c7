package rbtree

import (
	"testing"

	"github.com/orizon-lang/persist/internal/fork"
	"github.com/orizon-lang/persist/order"
)

// For any pure f, the parallel and sequential walks must agree on
// values regardless of dispatch.
func TestParMapWithKeyMatchesSequential(t *testing.T) {
	tr := rangeTree(2000)

	seq := tr.MapWithKey(func(k, v int) int { return v*3 + 1 })

	p := fork.NewPool(fork.InitialBudget())
	par := tr.ParMapWithKey(p, fork.InitialBudget(), func(k, v int) int { return v*3 + 1 })

	if !seq.Equal(par, func(a, b int) bool { return a == b }) {
		t.Fatal("ParMapWithKey result differs from sequential MapWithKey")
	}

	if err := par.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestMapWithKeyPureDispatchesOnSize(t *testing.T) {
	small := rangeTree(8)
	if eligibleForParallel(small.root) {
		t.Fatal("an 8-element tree should be below PAR_THRESHOLD")
	}

	large := rangeTree(200000)
	if !eligibleForParallel(large.root) {
		t.Fatal("a 200000-element tree should clear PAR_THRESHOLD")
	}

	got := large.MapWithKeyPure(func(k, v int) int { return v + 1 })
	want := large.MapWithKey(func(k, v int) int { return v + 1 })

	if !got.Equal(want, func(a, b int) bool { return a == b }) {
		t.Fatal("MapWithKeyPure result differs from MapWithKey")
	}
}

func TestParCountMatchesSequential(t *testing.T) {
	tr := rangeTree(3000)
	pred := func(k, v int) bool { return v%7 == 0 }

	want := seqCount(tr.root, pred)

	p := fork.NewPool(fork.InitialBudget())
	got := tr.ParCount(p, fork.InitialBudget(), pred)

	if got != want {
		t.Fatalf("ParCount = %d, want %d", got, want)
	}
}

func TestParMinimumByAndMaximumByTieBreakLeftFirst(t *testing.T) {
	cmp := order.Natural[int]()

	tr := Empty[int, string](cmp)
	for _, k := range []int{10, 20, 30, 40, 50} {
		tr = tr.Insert(k, "v")
	}

	// Every key scores the same: the leftmost (smallest) key must win
	// for minimumBy, and still the leftmost for maximumBy (ties favor
	// the earlier in-order candidate, not the numerically largest).
	by := func(k int, v string) int { return 0 }

	p := fork.NewPool(fork.InitialBudget())

	minK, _, ok := ParMinimumBy(tr, p, fork.InitialBudget(), by, cmp)
	if !ok || minK != 10 {
		t.Fatalf("ParMinimumBy tie-break = %d, want 10", minK)
	}

	maxK, _, ok2 := ParMaximumBy(tr, p, fork.InitialBudget(), by, cmp)
	if !ok2 || maxK != 10 {
		t.Fatalf("ParMaximumBy tie-break = %d, want 10 (left-first)", maxK)
	}
}

func TestMinimumByPureAndMaximumByPure(t *testing.T) {
	cmp := order.Natural[int]()
	tr := rangeTree(10)

	minK, minV, ok := MinimumByPure(tr, func(k, v int) int { return v }, cmp)
	if !ok || minK != 0 || minV != 0 {
		t.Fatalf("MinimumByPure = (%d, %d, %v), want (0, 0, true)", minK, minV, ok)
	}

	maxK, maxV, ok2 := MaximumByPure(tr, func(k, v int) int { return v }, cmp)
	if !ok2 || maxK != 9 || maxV != 9 {
		t.Fatalf("MaximumByPure = (%d, %d, %v), want (9, 9, true)", maxK, maxV, ok2)
	}
}

func TestMinimumByPureOnEmptyTree(t *testing.T) {
	cmp := order.Natural[int]()
	tr := Empty[int, int](cmp)

	_, _, ok := MinimumByPure(tr, func(k, v int) int { return v }, cmp)
	if ok {
		t.Fatal("MinimumByPure on an empty tree should return false")
	}
}
