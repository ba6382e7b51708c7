package delaymap

import (
	"testing"

	"github.com/orizon-lang/persist/order"
)

func TestToMapForcesEveryValue(t *testing.T) {
	m := New[int, int](order.Natural[int]())
	for i := 0; i < 10; i++ {
		i := i
		m = m.InsertL(i, func() int { return i * i })
	}

	out := m.ToMap()
	if out.Size() != 10 {
		t.Fatalf("ToMap().Size() = %d, want 10", out.Size())
	}

	for i := 0; i < 10; i++ {
		v, ok := out.Get(i)
		if !ok || v != i*i {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", i, v, ok, i*i)
		}
	}
}

func TestToMapOnLargeMapDispatchesInParallel(t *testing.T) {
	const n = 200000

	m := New[int, int](order.Natural[int]())
	for i := 0; i < n; i++ {
		i := i
		m = m.InsertL(i, func() int { return i })
	}

	if !eligibleForParallel(m.t.BlackHeight()) {
		t.Fatal("a 200000-element map should clear PAR_THRESHOLD")
	}

	out := m.ToMap()
	if out.Size() != n {
		t.Fatalf("ToMap().Size() = %d, want %d", out.Size(), n)
	}

	for _, k := range []int{0, 1, n / 2, n - 1} {
		v, ok := out.Get(k)
		if !ok || v != k {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", k, v, ok, k)
		}
	}
}

func TestToMapOnEmptyMap(t *testing.T) {
	m := New[int, int](order.Natural[int]())

	out := m.ToMap()
	if !out.IsEmpty() {
		t.Fatal("ToMap on an empty DelayMap should be empty")
	}
}
