package delaymap

import (
	"testing"

	"github.com/orizon-lang/persist/order"
)

func TestMapWithKeyLComposesWithoutForcingSource(t *testing.T) {
	sourceForced := false
	m := New[int, int](order.Natural[int]())
	m = m.InsertL(1, func() int {
		sourceForced = true

		return 10
	})

	mapped := m.MapWithKeyL(func(k, v int) int { return v + 1 })

	if sourceForced {
		t.Fatal("MapWithKeyL should not force the source thunk during the map itself")
	}

	v, ok := mapped.Get(1)
	if !ok || v != 11 || !sourceForced {
		t.Fatalf("Get(1) = (%d, %v), sourceForced=%v, want (11, true, true)", v, ok, sourceForced)
	}
}

func TestMapWithKeyEForcesImmediately(t *testing.T) {
	sourceForced := false
	m := New[int, int](order.Natural[int]())
	m = m.InsertL(1, func() int {
		sourceForced = true

		return 10
	})

	mapped := m.MapWithKeyE(func(k, v int) int { return v * 2 })

	if !sourceForced {
		t.Fatal("MapWithKeyE should force every source thunk immediately")
	}

	v, _ := mapped.Get(1)
	if v != 20 {
		t.Fatalf("Get(1) = %d, want 20", v)
	}
}

func TestUpdateWithLAndEOnExistingKey(t *testing.T) {
	m := New[int, int](order.Natural[int]()).InsertE(1, 10)

	lazy := m.UpdateWithL(1, func(v int) int { return v + 1 })
	v, _ := lazy.Get(1)

	if v != 11 {
		t.Fatalf("UpdateWithL Get(1) = %d, want 11", v)
	}

	eager := m.UpdateWithE(1, func(v int) int { return v + 100 })
	v2, _ := eager.Get(1)

	if v2 != 110 {
		t.Fatalf("UpdateWithE Get(1) = %d, want 110", v2)
	}
}

func TestUpdateWithOnAbsentKeyIsNoOp(t *testing.T) {
	m := New[int, int](order.Natural[int]()).InsertE(1, 10)

	updated := m.UpdateWithL(99, func(v int) int { return v + 1 })
	if updated.MemberOf(99) {
		t.Fatal("UpdateWithL on an absent key should not insert it")
	}

	if updated.Size() != m.Size() {
		t.Fatal("UpdateWithL on an absent key should leave size unchanged")
	}
}
