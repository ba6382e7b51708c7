package delaymap

import (
	"testing"

	"github.com/orizon-lang/persist/order"
)

func TestInsertEAndGet(t *testing.T) {
	m := New[int, int](order.Natural[int]())
	m = m.InsertE(1, 10).InsertE(2, 20)

	v, ok := m.Get(1)
	if !ok || v != 10 {
		t.Fatalf("Get(1) = (%d, %v), want (10, true)", v, ok)
	}

	if m.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", m.Size())
	}
}

func TestInsertLDoesNotForceUntilGet(t *testing.T) {
	forced := false
	m := New[int, int](order.Natural[int]())
	m = m.InsertL(1, func() int {
		forced = true

		return 5
	})

	if forced {
		t.Fatal("InsertL should not force its function before a read")
	}

	v, ok := m.Get(1)
	if !ok || v != 5 || !forced {
		t.Fatalf("Get(1) = (%d, %v), forced=%v, want (5, true, true)", v, ok, forced)
	}
}

func TestInsertLNeverForcesAnUnreadEntry(t *testing.T) {
	forced := false
	m := New[int, int](order.Natural[int]())
	m = m.InsertL(1, func() int { return 1 })
	m = m.InsertL(2, func() int {
		forced = true

		return 2
	})

	// Reading only key 1 should never force key 2's thunk.
	_, _ = m.Get(1)

	if forced {
		t.Fatal("reading one key forced an unrelated key's thunk")
	}
}

func TestGetWithDefault(t *testing.T) {
	m := New[int, string](order.Natural[int]()).InsertE(1, "a")

	if v := m.GetWithDefault(1, "z"); v != "a" {
		t.Fatalf("GetWithDefault(1) = %q, want a", v)
	}

	if v := m.GetWithDefault(2, "z"); v != "z" {
		t.Fatalf("GetWithDefault(2) = %q, want z", v)
	}
}

func TestToListForcesEveryValue(t *testing.T) {
	m := New[int, int](order.Natural[int]())
	m = m.InsertL(3, func() int { return 30 })
	m = m.InsertL(1, func() int { return 10 })
	m = m.InsertL(2, func() int { return 20 })

	got := m.ToList()
	if len(got) != 3 {
		t.Fatalf("ToList() len = %d, want 3", len(got))
	}

	for i, want := range []int{1, 2, 3} {
		if got[i].Key != want || got[i].Value != want*10 {
			t.Fatalf("ToList()[%d] = (%d, %d), want (%d, %d)", i, got[i].Key, got[i].Value, want, want*10)
		}
	}
}

func TestRemove(t *testing.T) {
	m := New[int, int](order.Natural[int]()).InsertE(1, 1).InsertE(2, 2)
	m = m.Remove(1)

	if m.MemberOf(1) || !m.MemberOf(2) {
		t.Fatal("Remove(1) should drop key 1 and keep key 2")
	}
}
