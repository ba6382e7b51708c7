package pmap

import (
	"testing"

	"github.com/orizon-lang/persist/order"
	"github.com/orizon-lang/persist/rbtree"
)

func strMap(pairs ...rbtree.Pair[int, string]) *Map[int, string] {
	return FromList(order.Natural[int](), pairs)
}

func TestInsertAndIterateInOrder(t *testing.T) {
	m := New[int, string](order.Natural[int]())
	m = m.Insert(3, "c").Insert(1, "a").Insert(2, "b")

	got := m.ToList()
	want := []rbtree.Pair[int, string]{{Key: 1, Value: "a"}, {Key: 2, Value: "b"}, {Key: 3, Value: "c"}}

	if len(got) != len(want) {
		t.Fatalf("ToList() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ToList() = %v, want %v", got, want)
		}
	}
}

func TestGetWithDefaultAndMemberOf(t *testing.T) {
	m := New[int, string](order.Natural[int]()).Insert(1, "a")

	if v := m.GetWithDefault(1, "z"); v != "a" {
		t.Fatalf("GetWithDefault(1) = %q, want a", v)
	}

	if v := m.GetWithDefault(2, "z"); v != "z" {
		t.Fatalf("GetWithDefault(2) = %q, want z (default)", v)
	}

	if !m.MemberOf(1) || m.MemberOf(2) {
		t.Fatal("MemberOf disagrees with contents")
	}
}

func TestFromListLaterPairWins(t *testing.T) {
	m := FromList(order.Natural[int](), []rbtree.Pair[int, string]{
		{Key: 1, Value: "first"},
		{Key: 1, Value: "second"},
	})

	v, _ := m.Get(1)
	if v != "second" {
		t.Fatalf("Get(1) = %q, want second", v)
	}
}

func TestFromListToListRoundTrip(t *testing.T) {
	pairs := []rbtree.Pair[int, string]{{Key: 3, Value: "c"}, {Key: 1, Value: "a"}, {Key: 2, Value: "b"}}
	m := FromList(order.Natural[int](), pairs)

	m2 := FromList(order.Natural[int](), m.ToList())
	if !m.Equal(m2, func(a, b string) bool { return a == b }) {
		t.Fatal("fromList(toList(m)) != m")
	}
}

func TestStringAndEqual(t *testing.T) {
	a := strMap(rbtree.Pair[int, string]{Key: 1, Value: "a"}, rbtree.Pair[int, string]{Key: 2, Value: "b"})
	b := New[int, string](order.Natural[int]()).Insert(2, "b").Insert(1, "a")

	if !a.Equal(b, func(x, y string) bool { return x == y }) {
		t.Fatal("maps built in different insertion orders should be equal")
	}

	if a.String() != "{1: a, 2: b}" {
		t.Fatalf("String() = %q", a.String())
	}
}

func TestCompareLexicographic(t *testing.T) {
	cmpV := order.Natural[int]()

	a := New[int, int](order.Natural[int]()).Insert(1, 1)
	b := New[int, int](order.Natural[int]()).Insert(1, 2)

	if a.Compare(b, cmpV) != order.LessThan {
		t.Fatal("a should compare less than b on differing value at key 1")
	}

	c := New[int, int](order.Natural[int]()).Insert(1, 1).Insert(2, 1)
	if a.Compare(c, cmpV) != order.LessThan {
		t.Fatal("shorter map with identical shared prefix should compare less")
	}
}

func TestQueryAndRemove(t *testing.T) {
	m := New[int, int](order.Natural[int]())
	for i := 0; i < 10; i++ {
		m = m.Insert(i, i)
	}

	got := m.Query(func(k int) order.Ordering { return order.Natural[int]()(5, k) })
	if len(got) != 1 || got[0].Key != 5 {
		t.Fatalf("Query(5) = %v, want single pair at key 5", got)
	}

	m = m.Remove(5)
	if m.MemberOf(5) || m.Size() != 9 {
		t.Fatalf("Remove(5): MemberOf=%v Size=%d, want false,9", m.MemberOf(5), m.Size())
	}
}
