package pmap

import "github.com/orizon-lang/persist/order"

// Unfold builds a map by repeatedly applying f to a state, starting
// from seed, until f reports ok = false. Each call contributes one
// (k, v) pair and the next state.
func Unfold[K, V, S any](cmp order.CompareFunc[K], seed S, f func(state S) (k K, v V, next S, ok bool)) *Map[K, V] {
	out := New[K, V](cmp)

	state := seed
	for {
		k, v, next, ok := f(state)
		if !ok {
			return out
		}

		out = out.Insert(k, v)
		state = next
	}
}

// UnfoldWithIter is Unfold over a stateful producer: next is called
// repeatedly, each call contributing one (k, v) pair, until it
// reports ok = false.
func UnfoldWithIter[K, V any](cmp order.CompareFunc[K], next func() (k K, v V, ok bool)) *Map[K, V] {
	out := New[K, V](cmp)

	for {
		k, v, ok := next()
		if !ok {
			return out
		}

		out = out.Insert(k, v)
	}
}
