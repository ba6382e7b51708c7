package delaymap

// InsertL is the lazy half of insert: f runs at most once, and only if
// and when the stored entry is itself forced.
func (m *DelayMap[K, V]) InsertL(k K, f func() V) *DelayMap[K, V] {
	return wrap(m.t.Insert(k, NewThunk(f)))
}

// InsertE is the eager half of insert: v is already evaluated, stored
// as a pre-forced Thunk.
func (m *DelayMap[K, V]) InsertE(k K, v V) *DelayMap[K, V] {
	return wrap(m.t.Insert(k, Done(v)))
}

// MapWithKeyL is the lazy half of mapWithKey: f is asserted pure, so
// every new Thunk composes with its old one without forcing it. The
// old value is forced only transitively, if and when the new entry is
// forced.
func (m *DelayMap[K, V]) MapWithKeyL(f func(k K, v V) V) *DelayMap[K, V] {
	return wrap(m.t.MapWithKey(func(k K, th *Thunk[V]) *Thunk[V] {
		return NewThunk(func() V { return f(k, th.Force()) })
	}))
}

// MapWithKeyE is the eager half of mapWithKey: f may have effects, so
// every value is forced immediately and f runs right away.
func (m *DelayMap[K, V]) MapWithKeyE(f func(k K, v V) V) *DelayMap[K, V] {
	return wrap(m.t.MapWithKey(func(k K, th *Thunk[V]) *Thunk[V] {
		return Done(f(k, th.Force()))
	}))
}

// UpdateWithL is the lazy half of updateWith (rbtree's adjust-if-
// present): f is asserted pure, composed without forcing the existing
// value; a miss leaves the map unchanged, same as rbtree.UpdateWith.
func (m *DelayMap[K, V]) UpdateWithL(k K, f func(v V) V) *DelayMap[K, V] {
	return wrap(m.t.UpdateWith(k, func(_ K, oldTh *Thunk[V]) (*Thunk[V], bool) {
		return NewThunk(func() V { return f(oldTh.Force()) }), true
	}))
}

// UpdateWithE is the eager half of updateWith: f may have effects, so
// the existing value is forced immediately and f runs right away.
func (m *DelayMap[K, V]) UpdateWithE(k K, f func(v V) V) *DelayMap[K, V] {
	return wrap(m.t.UpdateWith(k, func(_ K, oldTh *Thunk[V]) (*Thunk[V], bool) {
		return Done(f(oldTh.Force())), true
	}))
}
