package pmap

// Applicative captures the point/map/ap triple that traverse/sequence
// lift node construction through. Go has no higher-kinded generics, so
// E stands for "the concrete effect type" and its payload crosses the
// interface boxed as any. Traverse and Sequence keep that payload's
// dynamic type consistent for a given call, the one concrete shape
// this abstraction collapses to in Go.
type Applicative[E any] interface {
	// Point lifts a bare value into the effect.
	Point(v any) E
	// MapOver transforms the effect's payload in place within E.
	MapOver(e E, f func(any) any) E
	// Ap applies an effect wrapping a func(any) any to an effect
	// wrapping its argument.
	Ap(ef, ea E) E
}

// TraverseWithKey rebuilds m's shape inside E, applying f to every
// pair and threading the effect through the fold in ascending key
// order: `point(insert) <*> ... <*> f(k, v) <*> ...` one pair at a
// time, the way Node(c, L, k, v, R) would lift through an applicative.
func TraverseWithKey[K, V, W, E any](m *Map[K, V], app Applicative[E], f func(k K, v V) E) E {
	acc := app.Point(any(New[K, W](m.Comparator())))

	m.ForEach(func(k K, v V) {
		insertK := app.MapOver(acc, func(curAny any) any {
			return func(wAny any) any {
				cur := curAny.(*Map[K, W])

				return cur.Insert(k, wAny.(W))
			}
		})
		acc = app.Ap(insertK, f(k, v))
	})

	return acc
}

// Traverse is TraverseWithKey without the key passed to f.
func Traverse[K, V, W, E any](m *Map[K, V], app Applicative[E], f func(v V) E) E {
	return TraverseWithKey[K, V, W](m, app, func(_ K, v V) E { return f(v) })
}

// Sequence flips a map of already-wrapped values inside the effect,
// i.e. traverse with the identity function.
func Sequence[K, W, E any](m *Map[K, E], app Applicative[E]) E {
	return TraverseWithKey[K, E, W](m, app, func(_ K, e E) E { return e })
}

// TraverseMaybe is the common-effect specialization of traverse for
// Go's usual (value, ok) idiom: f reports failure by returning
// ok = false, short-circuiting the rest of the walk.
func TraverseMaybe[K, V, W any](m *Map[K, V], f func(k K, v V) (W, bool)) (*Map[K, W], bool) {
	out := New[K, W](m.Comparator())

	ok := true
	m.ForEach(func(k K, v V) {
		if !ok {
			return
		}

		w, present := f(k, v)
		if !present {
			ok = false

			return
		}

		out = out.Insert(k, w)
	})

	if !ok {
		return nil, false
	}

	return out, true
}

// TraverseResult is the common-effect specialization of traverse for
// Go's usual (value, error) idiom: f reports failure by returning a
// non-nil error, short-circuiting the rest of the walk.
func TraverseResult[K, V, W any](m *Map[K, V], f func(k K, v V) (W, error)) (*Map[K, W], error) {
	out := New[K, W](m.Comparator())

	var firstErr error

	m.ForEach(func(k K, v V) {
		if firstErr != nil {
			return
		}

		w, err := f(k, v)
		if err != nil {
			firstErr = err

			return
		}

		out = out.Insert(k, w)
	})

	if firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}
