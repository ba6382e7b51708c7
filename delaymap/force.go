package delaymap

import (
	"github.com/orizon-lang/persist/internal/fork"
	"github.com/orizon-lang/persist/pmap"
)

type kvThunk[K, V any] struct {
	key   K
	thunk *Thunk[V]
}

// ToMap forces every value and returns the corresponding pmap.Map,
// forcing in parallel once the backing tree clears PAR_THRESHOLD.
func (m *DelayMap[K, V]) ToMap() *pmap.Map[K, V] {
	var items []kvThunk[K, V]

	m.t.ForEach(func(k K, th *Thunk[V]) {
		items = append(items, kvThunk[K, V]{key: k, thunk: th})
	})

	out := pmap.New[K, V](m.Comparator())

	if !eligibleForParallel(m.t.BlackHeight()) {
		for _, it := range items {
			out = out.Insert(it.key, it.thunk.Force())
		}

		return out
	}

	values := make([]V, len(items))
	p := fork.NewPool(fork.InitialBudget())
	forceRange(p, fork.InitialBudget(), items, values)

	for i, it := range items {
		out = out.Insert(it.key, values[i])
	}

	return out
}

func forceRange[K, V any](p *fork.Pool, budget int, items []kvThunk[K, V], out []V) {
	if len(items) == 0 {
		return
	}

	if budget <= 1 || len(items) == 1 {
		for i, it := range items {
			out[i] = it.thunk.Force()
		}

		return
	}

	mid := len(items) / 2
	childBudget := fork.Split(budget)

	fork.Fork2(p, budget,
		func() struct{} { forceRange(p, childBudget, items[:mid], out[:mid]); return struct{}{} },
		func() struct{} { forceRange(p, childBudget, items[mid:], out[mid:]); return struct{}{} },
	)
}

// eligibleForParallel reports whether 2^blackHeight(t) clears
// PAR_THRESHOLD.
func eligibleForParallel(blackHeight int) bool {
	if blackHeight >= 31 { // avoid overflow; no real tree needs this many black levels.
		return true
	}

	return 1<<uint(blackHeight) >= fork.Threshold
}
