// Package fork implements the fixed-budget fork-join scheduler shared
// by every parallel tree walk in rbtree, pmap, and delaymap.
//
// A single top-level parallel call computes an initial recursion budget
// from the live processor count, then halves that budget at every split
// point it descends through. Workers are spawned only while both the
// budget and a shared worker pool allow it; once either is exhausted the
// remaining work runs sequentially in the caller. Results cross from a
// spawned worker to its caller exactly once, through a single-slot
// buffered channel.
package fork

import (
	"log"
	"runtime"

	"golang.org/x/sync/semaphore"
)

var (
	// Threshold is PAR_THRESHOLD: the minimum 2^blackHeight(t) at which
	// a caller should even consider dispatching a parallel walk instead
	// of calling the sequential variant directly. Overridable only for
	// tests, via setThreshold.
	Threshold = 1024

	// Multiplier is PAR_MULT: the worker budget multiplier over the
	// live processor count. Overridable only for tests, via setMultiplier.
	Multiplier = 4
)

// setThreshold and setMultiplier exist for tests that need to exercise
// the parallel/sequential boundary without building inputs of a
// realistic size. Production callers never call these.
func setThreshold(n int) (restore func()) {
	old := Threshold
	Threshold = n

	return func() { Threshold = old }
}

func setMultiplier(n int) (restore func()) {
	old := Multiplier
	Multiplier = n

	return func() { Multiplier = old }
}

// InitialBudget reads Environment.virtualProcessors (runtime.NumCPU)
// fresh and returns the recursion budget a new top-level parallel call
// should start with.
func InitialBudget() int {
	n := Multiplier*runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}

	return n
}

// Split halves a recursion budget for two child workers, per the
// "(n - 2) / 2" rule: two new workers are charged for the two
// sub-splits they represent.
func Split(budget int) int {
	child := (budget - 2) / 2
	if child < 0 {
		return 0
	}

	return child
}

// Pool bounds the number of fork-join workers concurrently in flight
// for one top-level parallel call.
type Pool struct {
	sem *semaphore.Weighted

	// Logger, when non-nil, receives one line per Fork2 call describing
	// whether it spawned a worker or fell back to sequential evaluation.
	// Nil by default: the core never imports a logging framework, and
	// embedding applications opt in by wiring a *log.Logger after NewPool.
	Logger *log.Logger
}

// NewPool creates a pool sized to budget concurrent workers.
func NewPool(budget int) *Pool {
	if budget < 1 {
		budget = 1
	}

	return &Pool{sem: semaphore.NewWeighted(int64(budget))}
}

// Fork2 runs computeLeft and computeRight. When budget allows a further
// split and a pool slot is free, computeLeft runs on a spawned worker
// and computeRight runs in the caller, concurrently; computeLeft's
// result crosses back through a single-slot buffered channel. Otherwise
// both run sequentially in the caller, preserving left-before-right
// evaluation order for callers (such as left-first min/max tie
// breaking) that depend on it.
func Fork2[L, R any](p *Pool, budget int, computeLeft func() L, computeRight func() R) (L, R) {
	if budget <= 1 || !p.sem.TryAcquire(1) {
		if p.Logger != nil {
			p.Logger.Printf("fork: budget=%d sequential", budget)
		}

		l := computeLeft()
		r := computeRight()

		return l, r
	}
	defer p.sem.Release(1)

	if p.Logger != nil {
		p.Logger.Printf("fork: budget=%d spawned", budget)
	}

	leftCh := make(chan L, 1)

	go func() {
		leftCh <- computeLeft()
	}()

	r := computeRight()
	l := <-leftCh

	return l, r
}
