package snapcell

import "sync/atomic"

// GatedPair is a [GatedCell] with two independently-indexed slots {0, 1}
// sharing one underlying cell, one pending flag (not two), and one tick gate.
//
// It serves two logical consumers polled from one consumer goroutine (for
// example, two playback voices inside one realtime callback) against a single
// producer: because the pending flag is consumed at most once per
// publication, the slot that refreshes first takes the new version, and the
// other slot falls back to it via [GatedPair.Get] rather than stalling on a
// flag that was already consumed.
//
// Instances must be created with [NewGatedPair] and must not be copied.
type GatedPair[T any] struct {
	// Prevent copying
	_ [0]func()

	cell    *Cell[T]
	signal  TickSource
	pending atomic.Bool

	// Consumer goroutine state.
	lastTick uint64
	cached   [2]Snapshot[T]
}

// NewGatedPair creates a two-slot gated cell driven by signal, with an
// initial published value flagged pending.
func NewGatedPair[T any](signal TickSource, initial T, opts ...Option) *GatedPair[T] {
	if signal == nil {
		panic(`snapcell: nil tick source`)
	}
	g := &GatedPair[T]{
		cell:   NewValue(initial, opts...),
		signal: signal,
	}
	g.pending.Store(true)
	return g
}

// Set publishes a new version and flags it pending. Writer side.
func (g *GatedPair[T]) Set(value T) {
	g.cell.Set(value)
	g.pending.Store(true)
}

// Apply publishes fn applied to a copy of the current value, and flags it
// pending. Writer side.
func (g *GatedPair[T]) Apply(fn func(T) T) {
	g.cell.Update(fn)
	g.pending.Store(true)
}

// Pending reports whether a publication has not yet been picked up by either
// slot.
func (g *GatedPair[T]) Pending() bool {
	return g.pending.Load()
}

// Get returns the value cached in the given slot. If that slot has never
// refreshed, the other slot's value is returned as a fallback (covering the
// case where only one slot has polled since the last publication). If
// neither slot has a value yet, a refresh of slot is forced.
//
// Consumer goroutine only. Precondition: at least one tick must have elapsed
// since the first publication before the first Get; reading earlier is a
// caller error and panics via the empty-snapshot check.
func (g *GatedPair[T]) Get(slot int) *T {
	checkSlot(slot)
	if g.cached[slot].Ok() {
		return g.cached[slot].Value()
	}
	if g.cached[1-slot].Ok() {
		return g.cached[1-slot].Value()
	}
	g.Update(slot)
	return g.cached[slot].Value()
}

// Update refreshes the given slot, but only if the tick has advanced since
// the pair last observed it, and only if a publication is pending. The other
// slot's cached version is left untouched.
//
// Consumer goroutine only.
func (g *GatedPair[T]) Update(slot int) {
	checkSlot(slot)
	tick := g.signal.Tick()
	if tick > g.lastTick {
		if g.pending.Swap(false) {
			g.cached[slot].Release()
			g.cached[slot] = g.cell.Acquire()
		}
	}
	g.lastTick = tick
}

// Close releases both slots' cached snapshots and closes the underlying
// cell. Must not run concurrently with any other operation.
func (g *GatedPair[T]) Close() error {
	g.cached[0].Release()
	g.cached[1].Release()
	return g.cell.Close()
}

func checkSlot(slot int) {
	if slot != 0 && slot != 1 {
		panic(`snapcell: slot index must be 0 or 1`)
	}
}
