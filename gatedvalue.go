package snapcell

import "sync/atomic"

// GatedValue is the scalar sibling of [GatedCell]: a tick-gated slot without
// reference counting or a reclamation ledger. The writer stores whole values;
// the consumer re-reads the slot only when the tick advances, so the value it
// observes is stable within one processing cycle. Superseded values are left
// to the garbage collector.
//
// One writer goroutine, one consumer goroutine, as with [GatedCell].
type GatedValue[T any] struct {
	// Prevent copying
	_ [0]func()

	signal TickSource
	val    atomic.Pointer[T]

	// Consumer goroutine state.
	lastTick uint64
	buffered *T
}

// NewGatedValue creates a gated scalar driven by signal, holding initial.
func NewGatedValue[T any](signal TickSource, initial T) *GatedValue[T] {
	if signal == nil {
		panic(`snapcell: nil tick source`)
	}
	g := &GatedValue[T]{signal: signal}
	g.val.Store(&initial)
	return g
}

// Set publishes a new value. Writer side; allocates.
func (g *GatedValue[T]) Set(value T) {
	g.val.Store(&value)
}

// Peek returns the most recently published value, regardless of gating.
// Writer side.
func (g *GatedValue[T]) Peek() *T {
	return g.val.Load()
}

// Get returns the consumer's buffered value, re-reading the slot first if the
// tick has advanced since the last call. Stable within one tick. Consumer
// goroutine only; never allocates.
func (g *GatedValue[T]) Get() *T {
	if tick := g.signal.Tick(); tick > g.lastTick {
		g.buffered = g.val.Load()
		g.lastTick = tick
	}
	if g.buffered == nil {
		// First read before the first tick: fall back to the initial value
		// rather than handing out a nil pointer.
		g.buffered = g.val.Load()
	}
	return g.buffered
}
