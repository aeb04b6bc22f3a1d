package snapcell

import "sync/atomic"

// GatedCell wraps a [Cell] and a [TickSource] into a realtime-safe,
// non-allocating, stable-for-one-tick snapshot accessor: within one tick
// (between two increments of the driving signal), repeated [GatedCell.Get]
// calls return pointers into the same version, even if the writer publishes
// new data mid-tick. New data is picked up only on the first Get after the
// next tick increment.
//
// The writer side ([GatedCell.Set], [GatedCell.Update]) may run on any single
// writer goroutine; the consumer side ([GatedCell.Get]) serves exactly one
// consumer goroutine, typically a realtime callback. Get performs no
// allocation and no locking.
//
// Instances must be created with [NewGated] and must not be copied.
type GatedCell[T any] struct {
	// Prevent copying
	_ [0]func()

	cell   *Cell[T]
	signal TickSource

	// pending is set by every writer publication and exchanged to false by
	// at most one consumer refresh, so exactly one true→false transition is
	// observed per publication.
	pending atomic.Bool

	// Consumer goroutine state.
	lastTick uint64
	cached   Snapshot[T]
}

// NewGated creates a gated cell driven by signal, with an initial published
// value (flagged pending, so the consumer picks it up on its first gated
// refresh). Options configure the underlying cell.
func NewGated[T any](signal TickSource, initial T, opts ...Option) *GatedCell[T] {
	if signal == nil {
		panic(`snapcell: nil tick source`)
	}
	g := &GatedCell[T]{
		cell:   NewValue(initial, opts...),
		signal: signal,
	}
	g.pending.Store(true)
	return g
}

// Set publishes a new version and flags it pending for the consumer.
// Writer side.
func (g *GatedCell[T]) Set(value T) {
	g.cell.Set(value)
	g.pending.Store(true)
}

// Update publishes fn applied to a copy of the current value, and flags it
// pending. Writer side.
func (g *GatedCell[T]) Update(fn func(T) T) {
	g.cell.Update(fn)
	g.pending.Store(true)
}

// Peek returns a pointer to the most recently committed value, regardless of
// gating. Writer side only (the cell's retained reference is what makes the
// uncounted access safe).
func (g *GatedCell[T]) Peek() *T {
	return g.cell.Writer().Value()
}

// Pending reports whether a publication has not yet been picked up by the
// consumer. False is the expected, frequent answer, not an error.
func (g *GatedCell[T]) Pending() bool {
	return g.pending.Load()
}

// Get returns a pointer to the consumer's current version, refreshing it
// first if the tick has advanced since the last call and a publication is
// pending. The returned pointer is stable until the first Get after the next
// tick increment.
//
// Consumer goroutine only. Precondition: the driving signal must have ticked
// at least once before the first Get (the gate never opens on tick zero);
// violating it panics via the empty-snapshot check.
func (g *GatedCell[T]) Get() *T {
	tick := g.signal.Tick()
	if tick > g.lastTick {
		if g.pending.Swap(false) {
			g.cached.Release()
			g.cached = g.cell.Acquire()
		}
	}
	g.lastTick = tick
	return g.cached.Value()
}

// Close releases the consumer's cached snapshot and closes the underlying
// cell. Must not run concurrently with any other operation.
func (g *GatedCell[T]) Close() error {
	g.cached.Release()
	return g.cell.Close()
}
