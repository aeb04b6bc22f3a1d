package snapcell

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// Cell is an atomic-pointer-guarded single-writer/multi-reader value slot.
//
// The writer publishes immutable versions with [Cell.Commit] (or the [Cell.Set]
// / [Cell.Update] conveniences); readers obtain counted handles to the latest
// version with [Cell.Acquire]. Neither side ever blocks the other: acquire is
// a pointer load plus a counter increment, and commit is an allocation plus a
// pointer swap plus ledger bookkeeping that only the writer touches.
//
// The cell retains one reference to the current version at all times, so the
// published block always has a reference count of at least one, and a version
// becomes collectible only after it has been superseded and every reader
// snapshot of it has been released.
//
// Instances must be created with [New] or [NewValue], and must not be copied.
type Cell[T any] struct {
	// Prevent copying
	_ [0]func()

	// current points at the most recently committed version. Swapped only by
	// the writer; loaded by any number of readers. The swap publishes the
	// block's value (release), and Acquire's load observes it (acquire):
	// Go's sync/atomic guarantees sequential consistency, strictly stronger
	// than the pairing this design requires.
	current atomic.Pointer[controlBlock[T]]

	// retained keeps the current block's count >= 1 between commits.
	// Writer goroutine only.
	retained Snapshot[T]

	reg    ledger[T]
	stats  *cellStats
	logger *logiface.Logger[logiface.Event]

	// guardMu backs the optional concurrent-writer detection; unused (and
	// unlocked) unless guarded is set.
	guardMu sync.Mutex
	guarded bool
}

// New creates an empty cell: no version is published until the first commit,
// and [Cell.Acquire] returns an empty snapshot until then.
func New[T any](opts ...Option) *Cell[T] {
	cfg := resolveCellOptions(opts)
	c := &Cell[T]{
		logger:  cfg.logger,
		guarded: cfg.usageGuard,
	}
	if cfg.stats {
		c.stats = &cellStats{}
	}
	c.reg.stats = c.stats
	c.reg.logger = cfg.logger
	return c
}

// NewValue creates a cell with an initial published value.
func NewValue[T any](value T, opts ...Option) *Cell[T] {
	c := New[T](opts...)
	c.Set(value)
	return c
}

// Commit publishes value as the new current version and returns a snapshot of
// it, which the caller owns and must release. The superseded version is
// marked retired and will be dropped by a sweep once its last snapshot is
// released; the sweep for already-collectible versions runs before Commit
// returns.
//
// Commit allocates (the new version's control block). It must only be called
// from the single writer goroutine.
func (c *Cell[T]) Commit(value T) Snapshot[T] {
	c.publish(value)
	return c.retained.Clone()
}

// Set is Commit without handing a snapshot back to the caller.
func (c *Cell[T]) Set(value T) {
	c.publish(value)
}

// Update publishes the result of applying fn to a copy of the current value.
// It requires a published value, like [Cell.Copy].
func (c *Cell[T]) Update(fn func(T) T) {
	c.publish(fn(c.Copy()))
}

// Copy returns a value-copy of the currently published value, as a base for
// the writer's next version. It panics if nothing has been committed yet.
//
// Writer goroutine only: the result is only guaranteed to be the latest
// version when read by the goroutine that commits.
func (c *Cell[T]) Copy() T {
	cb := c.current.Load()
	if cb == nil {
		panic(`snapcell: copy on cell with no published value`)
	}
	return cb.value
}

// Acquire returns a snapshot of the currently published version, or an empty
// snapshot if nothing has been committed yet. It never blocks and never
// allocates, and is safe from any number of goroutines, concurrently with the
// writer's commits.
//
// The returned snapshot must be released exactly once.
func (c *Cell[T]) Acquire() Snapshot[T] {
	cb := c.current.Load()
	if cb == nil {
		return Snapshot[T]{}
	}
	cb.refs.Add(1)
	c.stats.addAcquire()
	return Snapshot[T]{cb: cb}
}

// Close drops the cell's retained reference and runs a final, exhaustive
// sweep. Every snapshot acquired from the cell must have been released
// beforehand; if any remain, Close returns [ErrSnapshotsOutstanding] (or
// panics, when the usage guard is enabled).
//
// The cell must not be used after Close. Close must not run concurrently
// with any other operation on the cell.
func (c *Cell[T]) Close() error {
	if cb := c.current.Swap(nil); cb != nil {
		cb.retired.Store(true)
		c.retained.Release()
	}
	return c.reg.close(c.guarded)
}

// Stats returns a copy of the cell's runtime counters. All zeros unless the
// cell was created with [WithStats].
func (c *Cell[T]) Stats() Stats {
	return c.stats.snapshot()
}

// Writer returns the writer-role façade for the cell.
func (c *Cell[T]) Writer() Writer[T] {
	return Writer[T]{cell: c}
}

// Reader returns the reader-role façade for the cell.
func (c *Cell[T]) Reader() Reader[T] {
	return Reader[T]{cell: c}
}

// publish is the commit path shared by Commit, Set and Update.
func (c *Cell[T]) publish(value T) {
	defer c.guardEnter()()

	cb := &controlBlock[T]{value: value}
	cb.refs.Store(1) // the cell's retained reference
	c.reg.register(cb)

	prev := c.current.Swap(cb) // publication point

	old := c.retained
	c.retained = Snapshot[T]{cb: cb}

	if prev != nil {
		// Retirement strictly after the swap: an acquire either observed the
		// old pointer while it was still current (so the block was not yet
		// retired, and its count cannot have been collected), or it observes
		// the new pointer and the old block is irrelevant to it.
		prev.retired.Store(true)
		old.Release()
	}

	c.stats.addCommit()
	c.reg.sweep()
}

// guardEnter implements the optional concurrent-writer check: a non-blocking
// try-lock that can only fail if another goroutine is inside a writer
// operation right now. Returns the corresponding exit func.
func (c *Cell[T]) guardEnter() func() {
	if !c.guarded {
		return func() {}
	}
	if !c.guardMu.TryLock() {
		c.logger.Err().
			Log(`snapcell: concurrent writers detected on one cell`)
		panic(`snapcell: concurrent writers detected on one cell`)
	}
	return c.guardMu.Unlock
}

// Writer is a thin writer-role façade over a [Cell]: purely an API-clarity
// layer to make call sites self-describing. Correctness never depends on the
// separation; the underlying cell's contracts are unchanged.
type Writer[T any] struct {
	cell *Cell[T]
}

// Commit publishes a new version. See [Cell.Commit].
func (w Writer[T]) Commit(value T) Snapshot[T] { return w.cell.Commit(value) }

// Set publishes a new version. See [Cell.Set].
func (w Writer[T]) Set(value T) { w.cell.Set(value) }

// Update publishes fn applied to a copy of the current value. See [Cell.Update].
func (w Writer[T]) Update(fn func(T) T) { w.cell.Update(fn) }

// Copy returns an editable duplicate of the current value. See [Cell.Copy].
func (w Writer[T]) Copy() T { return w.cell.Copy() }

// Value returns a pointer to the most recently committed value. Safe for the
// writer without reference counting, because the cell retains the current
// version; panics if nothing has been committed yet.
func (w Writer[T]) Value() *T {
	cb := w.cell.current.Load()
	if cb == nil {
		panic(`snapcell: value of cell with no published value`)
	}
	return &cb.value
}

// Reader is the reader-role counterpart of [Writer].
type Reader[T any] struct {
	cell *Cell[T]
}

// Acquire returns a snapshot of the current version. See [Cell.Acquire].
func (r Reader[T]) Acquire() Snapshot[T] { return r.cell.Acquire() }
