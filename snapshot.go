package snapcell

import (
	"sync/atomic"
)

// controlBlock couples one immutable published value with the bookkeeping
// required to decide when the version may be dropped from the reclamation
// ledger. The value is never mutated after construction; refs counts the
// writer-retained reference plus one per live Snapshot.
type controlBlock[T any] struct {
	value T

	// refs is the number of live references (writer-retained + snapshots).
	refs atomic.Int64

	// retired is set by the cell strictly after the atomic pointer swap that
	// makes this block unreachable from future acquires.
	retired atomic.Bool

	// releasable is set when refs drops to zero; advisory for the sweep,
	// which re-checks refs regardless.
	releasable atomic.Bool
}

// Snapshot is a reference-counted read handle to one published version of a
// [Cell]'s value. The zero Snapshot is empty ([Snapshot.Ok] reports false).
//
// A Snapshot obtained from [Cell.Acquire] or [Cell.Commit] owns exactly one
// reference, and must be released exactly once via [Snapshot.Release].
// While any Snapshot references a version, that version remains readable,
// unchanged, no matter how many further commits occur on the cell.
//
// Snapshots are value types: plain assignment transfers the handle without
// touching the reference count (the source must then no longer be released),
// while [Snapshot.Clone] creates an additional counted reference.
type Snapshot[T any] struct {
	cb *controlBlock[T]
}

// Ok reports whether the snapshot references a published version.
func (s Snapshot[T]) Ok() bool {
	return s.cb != nil
}

// Value returns a pointer to the immutable value this snapshot references.
// The pointer is valid for the lifetime of the snapshot; callers must not
// mutate the pointed-to value.
//
// Value panics if the snapshot is empty.
func (s Snapshot[T]) Value() *T {
	if s.cb == nil {
		panic(`snapcell: value of empty snapshot`)
	}
	return &s.cb.value
}

// Clone returns an additional counted reference to the same version.
// Cloning an empty snapshot returns an empty snapshot.
//
// Clone panics if the snapshot's version has already been fully released;
// that can only happen if the snapshot was used after Release, which is a
// usage error.
func (s Snapshot[T]) Clone() Snapshot[T] {
	if s.cb == nil {
		return Snapshot[T]{}
	}
	if s.cb.refs.Add(1) <= 1 {
		panic(`snapcell: clone of released snapshot`)
	}
	return Snapshot[T]{cb: s.cb}
}

// Release drops this snapshot's reference. If the count reaches zero the
// version is flagged releasable, authorizing the owning cell's next sweep to
// drop it from the reclamation ledger (it must already be retired; the sweep
// independently re-checks both conditions).
//
// Release empties the receiver, so releasing an already-released or empty
// snapshot is a no-op.
func (s *Snapshot[T]) Release() {
	cb := s.cb
	if cb == nil {
		return
	}
	s.cb = nil
	if n := cb.refs.Add(-1); n == 0 {
		cb.releasable.Store(true)
	} else if n < 0 {
		panic(`snapcell: release of released snapshot`)
	}
}
