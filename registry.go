package snapcell

import (
	"github.com/joeycumines/logiface"
)

// ledger tracks every control block created for one cell, so that superseded
// versions are dropped deterministically (rather than lingering until the
// cell itself dies) and leaks are detectable at close.
//
// Ownership model: the slice is touched only by the writer goroutine
// (register and sweep both run inside commit, and close runs after all use
// has ceased). The reader side communicates exclusively through the per-block
// atomic flags, so no operation here ever makes a reader wait.
type ledger[T any] struct {
	blocks []*controlBlock[T]
	stats  *cellStats
	logger *logiface.Logger[logiface.Event]
}

// register adds a freshly created block. Writer goroutine only.
func (l *ledger[T]) register(cb *controlBlock[T]) {
	l.blocks = append(l.blocks, cb)
	l.stats.addLive()
}

// sweep drops every block that is both retired and, re-checked now,
// unreferenced. A block that is retired but still referenced by outstanding
// snapshots stays in the ledger until a later sweep observes its count at
// zero. Writer goroutine only.
//
// Dropping a block here only removes the ledger's strong reference: any
// snapshot acquired in the window between the pointer load and its count
// increment still holds the block, and the garbage collector will not
// reclaim it until that snapshot is gone. This is what makes the naive
// load-then-increment acquire safe in Go.
func (l *ledger[T]) sweep() {
	kept := l.blocks[:0]
	for _, cb := range l.blocks {
		if cb.retired.Load() && cb.refs.Load() == 0 {
			l.stats.addReclaimed()
			l.logger.Debug().
				Int(`remaining`, len(l.blocks)-1).
				Log(`snapcell: swept retired version`)
			continue
		}
		kept = append(kept, cb)
	}
	// Clear the tail so dropped blocks are not pinned by the backing array.
	for i := len(kept); i < len(l.blocks); i++ {
		l.blocks[i] = nil
	}
	l.blocks = kept
	l.stats.addSweep()
}

// close runs a final exhaustive sweep and verifies the ledger drained. Any
// remaining entry means a snapshot is still outstanding, which is a usage
// error: the cell must outlive every snapshot acquired from it.
func (l *ledger[T]) close(guarded bool) error {
	l.sweep()
	if len(l.blocks) == 0 {
		return nil
	}
	l.logger.Warning().
		Int(`outstanding`, len(l.blocks)).
		Log(`snapcell: cell closed with snapshots still outstanding`)
	if guarded {
		panic(`snapcell: cell closed with snapshots still outstanding`)
	}
	return ErrSnapshotsOutstanding
}

// size reports the number of tracked blocks. Writer goroutine only; used by
// liveness assertions.
func (l *ledger[T]) size() int {
	return len(l.blocks)
}
