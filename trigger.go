package snapcell

import "sync/atomic"

// Trigger is a one-shot edge-triggered latch for cross-goroutine
// notification: [Trigger.Fire] sets it, and [Trigger.Consume] test-and-clears
// it, reporting whether it had been fired since the last consume. Built for
// event signaling ("start requested") rather than value transfer.
//
// Both operations are single atomic instructions; neither blocks. Multiple
// fires between consumes coalesce into one observed edge. With multiple
// concurrent consumers, exactly one of them observes each edge.
type Trigger struct {
	fired atomic.Bool
}

// Fire sets the latch. Firing an already-set trigger is a no-op.
func (t *Trigger) Fire() {
	t.fired.Store(true)
}

// Consume clears the latch, reporting whether it was set. False means no
// fire occurred since the last consume — an expected polling outcome, not an
// error.
func (t *Trigger) Consume() bool {
	return t.fired.Swap(false)
}
