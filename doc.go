// Package snapcell provides lock-free synchronization primitives for the
// single-writer/multiple-reader pattern: one goroutine periodically publishes
// new immutable versions of a value, and any number of other goroutines read
// the latest published version without blocking the writer, and without the
// writer blocking on them.
//
// # Architecture
//
// The core is a versioned value slot, [Cell], guarded by an atomic pointer to
// an internal, reference-counted control block. The writer builds a new value
// (typically via [Cell.Copy] plus local mutation), then publishes it with
// [Cell.Commit]. Readers call [Cell.Acquire] to obtain a [Snapshot], a
// reference-counted handle that keeps its version readable for the snapshot's
// lifetime, regardless of how many further commits occur.
//
// Superseded versions are tracked by an internal reclamation ledger: each
// block is registered at creation, marked retired strictly after the pointer
// swap that makes it unreachable from future acquires, and dropped from the
// ledger by a sweep (run after every commit, and exhaustively at
// [Cell.Close]) once it is retired and its reference count has independently
// returned to zero. The ledger models the reclamation protocol and provides
// leak detection and liveness accounting; the memory itself is reclaimed by
// the garbage collector once the last snapshot lets go.
//
// Two tick-gated wrappers serve realtime callback contexts (audio, graphics):
// [GatedCell] pins the observed version for the duration of one tick of a
// [Signal], so repeated reads within one processing cycle are stable even if
// the writer publishes mid-cycle, and [GatedPair] extends this to two slot
// indices sharing one pending flag, with cross-slot fallback. [GatedValue] is
// the scalar variant, without reference counting.
//
// Two further primitives round out the toolkit: [Ball] (with [Player]), a
// lock-free hand-off of exclusive access between exactly two fixed roles, and
// [Trigger], a one-shot edge-triggered latch for cross-goroutine
// notification.
//
// # Thread Safety
//
//   - [Cell.Acquire] and [Snapshot] operations are safe from any number of
//     goroutines, concurrently with the single writer.
//   - Exactly one goroutine may drive [Cell.Commit], [Cell.Copy], and the
//     writer sides of the gated types, at any given time. This is a caller
//     contract; [WithUsageGuard] enables best-effort detection.
//   - Each [GatedCell]/[GatedPair] serves exactly one consumer goroutine, and
//     each [Signal] exactly one tick producer.
//   - No operation in this package blocks, or awaits another goroutine's
//     progress. Readers perform a bounded number of atomic operations; only
//     the writer-side publication paths allocate.
//
// # Usage
//
//	cell := snapcell.NewValue(Config{Rate: 44100})
//	defer cell.Close()
//
//	// reader goroutines:
//	snap := cell.Acquire()
//	defer snap.Release()
//	use(snap.Value())
//
//	// writer goroutine:
//	next := cell.Copy()
//	next.Rate = 48000
//	cell.Set(next)
//
// Violating a usage contract (committing concurrently, dereferencing an empty
// snapshot, closing a cell while snapshots remain outstanding, throwing a
// ball without holding it) is a programming error, not a recoverable
// condition: such violations panic with a descriptive message where they can
// be detected cheaply, and [WithUsageGuard] extends detection to the
// concurrent-writer contract.
package snapcell
