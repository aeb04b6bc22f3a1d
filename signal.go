package snapcell

import "sync/atomic"

// TickSource is the gating clock consumed by [GatedCell], [GatedPair] and
// [GatedValue]: any type exposing a monotonically increasing tick value.
// [Signal] is the standard implementation; supplying a different one is the
// construction-time configuration surface of the gated types.
type TickSource interface {
	// Tick returns the current tick value. Must never decrease.
	Tick() uint64
}

// Signal is a monotonically increasing tick counter marking processing
// cycles. Exactly one producer — typically the realtime consumer itself, at
// the top of its callback, not the writer — calls [Signal.Notify], once per
// cycle. Any number of goroutines may read [Signal.Tick].
type Signal struct {
	tick atomic.Uint64
}

// Notify increments the tick, opening the gate for the next refresh of every
// gated reader driven by this signal.
func (s *Signal) Notify() {
	s.tick.Add(1)
}

// Tick returns the current tick value.
func (s *Signal) Tick() uint64 {
	return s.tick.Load()
}
