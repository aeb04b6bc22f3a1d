package snapcell

import "sync/atomic"

// cellStats is the internal counter set, allocated only when stats are
// enabled. All methods are nil-safe so the hot paths stay branch-cheap.
type cellStats struct {
	commits   atomic.Uint64
	acquires  atomic.Uint64
	live      atomic.Uint64
	reclaimed atomic.Uint64
	sweeps    atomic.Uint64
}

func (s *cellStats) addCommit() {
	if s != nil {
		s.commits.Add(1)
	}
}

func (s *cellStats) addAcquire() {
	if s != nil {
		s.acquires.Add(1)
	}
}

func (s *cellStats) addLive() {
	if s != nil {
		s.live.Add(1)
	}
}

func (s *cellStats) addReclaimed() {
	if s != nil {
		s.live.Add(^uint64(0))
		s.reclaimed.Add(1)
	}
}

func (s *cellStats) addSweep() {
	if s != nil {
		s.sweeps.Add(1)
	}
}

// Stats is a point-in-time copy of a cell's runtime counters, as returned by
// [Cell.Stats]. Counters only exist when the cell was created with
// [WithStats]; otherwise every field is zero.
//
// Live returning to its baseline after all snapshots are released (and a
// subsequent commit or close has swept) is the observable form of the
// eventual-reclamation guarantee.
type Stats struct {
	// Commits is the number of versions published.
	Commits uint64
	// Acquires is the number of snapshots handed out by Acquire.
	Acquires uint64
	// Live is the number of versions currently tracked by the ledger
	// (published but not yet swept).
	Live uint64
	// Reclaimed is the number of retired versions dropped by sweeps.
	Reclaimed uint64
	// Sweeps is the number of sweep passes run.
	Sweeps uint64
}

func (s *cellStats) snapshot() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Commits:   s.commits.Load(),
		Acquires:  s.acquires.Load(),
		Live:      s.live.Load(),
		Reclaimed: s.reclaimed.Load(),
		Sweeps:    s.sweeps.Load(),
	}
}
