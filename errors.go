package snapcell

import "errors"

// Standard errors.
var (
	// ErrSnapshotsOutstanding is returned by Close when the reclamation
	// ledger is not empty after the final sweep, i.e. at least one snapshot
	// acquired from the cell was never released. The close still completes
	// (the remaining versions stay readable through their snapshots and are
	// collected once those are gone), but the leak indicates a caller bug.
	ErrSnapshotsOutstanding = errors.New("snapcell: snapshots still outstanding at close")
)
