package snapcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLedgerEventualReclamation verifies that retired versions are dropped
// once their snapshots are released, returning the liveness counter to its
// baseline.
func TestLedgerEventualReclamation(t *testing.T) {
	c := New[int](WithStats(true))

	c.Set(0)
	baseline := c.Stats().Live
	require.Equal(t, uint64(1), baseline)

	snaps := make([]Snapshot[int], 0, 10)
	for i := 1; i <= 10; i++ {
		snaps = append(snaps, c.Acquire())
		c.Set(i)
	}

	// Every superseded version is pinned by a snapshot: nothing to reclaim.
	assert.Equal(t, uint64(11), c.Stats().Live)

	for i := range snaps {
		snaps[i].Release()
	}

	// Releases alone do not reclaim; the next sweep (here: next commit) does,
	// including the version that commit itself supersedes.
	c.Set(11)
	assert.Equal(t, baseline, c.Stats().Live)

	require.NoError(t, c.Close())
}

// TestLedgerRetiredButReferencedSurvivesSweeps pins one retired version and
// commits repeatedly: the sweep must re-check the reference count every time
// and keep the version alive.
func TestLedgerRetiredButReferencedSurvivesSweeps(t *testing.T) {
	c := New[string](WithStats(true))

	c.Set("pinned")
	pin := c.Acquire()

	for i := 0; i < 50; i++ {
		c.Set("filler")
	}

	require.Equal(t, "pinned", *pin.Value())
	assert.Equal(t, uint64(2), c.Stats().Live)

	pin.Release()
	require.NoError(t, c.Close())
}

func TestLedgerSweepCounters(t *testing.T) {
	c := New[int](WithStats(true))

	for i := 0; i < 5; i++ {
		c.Set(i)
	}

	stats := c.Stats()
	assert.Equal(t, uint64(5), stats.Commits)
	assert.Equal(t, uint64(5), stats.Sweeps)
	assert.Equal(t, uint64(4), stats.Reclaimed, "every superseded version was unreferenced")
	assert.Equal(t, uint64(1), stats.Live)

	require.NoError(t, c.Close())
}

func TestLedgerCloseDrainsEverything(t *testing.T) {
	c := New[int](WithStats(true))

	for i := 0; i < 3; i++ {
		c.Set(i)
	}
	s := c.Acquire()
	s.Release()

	require.NoError(t, c.Close())
	assert.Equal(t, uint64(0), c.Stats().Live)
	assert.Equal(t, uint64(3), c.Stats().Reclaimed)
}
