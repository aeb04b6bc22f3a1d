package snapcell

import "sync/atomic"

// Role identifies one of the two fixed parties of a [Ball].
type Role int32

const (
	// RoleA is the first party.
	RoleA Role = 0
	// RoleB is the second party.
	RoleB Role = 1

	// noRole marks the ball as mid-catch, preventing a double catch.
	noRole Role = -1
)

// Other returns the opposite role.
func (r Role) Other() Role {
	return 1 - r
}

// String returns a human-readable representation of the role.
func (r Role) String() string {
	switch r {
	case RoleA:
		return "A"
	case RoleB:
		return "B"
	default:
		return "none"
	}
}

// Ball coordinates exclusive access to some shared memory between exactly two
// fixed roles, without locks and without reference counting: only the role
// currently holding the ball may touch the memory. The holder hands access
// over by throwing the ball to the other role; the other role polls for it by
// attempting a catch.
//
// There is no "held by neither" resting state: at every instant the ball is
// thrown to exactly one role (the transient mid-catch marker only excludes a
// double catch). Throw publishes with release semantics and a successful
// Catch observes with acquire semantics, so writes made while holding the
// ball are visible to the next holder.
//
// Most callers want the [Player] wrapper, which adds the local do-I-hold-it
// bookkeeping and asserts the throw-only-while-holding contract.
type Ball struct {
	// Prevent copying
	_ [0]func()

	thrownTo atomic.Int32
}

// NewBall creates a ball initially thrown to first, i.e. first may catch it
// without any preceding throw.
func NewBall(first Role) *Ball {
	if first != RoleA && first != RoleB {
		panic(`snapcell: ball must start with role A or B`)
	}
	b := &Ball{}
	b.thrownTo.Store(int32(first))
	return b
}

// Throw hands the ball to the other role. Calling Throw without holding the
// ball (i.e. without a successful Catch since this role's last Throw) is a
// programming error with unspecified behavior; [Player.Throw] asserts it.
func (b *Ball) Throw(r Role) {
	b.thrownTo.Store(int32(r.Other()))
}

// Catch attempts to take the ball for role r. It returns false if the ball
// has not been thrown to r yet — the expected, frequent outcome of polling,
// not an error. A true result transfers exclusive access to r until its next
// Throw.
func (b *Ball) Catch(r Role) bool {
	return b.thrownTo.CompareAndSwap(int32(r), int32(noRole))
}

// Player binds one role of a [Ball] to its local holding state. Each of the
// two roles is driven by exactly one goroutine; the Player itself is not safe
// for concurrent use (the underlying ball is what synchronizes the two
// sides).
type Player struct {
	ball    *Ball
	role    Role
	holding bool
}

// NewPlayer creates the player for role r of ball.
func NewPlayer(ball *Ball, r Role) *Player {
	if ball == nil {
		panic(`snapcell: nil ball`)
	}
	if r != RoleA && r != RoleB {
		panic(`snapcell: player role must be A or B`)
	}
	return &Player{ball: ball, role: r}
}

// Role returns the player's role.
func (p *Player) Role() Role {
	return p.role
}

// Throw hands the ball to the other role. Panics if this player does not
// currently hold it.
func (p *Player) Throw() {
	if !p.holding {
		panic(`snapcell: throw without holding the ball`)
	}
	p.holding = false
	p.ball.Throw(p.role)
}

// Catch polls for the ball. Panics if this player already holds it (catch
// and throw must alternate; use [Player.Ensure] for catch-if-needed).
func (p *Player) Catch() bool {
	if p.holding {
		panic(`snapcell: catch while already holding the ball`)
	}
	if p.ball.Catch(p.role) {
		p.holding = true
	}
	return p.holding
}

// Holding reports whether this player currently holds the ball.
func (p *Player) Holding() bool {
	return p.holding
}

// Ensure catches the ball if not already held, and reports whether the
// player now holds it.
func (p *Player) Ensure() bool {
	if !p.holding {
		return p.Catch()
	}
	return true
}
