package snapcell

import (
	"sync"
	"testing"
)

func TestBallInitialHolder(t *testing.T) {
	b := NewBall(RoleA)

	if b.Catch(RoleB) {
		t.Fatal("B must not catch a ball thrown to A")
	}
	if !b.Catch(RoleA) {
		t.Fatal("A should catch the ball it starts with")
	}
	// Mid-catch marker prevents a double catch.
	if b.Catch(RoleA) {
		t.Fatal("double catch must fail")
	}
}

func TestBallThrowCatchAlternation(t *testing.T) {
	b := NewBall(RoleA)

	if !b.Catch(RoleA) {
		t.Fatal("A should start holding")
	}
	b.Throw(RoleA)

	if b.Catch(RoleA) {
		t.Fatal("A threw the ball away; it must not catch it back")
	}
	if !b.Catch(RoleB) {
		t.Fatal("B should catch after A's throw")
	}
	b.Throw(RoleB)
	if !b.Catch(RoleA) {
		t.Fatal("A should catch after B's throw")
	}
}

func TestNewBallInvalidRolePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid first role")
		}
	}()
	_ = NewBall(Role(3))
}

func TestPlayerBookkeeping(t *testing.T) {
	b := NewBall(RoleA)
	a := NewPlayer(b, RoleA)
	p := NewPlayer(b, RoleB)

	if a.Holding() || p.Holding() {
		t.Fatal("nobody holds before the first catch")
	}

	if !a.Catch() {
		t.Fatal("A should catch")
	}
	if !a.Holding() {
		t.Fatal("A should report holding")
	}
	if p.Ensure() {
		t.Fatal("B must not hold while A does")
	}

	a.Throw()
	if a.Holding() {
		t.Fatal("A threw; it no longer holds")
	}

	if !p.Ensure() {
		t.Fatal("B should now catch")
	}
	if !p.Ensure() {
		t.Fatal("Ensure while holding stays true")
	}
}

func TestPlayerThrowWithoutHoldingPanics(t *testing.T) {
	p := NewPlayer(NewBall(RoleA), RoleA)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic throwing without holding")
		}
	}()
	p.Throw()
}

func TestPlayerCatchWhileHoldingPanics(t *testing.T) {
	p := NewPlayer(NewBall(RoleA), RoleA)
	if !p.Catch() {
		t.Fatal("catch should succeed")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic catching while holding")
		}
	}()
	p.Catch()
}

// TestBallPingPong hands a counter back and forth between two goroutines.
// Only the holder may touch the counter; the strict alternation means each
// side observes every value written by the other, so any mutual-exclusion
// failure shows up as a missed or repeated count (and as a data race under
// the race detector).
func TestBallPingPong(t *testing.T) {
	const rounds = 10_000

	b := NewBall(RoleA)
	counter := 0 // shared memory guarded by the ball

	var wg sync.WaitGroup
	wg.Add(2)

	run := func(r Role) {
		defer wg.Done()
		p := NewPlayer(b, r)
		for {
			if !p.Ensure() {
				continue // not thrown to us yet; poll again
			}
			if counter >= rounds {
				p.Throw() // let the other side observe the final value
				return
			}
			counter++
			p.Throw()
		}
	}

	go run(RoleA)
	go run(RoleB)
	wg.Wait()

	if counter != rounds {
		t.Fatalf("expected %d, got %d", rounds, counter)
	}
}

func TestRoleOther(t *testing.T) {
	if RoleA.Other() != RoleB || RoleB.Other() != RoleA {
		t.Fatal("roles must be each other's opposite")
	}
	if RoleA.String() != "A" || RoleB.String() != "B" {
		t.Fatal("unexpected role strings")
	}
}
