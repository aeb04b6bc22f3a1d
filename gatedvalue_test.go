package snapcell

import "testing"

func TestGatedValueTickStability(t *testing.T) {
	var sig Signal
	g := NewGatedValue(&sig, 1)

	sig.Notify()
	if got := *g.Get(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	g.Set(2)

	// Mid-tick: the buffered value holds.
	if got := *g.Get(); got != 1 {
		t.Fatalf("expected stale 1 mid-tick, got %d", got)
	}

	sig.Notify()
	if got := *g.Get(); got != 2 {
		t.Fatalf("expected 2 after tick, got %d", got)
	}
}

func TestGatedValuePeek(t *testing.T) {
	var sig Signal
	g := NewGatedValue(&sig, "a")

	g.Set("b")
	if got := *g.Peek(); got != "b" {
		t.Fatalf("writer peek expected b, got %q", got)
	}
}

func TestGatedValueFirstReadBeforeTick(t *testing.T) {
	var sig Signal
	g := NewGatedValue(&sig, 9)

	// No tick yet: Get falls back to the published value instead of
	// returning nil.
	if got := *g.Get(); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}

func TestGatedValueNilSignalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil tick source")
		}
	}()
	_ = NewGatedValue(nil, 0)
}
