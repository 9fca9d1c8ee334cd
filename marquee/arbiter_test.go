// ABOUTME: Tests for the interaction arbiter state machine
// ABOUTME: Verifies debounce measured from the last interaction end and cancellation

package marquee

import (
	"testing"
	"time"
)

func newTestArbiter() (*Arbiter, *ScrollState, *FrameClock) {
	clock := NewFrameClock(epoch)
	state := &ScrollState{}

	return NewArbiter(state, clock, 0, nil), state, clock
}

func TestArbiterStartsAuto(t *testing.T) {
	a, _, _ := newTestArbiter()

	if a.Mode() != Auto {
		t.Errorf("Initial mode = %s, want auto", a.Mode())
	}
}

func TestArbiterResumesAfterQuietPeriod(t *testing.T) {
	a, state, clock := newTestArbiter()

	a.InteractStart()

	if state.Mode != UserDriven {
		t.Fatalf("Mode after start = %s, want user-driven", state.Mode)
	}

	// Continuous interaction never resumes
	clock.Step(10 * time.Second)

	if state.Mode != UserDriven {
		t.Fatal("Resumed without an interaction end")
	}

	a.InteractEnd()
	clock.Step(1999 * time.Millisecond)

	if state.Mode != UserDriven {
		t.Fatal("Resumed before the quiet period elapsed")
	}

	clock.Step(time.Millisecond)

	if state.Mode != Auto {
		t.Errorf("Mode after quiet period = %s, want auto", state.Mode)
	}

	if a.Pending() {
		t.Error("Expected no pending resume after it fired")
	}
}

func TestArbiterRestartCancelsPendingResume(t *testing.T) {
	a, state, clock := newTestArbiter()

	a.InteractStart()
	a.InteractEnd()
	clock.Step(1500 * time.Millisecond)

	// New interaction before the delay elapsed
	a.InteractStart()

	if a.Pending() {
		t.Fatal("Expected InteractStart to cancel the pending resume")
	}

	clock.Step(time.Second) // would have fired at 2000ms

	if state.Mode != UserDriven {
		t.Fatal("Canceled resume still fired")
	}

	a.InteractEnd() // quiet period restarts here (t=2500ms)
	clock.Step(1999 * time.Millisecond)

	if state.Mode != UserDriven {
		t.Fatal("Resumed before a full quiet period after the last end")
	}

	clock.Step(time.Millisecond)

	if state.Mode != Auto {
		t.Errorf("Mode = %s, want auto", state.Mode)
	}
}

func TestArbiterRepeatedEndsKeepSingleTimer(t *testing.T) {
	a, state, clock := newTestArbiter()

	a.InteractStart()

	for range 5 {
		a.InteractEnd()
		clock.Step(500 * time.Millisecond)
	}

	if clock.PendingTimers() != 1 {
		t.Errorf("Expected exactly one pending timer, got %d", clock.PendingTimers())
	}

	if state.Mode != UserDriven {
		t.Fatal("Resumed although every end restarted the quiet period")
	}

	clock.Step(1500 * time.Millisecond)

	if state.Mode != Auto {
		t.Errorf("Mode = %s, want auto", state.Mode)
	}
}

func TestArbiterStop(t *testing.T) {
	a, state, clock := newTestArbiter()

	a.InteractStart()
	a.InteractEnd()
	a.Stop()
	clock.Step(5 * time.Second)

	if state.Mode != UserDriven {
		t.Error("Stopped arbiter still resumed")
	}

	if clock.PendingTimers() != 0 {
		t.Errorf("Expected no pending timers, got %d", clock.PendingTimers())
	}
}

func TestArbiterSetDelay(t *testing.T) {
	a, state, clock := newTestArbiter()
	a.SetDelay(500 * time.Millisecond)
	a.SetDelay(0) // ignored

	a.InteractStart()
	a.InteractEnd()
	clock.Step(500 * time.Millisecond)

	if state.Mode != Auto {
		t.Errorf("Mode = %s, want auto after custom delay", state.Mode)
	}
}
