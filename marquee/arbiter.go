// ABOUTME: Interaction arbiter deciding whether autoplay or the user owns the position
// ABOUTME: Hands control back to autoplay after a quiet period since the last interaction end

package marquee

import (
	"time"

	"go.uber.org/zap"
)

// DefaultResumeDelay is the quiet period before autoplay resumes
const DefaultResumeDelay = 2000 * time.Millisecond

// Arbiter is the Auto/UserDriven state machine with a single resume timer
type Arbiter struct {
	state   *ScrollState
	delayer Delayer
	delay   time.Duration
	pending Timer
	gen     uint64 // invalidates a resume callback that was already queued when canceled
	log     *zap.Logger
}

// NewArbiter creates an arbiter that flips state.Mode. It starts in Auto.
func NewArbiter(state *ScrollState, delayer Delayer, delay time.Duration, log *zap.Logger) *Arbiter {
	if delay <= 0 {
		delay = DefaultResumeDelay
	}

	if log == nil {
		log = zap.NewNop()
	}

	state.Mode = Auto

	return &Arbiter{
		state:   state,
		delayer: delayer,
		delay:   delay,
		log:     log,
	}
}

// Mode returns the current owner of the position
func (a *Arbiter) Mode() Mode {
	return a.state.Mode
}

// Pending reports whether a resume to Auto is scheduled
func (a *Arbiter) Pending() bool {
	return a.pending != nil
}

// SetDelay changes the quiet period used by the next InteractEnd
func (a *Arbiter) SetDelay(d time.Duration) {
	if d > 0 {
		a.delay = d
	}
}

// InteractStart hands the position to the user and cancels any pending resume
func (a *Arbiter) InteractStart() {
	a.cancelPending()

	if a.state.Mode != UserDriven {
		a.state.Mode = UserDriven
		a.log.Debug("marquee mode change", zap.Stringer("mode", UserDriven))
	}
}

// InteractEnd (re)starts the quiet period after which autoplay resumes
func (a *Arbiter) InteractEnd() {
	a.cancelPending()

	gen := a.gen
	a.pending = a.delayer.AfterFunc(a.delay, func() {
		if gen != a.gen {
			return
		}

		a.resume()
	})
}

// Stop cancels the pending resume without changing the mode
func (a *Arbiter) Stop() {
	a.cancelPending()
}

func (a *Arbiter) resume() {
	a.pending = nil

	if a.state.Mode != Auto {
		a.state.Mode = Auto
		a.log.Debug("marquee mode change", zap.Stringer("mode", Auto), zap.Float64("position", a.state.Position))
	}
}

func (a *Arbiter) cancelPending() {
	a.gen++

	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
}
