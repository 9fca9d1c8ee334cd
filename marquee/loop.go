// ABOUTME: Per-frame motion loop driving the scroll state
// ABOUTME: Advances in Auto mode and mirrors the surface offset while the user drives

package marquee

import "math"

// motionLoop runs one state transition per display frame until stopped
type motionLoop struct {
	state   *ScrollState
	surface Surface
	frames  FrameScheduler

	frame   FrameID
	running bool
	placed  bool // initial position set once layout was measurable
}

func newMotionLoop(state *ScrollState, surface Surface, frames FrameScheduler) *motionLoop {
	return &motionLoop{
		state:   state,
		surface: surface,
		frames:  frames,
	}
}

// start places the position if the layout is already measured and requests the first frame
func (l *motionLoop) start() {
	if l.running {
		return
	}

	l.running = true

	if l.measure() {
		l.place()
	}

	l.frame = l.frames.RequestFrame(l.tick)
}

// stop cancels the outstanding frame. Safe to call more than once.
func (l *motionLoop) stop() {
	if !l.running {
		return
	}

	l.running = false
	l.frames.CancelFrame(l.frame)
}

func (l *motionLoop) tick() {
	if !l.running {
		return
	}

	l.step()
	l.frame = l.frames.RequestFrame(l.tick)
}

// step performs one frame of work
func (l *motionLoop) step() {
	measured := l.measure()

	if !l.placed {
		if measured {
			l.place()
		}

		return
	}

	if l.state.Mode == UserDriven {
		l.state.Position = l.surface.ScrollLeft()

		return
	}

	if !measured {
		return
	}

	l.surface.SetScrollLeft(l.state.Advance(l.state.Velocity))
}

// measure re-derives the set width from the rendered layout
func (l *motionLoop) measure() bool {
	w := l.surface.ScrollWidth() / TrackRepeat
	if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		l.state.SetWidth = 0

		return false
	}

	l.state.SetWidth = w

	return true
}

// place starts at copy 2 so backward motion is possible immediately.
// A surface that already has an offset (re-mount) keeps it.
func (l *motionLoop) place() {
	if cur := l.surface.ScrollLeft(); cur != 0 {
		l.state.Position = cur
	} else {
		l.state.Position = l.state.SetWidth
		l.surface.SetScrollLeft(l.state.Position)
	}

	l.placed = true
}
