// ABOUTME: Scroll state and the wrap-around position model
// ABOUTME: Keeps the authoritative float offset inside the buffered middle of the track

package marquee

import "math"

// Mode says who owns the scroll position this frame
type Mode int

// Scroll ownership modes
const (
	Auto       Mode = iota // Engine advances at fixed velocity
	UserDriven             // Pointer, touch or a nudge owns the position; engine only observes
)

// String returns the mode name
func (m Mode) String() string {
	if m == UserDriven {
		return "user-driven"
	}

	return "auto"
}

// Wrap thresholds in units of one set width
const (
	wrapForwardAt   = 3.0 // re-enter at copy 2 when reaching copy 4
	wrapBackwardAt  = 0.5 // re-enter half way through copy 3 when backing into copy 1
	reenterForward  = 1.0
	reenterBackward = 2.5
)

// ScrollState is the mutable core shared by the motion loop and input handlers.
// Position is the source of truth; the surface offset is a projection of it.
type ScrollState struct {
	Position float64 // Authoritative offset along the scroll axis
	SetWidth float64 // Width of one copy of the item list, 0 while unmeasured
	Mode     Mode
	Velocity float64 // Signed offset change per frame in Auto mode
}

// Measured reports whether SetWidth is usable for wrap arithmetic
func (s ScrollState) Measured() bool {
	return s.SetWidth > 0 && !math.IsInf(s.SetWidth, 0) && !math.IsNaN(s.SetWidth)
}

// Advance moves the position by delta, remaps it across the wrap thresholds,
// commits it and returns it. It is a no-op while the layout is unmeasured.
func (s *ScrollState) Advance(delta float64) float64 {
	if !s.Measured() {
		return s.Position
	}

	w := s.SetWidth
	candidate := s.Position + delta

	switch {
	case candidate >= wrapForwardAt*w:
		candidate = reenterForward*w + (candidate - wrapForwardAt*w)
	case candidate <= wrapBackwardAt*w:
		candidate = reenterBackward*w - (wrapBackwardAt*w - candidate)
	}

	s.Position = candidate

	return candidate
}

// Offset returns the position within its copy, in [0, SetWidth)
func (s *ScrollState) Offset() float64 {
	if !s.Measured() {
		return 0
	}

	off := math.Mod(s.Position, s.SetWidth)
	if off < 0 {
		off += s.SetWidth
	}

	return off
}
