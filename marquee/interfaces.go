// ABOUTME: Environment contracts the marquee engine consumes
// ABOUTME: Frame scheduling, cancelable delays and the scrollable rendering surface

package marquee

import "time"

// FrameID identifies a requested frame callback
type FrameID uint64

// FrameScheduler invokes a callback once on a later display frame
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Timer is a pending delayed callback
type Timer interface {
	// Stop prevents the callback from running. Returns false if it already ran or was stopped.
	Stop() bool
}

// Delayer schedules a callback after a delay
type Delayer interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Surface is the scrollable strip the track is rendered onto.
// Offsets are along the scroll axis; the surface may round what it stores.
type Surface interface {
	// Layout materializes the track on the surface; ScrollWidth reflects it afterwards
	Layout(track Track)
	// ScrollLeft returns the current (possibly rounded) offset
	ScrollLeft() float64
	// SetScrollLeft jumps to an offset, interrupting any animated scroll
	SetScrollLeft(x float64)
	// SmoothScrollTo starts an animated scroll towards an offset
	SmoothScrollTo(x float64)
	// ScrollWidth returns the total content width, 0 while layout is unmeasured
	ScrollWidth() float64
	// CardWidth returns the rendered width of the first card, false if none is mounted
	CardWidth() (float64, bool)
}
