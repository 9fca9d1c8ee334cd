// ABOUTME: Cooperative frame clock hosting frame callbacks and delayed callbacks
// ABOUTME: Everything runs inside Advance on the caller's goroutine, one frame at a time

package marquee

import (
	"sort"
	"time"
)

// FrameClock implements FrameScheduler and Delayer for a single UI goroutine.
// It never starts goroutines; the host calls Advance once per display frame.
type FrameClock struct {
	now    time.Time
	nextID FrameID
	frames map[FrameID]func()
	order  []FrameID
	timers []*clockTimer
	ticks  int
}

type clockTimer struct {
	clock *FrameClock
	due   time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewFrameClock creates a clock reading start as the current time
func NewFrameClock(start time.Time) *FrameClock {
	return &FrameClock{
		now:    start,
		frames: make(map[FrameID]func()),
	}
}

// Now returns the time of the last Advance
func (c *FrameClock) Now() time.Time {
	return c.now
}

// Ticks returns the number of frames advanced so far
func (c *FrameClock) Ticks() int {
	return c.ticks
}

// RequestFrame runs fn on the next Advance
func (c *FrameClock) RequestFrame(fn func()) FrameID {
	c.nextID++
	c.frames[c.nextID] = fn
	c.order = append(c.order, c.nextID)

	return c.nextID
}

// CancelFrame drops a requested frame callback
func (c *FrameClock) CancelFrame(id FrameID) {
	delete(c.frames, id)
}

// AfterFunc runs fn during the first Advance at or after now+d.
// A timer created while timers are running never runs in the same Advance.
func (c *FrameClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.nextID++

	t := &clockTimer{
		clock: c,
		due:   c.now.Add(d),
		seq:   uint64(c.nextID),
		fn:    fn,
	}
	c.timers = append(c.timers, t)

	return t
}

// PendingFrames returns the number of frame callbacks waiting to run
func (c *FrameClock) PendingFrames() int {
	return len(c.frames)
}

// PendingTimers returns the number of delayed callbacks waiting to run
func (c *FrameClock) PendingTimers() int {
	return len(c.timers)
}

// Advance moves the clock to now, runs due timers in due order, then runs the
// frame callbacks requested before this call. Callbacks requested while running
// wait for the next Advance. Time never moves backwards.
func (c *FrameClock) Advance(now time.Time) {
	if now.After(c.now) {
		c.now = now
	}

	c.ticks++
	c.runTimers()

	order := c.order
	c.order = nil

	for _, id := range order {
		fn, ok := c.frames[id]
		if !ok {
			continue
		}

		delete(c.frames, id)
		fn()
	}
}

// Step advances the clock by d
func (c *FrameClock) Step(d time.Duration) {
	c.Advance(c.now.Add(d))
}

// runTimers runs the timers that were due when it started. Timers created by a
// callback wait for the next Advance, even with a zero delay.
func (c *FrameClock) runTimers() {
	for _, t := range c.dueTimers(uint64(c.nextID)) {
		if t.done {
			continue
		}

		t.done = true
		c.removeTimer(t)
		t.fn()
	}
}

// dueTimers returns the timers due now and created up to seq, earliest first
func (c *FrameClock) dueTimers(seq uint64) []*clockTimer {
	var due []*clockTimer

	for _, t := range c.timers {
		if t.seq <= seq && !t.due.After(c.now) {
			due = append(due, t)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}

		return due[i].due.Before(due[j].due)
	})

	return due
}

func (c *FrameClock) removeTimer(t *clockTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)

			return
		}
	}
}

// Stop cancels the timer
func (t *clockTimer) Stop() bool {
	if t.done {
		return false
	}

	t.done = true
	t.clock.removeTimer(t)

	return true
}
