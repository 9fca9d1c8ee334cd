// ABOUTME: Manual nudge controller for explicit scroll-left/right buttons
// ABOUTME: Moves one card width through the arbiter so autoplay does not fight the animation

package marquee

import "go.uber.org/zap"

// NudgeAmount returns how far one nudge moves: the first card's width plus the gap,
// or the fallback amount when no card is mounted
func (c *Carousel) NudgeAmount() float64 {
	if w, ok := c.surface.CardWidth(); ok && w > 0 {
		return w + c.opts.NudgeGap
	}

	return c.opts.NudgeFallback
}

// Nudge scrolls one card in dir with an animated scroll.
// Left moves the offset backward, Right moves it forward. A "scroll right" button that
// brings earlier cards into view is Nudge(Left).
// The target is committed to the scroll state before the animation runs, and the
// resume countdown starts right away. No-op when unmounted or not yet measured.
func (c *Carousel) Nudge(dir Direction) {
	if !c.mounted || !c.loop.placed || !c.loop.measure() {
		return
	}

	c.arbiter.InteractStart()

	amount := c.NudgeAmount()
	current := c.surface.ScrollLeft()

	target := current + amount
	if dir == Left {
		target = current - amount
	}

	c.surface.SmoothScrollTo(target)
	c.state.Position = target

	c.log.Debug("carousel nudged",
		zap.String("carousel", c.title),
		zap.Stringer("direction", dir),
		zap.Float64("from", current),
		zap.Float64("to", target))

	c.arbiter.InteractEnd()
}
