// ABOUTME: Carousel ties the marquee engine together behind mount/unmount
// ABOUTME: Owns one scroll state, its motion loop and arbiter, and emits selected items

// Package marquee implements an endlessly scrolling strip of media cards.
//
// A Carousel repeats its items four times on a Surface and keeps a floating point
// position as the source of truth. A per-frame motion loop advances that position at
// a constant velocity and wraps it between copies so the seam is never visible.
// User input (drag, touch, hover, nudge buttons) takes ownership of the position and
// autoplay resumes after a quiet period. All callbacks are expected to run on one
// goroutine; FrameClock provides such a host.
package marquee

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"showreel/media"
)

// Default motion constants
const (
	DefaultSpeed         = 0.6   // offset units per frame
	DefaultNudgeGap      = 20.0  // gap added to a card width for one nudge
	DefaultNudgeFallback = 300.0 // nudge amount when no card is mounted
)

// Direction is the autoplay travel direction, and the direction of a nudge
type Direction int

// Directions
const (
	Left  Direction = iota // Autoplay: content travels left (offset grows). Nudge: offset shrinks.
	Right                  // Autoplay: content travels right (offset shrinks). Nudge: offset grows.
)

// ParseDirection converts "left"/"right" (case-insensitive, empty means left)
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("unknown direction %q", s)
	}
}

// String returns the direction name
func (d Direction) String() string {
	if d == Right {
		return "right"
	}

	return "left"
}

// velocity returns the signed per-frame velocity for autoplay in this direction
func (d Direction) velocity(speed float64) float64 {
	if d == Right {
		return -speed
	}

	return speed
}

// Options tunes a carousel. Zero values fall back to the defaults.
type Options struct {
	Speed         float64       // Autoplay speed magnitude per frame
	ResumeDelay   time.Duration // Quiet period before autoplay resumes
	NudgeGap      float64       // Added to the card width for one nudge (negative means 0)
	NudgeFallback float64       // Nudge amount when no card is mounted
	Logger        *zap.Logger
	OnSelect      func(media.Item) // Receives the item picked with Select
}

// DefaultOptions returns the stock motion settings
func DefaultOptions() Options {
	return Options{
		Speed:         DefaultSpeed,
		ResumeDelay:   DefaultResumeDelay,
		NudgeGap:      DefaultNudgeGap,
		NudgeFallback: DefaultNudgeFallback,
	}
}

func (o Options) withDefaults() Options {
	if o.Speed <= 0 {
		o.Speed = DefaultSpeed
	}

	if o.ResumeDelay <= 0 {
		o.ResumeDelay = DefaultResumeDelay
	}

	if o.NudgeGap < 0 {
		o.NudgeGap = 0
	}

	if o.NudgeFallback <= 0 {
		o.NudgeFallback = DefaultNudgeFallback
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// Carousel is one mounted marquee strip
type Carousel struct {
	surface Surface
	frames  FrameScheduler
	delayer Delayer
	opts    Options
	log     *zap.Logger

	track     Track
	direction Direction
	title     string
	state     ScrollState
	arbiter   *Arbiter
	loop      *motionLoop
	mounted   bool
}

// New creates an unmounted carousel bound to its environment
func New(surface Surface, frames FrameScheduler, delayer Delayer, opts Options) *Carousel {
	opts = opts.withDefaults()

	return &Carousel{
		surface: surface,
		frames:  frames,
		delayer: delayer,
		opts:    opts,
		log:     opts.Logger,
	}
}

// Mount builds the track, lays it out and starts animating.
// Mounting an already mounted carousel tears the previous mount down first.
// An empty item list is rejected and leaves the carousel as it was.
func (c *Carousel) Mount(items []media.Item, dir Direction, title string) error {
	track, err := BuildTrack(items)
	if err != nil {
		return fmt.Errorf("failed to mount %q: %w", title, err)
	}

	if c.mounted {
		c.Unmount()
	}

	c.track = track
	c.direction = dir
	c.title = title
	c.surface.Layout(track)

	c.state = ScrollState{Velocity: dir.velocity(c.opts.Speed)}
	c.arbiter = NewArbiter(&c.state, c.delayer, c.opts.ResumeDelay, c.log.With(zap.String("carousel", title)))
	c.loop = newMotionLoop(&c.state, c.surface, c.frames)
	c.loop.start()
	c.mounted = true

	c.log.Debug("carousel mounted",
		zap.String("carousel", title),
		zap.Stringer("direction", dir),
		zap.Int("items", len(items)),
		zap.Float64("set_width", c.state.SetWidth))

	return nil
}

// Unmount stops the motion loop and clears the resume timer. Safe to call at any time.
func (c *Carousel) Unmount() {
	if c.loop != nil {
		c.loop.stop()
	}

	if c.arbiter != nil {
		c.arbiter.Stop()
	}

	if c.mounted {
		c.log.Debug("carousel unmounted", zap.String("carousel", c.title))
	}

	c.mounted = false
}

// Configure applies new motion settings without remounting
func (c *Carousel) Configure(opts Options) {
	if opts.Logger == nil {
		opts.Logger = c.log
	}

	if opts.OnSelect == nil {
		opts.OnSelect = c.opts.OnSelect
	}

	c.opts = opts.withDefaults()

	if c.mounted {
		c.state.Velocity = c.direction.velocity(c.opts.Speed)
		c.arbiter.SetDelay(c.opts.ResumeDelay)
	}
}

// InteractStart signals pointer-down/enter or touch-start/move
func (c *Carousel) InteractStart() {
	if c.mounted {
		c.arbiter.InteractStart()
	}
}

// InteractEnd signals pointer-up/leave or touch-end
func (c *Carousel) InteractEnd() {
	if c.mounted {
		c.arbiter.InteractEnd()
	}
}

// Select emits the item at a track index to the OnSelect collaborator
func (c *Carousel) Select(trackIndex int) (media.Item, bool) {
	if !c.mounted || trackIndex < 0 || trackIndex >= len(c.track) {
		return media.Item{}, false
	}

	it := c.track[trackIndex]

	c.log.Debug("carousel item selected", zap.String("carousel", c.title), zap.String("item", it.ID))

	if c.opts.OnSelect != nil {
		c.opts.OnSelect(it)
	}

	return it, true
}

// State returns a copy of the scroll state
func (c *Carousel) State() ScrollState {
	return c.state
}

// Track returns the mounted track
func (c *Carousel) Track() Track {
	return c.track
}

// Title returns the mounted title
func (c *Carousel) Title() string {
	return c.title
}

// Direction returns the mounted autoplay direction
func (c *Carousel) Direction() Direction {
	return c.direction
}

// Mounted reports whether the carousel is animating
func (c *Carousel) Mounted() bool {
	return c.mounted
}

// Options returns the effective motion settings
func (c *Carousel) Options() Options {
	return c.opts
}
