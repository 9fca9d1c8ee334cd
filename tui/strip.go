// ABOUTME: Terminal rendering surface for one marquee row
// ABOUTME: Lays cards out by size class, rounds and clamps offsets, and animates scrolls with a spring

package tui

import (
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"

	"showreel/config"
	"showreel/marquee"
	"showreel/media"
)

// Spring tuning for animated scrolls: critically damped, settles in roughly half a second
const (
	springFrequency = 6.0
	springDamping   = 1.0
	settleDistance  = 0.5 // Offset units considered "arrived"
)

// cardBox is one laid out card along the scroll axis
type cardBox struct {
	start float64
	width float64
	item  media.Item
}

// scrollAnim is an animated scroll in progress
type scrollAnim struct {
	pos    float64
	vel    float64
	target float64
}

// Strip implements marquee.Surface for a horizontal row of cards in the terminal.
// Offsets are stored rounded to whole units and clamped to the scrollable range,
// like a browser's scrollLeft.
type Strip struct {
	display  config.DisplayConfig
	viewport float64 // Visible width in offset units, 0 until the terminal size is known

	cards   []cardBox
	content float64
	offset  float64

	spring harmonica.Spring
	anim   *scrollAnim
}

var _ marquee.Surface = (*Strip)(nil)

// NewStrip creates an empty strip
func NewStrip(display config.DisplayConfig) *Strip {
	return &Strip{
		display: display,
		spring:  harmonica.NewSpring(harmonica.FPS(fpsOrDefault(display.FPS)), springFrequency, springDamping),
	}
}

func fpsOrDefault(fps int) int {
	if fps <= 0 {
		return 60
	}

	return fps
}

// SetDisplay applies new card dimensions. Laid out cards keep their items.
func (s *Strip) SetDisplay(display config.DisplayConfig) {
	s.display = display
	s.spring = harmonica.NewSpring(harmonica.FPS(fpsOrDefault(display.FPS)), springFrequency, springDamping)

	track := make(marquee.Track, len(s.cards))
	for i, c := range s.cards {
		track[i] = c.item
	}

	s.Layout(track)
}

// SetViewportColumns sets the visible width in terminal columns
func (s *Strip) SetViewportColumns(cols int) {
	s.viewport = max(float64(cols), 0) * s.display.CellWidth
	s.offset = s.clamp(s.offset)
}

// ViewportColumns returns the visible width in terminal columns
func (s *Strip) ViewportColumns() int {
	return int(s.viewport / s.display.CellWidth)
}

// Layout places the track's cards left to right, each followed by the card gap.
// The current offset is kept (clamped), as a re-rendered element keeps its scroll position.
func (s *Strip) Layout(track marquee.Track) {
	s.cards = s.cards[:0]
	s.content = 0

	for _, it := range track {
		w := s.cardWidth(it.Size)
		s.cards = append(s.cards, cardBox{start: s.content, width: w, item: it})
		s.content += w + s.display.CardGap
	}

	s.offset = s.clamp(s.offset)
}

func (s *Strip) cardWidth(size media.SizeClass) float64 {
	if size == media.Short {
		return s.display.ShortCardWidth
	}

	return s.display.LongCardWidth
}

// ScrollLeft returns the stored (rounded) offset
func (s *Strip) ScrollLeft() float64 {
	return s.offset
}

// SetScrollLeft jumps to x, cancelling any animated scroll
func (s *Strip) SetScrollLeft(x float64) {
	s.anim = nil
	s.offset = s.clamp(x)
}

// SmoothScrollTo starts a spring animation from the current offset towards x
func (s *Strip) SmoothScrollTo(x float64) {
	s.anim = &scrollAnim{
		pos:    s.offset,
		target: s.clamp(x),
	}
}

// Animating reports whether an animated scroll is in progress
func (s *Strip) Animating() bool {
	return s.anim != nil
}

// Animate advances an animated scroll by one frame
func (s *Strip) Animate() {
	if s.anim == nil {
		return
	}

	a := s.anim
	a.pos, a.vel = s.spring.Update(a.pos, a.vel, a.target)

	if math.Abs(a.pos-a.target) < settleDistance && math.Abs(a.vel) < settleDistance {
		s.offset = math.Round(a.target)
		s.anim = nil

		return
	}

	s.offset = s.clamp(a.pos)
}

// ScrollWidth returns the total content width, or 0 while the strip has no size
func (s *Strip) ScrollWidth() float64 {
	if s.viewport <= 0 {
		return 0
	}

	return s.content
}

// CardWidth returns the first card's width
func (s *Strip) CardWidth() (float64, bool) {
	if len(s.cards) == 0 {
		return 0, false
	}

	return s.cards[0].width, true
}

// CardAt returns the track index of the card under a viewport column.
// Columns over a gap or outside the content return false.
func (s *Strip) CardAt(col int) (int, bool) {
	if col < 0 || s.viewport <= 0 || float64(col)*s.display.CellWidth >= s.viewport {
		return 0, false
	}

	x := s.offset + (float64(col)+0.5)*s.display.CellWidth

	// First card that ends after x
	i := sort.Search(len(s.cards), func(i int) bool {
		return s.cards[i].start+s.cards[i].width > x
	})

	if i == len(s.cards) || x < s.cards[i].start {
		return 0, false
	}

	return i, true
}

// CenterCard returns the track index of the card nearest the middle of the viewport
func (s *Strip) CenterCard() (int, bool) {
	cols := s.ViewportColumns()
	mid := cols / 2

	for d := 0; d <= mid; d++ {
		if i, ok := s.CardAt(mid - d); ok {
			return i, true
		}

		if i, ok := s.CardAt(mid + d); ok {
			return i, true
		}
	}

	return 0, false
}

func (s *Strip) clamp(x float64) float64 {
	if math.IsNaN(x) {
		return s.offset
	}

	limit := s.content - s.viewport
	if s.viewport <= 0 {
		limit = s.content
	}

	return math.Round(math.Max(0, math.Min(x, math.Max(limit, 0))))
}
