// ABOUTME: Tests for the terminal strip surface
// ABOUTME: Covers layout measurement, rounding, clamping, hit-testing, spring scrolls and rendering

package tui

import (
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"showreel/config"
	"showreel/marquee"
	"showreel/media"
)

// testTrack builds a track of n distinct items, all of one size
func testTrack(t *testing.T, n int, size media.SizeClass) marquee.Track {
	t.Helper()

	items := make([]media.Item, n)
	for i := range items {
		items[i] = media.Item{
			ID:      string(rune('a' + i)),
			Title:   "Estate Tour " + string(rune('A'+i)),
			VideoID: "ysz5S6PUM-U",
			Size:    size,
		}
	}

	track, err := marquee.BuildTrack(items)
	if err != nil {
		t.Fatal(err)
	}

	return track
}

// newTestStrip lays out 4 long cards (set width 1680) on a 60 column viewport
func newTestStrip(t *testing.T) *Strip {
	t.Helper()

	s := NewStrip(config.DefaultConfig().Display)
	s.Layout(testTrack(t, 4, media.Long))
	s.SetViewportColumns(60)

	return s
}

func TestStripUnmeasuredUntilSized(t *testing.T) {
	s := NewStrip(config.DefaultConfig().Display)
	s.Layout(testTrack(t, 4, media.Long))

	if w := s.ScrollWidth(); w != 0 {
		t.Errorf("ScrollWidth() before sizing = %v, want 0", w)
	}

	s.SetViewportColumns(60)

	if w := s.ScrollWidth(); w != 16*420 {
		t.Errorf("ScrollWidth() = %v, want %v", w, 16*420)
	}
}

func TestStripRoundsAndClamps(t *testing.T) {
	s := newTestStrip(t)
	maxOffset := 16*420.0 - 600

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"rounds down", 1234.4, 1234},
		{"rounds up", 1234.6, 1235},
		{"clamps at zero", -5, 0},
		{"clamps at end", 1e9, maxOffset},
		{"positive infinity", math.Inf(1), maxOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetScrollLeft(tt.in)

			if got := s.ScrollLeft(); got != tt.want {
				t.Errorf("ScrollLeft() = %v, want %v", got, tt.want)
			}
		})
	}

	s.SetScrollLeft(500)
	s.SetScrollLeft(math.NaN())

	if got := s.ScrollLeft(); got != 500 {
		t.Errorf("NaN moved the offset to %v", got)
	}
}

func TestStripCardWidthBySize(t *testing.T) {
	s := NewStrip(config.DefaultConfig().Display)

	if _, ok := s.CardWidth(); ok {
		t.Error("CardWidth() reported a card on an empty strip")
	}

	s.Layout(testTrack(t, 2, media.Short))

	if w, ok := s.CardWidth(); !ok || w != 200 {
		t.Errorf("CardWidth() = %v, %v; want 200, true", w, ok)
	}
}

func TestStripCardAt(t *testing.T) {
	s := newTestStrip(t)

	tests := []struct {
		name   string
		offset float64
		col    int
		want   int
		wantOK bool
	}{
		{"first column", 0, 0, 0, true},
		{"last column of first card", 0, 39, 0, true},
		{"gap", 0, 40, 0, false},
		{"second card", 0, 42, 1, true},
		{"scrolled to card start", 415, 0, 1, true},
		{"left of viewport", 0, -1, 0, false},
		{"right of viewport", 0, 60, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetScrollLeft(tt.offset)

			got, ok := s.CardAt(tt.col)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("CardAt(%d) = %d, %v; want %d, %v", tt.col, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStripCenterCard(t *testing.T) {
	s := newTestStrip(t)
	s.SetScrollLeft(0)

	// Middle column 30 lies in card 0 (columns 0-39)
	if i, ok := s.CenterCard(); !ok || i != 0 {
		t.Errorf("CenterCard() = %d, %v; want 0, true", i, ok)
	}

	// Middle column lands in the gap: nearest card wins
	s.SetScrollLeft(100)

	if i, ok := s.CenterCard(); !ok || i != 0 {
		t.Errorf("CenterCard() over a gap = %d, %v; want 0, true", i, ok)
	}
}

func TestStripSmoothScrollConverges(t *testing.T) {
	s := newTestStrip(t)
	s.SetScrollLeft(1000)
	s.SmoothScrollTo(1420)

	if !s.Animating() {
		t.Fatal("Expected an animation in progress")
	}

	prev := s.ScrollLeft()

	for i := 0; i < 300 && s.Animating(); i++ {
		s.Animate()

		cur := s.ScrollLeft()
		if cur < prev || cur > 1420 {
			t.Fatalf("Frame %d: offset %v not moving monotonically towards 1420 (prev %v)", i, cur, prev)
		}

		prev = cur
	}

	if s.Animating() {
		t.Fatal("Animation did not settle within 300 frames")
	}

	if s.ScrollLeft() != 1420 {
		t.Errorf("Settled at %v, want 1420", s.ScrollLeft())
	}
}

func TestStripSetScrollLeftCancelsAnimation(t *testing.T) {
	s := newTestStrip(t)
	s.SmoothScrollTo(2000)
	s.Animate()
	s.SetScrollLeft(300)

	if s.Animating() {
		t.Error("SetScrollLeft did not cancel the animation")
	}

	s.Animate()

	if s.ScrollLeft() != 300 {
		t.Errorf("ScrollLeft() = %v, want 300", s.ScrollLeft())
	}
}

func TestStripLayoutKeepsOffset(t *testing.T) {
	s := newTestStrip(t)
	s.SetScrollLeft(2000)

	s.Layout(testTrack(t, 4, media.Long))

	if s.ScrollLeft() != 2000 {
		t.Errorf("Re-layout moved the offset to %v", s.ScrollLeft())
	}

	// 2 short cards: content 8*220 = 1760, max offset 1160
	s.Layout(testTrack(t, 2, media.Short))

	if s.ScrollLeft() != 1160 {
		t.Errorf("Shrinking layout left offset at %v, want 1160", s.ScrollLeft())
	}
}

func TestStripWindow(t *testing.T) {
	s := newTestStrip(t)

	tests := []struct {
		name   string
		offset float64
		want   []cardSpan
	}{
		{"aligned on second card", 415, []cardSpan{
			{index: 1, col: 0, skip: 0, width: 40, full: 40},
			{index: 2, col: 42, skip: 0, width: 18, full: 40},
		}},
		{"first card clipped", 100, []cardSpan{
			{index: 0, col: 0, skip: 10, width: 30, full: 40},
			{index: 1, col: 32, skip: 0, width: 28, full: 40},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetScrollLeft(tt.offset)

			if diff := cmp.Diff(tt.want, s.window(), cmp.AllowUnexported(cardSpan{})); diff != "" {
				t.Errorf("window() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderStripFillsViewport(t *testing.T) {
	s := newTestStrip(t)

	for _, offset := range []float64{0, 100, 415, 3333} {
		s.SetScrollLeft(offset)

		lines := renderStrip(s, 7, 1, true)
		if len(lines) != 7 {
			t.Fatalf("Expected 7 lines, got %d", len(lines))
		}

		for i, line := range lines {
			if w := lipgloss.Width(line); w != 60 {
				t.Errorf("Offset %v line %d has width %d, want 60", offset, i, w)
			}
		}
	}
}

func TestStripDrivenByCarousel(t *testing.T) {
	const frameStep = time.Second / 60

	clock := marquee.NewFrameClock(time.Unix(0, 0))
	s := NewStrip(config.DefaultConfig().Display)
	c := marquee.New(s, clock, clock, marquee.DefaultOptions())

	items := make([]media.Item, 4)
	for i := range items {
		items[i] = media.Item{ID: string(rune('a' + i)), Title: "Tour", VideoID: "ysz5S6PUM-U", Size: media.Long}
	}

	if err := c.Mount(items, marquee.Left, "Tours"); err != nil {
		t.Fatal(err)
	}

	// Not sized yet: the loop waits for a measurable layout
	clock.Step(frameStep)

	if s.ScrollLeft() != 0 || c.State().SetWidth != 0 {
		t.Fatalf("Loop acted before the strip was sized: offset %v state %+v", s.ScrollLeft(), c.State())
	}

	s.SetViewportColumns(60)
	clock.Step(frameStep)

	if s.ScrollLeft() != 1680 {
		t.Fatalf("Initial offset = %v, want 1680", s.ScrollLeft())
	}

	for range 1000 {
		clock.Step(frameStep)
	}

	// Rounded surface writes never feed back into the position in auto mode
	want := 1680 + 600.0
	if got := c.State().Position; math.Abs(got-want) > 1e-6 {
		t.Errorf("Position = %v, want %v", got, want)
	}

	if s.ScrollLeft() != math.Round(c.State().Position) {
		t.Errorf("Surface %v is not the rounded position %v", s.ScrollLeft(), c.State().Position)
	}
}
