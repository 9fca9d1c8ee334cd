// ABOUTME: Test double for the scrollable surface
// ABOUTME: Records writes and animated scrolls so tests can count activity

package marquee

import (
	"fmt"

	"showreel/media"
)

// fakeSurface lays every card out at cardWidth with no gaps and applies animated
// scrolls instantly
type fakeSurface struct {
	offset    float64
	cardWidth float64
	width     float64 // overrides the computed width when non-zero
	laidOut   Track
	writes    int
	smooth    []float64
}

func (s *fakeSurface) Layout(track Track) { s.laidOut = track }

func (s *fakeSurface) ScrollLeft() float64 { return s.offset }

func (s *fakeSurface) SetScrollLeft(x float64) {
	s.offset = x
	s.writes++
}

func (s *fakeSurface) SmoothScrollTo(x float64) {
	s.smooth = append(s.smooth, x)
	s.offset = x
}

func (s *fakeSurface) ScrollWidth() float64 {
	if s.width != 0 {
		return s.width
	}

	return s.cardWidth * float64(len(s.laidOut))
}

func (s *fakeSurface) CardWidth() (float64, bool) {
	if len(s.laidOut) == 0 || s.cardWidth == 0 {
		return 0, false
	}

	return s.cardWidth, true
}

// testItems creates n distinct items named A, B, C...
func testItems(n int) []media.Item {
	items := make([]media.Item, n)
	for i := range items {
		name := string(rune('A' + i))
		items[i] = media.Item{
			ID:      name,
			Title:   "Video " + name,
			VideoID: fmt.Sprintf("vid%08d", i),
			Size:    media.Long,
		}
	}

	return items
}
