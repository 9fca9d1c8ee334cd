// ABOUTME: Maps the cards of a strip onto the visible terminal columns
// ABOUTME: Computes which cards are in view and how much of each is clipped at the edges

package tui

import "math"

// cardSpan is the visible part of one card
type cardSpan struct {
	index int // Track index
	col   int // First visible viewport column
	skip  int // Card columns clipped off the left edge
	width int // Visible columns
	full  int // Card width in columns
}

// window returns the visible spans left to right
func (s *Strip) window() []cardSpan {
	cols := s.ViewportColumns()
	if cols <= 0 || len(s.cards) == 0 {
		return nil
	}

	cell := s.display.CellWidth
	right := s.offset + float64(cols)*cell

	var spans []cardSpan

	// Skip cards that end before the viewport starts
	first := 0
	for first < len(s.cards) && s.cards[first].start+s.cards[first].width <= s.offset {
		first++
	}

	for i := first; i < len(s.cards) && s.cards[i].start < right; i++ {
		c := s.cards[i]

		full := int(math.Round(c.width / cell))
		startCol := int(math.Floor((c.start - s.offset) / cell))

		span := cardSpan{index: i, col: startCol, full: full}
		if startCol < 0 {
			span.col = 0
			span.skip = -startCol
		}

		span.width = min(full-span.skip, cols-span.col)
		if span.width <= 0 {
			continue
		}

		spans = append(spans, span)
	}

	return spans
}
