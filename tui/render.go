// ABOUTME: Rendering functions for strips, cards, the parameter panel and the player modal
// ABOUTME: Cards are drawn as box-drawing frames clipped to the visible columns

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"showreel/marquee"
	"showreel/media"
)

// Card frame characters
type frame struct {
	tl, tr, bl, br, h, v rune
}

var (
	lightFrame = frame{'╭', '╮', '╰', '╯', '─', '│'}
	heavyFrame = frame{'┏', '┓', '┗', '┛', '━', '┃'}
)

// truncate shortens s to maxLen runes, adding "..." if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:max(maxLen, 0)])
	}

	return string(r[:maxLen-3]) + "..."
}

// wrapWords splits s into at most n lines of width w
func wrapWords(s string, w, n int) []string {
	var lines []string

	line := ""

	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= w:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}

	if line != "" {
		lines = append(lines, line)
	}

	if len(lines) > n {
		lines = lines[:n]
		lines[n-1] = truncate(lines[n-1]+" ...", w)
	}

	for i := range lines {
		lines[i] = truncate(lines[i], w)
	}

	return lines
}

// cardLines draws a full (unclipped) card as rune rows of exactly width columns
func cardLines(it media.Item, width, height int, f frame) [][]rune {
	lines := make([][]rune, height)
	inner := width - 2

	if inner < 1 {
		for i := range lines {
			lines[i] = []rune(strings.Repeat(string(f.v), max(width, 0)))
		}

		return lines
	}

	pad := func(s string) []rune {
		r := []rune(s)
		if len(r) > inner {
			r = r[:inner]
		}

		out := make([]rune, 0, width)
		out = append(out, f.v)
		out = append(out, r...)

		for len(out) < width-1 {
			out = append(out, ' ')
		}

		return append(out, f.v)
	}

	border := func(l, r rune) []rune {
		out := []rune{l}
		for range inner {
			out = append(out, f.h)
		}

		return append(out, r)
	}

	lines[0] = border(f.tl, f.tr)
	lines[height-1] = border(f.bl, f.br)

	body := height - 2
	titleLines := wrapWords(it.Title, inner-2, max(body-1, 1))

	for i := 1; i < height-1; i++ {
		lines[i] = pad("")
	}

	for i, t := range titleLines {
		if 1+i < height-1 {
			lines[1+i] = pad(" " + t)
		}
	}

	if body >= 2 {
		tag := "▶ " + strings.ToUpper(string(it.Size))
		lines[height-2] = pad(" " + truncate(tag, inner-2))
	}

	return lines
}

// renderStrip draws the visible part of a strip as height lines.
// highlight is the track index drawn with a heavy frame, -1 for none.
func renderStrip(s *Strip, height, highlight int, focused bool) []string {
	cols := s.ViewportColumns()
	if cols <= 0 || height < 3 {
		return nil
	}

	rows := make([]strings.Builder, height)
	spans := s.window()
	cursor := 0

	for _, sp := range spans {
		// Rounding can make neighbours share a column; the earlier card keeps it
		if sp.col < cursor {
			sp.skip += cursor - sp.col
			sp.width -= cursor - sp.col
			sp.col = cursor
		}

		if sp.width <= 0 {
			continue
		}

		it := s.cards[sp.index].item

		f := lightFrame
		if sp.index == highlight {
			f = heavyFrame
		}

		card := cardLines(it, sp.full, height, f)
		style := cardStyleFor(it.Size, sp.index == highlight, focused)

		for y := range height {
			if sp.col > cursor {
				rows[y].WriteString(strings.Repeat(" ", sp.col-cursor))
			}

			rows[y].WriteString(style.Render(string(card[y][sp.skip : sp.skip+sp.width])))
		}

		cursor = sp.col + sp.width
	}

	lines := make([]string, height)
	for y := range rows {
		if cursor < cols {
			rows[y].WriteString(strings.Repeat(" ", cols-cursor))
		}

		lines[y] = rows[y].String()
	}

	return lines
}

// renderRowTitle renders the row heading with its direction and engine mode
func renderRowTitle(r *row, focused bool, width int) string {
	arrow := "◀◀"
	if r.dir == marquee.Right {
		arrow = "▶▶"
	}

	title := r.title
	if focused {
		title = "► " + title
	}

	state := r.carousel.State()
	mode := "auto"

	if state.Mode == marquee.UserDriven {
		mode = "paused"
	}

	left := rowTitleStyle.Render(title)
	right := rowInfoStyle.Render(fmt.Sprintf("%s %s", arrow, mode))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

// renderParameters renders the motion parameter panel
func (m model) renderParameters() string {
	var s string

	title := "Motion parameters"
	if m.focusedPanel == panelParams {
		title = "► " + title + " [FOCUSED]"
	}

	s += titleStyle.Render(title) + "\n"

	for i, param := range m.params.All() {
		var value string
		if param.IsInt && param.IntValue != nil {
			value = strconv.Itoa(*param.IntValue)
		} else if !param.IsInt && param.Value != nil {
			value = fmt.Sprintf("%.2f", *param.Value)
		} else {
			value = "N/A"
		}

		prefix := "  "
		if i == m.params.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-22s %8s", prefix, param.Name, value)

		if i == m.params.Selected() && m.focusedPanel == panelParams {
			s += selectedParamStyle.Render(line) + "\n"
		} else {
			s += paramStyle.Render(line) + "\n"
		}
	}

	return s
}

// renderModal renders the player dialog for the selected item
func (m model) renderModal() string {
	it := m.modal

	body := strings.Join([]string{
		modalTitleStyle.Render(it.Title),
		"",
		fmt.Sprintf("Size:   %s", it.Size),
		fmt.Sprintf("Watch:  %s", it.WatchURL()),
		fmt.Sprintf("Embed:  %s", it.EmbedURL()),
		"",
		helpStyle.Render("esc: close"),
	}, "\n")

	return modalStyle.Render(body)
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && m.now().Sub(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	for _, r := range m.rows {
		if r.warning != "" {
			return warningStyle.Width(m.width).Render("⚠ " + r.title + ": " + r.warning)
		}
	}

	cfg := m.localConfig.Marquee

	return statusStyle.Width(m.width).Render(fmt.Sprintf("%d rows | speed %.2f/frame | resume %dms | %d fps",
		len(m.rows), cfg.Speed, cfg.ResumeDelayMS, m.localConfig.Display.FPS))
}

// renderHelp renders the key help line
func (m model) renderHelp() string {
	return m.help.View(keys)
}
