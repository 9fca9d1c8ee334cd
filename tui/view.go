// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function: header, strips, parameters, status and modal

package tui

import (
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const headerText = "SHOWREEL · Cinematic real-estate video"

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		if m.saveOnQuit {
			return "Saving config and exiting...\n"
		}

		return "Bye!\n"
	}

	if m.width == 0 {
		return "Loading showreel...\n"
	}

	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}

	var b strings.Builder

	margin := strings.Repeat(" ", stripLeft)
	height := m.applied.Display.CardHeight

	b.WriteString(margin + titleStyle.Render(headerText) + "\n\n")

	for i, r := range m.rows {
		focused := i == m.focusedRow && m.focusedPanel == panelRows

		highlight := -1
		if focused {
			if c, ok := r.strip.CenterCard(); ok {
				highlight = c
			}
		}

		b.WriteString(margin + renderRowTitle(r, focused, m.stripColumns()) + "\n")

		for _, line := range renderStrip(r.strip, height, highlight, focused) {
			b.WriteString(margin + line + "\n")
		}

		b.WriteString("\n")
	}

	b.WriteString(m.renderParameters())
	b.WriteString("\n" + m.renderStatus() + "\n" + m.renderHelp())

	return b.String()
}
