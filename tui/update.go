// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Maps frames, keys and mouse input onto the carousels' interaction signals

package tui

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"showreel/config"
	"showreel/marquee"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		for _, r := range m.rows {
			r.strip.SetViewportColumns(m.stripColumns())
			r.warning = m.layoutWarning(r)
		}

		return m, nil

	case frameMsg:
		m.handleFrame(time.Time(msg))

		return m, m.tick()

	case fileChangeMsg:
		return m, m.handleFileChange(msg)

	case catalogLoadedMsg:
		if msg.err != nil {
			m.setStatusMsg(fmt.Sprintf("Error reloading catalog: %v", msg.err))
			m.debugf("[TUI] Catalog reload failed: %v", msg.err)

			return m, nil
		}

		m.setCatalog(msg.catalog)
		m.setStatusMsg("Catalog reloaded")

		return m, nil

	case configLoadedMsg:
		if msg.err != nil {
			m.setStatusMsg(fmt.Sprintf("Error reloading config: %v", msg.err))
			m.debugf("[TUI] Config reload failed: %v", msg.err)

			return m, nil
		}

		m.sharedConfig.Update(msg.cfg)
		m.applyConfig(msg.cfg)
		m.setStatusMsg("Config reloaded")

		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)

		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m.handleQuitKey()
		}

		if m.modal != nil {
			if key.Matches(msg, keys.Close) {
				m.modal = nil
			}

			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Tab):
			m.handleTabKey()

		case key.Matches(msg, keys.Up):
			m.handleUpKey()

		case key.Matches(msg, keys.Down):
			m.handleDownKey()

		case key.Matches(msg, keys.NudgeLeft):
			m.handleLeftKey()

		case key.Matches(msg, keys.NudgeRight):
			m.handleRightKey()

		case key.Matches(msg, keys.Select):
			m.selectCenterCard()

		case key.Matches(msg, keys.Reset):
			if m.focusedPanel == panelParams {
				m.params.ResetToDefaults(config.DefaultConfig())
				m.syncConfigFromParams()
				m.setStatusMsg("Parameters reset to defaults")
			}
		}
	}

	return m, nil
}

// handleFrame runs one display frame: scroll animations first, then the engine
func (m *model) handleFrame(now time.Time) {
	m.frames++

	for _, r := range m.rows {
		r.strip.Animate()
	}

	m.clock.Advance(now)

	// Pick up config changes from other goroutines about once per second
	if m.frames%max(m.applied.Display.FPS, 1) == 0 {
		m.syncSharedConfig()
	}
}

// handleFileChange reloads whichever watched file changed and keeps watching
func (m *model) handleFileChange(msg fileChangeMsg) tea.Cmd {
	cmds := []tea.Cmd{}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}

	switch {
	case m.watcher != nil && m.watcher.matches(msg.path, m.catalogPath) && m.loadCatalog != nil:
		m.debugf("[TUI] Catalog changed: %s", msg.path)
		cmds = append(cmds, reloadCatalog(m.loadCatalog, m.catalogPath))
	case m.watcher != nil && m.watcher.matches(msg.path, m.configPath):
		m.debugf("[TUI] Config changed: %s", msg.path)
		cmds = append(cmds, reloadConfig(m.configPath))
	}

	return tea.Batch(cmds...)
}

// handleQuitKey handles the quit key press
func (m *model) handleQuitKey() (model, tea.Cmd) {
	m.quitting = true

	for _, r := range m.rows {
		r.carousel.Unmount()
	}

	// Save config on quit
	if m.saveOnQuit && m.saveConfig != nil {
		if err := m.saveConfig(m.configPath, m.sharedConfig.Get()); err != nil {
			m.debugf("[TUI] Failed to save config on quit: %v", err)
			// Continue anyway - don't block quit on config save failure
		}
	}

	return *m, tea.Quit
}

// handleTabKey handles panel switching
func (m *model) handleTabKey() {
	if m.focusedPanel == panelParams {
		m.focusedPanel = panelRows
	} else {
		m.focusedPanel = panelParams
	}
}

// handleUpKey handles Up/k key press (context-aware navigation)
func (m *model) handleUpKey() {
	if m.focusedPanel == panelParams {
		m.params.SelectPrevious()

		return
	}

	if m.focusedRow > 0 {
		m.focusedRow--
	}
}

// handleDownKey handles Down/j key press (context-aware navigation)
func (m *model) handleDownKey() {
	if m.focusedPanel == panelParams {
		m.params.SelectNext()

		return
	}

	if m.focusedRow < len(m.rows)-1 {
		m.focusedRow++
	}
}

// handleLeftKey nudges the focused row, or decreases the selected parameter
func (m *model) handleLeftKey() {
	if m.focusedPanel == panelParams {
		if m.params.Decrease() {
			m.syncConfigFromParams()
		}

		return
	}

	if r := m.focusedCarousel(); r != nil {
		r.carousel.Nudge(marquee.Left)
	}
}

// handleRightKey nudges the focused row, or increases the selected parameter
func (m *model) handleRightKey() {
	if m.focusedPanel == panelParams {
		if m.params.Increase() {
			m.syncConfigFromParams()
		}

		return
	}

	if r := m.focusedCarousel(); r != nil {
		r.carousel.Nudge(marquee.Right)
	}
}

// selectCenterCard opens the card in the middle of the focused row
func (m *model) selectCenterCard() {
	r := m.focusedCarousel()
	if r == nil {
		return
	}

	if i, ok := r.strip.CenterCard(); ok {
		m.openCard(r, i)
	}
}

// openCard selects a track index on a row and shows the player modal
func (m *model) openCard(r *row, trackIndex int) {
	it, ok := r.carousel.Select(trackIndex)
	if !ok {
		return
	}

	m.modal = &it
}

func (m *model) focusedCarousel() *row {
	if m.focusedRow < 0 || m.focusedRow >= len(m.rows) {
		return nil
	}

	return m.rows[m.focusedRow]
}

// handleMouse maps pointer activity onto interaction signals.
// Hovering a strip or pressing on it suspends autoplay; leaving or releasing starts the
// resume countdown. Drags scroll the strip directly, clicks without movement open a card.
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.modal != nil {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.modal = nil
		}

		return
	}

	idx, onStrip := m.rowAt(msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp, msg.Button == tea.MouseButtonWheelLeft,
		msg.Button == tea.MouseButtonWheelDown, msg.Button == tea.MouseButtonWheelRight:
		if onStrip {
			m.handleWheel(idx, msg.Button)
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !onStrip {
			return
		}

		m.focusedRow = idx
		m.rows[idx].carousel.InteractStart()
		m.drag = &dragState{row: idx, lastX: msg.X}

	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		r := m.rows[m.drag.row]
		dx := msg.X - m.drag.lastX

		if dx != 0 {
			r.strip.SetScrollLeft(r.strip.ScrollLeft() - float64(dx)*m.applied.Display.CellWidth)
			m.drag.lastX = msg.X
			m.drag.moved = true
		}

	case msg.Action == tea.MouseActionRelease && m.drag != nil:
		d := m.drag
		m.drag = nil
		r := m.rows[d.row]

		if !d.moved && onStrip && idx == d.row {
			if i, ok := r.strip.CardAt(msg.X - stripLeft); ok {
				m.openCard(r, i)
			}
		}

		// A strip still under the pointer stays suspended until the pointer leaves
		if m.hoverRow != d.row {
			r.carousel.InteractEnd()
		}

	case msg.Action == tea.MouseActionMotion:
		m.updateHover(idx, onStrip)
	}
}

// updateHover signals pointer enter/leave when the hovered strip changes
func (m *model) updateHover(idx int, onStrip bool) {
	next := -1
	if onStrip {
		next = idx
	}

	if next == m.hoverRow {
		return
	}

	if m.hoverRow >= 0 && m.hoverRow < len(m.rows) {
		m.rows[m.hoverRow].carousel.InteractEnd()
	}

	if next >= 0 {
		m.rows[next].carousel.InteractStart()
	}

	m.hoverRow = next
}

// handleWheel scrolls a strip like a touch move. A hovered strip stays suspended
// until the pointer leaves it.
func (m *model) handleWheel(idx int, button tea.MouseButton) {
	r := m.rows[idx]
	step := wheelColumns * m.applied.Display.CellWidth

	if button == tea.MouseButtonWheelUp || button == tea.MouseButtonWheelLeft {
		step = -step
	}

	r.carousel.InteractStart()
	r.strip.SetScrollLeft(r.strip.ScrollLeft() + step)

	if m.hoverRow != idx {
		r.carousel.InteractEnd()
	}
}
