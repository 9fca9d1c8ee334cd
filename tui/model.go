// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model hosting one marquee carousel per catalog row on a shared frame clock

// Package tui provides the interactive terminal showreel: one endlessly scrolling strip of
// video cards per catalog row, driven by the marquee engine at the configured frame rate.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"showreel/config"
	"showreel/marquee"
	"showreel/media"
)

// Panel identifiers
const (
	panelRows   = "rows"
	panelParams = "params"
)

// Layout constants for UI dimensions
const (
	headerHeight    = 2 // Title line plus spacing
	rowTitleHeight  = 1 // Row heading above each strip
	rowSpacing      = 1 // Blank line after each strip
	stripLeft       = 1 // Columns left of every strip
	minStripColumns = 10
)

// Interaction constants
const (
	wheelColumns          = 4               // Columns scrolled per wheel notch
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
)

// frameMsg drives one display frame
type frameMsg time.Time

// catalogLoadedMsg carries a reloaded catalog
type catalogLoadedMsg struct {
	catalog media.Catalog
	err     error
}

// configLoadedMsg carries a reloaded config file
type configLoadedMsg struct {
	cfg config.Config
	err error
}

// row is one carousel and the strip it renders on
type row struct {
	title    string
	dir      marquee.Direction
	items    []media.Item
	strip    *Strip
	carousel *marquee.Carousel
	warning  string // Layout or mount problem shown in the status bar
}

// dragState tracks a pointer drag on a strip
type dragState struct {
	row   int
	lastX int
	moved bool
}

// model holds the TUI state
type model struct {
	// Dependencies
	sharedConfig ConfigProvider
	configPath   string
	loadCatalog  CatalogLoader
	saveConfig   ConfigSaver
	log          *zap.Logger
	debugf       func(string, ...interface{})
	now          func() time.Time

	// Configuration
	localConfig *config.Config // Params point into this (pointer so addresses stay valid)
	applied     config.Config  // Last config pushed to the carousels
	params      *ParamManager
	catalogPath string
	saveOnQuit  bool
	watcher     *fileWatcher

	// Engine
	clock  *marquee.FrameClock
	rows   []*row
	frames int

	// UI state
	width        int
	height       int
	quitting     bool
	focusedPanel string
	focusedRow   int
	hoverRow     int // -1 when the pointer is over no strip
	drag         *dragState
	modal        *media.Item
	statusMsg    string
	statusMsgAge time.Time
	help         help.Model
}

// Key bindings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NudgeLeft  key.Binding
	NudgeRight key.Binding
	Select     key.Binding
	Close      key.Binding
	Tab        key.Binding
	Reset      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous row"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next row"),
	),
	NudgeLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "scroll left"),
	),
	NudgeRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "scroll right"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "play"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset params"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NudgeLeft, k.NudgeRight, k.Select, k.Tab, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NudgeLeft, k.NudgeRight},
		{k.Select, k.Close, k.Tab, k.Reset, k.Quit},
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	rowTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	rowInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	longCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	shortCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180"))

	highlightCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(1, 3)
)

// cardStyleFor picks the card color
func cardStyleFor(size media.SizeClass, highlighted, focused bool) lipgloss.Style {
	switch {
	case highlighted && focused:
		return highlightCardStyle
	case size == media.Short:
		return shortCardStyle
	default:
		return longCardStyle
	}
}

// Run starts the TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	m, err := initModel(opts, deps)
	if err != nil {
		return err
	}

	if opts.Watch {
		fw, err := newFileWatcher(m.debugf, opts.CatalogPath, deps.ConfigPath)
		if err != nil {
			return err
		}

		defer func() {
			_ = fw.Close()
		}()

		m.watcher = fw
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// NewModel creates a model for a host that runs its own program (an SSH session)
//
//nolint:ireturn // Bubble Tea hosts take tea.Model
func NewModel(opts Options, deps Dependencies) (tea.Model, error) {
	return initModel(opts, deps)
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) (model, error) {
	if err := opts.Catalog.Validate(); err != nil {
		return model{}, fmt.Errorf("failed to start showreel: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := deps.Config.Get()

	// Allocate localConfig on heap so pointers remain valid
	localConfig := &cfg

	m := model{
		sharedConfig: deps.Config,
		configPath:   deps.ConfigPath,
		loadCatalog:  deps.LoadCatalog,
		saveConfig:   deps.SaveConfig,
		log:          logger,
		debugf:       logger.Sugar().Debugf,
		now:          time.Now,

		localConfig: localConfig,
		applied:     cfg,
		params:      NewParamManager(motionParams(localConfig)),
		catalogPath: opts.CatalogPath,
		saveOnQuit:  opts.SaveOnQuit,

		clock:        marquee.NewFrameClock(time.Now()),
		focusedPanel: panelRows,
		hoverRow:     -1,
		help:         help.New(),
	}

	m.setCatalog(opts.Catalog)

	return m, nil
}

// Init starts the frame ticker and the file watcher
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}

	return tea.Batch(cmds...)
}

// tick schedules the next frame at the configured rate
func (m model) tick() tea.Cmd {
	return tea.Tick(m.localConfig.Display.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// marqueeOptions converts the config into carousel options
func (m *model) marqueeOptions(cfg config.Config) marquee.Options {
	debugf := m.debugf

	return marquee.Options{
		Speed:         cfg.Marquee.Speed,
		ResumeDelay:   cfg.Marquee.ResumeDelay(),
		NudgeGap:      cfg.Marquee.NudgeGap,
		NudgeFallback: cfg.Marquee.DefaultNudge,
		Logger:        m.log,
		OnSelect: func(it media.Item) {
			debugf("[TUI] Selected %s (%s)", it.Title, it.VideoID)
		},
	}
}

// setCatalog replaces every row with the catalog's rows and mounts them
func (m *model) setCatalog(c media.Catalog) {
	for _, r := range m.rows {
		r.carousel.Unmount()
	}

	m.rows = nil
	m.hoverRow = -1
	m.drag = nil

	for _, cr := range c.Rows {
		dir, err := marquee.ParseDirection(cr.Direction)
		if err != nil {
			m.debugf("[TUI] Row %q: %v, using left", cr.Title, err)
		}

		strip := NewStrip(m.applied.Display)

		r := &row{
			title:    cr.Title,
			dir:      dir,
			items:    cr.Items,
			strip:    strip,
			carousel: marquee.New(strip, m.clock, m.clock, m.marqueeOptions(m.applied)),
		}

		m.rows = append(m.rows, r)
		m.mountRow(r)
	}

	if m.focusedRow >= len(m.rows) {
		m.focusedRow = max(len(m.rows)-1, 0)
	}

	m.debugf("[TUI] Catalog set: %d rows", len(m.rows))
}

// mountRow sizes a row's strip and (re)mounts its carousel
func (m *model) mountRow(r *row) {
	r.strip.SetDisplay(m.applied.Display)
	r.strip.SetViewportColumns(m.stripColumns())
	r.warning = ""

	if err := r.carousel.Mount(r.items, r.dir, r.title); err != nil {
		r.warning = err.Error()
		m.debugf("[TUI] Mount failed: %v", err)

		return
	}

	r.warning = m.layoutWarning(r)
}

// layoutWarning reports a row whose cards leave too little margin for seamless wrapping
func (m *model) layoutWarning(r *row) string {
	if m.width == 0 {
		return ""
	}

	d := m.applied.Display

	widest := d.ShortCardWidth
	for _, it := range r.items {
		if it.Size != media.Short {
			widest = max(widest, d.LongCardWidth)
		}
	}

	viewport := float64(m.stripColumns()) * d.CellWidth
	if err := d.CheckRowLayout(len(r.items), widest, viewport); err != nil {
		return err.Error()
	}

	return ""
}

// applyConfig pushes cfg to every carousel. Display changes re-lay out the strips.
func (m *model) applyConfig(cfg config.Config) {
	prev := m.applied
	m.applied = cfg
	*m.localConfig = cfg

	if cfg.Display != prev.Display {
		for _, r := range m.rows {
			r.carousel.Configure(m.marqueeOptions(cfg))
			m.mountRow(r)
		}

		m.resuspend()
		m.debugf("[TUI] Display config changed, rows re-laid out")

		return
	}

	for _, r := range m.rows {
		r.carousel.Configure(m.marqueeOptions(cfg))
	}

	m.debugf("[TUI] Motion config applied: speed %.2f, resume %dms, gap %.0f",
		cfg.Marquee.Speed, cfg.Marquee.ResumeDelayMS, cfg.Marquee.NudgeGap)
}

// resuspend hands freshly mounted rows under the pointer or a drag back to the user
func (m *model) resuspend() {
	for i, r := range m.rows {
		if i == m.hoverRow || (m.drag != nil && i == m.drag.row) {
			r.carousel.InteractStart()
		}
	}
}

// syncConfigFromParams publishes a parameter panel change
func (m *model) syncConfigFromParams() {
	cfg := *m.localConfig
	m.sharedConfig.Update(cfg)
	m.applyConfig(cfg)
}

// syncSharedConfig picks up changes made elsewhere (file watcher, other sessions)
func (m *model) syncSharedConfig() {
	if cfg := m.sharedConfig.Get(); cfg != m.applied {
		m.applyConfig(cfg)
	}
}

// setStatusMsg shows a transient message in the status bar
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = m.now()
}

// stripColumns returns the visible width of every strip
func (m *model) stripColumns() int {
	if m.width == 0 {
		return 0
	}

	return max(m.width-2*stripLeft, minStripColumns)
}

// rowHeight returns the screen lines one row occupies
func (m *model) rowHeight() int {
	return rowTitleHeight + m.applied.Display.CardHeight + rowSpacing
}

// rowTop returns the screen line of a row's heading
func (m *model) rowTop(i int) int {
	return headerHeight + i*m.rowHeight()
}

// rowAt returns the row whose strip covers screen line y
func (m *model) rowAt(y int) (int, bool) {
	for i := range m.rows {
		top := m.rowTop(i) + rowTitleHeight
		if y >= top && y < top+m.applied.Display.CardHeight {
			return i, true
		}
	}

	return 0, false
}

// reloadCatalog loads the catalog in the background
func reloadCatalog(load CatalogLoader, path string) tea.Cmd {
	return func() tea.Msg {
		c, err := load(path)

		return catalogLoadedMsg{catalog: c, err: err}
	}
}

// reloadConfig loads the config file in the background
func reloadConfig(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.LoadConfig(path)

		return configLoadedMsg{cfg: cfg, err: err}
	}
}
