package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/platform/boardimage"
	"github.com/vovakirdan/tui-drmario/internal/registry"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

// Optional session capabilities the model uses when present.
type (
	capturer interface {
		Capture() history.Snapshot
	}
	restorer interface {
		Restore(s history.Snapshot) error
	}
	reconfigurer interface {
		ApplyConfig(cfg config.DrMarioConfig) error
	}
	boarder interface {
		Board() board.Board
	}
)

// ConfigReloadMsg carries a config re-read from disk.
type ConfigReloadMsg struct {
	Config config.DrMarioConfig
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// Model is the Bubble Tea model for running a session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	browser    *SnapshotBrowser
	exportDir  string
	notice     string
	noticeErr  bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given session.
// store may be nil, in which case saving and browsing are disabled.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	exportDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		exportDir = filepath.Join(home, ".drmario", "screenshots")
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		store:      store,
		logger:     log.New(os.Stderr),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		exportDir:  exportDir,
	}
}

// WithLogger sets the logger used for store and export failures.
func (m Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithExportDir sets the directory board images are written to.
func (m Model) WithExportDir(dir string) Model {
	m.exportDir = dir
	return m
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.browser != nil && msg.Type != tea.KeyCtrlC {
			return m.updateBrowser(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigReloadMsg:
		return m.handleConfigReload(msg.Config)

	case ConfigErrorMsg:
		m.setError(fmt.Sprintf("Config reload failed: %v", msg.Err))
		return m, nil
	}

	if m.browser != nil {
		return m.updateBrowser(msg)
	}
	return m, nil
}

// handleKey processes keyboard input while the board is shown.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.saveSnapshot()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.exportBoard()
		return m, nil
	case key.Matches(msg, m.keys.Browse):
		if m.store == nil {
			m.setError("Snapshot storage is not available")
			return m, nil
		}
		b := NewSnapshotBrowser(m.store, m.game.ID(), m.config.ScreenW, m.config.ScreenH)
		m.browser = &b
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// updateBrowser forwards a message to the open browser and loads the
// chosen snapshot when it closes.
func (m Model) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	b, cmd := m.browser.Update(msg)
	if !b.Closed() {
		m.browser = &b
		return m, cmd
	}

	m.browser = nil
	if id, ok := b.Chosen(); ok {
		m.loadStored(id)
	}
	return m, cmd
}

// handleResize processes window resize events. The session keeps running;
// only the screen buffer changes size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width

	if m.browser != nil {
		b, _ := m.browser.Update(msg)
		m.browser = &b
	}
	return m, nil
}

// handleTick processes simulation ticks. Frames are held while the
// browser is open.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.browser == nil {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.inputFrame.Clear()
	}
	return m, tickCmd(m.config.TickRate)
}

// handleConfigReload applies a reloaded config to the running session.
func (m Model) handleConfigReload(cfg config.DrMarioConfig) (tea.Model, tea.Cmd) {
	r, ok := m.game.(reconfigurer)
	if !ok {
		return m, nil
	}
	if err := r.ApplyConfig(cfg); err != nil {
		m.setError(fmt.Sprintf("Config rejected: %v", err))
		return m, nil
	}
	m.setNotice("Config reloaded")
	return m, nil
}

// saveSnapshot captures the live state and writes it to the store.
func (m *Model) saveSnapshot() {
	c, ok := m.game.(capturer)
	if !ok {
		return
	}
	if m.store == nil {
		m.setError("Snapshot storage is not available")
		return
	}

	snap := c.Capture()
	label := fmt.Sprintf("frame %d", snap.Frame)
	id, err := m.store.SaveSnapshot(m.game.ID(), label, snap)
	if err != nil {
		m.logger.Warn("could not save snapshot", "error", err)
		m.setError("Save failed")
		return
	}
	m.setNotice(fmt.Sprintf("Saved snapshot #%d at frame %d", id, snap.Frame))
}

// loadStored restores a stored snapshot into the session.
func (m *Model) loadStored(id int64) {
	r, ok := m.game.(restorer)
	if !ok {
		return
	}
	snap, err := m.store.LoadSnapshot(id)
	if err != nil {
		m.logger.Warn("could not load snapshot", "id", id, "error", err)
		m.setError(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if err := r.Restore(snap); err != nil {
		m.setError(fmt.Sprintf("Restore failed: %v", err))
		return
	}
	m.gameState = m.game.State()
	m.setNotice(fmt.Sprintf("Loaded snapshot #%d", id))
}

// exportBoard writes the composed board as a PNG image.
func (m *Model) exportBoard() {
	b, ok := m.game.(boarder)
	if !ok || m.exportDir == "" {
		return
	}
	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		m.logger.Warn("could not create export directory", "error", err)
		m.setError("Export failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s_f%d.png", m.game.ID(), timestamp, m.game.State().Frame)
	path := filepath.Join(m.exportDir, name)

	f, err := os.Create(path)
	if err != nil {
		m.logger.Warn("could not create board image", "error", err)
		m.setError("Export failed")
		return
	}
	defer f.Close()

	if err := boardimage.WritePNG(f, b.Board(), boardimage.DefaultCellSize, 0); err != nil {
		m.logger.Warn("could not write board image", "error", err)
		m.setError("Export failed")
		return
	}
	m.setNotice("Board image written to " + path)
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeErr = false
}

func (m *Model) setError(s string) {
	m.notice = s
	m.noticeErr = true
}

// Notice returns the last platform message.
func (m Model) Notice() string {
	return m.notice
}

// Browsing reports whether the snapshot browser is open.
func (m Model) Browsing() bool {
	return m.browser != nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.browser != nil {
		return m.browser.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorStyle
		}
		footer = style.Render(m.notice) + "  " + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Options configure Run.
type Options struct {
	// WatchPath is a config file reloaded into the session on change.
	WatchPath string
	Logger    *log.Logger
}

// Run starts the Bubble Tea program with the given session.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg).WithLogger(opts.Logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if opts.WatchPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			err := config.Watch(ctx, opts.WatchPath,
				func(c config.DrMarioConfig) { p.Send(ConfigReloadMsg{Config: c}) },
				func(err error) { p.Send(ConfigErrorMsg{Err: err}) },
			)
			if err != nil {
				model.logger.Warn("config watch stopped", "path", opts.WatchPath, "error", err)
			}
		}()
	}

	_, err := p.Run()
	return err
}
