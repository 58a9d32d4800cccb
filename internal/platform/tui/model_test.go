package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *drmario.Game) {
	t.Helper()
	game := drmario.NewWithConfig(config.DefaultDrMarioConfig())
	m := NewModel(game, store, core.DefaultConfig()).WithExportDir(t.TempDir())
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m = update(t, m, TickMsg{})
	}
	return m
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{runes("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause},
		{runes("n"), core.ActionStep},
		{runes("s"), core.ActionScramble},
		{runes("c"), core.ActionSnapshot},
		{runes("u"), core.ActionRewind},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRewind},
		{runes("l"), core.ActionRestore},
		{runes("+"), core.ActionSpeedUp},
		{runes("-"), core.ActionSpeedDown},
		{runes("x"), core.ActionClear},
		{runes("r"), core.ActionRestart},
		{runes("w"), core.ActionNone},
		{runes("q"), core.ActionNone},
		{runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	count := 0
	for _, col := range keys.FullHelp() {
		count += len(col)
	}
	if count != 15 {
		t.Errorf("FullHelp() lists %d bindings, expected 15", count)
	}
}

func TestModelTickAdvances(t *testing.T) {
	m, game := newTestModel(t, nil)

	m = tick(t, m, 3)
	if got := game.State().Frame; got != 3 {
		t.Errorf("Frame = %d, expected 3", got)
	}
	if m.gameState.Frame != 3 {
		t.Errorf("gameState.Frame = %d, expected 3", m.gameState.Frame)
	}
}

func TestModelPauseKey(t *testing.T) {
	m, game := newTestModel(t, nil)

	m = update(t, m, runes("p"))
	m = tick(t, m, 5)
	if !game.Paused() {
		t.Fatal("expected session to be paused")
	}
	if got := game.State().Frame; got != 0 {
		t.Errorf("Frame = %d while paused, expected 0", got)
	}

	m = update(t, m, runes("n"))
	tick(t, m, 2)
	if got := game.State().Frame; got != 1 {
		t.Errorf("Frame = %d after step, expected 1", got)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if view := next.View(); view != "" {
		t.Errorf("View() after quit = %q, expected empty", view)
	}
}

func TestModelSaveSnapshot(t *testing.T) {
	store := openStore(t)
	m, game := newTestModel(t, store)

	m = tick(t, m, 12)
	m = update(t, m, runes("w"))

	if !strings.HasPrefix(m.Notice(), "Saved snapshot #1") {
		t.Errorf("Notice() = %q", m.Notice())
	}
	recent, err := store.RecentSnapshots(drmario.GameID, 10)
	if err != nil {
		t.Fatalf("RecentSnapshots() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 stored snapshot, got %d", len(recent))
	}
	if recent[0].Frame != 12 || recent[0].Checksum != game.Checksum() {
		t.Errorf("stored = frame %d checksum %s, live checksum %s", recent[0].Frame, recent[0].Checksum, game.Checksum())
	}
	if game.History().Count() != 1 {
		t.Errorf("History().Count() = %d, expected 1", game.History().Count())
	}
}

func TestModelSaveWithoutStore(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = update(t, m, runes("w"))
	if !m.noticeErr || m.Notice() == "" {
		t.Errorf("Notice() = %q, expected an error", m.Notice())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Browsing() {
		t.Error("browser opened without a store")
	}
}

func TestModelBrowseAndLoad(t *testing.T) {
	store := openStore(t)
	m, game := newTestModel(t, store)

	m = tick(t, m, 5)
	m = update(t, m, runes("w"))
	m = tick(t, m, 5)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.Browsing() {
		t.Fatal("expected browser to be open")
	}

	// Frames are held while browsing
	m = tick(t, m, 3)
	if got := game.State().Frame; got != 10 {
		t.Errorf("Frame = %d while browsing, expected 10", got)
	}
	if !strings.Contains(m.View(), "SAVED SNAPSHOTS") {
		t.Error("browser view missing title")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Browsing() {
		t.Error("browser still open after load")
	}
	if got := game.Status(); got != "Restored snapshot from frame 5" {
		t.Errorf("Status() = %q", got)
	}
	if m.Notice() != "Loaded snapshot #1" {
		t.Errorf("Notice() = %q", m.Notice())
	}
}

func TestModelConfigReload(t *testing.T) {
	m, game := newTestModel(t, nil)

	cfg := config.DefaultDrMarioConfig()
	cfg.Pills.FallSpeed = 15
	m = update(t, m, ConfigReloadMsg{Config: cfg})
	if got := game.Config().Pills.FallSpeed; got != 15 {
		t.Errorf("FallSpeed = %d, expected 15", got)
	}
	if m.Notice() != "Config reloaded" {
		t.Errorf("Notice() = %q", m.Notice())
	}

	bad := config.DefaultDrMarioConfig()
	bad.Board.Width = 0
	m = update(t, m, ConfigReloadMsg{Config: bad})
	if !strings.HasPrefix(m.Notice(), "Config rejected") {
		t.Errorf("Notice() = %q, expected rejection", m.Notice())
	}
	if got := game.Config().Board.Width; got != 8 {
		t.Errorf("Board.Width = %d, expected 8", got)
	}

	m = update(t, m, ConfigErrorMsg{Err: os.ErrNotExist})
	if !strings.HasPrefix(m.Notice(), "Config reload failed") {
		t.Errorf("Notice() = %q", m.Notice())
	}
}

func TestModelExportBoard(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	entries, err := os.ReadDir(m.exportDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".png" {
		t.Fatalf("export dir = %v, expected one png", entries)
	}
	if !strings.HasPrefix(m.Notice(), "Board image written") {
		t.Errorf("Notice() = %q", m.Notice())
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = tick(t, m, 1)

	view := m.View()
	if !strings.Contains(view, "DR. MARIO") {
		t.Error("View() missing HUD title")
	}
	if !strings.Contains(view, "quit") {
		t.Error("View() missing help bar")
	}

	m = update(t, m, runes("?"))
	if !strings.Contains(m.View(), "board png") {
		t.Error("full help missing export binding")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m, game := newTestModel(t, nil)
	m = tick(t, m, 4)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
	if got := game.State().Frame; got != 4 {
		t.Errorf("Frame = %d after resize, expected 4", got)
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetWithColor(2, 0, 'c', core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "c") {
		t.Errorf("first line = %q", lines[0])
	}
}
