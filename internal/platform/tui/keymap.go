package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-drmario/internal/core"
)

// KeyMap defines the key bindings of a running session.
type KeyMap struct {
	Pause     key.Binding
	Step      key.Binding
	Scramble  key.Binding
	Snapshot  key.Binding
	Rewind    key.Binding
	Restore   key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding
	Clear     key.Binding
	Restart   key.Binding
	Save      key.Binding
	Export    key.Binding
	Browse    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Snapshot, k.Rewind, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.SpeedUp, k.SpeedDown},
		{k.Snapshot, k.Rewind, k.Restore, k.Clear},
		{k.Scramble, k.Restart, k.Save, k.Export, k.Browse},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "."),
			key.WithHelp("n", "step"),
		),
		Scramble: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scramble"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "snapshot"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("left", "u"),
			key.WithHelp("left/u", "rewind"),
		),
		Restore: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "restore"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear history"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Save: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save snapshot"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "board png"),
		),
		Browse: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved snapshots"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key press to the simulation action it triggers.
// Keys the platform handles itself map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Step):
		return core.ActionStep
	case key.Matches(msg, k.Scramble):
		return core.ActionScramble
	case key.Matches(msg, k.Snapshot):
		return core.ActionSnapshot
	case key.Matches(msg, k.Rewind):
		return core.ActionRewind
	case key.Matches(msg, k.Restore):
		return core.ActionRestore
	case key.Matches(msg, k.SpeedUp):
		return core.ActionSpeedUp
	case key.Matches(msg, k.SpeedDown):
		return core.ActionSpeedDown
	case key.Matches(msg, k.Clear):
		return core.ActionClear
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
