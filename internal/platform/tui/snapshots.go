package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-drmario/internal/storage"
)

// Browser layout constants
const (
	browserChrome = 8   // rows used by title, borders and help
	maxRecords    = 100 // max stored snapshots to list
)

// BrowserKeyMap defines the key bindings for the snapshot browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Load   key.Binding
	Delete key.Binding
	Back   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Load, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Load, k.Delete, k.Back},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab", "b"),
			key.WithHelp("esc", "back"),
		),
	}
}

// SnapshotBrowser lists the stored snapshots of one game.
// It is embedded in Model and never quits the program itself.
type SnapshotBrowser struct {
	store   *storage.Store
	gameID  string
	records []storage.SnapshotRecord
	table   table.Model
	help    help.Model
	keys    BrowserKeyMap
	width   int
	height  int
	err     error
	closed  bool
	chosen  int64 // ID picked with Load, 0 when none
}

// NewSnapshotBrowser creates a browser and loads the newest records.
func NewSnapshotBrowser(store *storage.Store, gameID string, width, height int) SnapshotBrowser {
	b := SnapshotBrowser{
		store:  store,
		gameID: gameID,
		help:   help.New(),
		keys:   DefaultBrowserKeyMap(),
		width:  width,
		height: height,
	}
	b.table = b.createTable()
	b.reload()
	return b
}

// createTable creates a new table sized to the browser.
func (b *SnapshotBrowser) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Frame", Width: 8},
		{Title: "Seed", Width: 10},
		{Title: "Checksum", Width: 10},
		{Title: "Label", Width: 16},
		{Title: "Saved", Width: 14},
	}

	// Give spare width to the label column
	if spare := b.width - 4 - 64 - 2*len(columns); spare > 0 {
		columns[4].Width += min(spare, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(b.height-browserChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload reads the records from the store and refreshes the rows.
func (b *SnapshotBrowser) reload() {
	b.records = nil
	b.err = nil
	if b.store != nil {
		b.records, b.err = b.store.RecentSnapshots(b.gameID, maxRecords)
	}

	rows := make([]table.Row, len(b.records))
	for i, r := range b.records {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Frame),
			fmt.Sprintf("%d", r.Seed),
			r.Checksum,
			r.Label,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	b.table.SetRows(rows)
}

// selected returns the record under the cursor.
func (b SnapshotBrowser) selected() (storage.SnapshotRecord, bool) {
	i := b.table.Cursor()
	if i < 0 || i >= len(b.records) {
		return storage.SnapshotRecord{}, false
	}
	return b.records[i], true
}

// Init initializes the browser.
func (b SnapshotBrowser) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (b SnapshotBrowser) Update(msg tea.Msg) (SnapshotBrowser, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Back):
			b.closed = true
			return b, nil

		case key.Matches(msg, b.keys.Load):
			if r, ok := b.selected(); ok {
				b.chosen = r.ID
				b.closed = true
			}
			return b, nil

		case key.Matches(msg, b.keys.Delete):
			if r, ok := b.selected(); ok && b.store != nil {
				if err := b.store.DeleteSnapshot(r.ID); err != nil {
					b.err = err
					return b, nil
				}
				b.reload()
			}
			return b, nil
		}

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.table = b.createTable()
		b.reload()
		b.help.Width = msg.Width
		return b, nil
	}

	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// Closed reports whether the user left the browser.
func (b SnapshotBrowser) Closed() bool {
	return b.closed
}

// Chosen returns the ID of the record picked for loading.
func (b SnapshotBrowser) Chosen() (int64, bool) {
	return b.chosen, b.chosen != 0
}

// Records returns the listed records, newest first.
func (b SnapshotBrowser) Records() []storage.SnapshotRecord {
	return b.records
}

// View renders the browser.
func (b SnapshotBrowser) View() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	sb.WriteString(titleStyle.Render(fmt.Sprintf("SAVED SNAPSHOTS - %s", b.gameID)))
	sb.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case b.err != nil:
		sb.WriteString(boxStyle.Render(errorStyle.Render(b.err.Error())))
	case b.store == nil:
		sb.WriteString(boxStyle.Render(emptyStyle().Render("Snapshot storage is not available.")))
	case len(b.records) == 0:
		sb.WriteString(boxStyle.Render(emptyStyle().Render("No saved snapshots yet.\nPress w while playing to save one.")))
	default:
		sb.WriteString(boxStyle.Render(b.table.View()))
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(b.help.View(b.keys)))

	return sb.String()
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2)
}
