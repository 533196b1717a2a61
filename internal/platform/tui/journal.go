package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Journal layout constants
const (
	minWidthForMoves = 90  // Minimum width to show the moves table beside sessions
	maxSessions      = 100 // Max sessions to load
	maxMoves         = 200 // Max moves to load per session
)

// JournalKeyMap defines the key bindings for the journal screen.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Reload, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sessions/moves"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model that browses recorded sessions and
// their swap attempts.
type JournalModel struct {
	store    storeReader
	sessions []storage.SessionStats
	moves    []storage.MoveRecord
	sessTbl  table.Model
	moveTbl  table.Model
	onMoves  bool // Moves table has focus
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// storeReader is the read side of the journal used by the browser.
type storeReader interface {
	RecentSessions(limit int) ([]storage.SessionStats, error)
	RecentMoves(sessionID string, limit int) ([]storage.MoveRecord, error)
}

// NewJournalModel creates a journal browser over store.
func NewJournalModel(store storeReader, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		store:  store,
		keys:   DefaultJournalKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.buildTables()
	m.reload()
	return m
}

// buildTables creates both tables sized for the current window.
func (m *JournalModel) buildTables() {
	height := max(m.height-8, 3) // Leave room for title, help, and borders
	if !m.wide() {
		height = max((m.height-10)/2, 3)
	}

	m.sessTbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "Started", Width: 14},
			{Title: "Game", Width: 14},
			{Title: "Size", Width: 6},
			{Title: "Swaps", Width: 6},
			{Title: "Rejected", Width: 8},
		}),
		table.WithFocused(!m.onMoves),
		table.WithHeight(height),
	)
	m.moveTbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "From", Width: 7},
			{Title: "To", Width: 7},
			{Title: "Result", Width: 9},
			{Title: "Time", Width: 9},
		}),
		table.WithFocused(m.onMoves),
		table.WithHeight(height),
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
	m.sessTbl.SetStyles(s)
	m.moveTbl.SetStyles(s)

	m.setSessionRows()
	m.setMoveRows()
}

func (m JournalModel) wide() bool {
	return m.width >= minWidthForMoves
}

// reload fetches the session list and the moves of the selected session.
func (m *JournalModel) reload() {
	m.err = nil
	m.sessions = nil
	if m.store != nil {
		sessions, err := m.store.RecentSessions(maxSessions)
		if err != nil {
			m.err = err
		} else {
			m.sessions = sessions
		}
	}
	m.setSessionRows()
	m.sessTbl.GotoTop()
	m.loadMoves()
}

// loadMoves fetches the moves of the session under the cursor.
func (m *JournalModel) loadMoves() {
	m.moves = nil
	if sel := m.Selected(); sel != nil && m.store != nil {
		moves, err := m.store.RecentMoves(sel.SessionID, maxMoves)
		if err != nil {
			m.err = err
		} else {
			m.moves = moves
		}
	}
	m.setMoveRows()
	m.moveTbl.GotoTop()
}

func (m *JournalModel) setSessionRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			s.StartedAt.Format("Jan 02 15:04"),
			s.GameID,
			fmt.Sprintf("%dx%d", s.Cols, s.Rows),
			fmt.Sprintf("%d", s.Committed),
			fmt.Sprintf("%d", s.Rejected),
		}
	}
	m.sessTbl.SetRows(rows)
}

func (m *JournalModel) setMoveRows() {
	rows := make([]table.Row, len(m.moves))
	for i, mv := range m.moves {
		result := "rejected"
		if mv.Committed {
			result = "swapped"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(m.moves)-i),
			fmt.Sprintf("(%d,%d)", mv.FromCol, mv.FromRow),
			fmt.Sprintf("(%d,%d)", mv.ToCol, mv.ToRow),
			result,
			mv.CreatedAt.Format("15:04:05"),
		}
	}
	m.moveTbl.SetRows(rows)
}

// Selected returns the session under the cursor, or nil.
func (m JournalModel) Selected() *storage.SessionStats {
	i := m.sessTbl.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return nil
	}
	return &m.sessions[i]
}

// Moves returns the moves currently listed.
func (m JournalModel) Moves() []storage.MoveRecord {
	return m.moves
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Switch):
			m.onMoves = !m.onMoves
			if m.onMoves {
				m.sessTbl.Blur()
				m.moveTbl.Focus()
			} else {
				m.moveTbl.Blur()
				m.sessTbl.Focus()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if m.onMoves {
				m.moveTbl, cmd = m.moveTbl.Update(msg)
				return m, cmd
			}
			before := m.sessTbl.Cursor()
			m.sessTbl, cmd = m.sessTbl.Update(msg)
			if m.sessTbl.Cursor() != before {
				m.loadMoves()
			}
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.sessTbl.Cursor()
		m.buildTables()
		m.sessTbl.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("MOVE JOURNAL", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	sessions := boxStyle.Render(m.renderSessions())
	moves := boxStyle.Render(m.renderMoves())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sessions, "  ", moves))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, sessions, moves))
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m JournalModel) renderSessions() string {
	if len(m.sessions) == 0 {
		return emptyStyle().Render("No sessions recorded yet.\nPlay a board to start one!")
	}
	return m.sessTbl.View()
}

func (m JournalModel) renderMoves() string {
	if len(m.moves) == 0 {
		return emptyStyle().Render("No swaps in this session.")
	}
	return m.moveTbl.View()
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunJournal runs the journal browser until the user quits.
func RunJournal(store *storage.Store, width, height int) error {
	var reader storeReader
	if store != nil {
		reader = store
	}
	p := tea.NewProgram(
		NewJournalModel(reader, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
