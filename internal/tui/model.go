// Package tui is the terminal surface: a bubbletea program where both players
// share the keyboard.
package tui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const (
	pieceGlyph = "●"
	emptyGlyph = "·"
)

type Model struct {
	settings domain.Settings
	surface  *Surface
	session  *game.Session
	cursor   int
	games    int
	err      error
}

// New validates settings and starts the first game.
func New(settings domain.Settings) (Model, error) {
	m := Model{settings: settings.Normalized(), surface: NewSurface()}
	if err := m.startGame(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) startGame() error {
	gameID, err := uid.GenerateGameID()
	if err != nil {
		return fmt.Errorf("generate game id: %w", err)
	}

	if m.session != nil {
		m.session.End(game.AbandonedMessage)
	}

	session, err := game.Start(gameID, m.settings, m.surface, nil)
	if err != nil {
		return err
	}

	m.session = session
	m.cursor = m.settings.Width / 2
	m.games++
	return nil
}

// Session returns the game being played.
func (m Model) Session() *game.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := keyMsg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		if m.session != nil {
			m.session.End(game.AbandonedMessage)
		}
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < m.settings.Width-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selectColumn(m.cursor)
	case "n":
		if m.session.Status().IsTerminal() {
			if err := m.startGame(); err != nil {
				log.Printf("[TUI] Failed to start new game: %v", err)
				m.err = err
			}
		}
	default:
		// Digits pick a column directly, 1-based.
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
			m.cursor = min(n-1, m.settings.Width-1)
			if n-1 < m.settings.Width {
				m.selectColumn(n - 1)
			}
		}
	}

	return m, nil
}

func (m *Model) selectColumn(column int) {
	// Dropped silently once the game is over.
	m.surface.SelectColumn(column)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Connect Four · game %d", m.games)))
	b.WriteString("\n\n")
	b.WriteString(frameStyle.Render(m.renderBoard()))
	b.WriteString("\n")

	snapshot := m.session.Snapshot()
	if snapshot.Status == domain.StatusActive {
		player := pieceStyle(snapshot.CurrentColor, false).Render(pieceGlyph + " " + snapshot.CurrentColor)
		fmt.Fprintf(&b, "%s to move\n", player)
		b.WriteString(helpStyle.Render("←/→ move · enter drop · 1-9 pick column · q quit"))
	} else {
		b.WriteString(announceStyle.Render(m.surface.Message()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("n new game · q quit"))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.err.Error())
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderBoard() string {
	height, width := m.surface.Size()

	winning := make(map[domain.Cell]bool)
	for _, cell := range m.session.Snapshot().WinningLine {
		winning[cell] = true
	}

	var b strings.Builder

	// Column selector row
	for c := 0; c < width; c++ {
		if c == m.cursor && m.session.Status() == domain.StatusActive {
			b.WriteString(cursorStyle.Render("▼"))
		} else {
			b.WriteString(" ")
		}
		if c < width-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			color := m.surface.Cell(r, c)
			if color == "" {
				b.WriteString(emptyStyle.Render(emptyGlyph))
			} else {
				b.WriteString(pieceStyle(color, winning[domain.Cell{Row: r, Column: c}]).Render(pieceGlyph))
			}
			if c < width-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	for c := 0; c < width; c++ {
		label := strconv.Itoa((c + 1) % 10)
		b.WriteString(labelStyle.Render(label))
		if c < width-1 {
			b.WriteString(" ")
		}
	}

	return b.String()
}
