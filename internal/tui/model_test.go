package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newModel(t *testing.T) Model {
	t.Helper()
	m, err := New(domain.Settings{Player1Color: "Red", Player2Color: "Yellow", Height: 6, Width: 7})
	require.NoError(t, err)
	return m
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(domain.Settings{Player1Color: "Red", Player2Color: "", Height: 6, Width: 7})
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestModel_StartsWithEmptyBoard(t *testing.T) {
	m := newModel(t)

	height, width := m.surface.Size()
	assert.Equal(t, 6, height)
	assert.Equal(t, 7, width)
	assert.Equal(t, 3, m.cursor)
	assert.Equal(t, domain.StatusActive, m.Session().Status())
	assert.Contains(t, m.View(), "Red to move")
}

func TestModel_DigitKeysDropPieces(t *testing.T) {
	m := newModel(t)

	m = press(t, m, runes("1"), runes("2"))

	assert.Equal(t, "Red", m.surface.Cell(5, 0))
	assert.Equal(t, "Yellow", m.surface.Cell(5, 1))
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "Red to move")
}

func TestModel_DigitBeyondWidthIsIgnored(t *testing.T) {
	m, err := New(domain.Settings{Player1Color: "Red", Player2Color: "Yellow", Height: 4, Width: 4})
	require.NoError(t, err)

	m = press(t, m, runes("9"))

	assert.Equal(t, 0, m.Session().Snapshot().Moves)
	assert.Equal(t, 3, m.cursor)
}

func TestModel_ArrowsAndEnter(t *testing.T) {
	m := newModel(t)

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "Red", m.surface.Cell(5, 0))

	for i := 0; i < 10; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 6, m.cursor)
}

func TestModel_WinThenNewGame(t *testing.T) {
	m := newModel(t)

	m = press(t, m, runes("1"), runes("2"), runes("1"), runes("2"), runes("1"), runes("2"), runes("1"))

	first := m.Session()
	assert.Equal(t, domain.StatusWon, first.Status())
	view := m.View()
	assert.Contains(t, view, "The Red Player won!")
	assert.Contains(t, view, "n new game")

	// Further drops are ignored.
	m = press(t, m, runes("3"))
	assert.Equal(t, "", m.surface.Cell(5, 2))

	m = press(t, m, runes("n"))

	assert.NotSame(t, first, m.Session())
	assert.Equal(t, domain.StatusActive, m.Session().Status())
	assert.Equal(t, "", m.surface.Cell(5, 0))
	assert.Equal(t, 2, m.games)

	m = press(t, m, runes("3"))
	assert.Equal(t, "Red", m.surface.Cell(5, 2))
}

func TestModel_NewGameOnlyAfterEnd(t *testing.T) {
	m := newModel(t)
	session := m.Session()

	m = press(t, m, runes("n"))

	assert.Same(t, session, m.Session())
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)
	session := m.Session()

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, domain.StatusAbandoned, session.Status())
}

func TestSurface_StaleUnsubscribe(t *testing.T) {
	s := NewSurface()
	var got []int

	stale := s.OnColumnSelected(func(column int) { got = append(got, -1) })
	s.OnColumnSelected(func(column int) { got = append(got, column) })
	stale()

	assert.True(t, s.SelectColumn(2))
	assert.Equal(t, []int{2}, got)
}

func TestSurface_ImplementsGameSurface(t *testing.T) {
	var _ game.Surface = NewSurface()

	s := NewSurface()
	require.NoError(t, s.ResetBoard(2, 3))
	require.NoError(t, s.RenderPiece(1, 2, "blue"))
	require.NoError(t, s.RenderPiece(9, 9, "blue"))

	assert.Equal(t, "blue", s.Cell(1, 2))
	assert.Equal(t, "", s.Cell(9, 9))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "1", string(colorFor(" Red ")))
	assert.Equal(t, "208", string(colorFor("orange")))
	assert.Equal(t, "#ff00ff", string(colorFor("#FF00FF")))
	assert.Equal(t, "8", string(colorFor("chartreuse")))
}
