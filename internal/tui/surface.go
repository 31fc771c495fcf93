package tui

import (
	"sync"

	"github.com/iamasit07/connect-four/internal/service/game"
)

// Surface is the terminal rendering of one board. The model reads it in
// View and feeds key presses into it through SelectColumn.
type Surface struct {
	mu        sync.Mutex
	height    int
	width     int
	cells     [][]string
	message   string
	handler   game.ColumnHandler
	handlerID uint64
}

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) ResetBoard(height, width int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.height, s.width = height, width
	s.cells = make([][]string, height)
	for r := range s.cells {
		s.cells[r] = make([]string, width)
	}
	s.message = ""
	return nil
}

func (s *Surface) RenderPiece(row, column int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row >= 0 && row < s.height && column >= 0 && column < s.width {
		s.cells[row][column] = color
	}
	return nil
}

func (s *Surface) Announce(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	return nil
}

func (s *Surface) OnColumnSelected(handler game.ColumnHandler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlerID++
	id := s.handlerID
	s.handler = handler

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.handlerID == id {
			s.handler = nil
		}
	}
}

// SelectColumn reports whether a handler received the selection.
func (s *Surface) SelectColumn(column int) bool {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()

	if handler == nil {
		return false
	}
	handler(column)
	return true
}

func (s *Surface) Size() (height, width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height, s.width
}

// Cell returns the color drawn at (row, column), or "" for an empty cell.
func (s *Surface) Cell(row, column int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row < 0 || row >= s.height || column < 0 || column >= s.width {
		return ""
	}
	return s.cells[row][column]
}

func (s *Surface) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
