package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	TieMessage       = "Tie!"
	AbandonedMessage = "Game abandoned"
)

// WinMessage is the announcement shown when player connects four.
func WinMessage(player *domain.Player) string {
	return fmt.Sprintf("The %s Player won!", player.Color)
}

// Session is one game from setup to its terminal state. It is the only
// writer of the current player and the status. A finished session is never
// reset; a new game needs a new Session.
type Session struct {
	GameID string

	players      [2]*domain.Player
	board        *domain.Board
	current      *domain.Player
	status       domain.GameStatus
	winner       *domain.Player
	moves        int
	createdAt    time.Time
	lastActivity time.Time
	finishedAt   time.Time
	ended        bool

	renderer    Renderer
	unsubscribe func()
	observer    Observer
	mu          sync.Mutex
	// notifyMu is held from a state change until its observer calls return,
	// so observers see changes in order. Always taken before mu.
	notifyMu sync.Mutex
}

// Start validates settings, renders the empty board on surface and subscribes
// to its column selections. observer may be nil.
func Start(gameID string, settings domain.Settings, surface Surface, observer Observer) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings = settings.Normalized()

	now := time.Now()
	s := &Session{
		GameID:       gameID,
		players:      [2]*domain.Player{domain.NewPlayer(settings.Player1Color), domain.NewPlayer(settings.Player2Color)},
		board:        domain.NewBoard(settings.Height, settings.Width),
		status:       domain.StatusActive,
		createdAt:    now,
		lastActivity: now,
		renderer:     surface,
		observer:     observer,
	}
	s.current = s.players[0]

	if err := surface.ResetBoard(settings.Height, settings.Width); err != nil {
		log.Printf("[GAME] Failed to render board for game %s: %v", gameID, err)
	}
	s.Subscribe(surface)

	log.Printf("[GAME] Started game %s: %s vs %s on %dx%d",
		gameID, settings.Player1Color, settings.Player2Color, settings.Height, settings.Width)
	return s, nil
}

// Subscribe registers the session as the column handler of source, replacing
// any earlier registration. It does nothing once the session has ended.
func (s *Session) Subscribe(source InputSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.unsubscribeLocked()
	s.unsubscribe = source.OnColumnSelected(func(column int) {
		s.ApplyMove(column)
	})
}

// Unsubscribe detaches the session from its input source. Safe to call more
// than once.
func (s *Session) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unsubscribeLocked()
}

func (s *Session) unsubscribeLocked() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// ApplyMove drops the current player's piece into column. Full or unknown
// columns and moves after the end leave the session untouched.
func (s *Session) ApplyMove(column int) domain.Outcome {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	outcome := s.applyMoveLocked(column)

	var snapshot domain.Snapshot
	if outcome.Placed() {
		snapshot = s.snapshotLocked()
	}
	observer := s.observer
	s.mu.Unlock()

	if observer != nil && outcome.Placed() {
		observer.MoveApplied(snapshot)
		if snapshot.Status.IsTerminal() {
			observer.SessionEnded(snapshot)
		}
	}

	return outcome
}

func (s *Session) applyMoveLocked(column int) domain.Outcome {
	if s.status != domain.StatusActive {
		return domain.OutcomeIgnored
	}

	row := s.board.LowestEmptyRow(column)
	if row == domain.NoRow {
		if column < 0 || column >= s.board.Width() {
			return domain.OutcomeInvalidColumn
		}
		return domain.OutcomeColumnFull
	}

	player := s.current
	s.board.PlacePiece(row, column, player)
	s.moves++
	s.lastActivity = time.Now()

	if err := s.renderer.RenderPiece(row, column, player.Color); err != nil {
		log.Printf("[GAME] Failed to render piece (%d,%d) for game %s: %v", row, column, s.GameID, err)
	}

	if s.board.CheckWin(player) {
		s.status = domain.StatusWon
		s.winner = player
		s.endLocked(WinMessage(player))
		return domain.OutcomeWin
	}

	if s.board.CheckTie() {
		s.status = domain.StatusTied
		s.endLocked(TieMessage)
		return domain.OutcomeTie
	}

	s.current = s.opponent(player)
	return domain.OutcomeContinue
}

// End announces message and permanently detaches input. Ending a session that
// is still active marks it abandoned. Only the first call has any effect.
func (s *Session) End(message string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	if s.status == domain.StatusActive {
		s.status = domain.StatusAbandoned
	}
	s.endLocked(message)
	snapshot := s.snapshotLocked()
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer.SessionEnded(snapshot)
	}
}

func (s *Session) endLocked(message string) {
	if s.ended {
		return
	}
	s.ended = true
	s.finishedAt = time.Now()

	if err := s.renderer.Announce(message); err != nil {
		log.Printf("[GAME] Failed to announce end of game %s: %v", s.GameID, err)
	}
	s.unsubscribeLocked()

	log.Printf("[GAME] Game %s ended (%s) after %d moves: %s", s.GameID, s.status, s.moves, message)
}

func (s *Session) opponent(player *domain.Player) *domain.Player {
	if player == s.players[0] {
		return s.players[1]
	}
	return s.players[0]
}

func (s *Session) Status() domain.GameStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) CurrentPlayer() *domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Players() [2]*domain.Player {
	return s.players
}

// Winner is nil unless the session was won.
func (s *Session) Winner() *domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}

func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snapshot := domain.Snapshot{
		GameID:       s.GameID,
		Height:       s.board.Height(),
		Width:        s.board.Width(),
		Cells:        s.board.Colors(),
		Player1Color: s.players[0].Color,
		Player2Color: s.players[1].Color,
		Status:       s.status,
		Moves:        s.moves,
		CreatedAt:    s.createdAt,
		FinishedAt:   s.finishedAt,
	}

	if s.status == domain.StatusActive {
		snapshot.CurrentColor = s.current.Color
	}
	if s.winner != nil {
		snapshot.WinnerColor = s.winner.Color
		snapshot.WinningLine, _ = s.board.WinningLine(s.winner)
	}

	return snapshot
}
