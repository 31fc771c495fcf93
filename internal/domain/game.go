package domain

import "time"

// Snapshot is a read-only copy of a session, safe to serialize and cache.
type Snapshot struct {
	GameID       string     `json:"gameId"`
	Height       int        `json:"height"`
	Width        int        `json:"width"`
	Cells        [][]string `json:"cells"`
	Player1Color string     `json:"player1Color"`
	Player2Color string     `json:"player2Color"`
	CurrentColor string     `json:"currentColor,omitempty"`
	Status       GameStatus `json:"status"`
	WinnerColor  string     `json:"winnerColor,omitempty"`
	WinningLine  []Cell     `json:"winningLine,omitempty"`
	Moves        int        `json:"moves"`
	CreatedAt    time.Time  `json:"createdAt"`
	FinishedAt   time.Time  `json:"finishedAt,omitzero"`
}

// GameResult represents the result of a finished game
type GameResult struct {
	GameID       string
	Player1Color string
	Player2Color string
	Height       int
	Width        int
	WinnerColor  string // empty unless Status is StatusWon
	Status       GameStatus
	TotalMoves   int
	CreatedAt    time.Time
	FinishedAt   time.Time
	Board        [][]string
}

func (r GameResult) DurationSeconds() int {
	if r.FinishedAt.Before(r.CreatedAt) {
		return 0
	}
	return int(r.FinishedAt.Sub(r.CreatedAt).Seconds())
}

// Result summarizes a finished snapshot for the archive.
func (s Snapshot) Result() GameResult {
	return GameResult{
		GameID:       s.GameID,
		Player1Color: s.Player1Color,
		Player2Color: s.Player2Color,
		Height:       s.Height,
		Width:        s.Width,
		WinnerColor:  s.WinnerColor,
		Status:       s.Status,
		TotalMoves:   s.Moves,
		CreatedAt:    s.CreatedAt,
		FinishedAt:   s.FinishedAt,
		Board:        s.Cells,
	}
}
