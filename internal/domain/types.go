package domain

// Player is one side of a game, identified by the color of its pieces.
// Board cells point at the Player that owns them, so two players with the
// same color are still different players.
type Player struct {
	Color string
}

func NewPlayer(color string) *Player {
	return &Player{Color: color}
}

// NoRow is returned by LowestEmptyRow when a column cannot take another piece.
const NoRow = -1

const (
	ToWin         = 4
	MaxDimension  = 32
	DefaultHeight = 6
	DefaultWidth  = 7
)

// to represent the game status
type GameStatus string

const (
	StatusActive    GameStatus = "active"
	StatusWon       GameStatus = "won"
	StatusTied      GameStatus = "tied"
	StatusAbandoned GameStatus = "abandoned"
)

func (s GameStatus) IsTerminal() bool {
	return s == StatusWon || s == StatusTied || s == StatusAbandoned
}

// Outcome reports what a single column selection did to the game.
type Outcome string

const (
	OutcomeContinue      Outcome = "continue"
	OutcomeWin           Outcome = "win"
	OutcomeTie           Outcome = "tie"
	OutcomeColumnFull    Outcome = "column_full"
	OutcomeInvalidColumn Outcome = "invalid_column"
	OutcomeIgnored       Outcome = "ignored"
)

// Placed reports whether the move put a piece on the board.
func (o Outcome) Placed() bool {
	return o == OutcomeContinue || o == OutcomeWin || o == OutcomeTie
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidSettings Error = "invalid game settings"
	ErrGameNotFound    Error = "game not found"
)
