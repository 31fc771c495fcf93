package websocket

// Client message types
const (
	TypeStartGame    = "start_game"
	TypeSelectColumn = "select_column"
)

// Server message types
const (
	TypeBoardReset  = "board_reset"
	TypePiecePlaced = "piece_placed"
	TypeGameOver    = "game_over"
	TypeGameStarted = "game_started"
	TypeError       = "error"
)

// ClientMessage is any message a client sends. Fields not used by Type are
// left zero.
type ClientMessage struct {
	Type         string `json:"type"`
	Player1Color string `json:"player1Color,omitempty"`
	Player2Color string `json:"player2Color,omitempty"`
	Height       int    `json:"height,omitempty"`
	Width        int    `json:"width,omitempty"`
	Column       *int   `json:"column,omitempty"`
}

type BoardResetMessage struct {
	Type   string `json:"type"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type PiecePlacedMessage struct {
	Type   string `json:"type"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Color  string `json:"color"`
}

type GameOverMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type GameStartedMessage struct {
	Type      string `json:"type"`
	GameID    string `json:"gameId"`
	ViewToken string `json:"viewToken,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
