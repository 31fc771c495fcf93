package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/service/game"
)

const writeWait = 10 * time.Second

// Connection is a game surface backed by one websocket. Rendering turns into
// server messages and select_column messages turn into column selections.
type Connection struct {
	conn *websocket.Conn

	// writeMu serializes writes; gorilla allows one concurrent writer.
	writeMu sync.Mutex

	mu      sync.Mutex // protects handler and handlerID
	handler game.ColumnHandler
	// handlerID identifies the current registration so a stale unsubscribe
	// cannot remove a newer handler.
	handlerID uint64
}

func NewConnection(conn *websocket.Conn) *Connection {
	return &Connection{conn: conn}
}

func (c *Connection) ResetBoard(height, width int) error {
	return c.Send(BoardResetMessage{Type: TypeBoardReset, Height: height, Width: width})
}

func (c *Connection) RenderPiece(row, column int, color string) error {
	return c.Send(PiecePlacedMessage{Type: TypePiecePlaced, Row: row, Column: column, Color: color})
}

func (c *Connection) Announce(message string) error {
	return c.Send(GameOverMessage{Type: TypeGameOver, Message: message})
}

// OnColumnSelected implements game.InputSource.
func (c *Connection) OnColumnSelected(handler game.ColumnHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlerID++
	id := c.handlerID
	c.handler = handler

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.handlerID == id {
			c.handler = nil
		}
	}
}

// SelectColumn delivers column to the current handler. It reports false when
// nothing is listening.
func (c *Connection) SelectColumn(column int) bool {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()

	if handler == nil {
		return false
	}
	handler(column)
	return true
}

// Send writes a JSON message to the socket.
func (c *Connection) Send(message any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Connection) SendError(message string) error {
	return c.Send(ErrorMessage{Type: TypeError, Message: message})
}
