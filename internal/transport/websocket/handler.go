package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/auth"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler serves the websocket surface. Each connection drives at most one
// session at a time.
type Handler struct {
	SessionManager *game.SessionManager
	Tokens         *auth.ViewTokenIssuer // optional
	Upgrader       websocket.Upgrader
}

// NewHandler creates a handler that accepts upgrades from allowedOrigins and
// from clients that send no Origin header.
func NewHandler(sm *game.SessionManager, tokens *auth.ViewTokenIssuer, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		SessionManager: sm,
		Tokens:         tokens,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				log.Printf("[WS] Origin '%s' not in allowed list", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	surface := NewConnection(conn)
	var gameID string

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go keepAlive(conn, done)

	defer func() {
		close(done)
		if gameID != "" {
			h.abandon(gameID)
		}
		conn.Close()
		log.Printf("[WS] Connection closed")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			surface.SendError("Invalid message format")
			continue
		}

		gameID = h.processMessage(surface, gameID, msg)
	}
}

// processMessage routes one client message and returns the ID of the
// session now driven by the connection.
func (h *Handler) processMessage(surface *Connection, gameID string, msg ClientMessage) string {
	switch msg.Type {
	case TypeStartGame:
		if gameID != "" {
			h.abandon(gameID)
			gameID = ""
		}

		settings := domain.Settings{
			Player1Color: msg.Player1Color,
			Player2Color: msg.Player2Color,
			Height:       msg.Height,
			Width:        msg.Width,
		}
		session, err := h.SessionManager.CreateSession(settings, surface)
		if err != nil {
			log.Printf("[WS] Failed to start game: %v", err)
			surface.SendError(err.Error())
			return ""
		}

		started := GameStartedMessage{Type: TypeGameStarted, GameID: session.GameID}
		if h.Tokens != nil {
			token, err := h.Tokens.Issue(session.GameID)
			if err != nil {
				log.Printf("[WS] Failed to issue view token for game %s: %v", session.GameID, err)
			}
			started.ViewToken = token
		}
		surface.Send(started)
		return session.GameID

	case TypeSelectColumn:
		if msg.Column == nil {
			surface.SendError("column is required")
			return gameID
		}
		if gameID == "" {
			surface.SendError("No game in progress")
			return gameID
		}
		// Selections after the game is over have no handler and are dropped.
		surface.SelectColumn(*msg.Column)
		return gameID

	default:
		surface.SendError("Unknown message type: " + msg.Type)
		return gameID
	}
}

func (h *Handler) abandon(gameID string) {
	err := h.SessionManager.AbandonSession(gameID, game.AbandonedMessage)
	if err != nil && !errors.Is(err, domain.ErrGameNotFound) {
		log.Printf("[WS] Failed to abandon game %s: %v", gameID, err)
	}
}

// keepAlive pings the client until done is closed. WriteControl is safe to
// call alongside other writers.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
