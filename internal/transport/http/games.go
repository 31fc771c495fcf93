package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type GamesHandler struct {
	SessionManager *game.SessionManager
}

func NewGamesHandler(sm *game.SessionManager) *GamesHandler {
	return &GamesHandler{SessionManager: sm}
}

type liveGameResponse struct {
	GameID       string            `json:"gameId"`
	Player1Color string            `json:"player1Color"`
	Player2Color string            `json:"player2Color"`
	CurrentColor string            `json:"currentColor"`
	Height       int               `json:"height"`
	Width        int               `json:"width"`
	MoveCount    int               `json:"moveCount"`
	Status       domain.GameStatus `json:"status"`
	StartedAt    string            `json:"startedAt"`
}

// ListGames returns a summary of every game held by this server.
func (h *GamesHandler) ListGames(c *gin.Context) {
	snapshots := h.SessionManager.ActiveSessions()

	response := make([]liveGameResponse, 0, len(snapshots))
	for _, s := range snapshots {
		response = append(response, liveGameResponse{
			GameID:       s.GameID,
			Player1Color: s.Player1Color,
			Player2Color: s.Player2Color,
			CurrentColor: s.CurrentColor,
			Height:       s.Height,
			Width:        s.Width,
			MoveCount:    s.Moves,
			Status:       s.Status,
			StartedAt:    s.CreatedAt.UTC().Format(timeLayout),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetGame returns the full snapshot of one game. The route is guarded by
// the view token middleware.
func (h *GamesHandler) GetGame(c *gin.Context) {
	gameID := c.Param("id")

	snapshot, err := h.SessionManager.Snapshot(c.Request.Context(), gameID)
	if errors.Is(err, domain.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		log.Printf("[HTTP] Failed to load snapshot %s: %v", gameID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
