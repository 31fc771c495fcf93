package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
)

const timeLayout = time.RFC3339

// ResultReader reads archived results.
type ResultReader interface {
	ListRecent(ctx context.Context, limit int) ([]domain.GameResult, error)
	GetResult(ctx context.Context, gameID string) (*domain.GameResult, error)
}

type HistoryHandler struct {
	Archive ResultReader // nil when no archive is configured
}

func NewHistoryHandler(archive ResultReader) *HistoryHandler {
	return &HistoryHandler{Archive: archive}
}

type gameHistoryItem struct {
	ID              string            `json:"id"`
	Player1Color    string            `json:"player1Color"`
	Player2Color    string            `json:"player2Color"`
	Height          int               `json:"height"`
	Width           int               `json:"width"`
	Result          domain.GameStatus `json:"result"`
	WinnerColor     string            `json:"winnerColor,omitempty"`
	MovesCount      int               `json:"movesCount"`
	DurationSeconds int               `json:"durationSeconds"`
	CreatedAt       string            `json:"createdAt"`
	FinishedAt      string            `json:"finishedAt"`
}

type gameDetailsResponse struct {
	gameHistoryItem
	Board [][]string `json:"board_state"`
}

func toHistoryItem(r domain.GameResult) gameHistoryItem {
	return gameHistoryItem{
		ID:              r.GameID,
		Player1Color:    r.Player1Color,
		Player2Color:    r.Player2Color,
		Height:          r.Height,
		Width:           r.Width,
		Result:          r.Status,
		WinnerColor:     r.WinnerColor,
		MovesCount:      r.TotalMoves,
		DurationSeconds: r.DurationSeconds(),
		CreatedAt:       r.CreatedAt.UTC().Format(timeLayout),
		FinishedAt:      r.FinishedAt.UTC().Format(timeLayout),
	}
}

// GetHistory lists recently finished games. ?limit=N caps the result.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not enabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	results, err := h.Archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	history := make([]gameHistoryItem, 0, len(results))
	for _, r := range results {
		history = append(history, toHistoryItem(r))
	}

	c.JSON(http.StatusOK, history)
}

// GetGameDetails returns one archived game with its final board.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not enabled"})
		return
	}

	result, err := h.Archive.GetResult(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		log.Printf("[HTTP] Failed to fetch game %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}

	c.JSON(http.StatusOK, gameDetailsResponse{
		gameHistoryItem: toHistoryItem(*result),
		Board:           result.Board,
	})
}
