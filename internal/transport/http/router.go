package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
	"github.com/iamasit07/connect-four/pkg/auth"
)

type RouterDeps struct {
	SessionManager *game.SessionManager
	Archive        ResultReader // optional
	Tokens         *auth.ViewTokenIssuer // optional; without it single games are not served
	AllowedOrigins []string
	WebSocket      http.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	gamesHandler := NewGamesHandler(deps.SessionManager)
	historyHandler := NewHistoryHandler(deps.Archive)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/games", gamesHandler.ListGames)
		if deps.Tokens != nil {
			api.GET("/games/:id", middleware.ViewTokenMiddleware(deps.Tokens, "id"), gamesHandler.GetGame)
		}

		api.GET("/history", historyHandler.GetHistory)
		api.GET("/history/:id", historyHandler.GetGameDetails)
	}

	// WebSocket Route
	if deps.WebSocket != nil {
		router.GET("/ws", gin.WrapF(deps.WebSocket))
	}

	return router
}
