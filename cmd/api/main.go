package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/repository/archive"
	"github.com/iamasit07/connect-four/internal/repository/redis"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
	"github.com/iamasit07/connect-four/pkg/auth"
)

func main() {
	config.LoadDotEnv(".env", "../.env")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	// 1. Result archive (optional)
	var store *archive.Store
	var recorder game.ResultRecorder
	var historyReader transportHttp.ResultReader
	var pruner cleanup.ArchivePruner
	if cfg.ArchiveDriver != config.ArchiveNone {
		store, err = archive.Open(ctx, cfg.ArchiveDriver, cfg.DatabaseURL, archive.PoolOptions{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			log.Fatalf("Failed to open result archive: %v", err)
		}
		defer store.Close()

		recorder, historyReader, pruner = store, store, store
	} else {
		log.Println("[ARCHIVE] No archive configured, finished games are not recorded")
	}

	// 2. Snapshot cache (optional; the server keeps running without it)
	var cache game.SnapshotCache
	if cfg.RedisURL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		client, err := redis.Connect(pingCtx, cfg.RedisURL, cfg.RedisPassword)
		cancel()
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Snapshots are served from memory only.", err)
		} else {
			defer client.Close()
			cache = redis.NewSnapshotCache(client, cfg.SnapshotTTL)
		}
	}

	// 3. Services
	sessionManager := game.NewSessionManager(recorder, cache)
	tokens := auth.NewViewTokenIssuer(cfg.ViewTokenSecret, cfg.ViewTokenTTL)

	cleanupWorker := cleanup.NewWorker(sessionManager, pruner, cleanup.Options{
		Interval:         cfg.CleanupInterval,
		IdleTimeout:      cfg.SessionIdleTimeout,
		Retention:        cfg.FinishedSessionRetention,
		ArchiveRetention: time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour,
	})
	cleanupWorker.Start(ctx)

	// 4. Transport
	wsHandler := websocket.NewHandler(sessionManager, tokens, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		SessionManager: sessionManager,
		Archive:        historyReader,
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		WebSocket:      wsHandler.HandleWebSocket,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cleanupWorker.Stop()
	for _, snapshot := range sessionManager.ActiveSessions() {
		if !snapshot.Status.IsTerminal() {
			sessionManager.AbandonSession(snapshot.GameID, "Server shutting down")
		}
	}
	sessionManager.Wait()

	log.Println("Server exited gracefully")
}
