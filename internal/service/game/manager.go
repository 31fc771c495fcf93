package game

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const storeTimeout = 5 * time.Second

// ResultRecorder stores finished games.
type ResultRecorder interface {
	SaveResult(ctx context.Context, result domain.GameResult) error
}

// SnapshotCache keeps the latest snapshot of each game outside this process.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error
	// GetSnapshot returns nil, nil when the game is not cached.
	GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error)
	DeleteSnapshot(ctx context.Context, gameID string) error
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*Session // gameID → Session
	mu       sync.RWMutex
	recorder ResultRecorder
	cache    SnapshotCache
	pending  sync.WaitGroup
}

// NewSessionManager creates a manager. recorder and cache are optional.
func NewSessionManager(recorder ResultRecorder, cache SnapshotCache) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		recorder: recorder,
		cache:    cache,
	}
}

// CreateSession starts a new game on surface and registers it.
func (sm *SessionManager) CreateSession(settings domain.Settings, surface Surface) (*Session, error) {
	gameID, err := uid.GenerateGameID()
	if err != nil {
		return nil, err
	}

	session, err := Start(gameID, settings, surface, sm)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.sessions[gameID] = session
	sm.mu.Unlock()

	sm.publish(session.Snapshot())

	log.Printf("[SESSION] Created session %s", gameID)
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

// Snapshot returns the state of gameID from memory, falling back to the cache
// for games held by another process or already removed here.
func (sm *SessionManager) Snapshot(ctx context.Context, gameID string) (*domain.Snapshot, error) {
	if session, ok := sm.GetSession(gameID); ok {
		snapshot := session.Snapshot()
		return &snapshot, nil
	}

	if sm.cache != nil {
		snapshot, err := sm.cache.GetSnapshot(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("load cached snapshot: %w", err)
		}
		if snapshot != nil {
			return snapshot, nil
		}
	}

	return nil, domain.ErrGameNotFound
}

// ActiveSessions lists the snapshots of all registered sessions, oldest first.
func (sm *SessionManager) ActiveSessions() []domain.Snapshot {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	snapshots := make([]domain.Snapshot, 0, len(sessions))
	for _, session := range sessions {
		snapshots = append(snapshots, session.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})

	return snapshots
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return domain.ErrGameNotFound
	}

	// Wait out any notification in flight so it cannot re-cache the game
	// after the delete below.
	session.notifyMu.Lock()
	sm.mu.Lock()
	_, exists = sm.sessions[gameID]
	delete(sm.sessions, gameID)
	sm.mu.Unlock()
	session.notifyMu.Unlock()

	if !exists {
		return domain.ErrGameNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	if sm.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := sm.cache.DeleteSnapshot(ctx, gameID); err != nil {
			log.Printf("[SESSION] Failed to delete cached snapshot %s: %v", gameID, err)
		}
	}

	return nil
}

// AbandonSession ends an active session and removes it.
func (sm *SessionManager) AbandonSession(gameID, message string) error {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return domain.ErrGameNotFound
	}

	session.End(message)
	return sm.RemoveSession(gameID)
}

// CleanupOldSessions abandons sessions idle for longer than idleTimeout and
// forgets finished sessions older than retention. It returns how many
// sessions were removed.
func (sm *SessionManager) CleanupOldSessions(now time.Time, idleTimeout, retention time.Duration) int {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	count := 0
	for _, session := range sessions {
		status := session.Status()

		switch {
		case status == domain.StatusActive && now.Sub(session.LastActivity()) > idleTimeout:
			session.End("Game abandoned after inactivity")
		case status.IsTerminal() && now.Sub(session.FinishedAt()) > retention:
		default:
			continue
		}

		if err := sm.RemoveSession(session.GameID); err == nil {
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

// MoveApplied implements Observer. Terminal snapshots are left to
// SessionEnded.
func (sm *SessionManager) MoveApplied(snapshot domain.Snapshot) {
	if snapshot.Status.IsTerminal() {
		return
	}
	sm.publish(snapshot)
}

// SessionEnded implements Observer. The result is archived in the background
// so the end-of-game notice is never held up by storage.
func (sm *SessionManager) SessionEnded(snapshot domain.Snapshot) {
	sm.publish(snapshot)

	if sm.recorder == nil {
		return
	}

	result := snapshot.Result()
	sm.pending.Add(1)
	go func() {
		defer sm.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := sm.recorder.SaveResult(ctx, result); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", result.GameID, err)
			return
		}
		log.Printf("[GAME] Game %s saved successfully", result.GameID)
	}()
}

// Wait blocks until background result writes have finished.
func (sm *SessionManager) Wait() {
	sm.pending.Wait()
}

// publish caches snapshot unless its session has already been removed.
func (sm *SessionManager) publish(snapshot domain.Snapshot) {
	if sm.cache == nil {
		return
	}
	if _, ok := sm.GetSession(snapshot.GameID); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := sm.cache.SaveSnapshot(ctx, snapshot); err != nil {
		log.Printf("[SESSION] Failed to cache snapshot %s: %v", snapshot.GameID, err)
	}
}
