package cleanup

import (
	"context"
	"log"
	"sync"
	"time"
)

const pruneTimeout = 30 * time.Second

// SessionSweeper abandons idle sessions and forgets finished ones.
type SessionSweeper interface {
	CleanupOldSessions(now time.Time, idleTimeout, retention time.Duration) int
}

// ArchivePruner deletes archived results older than age.
type ArchivePruner interface {
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type Options struct {
	Interval         time.Duration
	IdleTimeout      time.Duration
	Retention        time.Duration
	ArchiveRetention time.Duration // zero keeps archived results forever
}

type Worker struct {
	sessions SessionSweeper
	archive  ArchivePruner // optional
	opts     Options
	now      func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

func NewWorker(sessions SessionSweeper, archive ArchivePruner, opts Options) *Worker {
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Minute
	}
	return &Worker{
		sessions: sessions,
		archive:  archive,
		opts:     opts,
		now:      time.Now,
	}
}

// Start runs a sweep immediately and then once per interval until ctx is
// cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.opts.Interval)
		defer ticker.Stop()

		w.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

// Stop cancels the worker and waits for the running sweep to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Println("[CLEANUP] Background worker stopped")
}

// RunOnce performs a single sweep.
func (w *Worker) RunOnce(ctx context.Context) {
	removed := w.sessions.CleanupOldSessions(w.now(), w.opts.IdleTimeout, w.opts.Retention)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d stale sessions", removed)
	}

	if w.archive == nil || w.opts.ArchiveRetention <= 0 {
		return
	}

	pruneCtx, cancel := context.WithTimeout(ctx, pruneTimeout)
	defer cancel()

	deleted, err := w.archive.DeleteOlderThan(pruneCtx, w.opts.ArchiveRetention)
	if err != nil {
		log.Printf("[CLEANUP] Error pruning archived results: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[CLEANUP] Removed %d archived results", deleted)
	}
}
