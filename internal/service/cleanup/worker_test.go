package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepCall struct {
	now       time.Time
	idle      time.Duration
	retention time.Duration
}

type fakeSweeper struct {
	mu    sync.Mutex
	calls []sweepCall
}

func (f *fakeSweeper) CleanupOldSessions(now time.Time, idleTimeout, retention time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sweepCall{now: now, idle: idleTimeout, retention: retention})
	return 1
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePruner struct {
	ages []time.Duration
	err  error
}

func (f *fakePruner) DeleteOlderThan(_ context.Context, age time.Duration) (int64, error) {
	f.ages = append(f.ages, age)
	return 3, f.err
}

func TestWorker_RunOnce(t *testing.T) {
	sweeper := &fakeSweeper{}
	pruner := &fakePruner{}
	w := NewWorker(sweeper, pruner, Options{
		IdleTimeout:      time.Minute,
		Retention:        2 * time.Minute,
		ArchiveRetention: 24 * time.Hour,
	})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	w.RunOnce(context.Background())

	require.Len(t, sweeper.calls, 1)
	assert.Equal(t, sweepCall{now: fixed, idle: time.Minute, retention: 2 * time.Minute}, sweeper.calls[0])
	assert.Equal(t, []time.Duration{24 * time.Hour}, pruner.ages)
}

func TestWorker_RunOnceWithoutArchiveRetention(t *testing.T) {
	pruner := &fakePruner{}
	w := NewWorker(&fakeSweeper{}, pruner, Options{})

	w.RunOnce(context.Background())

	assert.Empty(t, pruner.ages)
}

func TestWorker_RunOncePruneError(t *testing.T) {
	sweeper := &fakeSweeper{}
	pruner := &fakePruner{err: errors.New("db down")}
	w := NewWorker(sweeper, pruner, Options{ArchiveRetention: time.Hour})

	assert.NotPanics(t, func() { w.RunOnce(context.Background()) })
	assert.Equal(t, 1, sweeper.count())
}

func TestWorker_StartStop(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := NewWorker(sweeper, nil, Options{Interval: 5 * time.Millisecond})

	w.Start(context.Background())
	w.Start(context.Background())

	assert.Eventually(t, func() bool { return sweeper.count() >= 2 }, time.Second, 5*time.Millisecond)

	w.Stop()
	stopped := sweeper.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, sweeper.count())

	w.Stop()
}

func TestWorker_StopsWithContext(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := NewWorker(sweeper, nil, Options{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	w.Start(ctx)
	cancel()

	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
	assert.Equal(t, 1, sweeper.count())
}
