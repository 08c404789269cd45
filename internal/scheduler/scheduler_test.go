package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fireLog struct {
	mu    sync.Mutex
	times []time.Duration
	start time.Time
}

func newFireLog() *fireLog {
	return &fireLog{start: time.Now()}
}

func (l *fireLog) record() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.times = append(l.times, time.Since(l.start))
}

func (l *fireLog) snapshot() []time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]time.Duration(nil), l.times...)
}

func TestScheduleRejectsInvalidPeriods(t *testing.T) {
	s := New()

	assert.ErrorIs(t, s.Schedule("zero", 0, 0, func() {}), ErrInvalidPeriod)
	assert.ErrorIs(t, s.Schedule("negative", 0, -time.Second, func() {}), ErrInvalidPeriod)
	assert.Error(t, s.Schedule("negative delay", -time.Second, time.Second, func() {}))
}

func TestScheduleAfterStart(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.ErrorIs(t, s.Schedule("late", 0, time.Second, func() {}), ErrStarted)
	assert.ErrorIs(t, s.Start(context.Background()), ErrStarted)
}

func TestDelayedActionWaitsOnePeriod(t *testing.T) {
	const period = 200 * time.Millisecond

	s := New()
	log := newFireLog()
	require.NoError(t, s.Schedule("advance", period, period, log.record))
	require.NoError(t, s.Start(context.Background()))

	time.Sleep(period / 2)
	assert.Empty(t, log.snapshot(), "must not fire before one full period")

	time.Sleep(3*period + period/2)
	s.Stop()

	fires := log.snapshot()
	require.GreaterOrEqual(t, len(fires), 3)
	for i, at := range fires[:3] {
		boundary := time.Duration(i+1) * period
		assert.GreaterOrEqual(t, at, boundary, "fire %d early", i)
		assert.Less(t, at, boundary+period/2, "fire %d too late", i)
	}
}

func TestImmediateActionFiresAtStart(t *testing.T) {
	const period = 100 * time.Millisecond

	s := New()
	log := newFireLog()
	require.NoError(t, s.Schedule("clock", 0, period, log.record))
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool { return len(log.snapshot()) >= 1 }, period/2, time.Millisecond)

	time.Sleep(2*period + period/2)
	s.Stop()

	assert.GreaterOrEqual(t, len(log.snapshot()), 3)
}

func TestActionsNeverOverlap(t *testing.T) {
	var running, overlaps, calls int32
	body := func() {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&calls, 1)
		atomic.AddInt32(&running, -1)
	}

	s := New()
	require.NoError(t, s.Schedule("a", 0, 10*time.Millisecond, body))
	require.NoError(t, s.Schedule("b", 0, 10*time.Millisecond, body))
	require.NoError(t, s.Start(context.Background()))

	time.Sleep(150 * time.Millisecond)
	s.Stop()

	assert.Greater(t, atomic.LoadInt32(&calls), int32(4))
	assert.Equal(t, int32(0), atomic.LoadInt32(&overlaps))
}

func TestPanickingActionIsCancelled(t *testing.T) {
	var bad, good int32

	s := New()
	require.NoError(t, s.Schedule("bad", 0, 10*time.Millisecond, func() {
		atomic.AddInt32(&bad, 1)
		panic("boom")
	}))
	require.NoError(t, s.Schedule("good", 0, 10*time.Millisecond, func() {
		atomic.AddInt32(&good, 1)
	}))
	require.NoError(t, s.Start(context.Background()))

	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&bad))
	assert.Greater(t, atomic.LoadInt32(&good), int32(3))
}

func TestStopHaltsActions(t *testing.T) {
	var calls int32

	s := New()
	require.NoError(t, s.Schedule("tick", 0, 10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) }))
	require.NoError(t, s.Start(context.Background()))

	time.Sleep(50 * time.Millisecond)
	s.Stop()
	stopped := atomic.LoadInt32(&calls)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))

	// second Stop is a no-op
	s.Stop()
}

func TestContextCancelStopsSchedules(t *testing.T) {
	var calls int32

	ctx, cancel := context.WithCancel(context.Background())
	s := New()
	require.NoError(t, s.Schedule("tick", 0, 10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) }))
	require.NoError(t, s.Start(ctx))

	time.Sleep(30 * time.Millisecond)
	cancel()
	s.Stop()
	stopped := atomic.LoadInt32(&calls)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))
}

func TestStopBeforeStart(t *testing.T) {
	New().Stop()
}
