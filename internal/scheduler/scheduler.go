// Package scheduler runs periodic actions at a fixed rate on a single worker goroutine.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidPeriod = errors.New("period must be positive")
	ErrStarted       = errors.New("scheduler already started")
)

// Action is a unit of work scheduled to run repeatedly.
type Action struct {
	Name         string
	InitialDelay time.Duration
	Period       time.Duration
	Run          func()

	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduler executes every registered Action on one worker goroutine, so actions
// never run concurrently with each other. A panicking action is cancelled; the
// remaining actions keep their schedules.
type Scheduler struct {
	mu      sync.Mutex
	actions []*Action
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule registers fn to first run after initialDelay and then every period.
// It must be called before Start.
func (s *Scheduler) Schedule(name string, initialDelay, period time.Duration, fn func()) error {
	if period <= 0 {
		return fmt.Errorf("action %q: %w, got %v", name, ErrInvalidPeriod, period)
	}
	if initialDelay < 0 {
		return fmt.Errorf("action %q: initial delay cannot be negative, got %v", name, initialDelay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrStarted
	}
	s.actions = append(s.actions, &Action{
		Name:         name,
		InitialDelay: initialDelay,
		Period:       period,
		Run:          fn,
	})
	return nil
}

// Start launches the worker and one timer per action. The schedules run until ctx
// is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	fires := make(chan *Action)
	start := time.Now()
	for _, a := range s.actions {
		a.ctx, a.cancel = context.WithCancel(ctx)

		s.wg.Add(1)
		go s.tick(a.ctx, a, start, fires)
	}

	s.wg.Add(1)
	go s.work(ctx, fires)

	logrus.WithField("actions", len(s.actions)).Debug("scheduler started")
	return nil
}

// Stop cancels every schedule and waits for the worker to return. An action that
// is currently running is allowed to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
}

// tick emits a at start+InitialDelay+n*Period. A late fire is followed by the
// missed ones back to back, as with any fixed-rate schedule.
func (s *Scheduler) tick(ctx context.Context, a *Action, start time.Time, fires chan<- *Action) {
	defer s.wg.Done()

	next := start.Add(a.InitialDelay)
	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		select {
		case <-ctx.Done():
			return
		case fires <- a:
		}

		next = next.Add(a.Period)
		timer.Reset(time.Until(next))
	}
}

func (s *Scheduler) work(ctx context.Context, fires <-chan *Action) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-fires:
			// a fire may already be in flight when its action gets cancelled
			if a.ctx.Err() != nil {
				continue
			}
			s.run(a)
		}
	}
}

func (s *Scheduler) run(a *Action) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("action", a.Name).Errorf("action panicked, cancelling its schedule: %v", r)
			a.cancel()
		}
	}()

	a.Run()
}
