// Package slideshow holds the image cursor and the two periodic actions that drive
// the display: advancing the image and refreshing the clock text.
package slideshow

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Akaiko1/laptop-slideshow/internal/renderer"
	"github.com/Akaiko1/laptop-slideshow/internal/scheduler"
)

const defaultClockPeriod = time.Second

// Display receives rendered state. Implementations own the display surface and
// must serialize both calls onto one goroutine.
type Display interface {
	ShowImage(img image.Image)
	ShowClock(timeText, dateText string)
}

// Clock provides the current time so that tests can use fixed timestamps.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// MockClock is a test clock that returns a fixed time.
type MockClock struct {
	Time time.Time
}

func (c MockClock) Now() time.Time {
	return c.Time
}

// Option configures a Slideshow.
type Option func(*Slideshow)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Slideshow) { s.now = c }
}

// WithClockPeriod changes how often the clock text is refreshed.
func WithClockPeriod(d time.Duration) Option {
	return func(s *Slideshow) { s.clockPeriod = d }
}

// Slideshow advances a Cursor every frame delay and refreshes the clock text every
// clock period, pushing both to a Display.
type Slideshow struct {
	cursor      *Cursor
	clock       renderer.ClockRenderer
	display     Display
	now         Clock
	frameDelay  time.Duration
	clockPeriod time.Duration

	scheduler *scheduler.Scheduler
}

// New creates a Slideshow. Nothing is scheduled until Run is called.
func New(cursor *Cursor, clock renderer.ClockRenderer, display Display, frameDelay time.Duration, opts ...Option) *Slideshow {
	s := &Slideshow{
		cursor:      cursor,
		clock:       clock,
		display:     display,
		now:         realClock{},
		frameDelay:  frameDelay,
		clockPeriod: defaultClockPeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShowCurrent renders the current image and clock without moving the cursor.
func (s *Slideshow) ShowCurrent() {
	s.display.ShowImage(s.cursor.Current())
	s.RefreshClock()
}

// Advance moves to the next image and renders it together with a fresh clock.
func (s *Slideshow) Advance() {
	img := s.cursor.Advance()
	logrus.WithField("index", s.cursor.Index()).Debug("advancing image")
	s.display.ShowImage(img)
	s.RefreshClock()
}

// RefreshClock renders the clock text only.
func (s *Slideshow) RefreshClock() {
	timeText, dateText := s.clock.RenderClock(s.now.Now())
	s.display.ShowClock(timeText, dateText)
}

// Run schedules the advance action after one full frame delay and the clock
// refresh immediately, then returns. Both stop when ctx is done or Stop is called.
func (s *Slideshow) Run(ctx context.Context) error {
	sched := scheduler.New()
	if err := sched.Schedule("advance", s.frameDelay, s.frameDelay, s.Advance); err != nil {
		return fmt.Errorf("failed to schedule image advance: %w", err)
	}
	if err := sched.Schedule("clock", 0, s.clockPeriod, s.RefreshClock); err != nil {
		return fmt.Errorf("failed to schedule clock refresh: %w", err)
	}
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	s.scheduler = sched

	logrus.WithFields(logrus.Fields{
		"images":     s.cursor.Len(),
		"frameDelay": s.frameDelay,
	}).Info("slideshow running")
	return nil
}

// Stop cancels both actions and waits for a running one to finish.
func (s *Slideshow) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
