// Package session owns the live clock-in state. Nothing about an open session
// is persisted; only the completed interval reaches the store.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"timesheet/internal/apperr"
	"timesheet/interval"
	"timesheet/shift"
)

// Appender persists one completed interval and returns its row ID.
type Appender interface {
	Append(item interval.Interval) (int64, error)
}

type OpenSession struct {
	ID    uuid.UUID
	Start time.Time
}

// Running describes an open session at a given instant.
type Running struct {
	Session OpenSession
	Elapsed time.Duration
	Shift   shift.Label
}

type Controller struct {
	store  Appender
	now    func() time.Time
	logger *slog.Logger

	mu   sync.Mutex
	open *OpenSession
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewController(store Appender, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClockIn opens a session at the current time. It returns false and leaves
// the existing session untouched when one is already open.
func (c *Controller) ClockIn() (OpenSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open != nil {
		return *c.open, false
	}

	opened := OpenSession{ID: uuid.New(), Start: c.now()}
	c.open = &opened
	c.logger.Info("clocked in", "session", opened.ID.String(), "start", opened.Start.Format(interval.TimestampLayout))
	return opened, true
}

// ClockOut closes the open session and appends the interval to the store.
// It returns false when no session is open. If the store rejects the interval
// the session stays open so the user can retry.
func (c *Controller) ClockOut() (interval.Interval, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open == nil {
		return interval.Interval{}, false, nil
	}

	item, err := interval.New(c.open.Start, c.now())
	if err != nil {
		return interval.Interval{}, false, err
	}

	id, err := c.store.Append(item)
	if err != nil {
		c.logger.Error("clock out failed", "session", c.open.ID.String(), "error", err)
		return interval.Interval{}, false, apperr.Storage("append interval", err)
	}
	item.ID = id

	c.logger.Info("clocked out",
		"session", c.open.ID.String(),
		"start", item.Start.Format(interval.TimestampLayout),
		"end", item.End.Format(interval.TimestampLayout),
		"hours", item.DurationHours,
		"shift", item.Shift.Code(),
	)
	c.open = nil
	return item, true, nil
}

func (c *Controller) Current() (OpenSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open == nil {
		return OpenSession{}, false
	}
	return *c.open, true
}

// Status reports the open session as of the controller clock.
func (c *Controller) Status() (Running, bool) {
	open, ok := c.Current()
	if !ok {
		return Running{}, false
	}

	now := c.now()
	out := Running{Session: open, Elapsed: now.Sub(open.Start)}
	if now.After(open.Start) {
		out.Shift = shift.ClassifyOverlap(open.Start, now)
	}
	return out, true
}
