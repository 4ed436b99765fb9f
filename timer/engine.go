// Package timer runs the single countdown slot shared by Pomodoros and
// breaks, and drives it from the terminal
package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/streak"
)

// TimerType tags the occupant of the slot.
type TimerType string

const (
	TypePomo  TimerType = "pomo"
	TypeBreak TimerType = "break"
)

func typeOf(t models.SessionType) TimerType {
	if t.IsBreak() {
		return TypeBreak
	}

	return TypePomo
}

// Bookkeeper persists the outcome of finished runs. ledger.Ledger is the
// production implementation.
type Bookkeeper interface {
	LoadStreak(ctx context.Context) (int, error)
	RecordPomodoro(
		ctx context.Context,
		start time.Time,
		flower models.FlowerType,
	) (*models.Session, *models.Flower, error)
	ApplyStreak(
		ctx context.Context,
		sessionID string,
		tr streak.Transition,
		flower models.FlowerType,
	) (models.BonusItem, *models.Flower, error)
	SetStreak(ctx context.Context, count int) error
	RecordQuit(ctx context.Context, start time.Time, flower models.FlowerType) error
	RecordBreak(
		ctx context.Context,
		t models.SessionType,
		start time.Time,
		status models.SessionStatus,
	) error
}

// Snapshot is a copy of the engine state.
type Snapshot struct {
	StartedAt        time.Time
	Type             TimerType
	SessionType      models.SessionType
	Flower           models.FlowerType
	TimeRemaining    int
	Duration         int
	ConsecutiveCount int
	Run              int
	Running          bool
	Paused           bool
}

// Occupied reports whether a run is counting down or paused.
func (s Snapshot) Occupied() bool {
	return s.Running || s.Paused
}

// Completion describes a run that reached zero.
type Completion struct {
	Session          *models.Session
	Flower           *models.Flower
	BonusFlower      *models.Flower
	SessionType      models.SessionType
	NextBreak        models.SessionType
	FlowerType       models.FlowerType
	Bonus            models.BonusItem
	ConsecutiveCount int
	// Big is set when the finished Pomodoro was the last of a cycle
	Big bool
}

// Engine is the countdown state machine. It is safe for concurrent use.
type Engine struct {
	startedAt   time.Time
	pausedAt    time.Time
	books       Bookkeeper
	now         func() time.Time
	onComplete  func(*Completion)
	sessionType models.SessionType
	flower      models.FlowerType
	remaining   int
	duration    int
	count       int
	run         int
	mu          sync.Mutex
	running     bool
	paused      bool
	completed   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the source of run start times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithFlower selects the flower grown by the next Pomodoro.
func WithFlower(f models.FlowerType) Option {
	return func(e *Engine) {
		e.flower = models.ParseFlower(string(f))
	}
}

// OnComplete registers a hook invoked after every completion.
func OnComplete(fn func(*Completion)) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// New returns an idle engine seeded with the persisted consecutive count.
func New(ctx context.Context, books Bookkeeper, opts ...Option) (*Engine, error) {
	e := &Engine{
		books:       books,
		now:         time.Now,
		flower:      models.DefaultFlower,
		sessionType: models.Pomo,
	}

	for _, opt := range opts {
		opt(e)
	}

	count, err := books.LoadStreak(ctx)
	if err != nil {
		return nil, err
	}

	e.count = count

	return e, nil
}

// Start places a new run in the slot, replacing any previous occupant.
func (e *Engine) Start(d time.Duration, t models.SessionType) error {
	secs := int(d / time.Second)
	if secs <= 0 {
		return ErrInvalidDuration.Fmt(d)
	}

	if !t.Valid() {
		return errUnknownSessionType.Fmt(t)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sessionType = t
	e.duration = secs
	e.remaining = secs
	e.running = true
	e.paused = false
	e.completed = false
	e.startedAt = e.now()
	e.run++

	return nil
}

// Pause freezes a running countdown.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	e.paused = true
	e.pausedAt = e.now()
	e.run++
}

// Resume continues a paused countdown from where it stopped.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.paused {
		return
	}

	e.startedAt = e.activeStart()
	e.running = true
	e.paused = false
	e.run++
}

// activeStart returns the start time moved forward past the current
// pause, so time spent paused is not counted as run time.
func (e *Engine) activeStart() time.Time {
	if !e.paused {
		return e.startedAt
	}

	return e.startedAt.Add(e.now().Sub(e.pausedAt))
}

// Reset empties the slot. The consecutive count is left alone.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clear()
}

func (e *Engine) clear() {
	e.running = false
	e.paused = false
	e.remaining = 0
	e.run++
}

// Restart begins the last run again from its full duration.
func (e *Engine) Restart() error {
	e.mu.Lock()
	d, t := e.duration, e.sessionType
	e.mu.Unlock()

	if d == 0 {
		return errNothingToRestart
	}

	e.Reset()

	return e.Start(time.Duration(d)*time.Second, t)
}

// Quit abandons the current run. Quitting a Pomodoro breaks the streak
// and records the run as quit. Quitting a break is the same as skipping it.
func (e *Engine) Quit(ctx context.Context) {
	e.mu.Lock()

	if !e.running && !e.paused {
		e.mu.Unlock()
		return
	}

	if e.sessionType.IsBreak() {
		e.mu.Unlock()
		e.Skip(ctx)

		return
	}

	start, flower := e.activeStart(), e.flower
	e.count = streak.Quit(e.count)
	e.clear()
	e.mu.Unlock()

	if err := e.books.SetStreak(ctx, 0); err != nil {
		slog.ErrorContext(ctx, "resetting consecutive count failed",
			slog.Any("error", err),
		)
	}

	if err := e.books.RecordQuit(ctx, start, flower); err != nil {
		slog.ErrorContext(ctx, "recording quit pomodoro failed",
			slog.Any("error", err),
		)
	}
}

// Skip ends a break early without completing it.
func (e *Engine) Skip(ctx context.Context) {
	e.mu.Lock()

	if !e.sessionType.IsBreak() || (!e.running && !e.paused) {
		e.mu.Unlock()
		return
	}

	t, start := e.sessionType, e.activeStart()
	e.clear()
	e.mu.Unlock()

	err := e.books.RecordBreak(ctx, t, start, models.StatusQuit)
	if err != nil {
		slog.ErrorContext(ctx, "recording skipped break failed",
			slog.Any("error", err),
		)
	}
}

// SetTimeRemaining overwrites the remaining seconds.
func (e *Engine) SetTimeRemaining(secs int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.remaining = max(secs, 0)
}

// Tick advances the countdown of run by one second. Ticks for any other
// run, or for a slot that is not running, are dropped. The completion is
// returned by the tick that takes the countdown to zero and by no other.
func (e *Engine) Tick(ctx context.Context, run int) (*Completion, bool) {
	e.mu.Lock()

	if run != e.run || !e.running || e.completed {
		e.mu.Unlock()
		return nil, false
	}

	if e.remaining > 0 {
		e.remaining--
	}

	if e.remaining > 0 {
		e.mu.Unlock()
		return nil, false
	}

	e.completed = true
	e.running = false
	e.paused = false
	e.run++

	t, start, flower := e.sessionType, e.startedAt, e.flower

	var tr streak.Transition
	if t == models.Pomo {
		tr = streak.Complete(e.count)
	} else {
		tr = streak.Transition{Count: streak.EndBreak(e.count, t)}
	}

	prev := e.count
	e.count = tr.Count
	e.mu.Unlock()

	var c *Completion
	if t == models.Pomo {
		c = e.completePomodoro(ctx, start, flower, tr)
	} else {
		c = e.completeBreak(ctx, t, start, prev, tr.Count)
	}

	if e.onComplete != nil {
		e.onComplete(c)
	}

	return c, true
}

func (e *Engine) completePomodoro(
	ctx context.Context,
	start time.Time,
	flower models.FlowerType,
	tr streak.Transition,
) *Completion {
	c := &Completion{
		SessionType:      models.Pomo,
		FlowerType:       flower,
		Big:              tr.Big,
		NextBreak:        streak.NextBreak(tr.Big),
		ConsecutiveCount: tr.Count,
	}

	sess, f, err := e.books.RecordPomodoro(ctx, start, flower)
	if err != nil {
		slog.ErrorContext(ctx, "recording pomodoro failed",
			slog.Any("error", err),
		)
	}

	c.Session, c.Flower = sess, f

	var sessionID string
	if sess != nil {
		sessionID = sess.SessionID
	}

	c.Bonus, c.BonusFlower, err = e.books.ApplyStreak(ctx, sessionID, tr, flower)
	if err != nil {
		slog.ErrorContext(ctx, "applying consecutive count failed",
			slog.Any("error", err),
			slog.Int("count", tr.Count),
		)
	}

	return c
}

func (e *Engine) completeBreak(
	ctx context.Context,
	t models.SessionType,
	start time.Time,
	prev, count int,
) *Completion {
	if count != prev {
		if err := e.books.SetStreak(ctx, count); err != nil {
			slog.ErrorContext(ctx, "resetting consecutive count failed",
				slog.Any("error", err),
			)
		}
	}

	err := e.books.RecordBreak(ctx, t, start, models.StatusCompleted)
	if err != nil {
		slog.ErrorContext(ctx, "recording break failed",
			slog.Any("error", err),
		)
	}

	return &Completion{
		SessionType:      t,
		NextBreak:        models.ShortBreak,
		ConsecutiveCount: count,
	}
}

// SelectFlower sets the flower grown by the next Pomodoro and returns the
// flower actually selected.
func (e *Engine) SelectFlower(name string) models.FlowerType {
	f := models.ParseFlower(name)

	e.mu.Lock()
	e.flower = f
	e.mu.Unlock()

	return f
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Running:          e.running,
		Paused:           e.paused,
		TimeRemaining:    e.remaining,
		Duration:         e.duration,
		Type:             typeOf(e.sessionType),
		SessionType:      e.sessionType,
		ConsecutiveCount: e.count,
		Flower:           e.flower,
		StartedAt:        e.startedAt,
		Run:              e.run,
	}
}
