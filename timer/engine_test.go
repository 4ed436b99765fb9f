package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/ledger"
	"github.com/ayoisaiah/doro/repo"
	"github.com/ayoisaiah/doro/stats"
	"github.com/ayoisaiah/doro/store"
)

var (
	now     = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	errDisk = errors.New("disk full")
)

// failingDB rejects every write to one collection.
type failingDB struct {
	store.DB
	coll store.Collection
}

func (f failingDB) Add(ctx context.Context, c store.Collection, k string, v []byte) error {
	if c == f.coll {
		return errDisk
	}

	return f.DB.Add(ctx, c, k, v)
}

func (f failingDB) Put(ctx context.Context, c store.Collection, k string, v []byte) error {
	if c == f.coll {
		return errDisk
	}

	return f.DB.Put(ctx, c, k, v)
}

type fixture struct {
	repos  *repo.Repos
	engine *Engine
}

func newFixture(t *testing.T, db store.DB, count int, opts ...Option) *fixture {
	t.Helper()

	ctx := context.Background()
	clock := func() time.Time { return now }

	r := repo.New(db, repo.WithClock(clock))
	require.NoError(t, r.Progress.SetConsecutive(ctx, count))

	books := ledger.New(r, stats.New(r), ledger.WithRecordBreaks(true))

	e, err := New(ctx, books, append([]Option{WithClock(clock)}, opts...)...)
	require.NoError(t, err)

	return &fixture{repos: r, engine: e}
}

// finish runs the current occupant down to zero.
func (f *fixture) finish(t *testing.T) *Completion {
	t.Helper()

	snap := f.engine.Snapshot()
	require.True(t, snap.Running)

	f.engine.SetTimeRemaining(1)

	c, ok := f.engine.Tick(context.Background(), snap.Run)
	require.True(t, ok)
	require.NotNil(t, c)

	return c
}

func (f *fixture) pomodoro(t *testing.T) *Completion {
	t.Helper()

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	return f.finish(t)
}

func (f *fixture) sessions(t *testing.T) []models.Session {
	t.Helper()

	s, err := f.repos.Sessions.All(context.Background())
	require.NoError(t, err)

	return s
}

func (f *fixture) flowers(t *testing.T) []models.Flower {
	t.Helper()

	fl, err := f.repos.Flowers.All(context.Background())
	require.NoError(t, err)

	return fl
}

func (f *fixture) storedCount(t *testing.T) int {
	t.Helper()

	p, err := f.repos.Progress.Get(context.Background())
	require.NoError(t, err)

	return p.ConsecutivePomos
}

func TestStartRejectsNonPositiveDuration(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 0)

	for _, d := range []time.Duration{0, -time.Minute, 500 * time.Millisecond} {
		err := f.engine.Start(d, models.Pomo)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}

	assert.False(t, f.engine.Snapshot().Running)
}

func TestStartSetsRunningState(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 0)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	snap := f.engine.Snapshot()
	assert.True(t, snap.Running)
	assert.False(t, snap.Paused)
	assert.Equal(t, 1500, snap.TimeRemaining)
	assert.Equal(t, TypePomo, snap.Type)
	assert.Empty(t, f.sessions(t))
}

func TestCompletePomodoro(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemory(), 0)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	run := f.engine.Snapshot().Run

	for i := 0; i < 1499; i++ {
		c, ok := f.engine.Tick(ctx, run)
		require.False(t, ok)
		require.Nil(t, c)
	}

	c, ok := f.engine.Tick(ctx, run)
	require.True(t, ok)

	assert.False(t, c.Big)
	assert.Equal(t, models.ShortBreak, c.NextBreak)
	assert.Equal(t, 1, c.ConsecutiveCount)

	sessions := f.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.Pomo, sessions[0].Type)
	assert.Equal(t, models.StatusCompleted, sessions[0].Status)
	assert.Equal(t, models.Rose, sessions[0].FlowerType)
	assert.NotNil(t, sessions[0].EndTime)

	flowers := f.flowers(t)
	require.Len(t, flowers, 1)
	assert.False(t, flowers[0].IsBonus)
	assert.Equal(t, sessions[0].SessionID, flowers[0].EarnedFromSessionID)

	snap := f.engine.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 1, snap.ConsecutiveCount)
	assert.Equal(t, 1, f.storedCount(t))
}

func TestCompletionFiresOnce(t *testing.T) {
	ctx := context.Background()

	var hooks int

	f := newFixture(t, store.NewMemory(), 0, OnComplete(func(*Completion) {
		hooks++
	}))

	require.NoError(t, f.engine.Start(time.Minute, models.Pomo))

	run := f.engine.Snapshot().Run

	f.engine.SetTimeRemaining(0)

	_, ok := f.engine.Tick(ctx, run)
	require.True(t, ok)

	// the driver may keep delivering ticks after zero
	for _, r := range []int{run, run + 1, f.engine.Snapshot().Run} {
		f.engine.SetTimeRemaining(0)

		c, ok := f.engine.Tick(ctx, r)
		assert.False(t, ok)
		assert.Nil(t, c)
	}

	assert.Equal(t, 1, hooks)
	assert.Len(t, f.sessions(t), 1)
	assert.Len(t, f.flowers(t), 1)
	assert.Equal(t, 1, f.engine.Snapshot().ConsecutiveCount)
}

func TestConsecutiveCycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemory(), 0)

	var (
		counts []int
		bigs   []bool
	)

	for i := 0; i < 3; i++ {
		c := f.pomodoro(t)

		counts = append(counts, c.ConsecutiveCount)
		bigs = append(bigs, c.Big)
	}

	assert.Equal(t, []int{1, 2, 0}, counts)
	assert.Equal(t, []bool{false, false, true}, bigs)

	p, err := f.repos.Progress.Get(ctx)
	require.NoError(t, err)
	assert.True(t, p.WrapperEarned)
	assert.Equal(t, 3, p.TotalPomos)
	assert.Equal(t, 0, p.ConsecutivePomos)
}

func TestThirdPomodoroOffersLongBreak(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 2)

	assert.Equal(t, 2, f.engine.Snapshot().ConsecutiveCount)

	c := f.pomodoro(t)

	assert.True(t, c.Big)
	assert.Equal(t, 0, c.ConsecutiveCount)
	assert.Equal(t, models.LongBreak, c.NextBreak)
	assert.Equal(t, models.BonusWrapper, c.Bonus)
}

func TestPauseResumeResetLeavesNoRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemory(), 1)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	for i := 0; i < 3; i++ {
		run := f.engine.Snapshot().Run

		f.engine.Pause()
		f.engine.Pause()

		snap := f.engine.Snapshot()
		assert.True(t, snap.Paused)
		assert.False(t, snap.Running)

		// a tick scheduled before the pause must not count down
		_, ok := f.engine.Tick(ctx, run)
		assert.False(t, ok)
		assert.Equal(t, 1500, f.engine.Snapshot().TimeRemaining)

		f.engine.Resume()
		assert.True(t, f.engine.Snapshot().Running)
	}

	f.engine.Reset()

	snap := f.engine.Snapshot()
	assert.False(t, snap.Running)
	assert.False(t, snap.Paused)
	assert.Equal(t, 0, snap.TimeRemaining)
	assert.Equal(t, 1, snap.ConsecutiveCount)

	assert.Empty(t, f.sessions(t))
	assert.Empty(t, f.flowers(t))
	assert.Equal(t, 1, f.storedCount(t))
}

func TestQuitBreaksStreak(t *testing.T) {
	for _, count := range []int{0, 1, 2} {
		f := newFixture(t, store.NewMemory(), count)

		require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))
		f.engine.Pause()
		f.engine.Resume()

		f.engine.Quit(context.Background())

		assert.Equal(t, 0, f.engine.Snapshot().ConsecutiveCount)
		assert.Equal(t, 0, f.storedCount(t))
		assert.Empty(t, f.flowers(t))

		sessions := f.sessions(t)
		require.Len(t, sessions, 1)
		assert.Equal(t, models.StatusQuit, sessions[0].Status)
	}
}

func TestQuitBreaksActiveGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemory(), 0)

	f.pomodoro(t)

	group, err := f.repos.Consecutive.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, group)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))
	f.engine.Quit(ctx)

	group, err = f.repos.Consecutive.Get(ctx, group.ConsecutivePomoID)
	require.NoError(t, err)
	assert.Equal(t, models.GroupBroken, group.Status)
}

func TestFlowerWriteFailureStillCompletes(t *testing.T) {
	db := failingDB{DB: store.NewMemory(), coll: store.Flowers}
	f := newFixture(t, db, 0)

	c := f.pomodoro(t)

	assert.Nil(t, c.Flower)
	require.NotNil(t, c.Session)
	assert.Equal(t, 1, c.ConsecutiveCount)
	assert.False(t, f.engine.Snapshot().Running)

	sessions := f.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.StatusCompleted, sessions[0].Status)
	assert.Empty(t, f.flowers(t))
}

func TestLongBreakEndsCycle(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 2)

	require.NoError(t, f.engine.Start(15*time.Minute, models.LongBreak))
	assert.Equal(t, TypeBreak, f.engine.Snapshot().Type)

	c := f.finish(t)

	assert.Equal(t, models.LongBreak, c.SessionType)
	assert.Equal(t, 0, c.ConsecutiveCount)
	assert.Equal(t, 0, f.storedCount(t))
	assert.Empty(t, f.flowers(t))
}

func TestShortBreakKeepsCount(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 1)

	require.NoError(t, f.engine.Start(5*time.Minute, models.ShortBreak))

	c := f.finish(t)

	assert.Equal(t, 1, c.ConsecutiveCount)
	assert.Equal(t, 1, f.storedCount(t))

	sessions := f.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.ShortBreak, sessions[0].Type)
	assert.Equal(t, models.StatusCompleted, sessions[0].Status)
}

func TestSkipBreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemory(), 2)

	require.NoError(t, f.engine.Start(15*time.Minute, models.LongBreak))

	run := f.engine.Snapshot().Run

	f.engine.Skip(ctx)

	_, ok := f.engine.Tick(ctx, run)
	assert.False(t, ok)

	snap := f.engine.Snapshot()
	assert.False(t, snap.Occupied())
	assert.Equal(t, 2, snap.ConsecutiveCount)

	sessions := f.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.StatusQuit, sessions[0].Status)
}

func TestStartReplacesOccupant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemory(), 0)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	stale := f.engine.Snapshot().Run

	require.NoError(t, f.engine.Start(5*time.Minute, models.ShortBreak))

	f.engine.SetTimeRemaining(1)

	_, ok := f.engine.Tick(ctx, stale)
	assert.False(t, ok)
	assert.Equal(t, 1, f.engine.Snapshot().TimeRemaining)
}

func TestRestart(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 1)

	assert.Error(t, f.engine.Restart())

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))
	f.engine.SetTimeRemaining(42)

	require.NoError(t, f.engine.Restart())

	snap := f.engine.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 1500, snap.TimeRemaining)
	assert.Equal(t, 1, snap.ConsecutiveCount)
	assert.Empty(t, f.sessions(t))
}

func TestSelectFlower(t *testing.T) {
	f := newFixture(t, store.NewMemory(), 0)

	assert.Equal(t, models.Rose, f.engine.SelectFlower("tulip"))
	assert.Equal(t, models.Orchid, f.engine.SelectFlower("Orchid"))

	c := f.pomodoro(t)

	assert.Equal(t, models.Orchid, c.FlowerType)
	require.NotNil(t, c.Flower)
	assert.Equal(t, models.Orchid, c.Flower.Type)
	assert.Equal(t, models.Orchid, c.Session.FlowerType)
}

type movingClock struct {
	t time.Time
}

func (c *movingClock) now() time.Time {
	return c.t
}

func (c *movingClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newMovingFixture(t *testing.T) (*fixture, *movingClock) {
	t.Helper()

	clock := &movingClock{t: now}

	r := repo.New(store.NewMemory(), repo.WithClock(clock.now))
	books := ledger.New(r, stats.New(r))

	e, err := New(context.Background(), books, WithClock(clock.now))
	require.NoError(t, err)

	return &fixture{repos: r, engine: e}, clock
}

func TestPausedTimeIsNotFocusTime(t *testing.T) {
	f, clock := newMovingFixture(t)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	clock.advance(10 * time.Minute)
	f.engine.Pause()
	clock.advance(time.Hour)
	f.engine.Resume()
	clock.advance(15 * time.Minute)

	c := f.finish(t)
	require.NotNil(t, c.Session)
	assert.Equal(t, now.Add(time.Hour), c.Session.StartTime)
	assert.Equal(t, 25, c.Session.Minutes())

	today, err := stats.New(f.repos).Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, today.FocusMinutes)
}

func TestQuitWhilePausedExcludesPause(t *testing.T) {
	f, clock := newMovingFixture(t)

	require.NoError(t, f.engine.Start(25*time.Minute, models.Pomo))

	clock.advance(10 * time.Minute)
	f.engine.Pause()
	clock.advance(time.Hour)
	f.engine.Quit(context.Background())

	sessions := f.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.StatusQuit, sessions[0].Status)
	assert.Equal(t, 10, sessions[0].Minutes())
}
