package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/repo"
	"github.com/ayoisaiah/doro/stats"
	"github.com/ayoisaiah/doro/store"
	"github.com/ayoisaiah/doro/streak"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newLedger(t *testing.T, opts ...Option) (*Ledger, *repo.Repos) {
	t.Helper()

	return newLedgerAt(t, now, opts...)
}

func newLedgerAt(t *testing.T, at time.Time, opts ...Option) (*Ledger, *repo.Repos) {
	t.Helper()

	r := repo.New(store.NewMemory(), repo.WithClock(func() time.Time {
		return at
	}))

	return New(r, stats.New(r), opts...), r
}

// cycle records n completed Pomodoros and applies their streak transitions.
func cycle(t *testing.T, l *Ledger, n int) []models.BonusItem {
	t.Helper()

	ctx := context.Background()

	var bonuses []models.BonusItem

	for i := 0; i < n; i++ {
		count, err := l.LoadStreak(ctx)
		require.NoError(t, err)

		sess, _, err := l.RecordPomodoro(ctx, now.Add(-25*time.Minute), models.Daisy)
		require.NoError(t, err)

		bonus, _, err := l.ApplyStreak(ctx, sess.SessionID, streak.Complete(count), models.Daisy)
		require.NoError(t, err)

		bonuses = append(bonuses, bonus)
	}

	return bonuses
}

func TestRecordPomodoroLinksFlowerToSession(t *testing.T) {
	ctx := context.Background()
	l, r := newLedger(t)

	sess, f, err := l.RecordPomodoro(ctx, now.Add(-25*time.Minute), models.Peony)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, sess.Status)
	require.NotNil(t, sess.EndTime)
	assert.Equal(t, now, *sess.EndTime)

	assert.Equal(t, sess.SessionID, f.EarnedFromSessionID)
	assert.Equal(t, models.Peony, f.Type)
	assert.False(t, f.IsBonus)

	flowers, err := r.Flowers.All(ctx)
	require.NoError(t, err)

	for _, fl := range flowers {
		if fl.IsBonus {
			continue
		}

		s, err := r.Sessions.Get(ctx, fl.EarnedFromSessionID)
		require.NoError(t, err)
		assert.Equal(t, models.Pomo, s.Type)
		assert.Equal(t, models.StatusCompleted, s.Status)
	}

	ids, err := r.Bouquets.FlowerIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{f.FlowerID}, ids)

	today, err := l.stats.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, today.PomodorosCompleted)
	assert.Equal(t, 25, today.FocusMinutes)
	assert.Equal(t, 1, today.CurrentStreak)
}

func TestCyclesEarnWrapperThenBonusFlowers(t *testing.T) {
	ctx := context.Background()
	l, r := newLedger(t)

	bonuses := cycle(t, l, 6)

	assert.Equal(t, []models.BonusItem{
		"", "", models.BonusWrapper,
		"", "", models.BonusFlower,
	}, bonuses)

	bonus, err := r.Flowers.Bonus(ctx)
	require.NoError(t, err)
	require.Len(t, bonus, 1)
	assert.Equal(t, models.Daisy, bonus[0].Type)
	assert.NotEmpty(t, bonus[0].EarnedFromConsecutivePomoID)

	group, err := r.Consecutive.Get(ctx, bonus[0].EarnedFromConsecutivePomoID)
	require.NoError(t, err)
	assert.Equal(t, models.GroupCompleted, group.Status)
	assert.Equal(t, models.BonusFlower, group.BonusItem)
	assert.Len(t, group.SessionIDs, 3)

	ids, err := r.Bouquets.FlowerIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 7)

	active, err := r.Consecutive.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestSetStreakZeroBreaksGroup(t *testing.T) {
	ctx := context.Background()
	l, r := newLedger(t)

	cycle(t, l, 2)

	group, err := r.Consecutive.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, group)

	require.NoError(t, l.SetStreak(ctx, 0))

	group, err = r.Consecutive.Get(ctx, group.ConsecutivePomoID)
	require.NoError(t, err)
	assert.Equal(t, models.GroupBroken, group.Status)

	count, err := l.LoadStreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLoadStreakClampsOutOfRange(t *testing.T) {
	ctx := context.Background()
	l, r := newLedger(t)

	require.NoError(t, r.Progress.SetConsecutive(ctx, 7))

	count, err := l.LoadStreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecordQuit(t *testing.T) {
	ctx := context.Background()
	l, r := newLedger(t)

	require.NoError(t, l.RecordQuit(ctx, now.Add(-10*time.Minute), "tulip"))

	sessions, err := r.Sessions.All(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.StatusQuit, sessions[0].Status)
	assert.Equal(t, models.Rose, sessions[0].FlowerType)

	flowers, err := r.Flowers.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, flowers)
}

func TestRecordBreak(t *testing.T) {
	testCases := []struct {
		name   string
		record bool
		want   int
	}{
		{name: "disabled", record: false, want: 0},
		{name: "enabled", record: true, want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			l, r := newLedger(t, WithRecordBreaks(tc.record))

			err := l.RecordBreak(
				ctx,
				models.ShortBreak,
				now.Add(-5*time.Minute),
				models.StatusCompleted,
			)
			require.NoError(t, err)

			sessions, err := r.Sessions.ByType(ctx, models.ShortBreak)
			require.NoError(t, err)
			assert.Len(t, sessions, tc.want)

			if tc.want == 0 {
				return
			}

			day, err := l.stats.Today(ctx)
			require.NoError(t, err)
			assert.Equal(t, 5, day.BreakMinutes)
		})
	}
}

func TestRunAcrossMidnightCountsOnStartDay(t *testing.T) {
	ctx := context.Background()
	afterMidnight := time.Date(2026, 10, 17, 0, 10, 0, 0, time.UTC)

	l, r := newLedgerAt(t, afterMidnight, WithRecordBreaks(true))

	_, _, err := l.RecordPomodoro(ctx, afterMidnight.Add(-25*time.Minute), models.Rose)
	require.NoError(t, err)

	err = l.RecordBreak(
		ctx,
		models.ShortBreak,
		afterMidnight.Add(-15*time.Minute),
		models.StatusCompleted,
	)
	require.NoError(t, err)

	p, err := r.Progress.Get(ctx)
	require.NoError(t, err)

	var pomos int
	for _, s := range p.DailyStats {
		pomos += s.PomosCompleted
	}

	assert.Equal(t, p.TotalPomos, pomos)

	yesterday := p.Stat("2026-10-16")
	require.NotNil(t, yesterday)
	assert.Equal(t, 1, yesterday.PomosCompleted)
	assert.Equal(t, 25, yesterday.FocusMinutes)
	assert.Equal(t, 15, yesterday.BreakMinutes)

	today := p.Stat("2026-10-17")
	require.NotNil(t, today)
	assert.Equal(t, 0, today.PomosCompleted)
}
