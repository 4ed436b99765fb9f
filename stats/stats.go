// Package stats derives daily and overall progress from the recorded
// sessions and folds it into the progress record
package stats

import (
	"context"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/timeutil"
	"github.com/ayoisaiah/doro/repo"
)

// weekDays is the number of days covered by Week.
const weekDays = 7

type (
	// TodaySummary is the progress made on a single day.
	TodaySummary struct {
		Date               string `json:"date"`
		PomodorosCompleted int    `json:"pomodorosCompleted"`
		FocusMinutes       int    `json:"focusMinutes"`
		BreakMinutes       int    `json:"breakMinutes"`
		CurrentStreak      int    `json:"currentStreak"`
	}

	// OverallSummary is the progress made since the first Pomodoro.
	OverallSummary struct {
		TotalPomodoros int  `json:"totalPomodoros"`
		FocusMinutes   int  `json:"focusMinutes"`
		BonusFlowers   int  `json:"bonusFlowers"`
		WrapperEarned  bool `json:"wrapperEarned"`
	}
)

// Aggregator recomputes daily stats and the day streak.
type Aggregator struct {
	repos *repo.Repos
}

// New returns an Aggregator reading and writing through r.
func New(r *repo.Repos) *Aggregator {
	return &Aggregator{repos: r}
}

// ComputeDailyStat summarises the completed sessions among sessions.
// Sessions without both timestamps add no minutes.
func ComputeDailyStat(date string, sessions []models.Session) models.DailyStat {
	stat := models.DailyStat{Date: date}

	for i := range sessions {
		s := &sessions[i]

		if s.Status != models.StatusCompleted {
			continue
		}

		switch s.Type {
		case models.Pomo:
			stat.PomosCompleted++
			stat.FocusMinutes += s.Minutes()
		case models.ShortBreak, models.LongBreak:
			stat.BreakMinutes += s.Minutes()
		}
	}

	return stat
}

// RefreshDay recomputes the stat of day's local calendar date from that
// day's sessions and stores it in place of any previous value.
func (a *Aggregator) RefreshDay(
	ctx context.Context,
	day time.Time,
) (models.DailyStat, error) {
	start, end := timeutil.DayBounds(day)

	sessions, err := a.repos.Sessions.Between(ctx, start, end)
	if err != nil {
		return models.DailyStat{}, err
	}

	stat := ComputeDailyStat(timeutil.DateKey(start), sessions)

	return stat, a.repos.Progress.UpsertStat(ctx, stat)
}

// RefreshToday recomputes today's stat.
func (a *Aggregator) RefreshToday(ctx context.Context) (models.DailyStat, error) {
	return a.RefreshDay(ctx, a.repos.Now())
}

// RefreshSince recomputes the stat of every day from start's calendar
// date up to today. Sessions are filed under the day they started, so a
// run that crosses midnight changes yesterday's stat as well.
func (a *Aggregator) RefreshSince(ctx context.Context, start time.Time) error {
	now := a.repos.Now()
	today := timeutil.DateKey(now)

	day := timeutil.RoundToStart(start.In(now.Location()))
	for timeutil.DateKey(day) < today {
		if _, err := a.RefreshDay(ctx, day); err != nil {
			return err
		}

		day = day.AddDate(0, 0, 1)
	}

	_, err := a.RefreshDay(ctx, now)

	return err
}

// UpdateStreak advances the day streak if yesterday had a completed
// Pomodoro and restarts it otherwise. It only looks one day back and takes
// effect at most once per day.
func (a *Aggregator) UpdateStreak(ctx context.Context) (int, error) {
	p, err := a.repos.Progress.Get(ctx)
	if err != nil {
		return 0, err
	}

	now := a.repos.Now()
	today := timeutil.DateKey(now)

	if p.StreakCheckedOn == today {
		return p.StreakActive, nil
	}

	streak := 1

	yesterday := p.Stat(timeutil.DateKey(now.AddDate(0, 0, -1)))
	if yesterday != nil && yesterday.PomosCompleted >= 1 {
		streak = p.StreakActive + 1
	}

	_, err = a.repos.Progress.Update(ctx, repo.ProgressPatch{
		StreakActive:    &streak,
		StreakCheckedOn: &today,
	})

	return streak, err
}

// Day returns the stored progress of day's calendar date.
func (a *Aggregator) Day(ctx context.Context, day time.Time) (TodaySummary, error) {
	p, err := a.repos.Progress.Get(ctx)
	if err != nil {
		return TodaySummary{}, err
	}

	date := timeutil.DateKey(day)

	summary := TodaySummary{
		Date:          date,
		CurrentStreak: p.StreakActive,
	}

	if stat := p.Stat(date); stat != nil {
		summary.PomodorosCompleted = stat.PomosCompleted
		summary.FocusMinutes = stat.FocusMinutes
		summary.BreakMinutes = stat.BreakMinutes
	}

	return summary, nil
}

// Today returns today's stored progress.
func (a *Aggregator) Today(ctx context.Context) (TodaySummary, error) {
	return a.Day(ctx, a.repos.Now())
}

// Overall returns the lifetime totals.
func (a *Aggregator) Overall(ctx context.Context) (OverallSummary, error) {
	p, err := a.repos.Progress.Get(ctx)
	if err != nil {
		return OverallSummary{}, err
	}

	bonus, err := a.repos.Flowers.Bonus(ctx)
	if err != nil {
		return OverallSummary{}, err
	}

	summary := OverallSummary{
		TotalPomodoros: p.TotalPomos,
		BonusFlowers:   len(bonus),
		WrapperEarned:  p.WrapperEarned,
	}

	for _, stat := range p.DailyStats {
		summary.FocusMinutes += stat.FocusMinutes
	}

	return summary, nil
}

// Week returns the stats of the seven days ending on day, oldest first.
// Days without a stored stat are zero.
func (a *Aggregator) Week(ctx context.Context, day time.Time) ([]models.DailyStat, error) {
	p, err := a.repos.Progress.Get(ctx)
	if err != nil {
		return nil, err
	}

	start := timeutil.RoundToStart(day).AddDate(0, 0, -(weekDays - 1))

	week := make([]models.DailyStat, 0, weekDays)

	for i := 0; i < weekDays; i++ {
		date := timeutil.DateKey(start.AddDate(0, 0, i))

		if stat := p.Stat(date); stat != nil {
			week = append(week, *stat)
			continue
		}

		week = append(week, models.DailyStat{Date: date})
	}

	return week, nil
}
