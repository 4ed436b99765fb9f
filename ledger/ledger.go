// Package ledger records the outcome of timer runs: sessions, flowers, the
// bouquet, progress and consecutive Pomodoro groups. Every write commits on
// its own, so a failure part way leaves the earlier writes in place.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/repo"
	"github.com/ayoisaiah/doro/stats"
	"github.com/ayoisaiah/doro/streak"
)

// Ledger writes the records that follow a finished run.
type Ledger struct {
	repos        *repo.Repos
	stats        *stats.Aggregator
	recordBreaks bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRecordBreaks stores a session for every finished break.
func WithRecordBreaks(record bool) Option {
	return func(l *Ledger) {
		l.recordBreaks = record
	}
}

// New returns a Ledger writing through r.
func New(r *repo.Repos, agg *stats.Aggregator, opts ...Option) *Ledger {
	l := &Ledger{
		repos: r,
		stats: agg,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadStreak returns the persisted consecutive Pomodoro count.
func (l *Ledger) LoadStreak(ctx context.Context) (int, error) {
	p, err := l.repos.Progress.Get(ctx)
	if err != nil {
		return 0, err
	}

	if p.ConsecutivePomos < 0 || p.ConsecutivePomos >= streak.CycleLength {
		return 0, nil
	}

	return p.ConsecutivePomos, nil
}

// RecordPomodoro stores a completed Pomodoro that started at start and
// the flower it grew. The session and flower are returned even when a
// later step fails.
func (l *Ledger) RecordPomodoro(
	ctx context.Context,
	start time.Time,
	flower models.FlowerType,
) (*models.Session, *models.Flower, error) {
	flower = models.ParseFlower(string(flower))

	sess, err := l.repos.Sessions.Create(ctx, models.Pomo, flower, start)
	if err != nil {
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	err = l.repos.Sessions.Complete(ctx, sess.SessionID)
	if err != nil {
		return sess, nil, fmt.Errorf("completing session: %w", err)
	}

	if s, err := l.repos.Sessions.Get(ctx, sess.SessionID); err == nil {
		sess = s
	}

	var errs []error

	f, err := l.repos.Flowers.EarnFromSession(ctx, sess.SessionID, flower)
	if err != nil {
		errs = append(errs, fmt.Errorf("earning flower: %w", err))
	} else if err = l.repos.Bouquets.AddFlower(ctx, f.FlowerID); err != nil {
		errs = append(errs, fmt.Errorf("adding flower to bouquet: %w", err))
	}

	if _, err = l.repos.Progress.IncrementTotal(ctx); err != nil {
		errs = append(errs, fmt.Errorf("incrementing total: %w", err))
	}

	errs = append(errs, l.refresh(ctx, sess.StartTime))

	return sess, f, errors.Join(errs...)
}

func (l *Ledger) refresh(ctx context.Context, start time.Time) error {
	if err := l.stats.RefreshSince(ctx, start); err != nil {
		return fmt.Errorf("refreshing daily stats: %w", err)
	}

	if _, err := l.stats.UpdateStreak(ctx); err != nil {
		return fmt.Errorf("updating day streak: %w", err)
	}

	return nil
}

// ApplyStreak persists the consecutive count after a completed Pomodoro
// and files the session under the active group. Finishing a cycle closes
// the group and earns its bonus: the bouquet wrapper the first time, a
// bonus flower of the given type afterwards.
func (l *Ledger) ApplyStreak(
	ctx context.Context,
	sessionID string,
	tr streak.Transition,
	flower models.FlowerType,
) (models.BonusItem, *models.Flower, error) {
	err := l.repos.Progress.SetConsecutive(ctx, tr.Count)
	if err != nil {
		return "", nil, err
	}

	group, err := l.repos.Consecutive.Active(ctx)
	if err != nil {
		return "", nil, err
	}

	switch {
	case group == nil:
		var ids []string
		if sessionID != "" {
			ids = append(ids, sessionID)
		}

		group, err = l.repos.Consecutive.Create(ctx, ids...)
	case sessionID != "":
		err = l.repos.Consecutive.AppendSession(ctx, group.ConsecutivePomoID, sessionID)
	}

	if err != nil {
		return "", nil, err
	}

	if !tr.Big {
		return "", nil, nil
	}

	id := group.ConsecutivePomoID

	err = l.repos.Consecutive.UpdateStatus(ctx, id, models.GroupCompleted)
	if err != nil {
		return "", nil, err
	}

	return l.earnBonus(ctx, id, flower)
}

func (l *Ledger) earnBonus(
	ctx context.Context,
	groupID string,
	flower models.FlowerType,
) (models.BonusItem, *models.Flower, error) {
	p, err := l.repos.Progress.Get(ctx)
	if err != nil {
		return "", nil, err
	}

	if !p.WrapperEarned {
		earned := true

		_, err = l.repos.Progress.Update(ctx, repo.ProgressPatch{
			WrapperEarned: &earned,
		})
		if err != nil {
			return "", nil, err
		}

		err = l.repos.Consecutive.AttachBonus(ctx, groupID, models.BonusWrapper)

		return models.BonusWrapper, nil, err
	}

	f, err := l.repos.Flowers.EarnBonus(ctx, groupID, flower)
	if err != nil {
		return "", nil, err
	}

	err = l.repos.Bouquets.AddFlower(ctx, f.FlowerID)
	if err != nil {
		return models.BonusFlower, f, err
	}

	err = l.repos.Consecutive.AttachBonus(ctx, groupID, models.BonusFlower)

	return models.BonusFlower, f, err
}

// SetStreak stores the consecutive count. Dropping to zero breaks the
// active group.
func (l *Ledger) SetStreak(ctx context.Context, count int) error {
	err := l.repos.Progress.SetConsecutive(ctx, count)
	if err != nil || count != 0 {
		return err
	}

	group, err := l.repos.Consecutive.Active(ctx)
	if err != nil || group == nil {
		return err
	}

	return l.repos.Consecutive.UpdateStatus(
		ctx,
		group.ConsecutivePomoID,
		models.GroupBroken,
	)
}

// RecordQuit stores an abandoned Pomodoro. No flower is earned.
func (l *Ledger) RecordQuit(
	ctx context.Context,
	start time.Time,
	flower models.FlowerType,
) error {
	sess, err := l.repos.Sessions.Create(
		ctx,
		models.Pomo,
		models.ParseFlower(string(flower)),
		start,
	)
	if err != nil {
		return err
	}

	return l.repos.Sessions.Quit(ctx, sess.SessionID)
}

// RecordBreak stores a finished break when break recording is enabled.
func (l *Ledger) RecordBreak(
	ctx context.Context,
	t models.SessionType,
	start time.Time,
	status models.SessionStatus,
) error {
	if !l.recordBreaks {
		return nil
	}

	sess, err := l.repos.Sessions.Create(ctx, t, "", start)
	if err != nil {
		return err
	}

	err = l.repos.Sessions.Update(ctx, sess.SessionID, repo.SessionPatch{
		Status: &status,
	})
	if err != nil {
		return err
	}

	return l.stats.RefreshSince(ctx, sess.StartTime)
}
