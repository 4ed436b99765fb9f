package repo

import (
	"context"
	"errors"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/store"
)

// Progress stores the single progress record.
type Progress struct {
	*base
}

// ProgressPatch lists the progress fields an update may change.
type ProgressPatch struct {
	ConsecutivePomos *int
	TotalPomos       *int
	WrapperEarned    *bool
	StreakActive     *int
	StreakCheckedOn  *string
	DailyStats       []models.DailyStat
}

// Get returns the progress record, creating a zeroed one on first access.
func (r *Progress) Get(ctx context.Context) (*models.Progress, error) {
	p, err := get[models.Progress](ctx, r.db, store.Progress, ProgressKey)
	if !errors.Is(err, store.ErrNotFound) {
		return p, err
	}

	p = &models.Progress{
		DailyStats: []models.DailyStat{},
	}

	err = add(ctx, r.db, store.Progress, ProgressKey, p)
	if errors.Is(err, store.ErrKeyExists) {
		return get[models.Progress](ctx, r.db, store.Progress, ProgressKey)
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

// Update merges patch into the progress record and returns the result.
func (r *Progress) Update(
	ctx context.Context,
	patch ProgressPatch,
) (*models.Progress, error) {
	p, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	if patch.ConsecutivePomos != nil {
		p.ConsecutivePomos = *patch.ConsecutivePomos
	}

	if patch.TotalPomos != nil {
		p.TotalPomos = *patch.TotalPomos
	}

	if patch.WrapperEarned != nil {
		p.WrapperEarned = *patch.WrapperEarned
	}

	if patch.StreakActive != nil {
		p.StreakActive = *patch.StreakActive
	}

	if patch.StreakCheckedOn != nil {
		p.StreakCheckedOn = *patch.StreakCheckedOn
	}

	if patch.DailyStats != nil {
		p.DailyStats = patch.DailyStats
	}

	err = put(ctx, r.db, store.Progress, ProgressKey, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// IncrementTotal adds one completed Pomodoro and returns the new total.
func (r *Progress) IncrementTotal(ctx context.Context) (int, error) {
	p, err := r.Get(ctx)
	if err != nil {
		return 0, err
	}

	total := p.TotalPomos + 1

	_, err = r.Update(ctx, ProgressPatch{TotalPomos: &total})

	return total, err
}

// SetConsecutive stores the consecutive Pomodoro count.
func (r *Progress) SetConsecutive(ctx context.Context, n int) error {
	_, err := r.Update(ctx, ProgressPatch{ConsecutivePomos: &n})
	return err
}

// UpsertStat replaces the daily stat with the same date or appends it.
func (r *Progress) UpsertStat(ctx context.Context, stat models.DailyStat) error {
	p, err := r.Get(ctx)
	if err != nil {
		return err
	}

	p.UpsertStat(stat)

	return put(ctx, r.db, store.Progress, ProgressKey, p)
}
