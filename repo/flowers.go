package repo

import (
	"context"
	"slices"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/store"
)

// Flowers stores earned flowers. Flowers are never modified once written.
type Flowers struct {
	*base
}

// Create writes a new flower earned now.
func (r *Flowers) Create(
	ctx context.Context,
	flower models.FlowerType,
	isBonus bool,
	sessionID, groupID string,
) (*models.Flower, error) {
	now := r.now()

	f := &models.Flower{
		FlowerID:                    NewID(FlowerPrefix, now),
		Type:                        models.ParseFlower(string(flower)),
		EarnedAt:                    now.UTC(),
		IsBonus:                     isBonus,
		EarnedFromSessionID:         sessionID,
		EarnedFromConsecutivePomoID: groupID,
	}

	err := add(ctx, r.db, store.Flowers, f.FlowerID, f)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// EarnFromSession writes the regular flower grown by a completed Pomodoro.
func (r *Flowers) EarnFromSession(
	ctx context.Context,
	sessionID string,
	flower models.FlowerType,
) (*models.Flower, error) {
	return r.Create(ctx, flower, false, sessionID, "")
}

// EarnBonus writes the bonus flower of a completed consecutive group.
func (r *Flowers) EarnBonus(
	ctx context.Context,
	groupID string,
	flower models.FlowerType,
) (*models.Flower, error) {
	return r.Create(ctx, flower, true, "", groupID)
}

// Get retrieves a flower by its ID.
func (r *Flowers) Get(ctx context.Context, id string) (*models.Flower, error) {
	return get[models.Flower](ctx, r.db, store.Flowers, id)
}

// Between returns the flowers earned within [from, to) in earn order.
func (r *Flowers) Between(
	ctx context.Context,
	from, to time.Time,
) ([]models.Flower, error) {
	return query[models.Flower](
		ctx,
		r.db,
		store.Flowers,
		store.FlowersByEarnedAt,
		store.Range{From: store.TimeKey(from), To: store.TimeKey(to)},
	)
}

// Bonus returns every bonus flower.
func (r *Flowers) Bonus(ctx context.Context) ([]models.Flower, error) {
	return query[models.Flower](
		ctx,
		r.db,
		store.Flowers,
		store.FlowersByIsBonus,
		store.Exact(store.BoolKey(true)),
	)
}

// Recent returns up to n flowers, most recently earned first. A
// non-positive n returns them all.
func (r *Flowers) Recent(ctx context.Context, n int) ([]models.Flower, error) {
	flowers, err := query[models.Flower](
		ctx,
		r.db,
		store.Flowers,
		store.FlowersByEarnedAt,
		store.Range{},
	)
	if err != nil {
		return nil, err
	}

	slices.Reverse(flowers)

	if n > 0 && len(flowers) > n {
		flowers = flowers[:n]
	}

	return flowers, nil
}

// All returns every stored flower.
func (r *Flowers) All(ctx context.Context) ([]models.Flower, error) {
	return all[models.Flower](ctx, r.db, store.Flowers)
}
