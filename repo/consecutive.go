package repo

import (
	"context"
	"errors"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/store"
)

// Consecutive stores groups of back-to-back Pomodoros.
type Consecutive struct {
	*base
}

// Create starts a new active group holding sessionIDs.
func (r *Consecutive) Create(
	ctx context.Context,
	sessionIDs ...string,
) (*models.ConsecutivePomo, error) {
	if sessionIDs == nil {
		sessionIDs = []string{}
	}

	g := &models.ConsecutivePomo{
		ConsecutivePomoID: NewID(ConsecutivePrefix, r.now()),
		SessionIDs:        sessionIDs,
		Status:            models.GroupActive,
	}

	err := add(ctx, r.db, store.ConsecutivePomos, g.ConsecutivePomoID, g)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// Get retrieves a group by its ID.
func (r *Consecutive) Get(
	ctx context.Context,
	id string,
) (*models.ConsecutivePomo, error) {
	return get[models.ConsecutivePomo](ctx, r.db, store.ConsecutivePomos, id)
}

func (r *Consecutive) update(
	ctx context.Context,
	id string,
	fn func(g *models.ConsecutivePomo),
) error {
	g, err := r.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	fn(g)

	return put(ctx, r.db, store.ConsecutivePomos, id, g)
}

// UpdateStatus sets the status of a group. Unknown groups are ignored.
func (r *Consecutive) UpdateStatus(
	ctx context.Context,
	id string,
	status models.GroupStatus,
) error {
	return r.update(ctx, id, func(g *models.ConsecutivePomo) {
		g.Status = status
	})
}

// AppendSession adds a completed Pomodoro to a group.
func (r *Consecutive) AppendSession(
	ctx context.Context,
	id, sessionID string,
) error {
	return r.update(ctx, id, func(g *models.ConsecutivePomo) {
		g.SessionIDs = append(g.SessionIDs, sessionID)
	})
}

// AttachBonus records the reward earned by a group.
func (r *Consecutive) AttachBonus(
	ctx context.Context,
	id string,
	bonus models.BonusItem,
) error {
	return r.update(ctx, id, func(g *models.ConsecutivePomo) {
		g.BonusItem = bonus
	})
}

// Active returns the group that is still collecting Pomodoros, or nil.
func (r *Consecutive) Active(ctx context.Context) (*models.ConsecutivePomo, error) {
	groups, err := query[models.ConsecutivePomo](
		ctx,
		r.db,
		store.ConsecutivePomos,
		store.GroupsByStatus,
		store.Exact(string(models.GroupActive)),
	)
	if err != nil || len(groups) == 0 {
		return nil, err
	}

	// only one group should be active; prefer the newest if not
	return &groups[len(groups)-1], nil
}
