package repo

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/timeutil"
	"github.com/ayoisaiah/doro/store"
)

// Sessions stores Pomodoro and break runs.
type Sessions struct {
	*base
}

// SessionPatch lists the session fields an update may change. Nil fields
// are left as they are.
type SessionPatch struct {
	Status     *models.SessionStatus
	EndTime    *time.Time
	FlowerType *models.FlowerType
}

// Create writes a new paused session. A zero start time means now.
func (r *Sessions) Create(
	ctx context.Context,
	t models.SessionType,
	flower models.FlowerType,
	start time.Time,
) (*models.Session, error) {
	now := r.now()

	if start.IsZero() {
		start = now
	}

	s := &models.Session{
		SessionID:  NewID(SessionPrefix, now),
		Type:       t,
		StartTime:  start.UTC(),
		Status:     models.StatusPaused,
		FlowerType: flower,
	}

	err := add(ctx, r.db, store.Sessions, s.SessionID, s)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a session by its ID.
func (r *Sessions) Get(ctx context.Context, id string) (*models.Session, error) {
	return get[models.Session](ctx, r.db, store.Sessions, id)
}

// Update merges p into the stored session. Missing and terminal sessions
// are left untouched. Moving to a terminal status without an explicit end
// time ends the session now.
func (r *Sessions) Update(ctx context.Context, id string, p SessionPatch) error {
	s, err := r.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	if s.Status.Terminal() {
		return nil
	}

	if p.FlowerType != nil {
		s.FlowerType = *p.FlowerType
	}

	if p.Status != nil {
		s.Status = *p.Status
	}

	if s.Status.Terminal() {
		end := r.now().UTC()
		if p.EndTime != nil {
			end = p.EndTime.UTC()
		}

		s.EndTime = &end
	}

	return put(ctx, r.db, store.Sessions, id, s)
}

func (r *Sessions) finish(
	ctx context.Context,
	id string,
	status models.SessionStatus,
) error {
	return r.Update(ctx, id, SessionPatch{Status: &status})
}

// Complete marks the session completed and ends it now.
func (r *Sessions) Complete(ctx context.Context, id string) error {
	return r.finish(ctx, id, models.StatusCompleted)
}

// Quit marks the session as abandoned.
func (r *Sessions) Quit(ctx context.Context, id string) error {
	return r.finish(ctx, id, models.StatusQuit)
}

// Reset marks the session as restarted before it finished.
func (r *Sessions) Reset(ctx context.Context, id string) error {
	return r.finish(ctx, id, models.StatusReset)
}

// Active returns the most recently started session that has not ended, or
// nil if there is none.
func (r *Sessions) Active(ctx context.Context) (*models.Session, error) {
	sessions, err := query[models.Session](
		ctx,
		r.db,
		store.Sessions,
		store.SessionsByStartTime,
		store.Range{},
	)
	if err != nil {
		return nil, err
	}

	for i := len(sessions) - 1; i >= 0; i-- {
		switch sessions[i].Status {
		case models.StatusPaused, models.StatusActive:
			return &sessions[i], nil
		case models.StatusCompleted, models.StatusQuit, models.StatusReset:
		}
	}

	return nil, nil
}

// Between returns the sessions started within [from, to) in start order.
func (r *Sessions) Between(
	ctx context.Context,
	from, to time.Time,
) ([]models.Session, error) {
	return query[models.Session](
		ctx,
		r.db,
		store.Sessions,
		store.SessionsByStartTime,
		store.Range{From: store.TimeKey(from), To: store.TimeKey(to)},
	)
}

// ByType returns every session of type t in start order.
func (r *Sessions) ByType(
	ctx context.Context,
	t models.SessionType,
) ([]models.Session, error) {
	sessions, err := query[models.Session](
		ctx,
		r.db,
		store.Sessions,
		store.SessionsByType,
		store.Exact(string(t)),
	)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(sessions, func(a, b models.Session) int {
		return a.StartTime.Compare(b.StartTime)
	})

	return sessions, nil
}

// Today returns the sessions started since local midnight.
func (r *Sessions) Today(ctx context.Context) ([]models.Session, error) {
	start, end := timeutil.DayBounds(r.now())

	return r.Between(ctx, start, end)
}

// All returns every stored session.
func (r *Sessions) All(ctx context.Context) ([]models.Session, error) {
	return all[models.Session](ctx, r.db, store.Sessions)
}
