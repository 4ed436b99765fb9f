// Package repo provides typed access to the records kept in a store.DB.
// Repositories hold no state besides the store handle, so every read
// reflects the latest committed write.
package repo

import (
	"time"

	"github.com/ayoisaiah/doro/store"
)

// Keys of the singleton records.
const (
	UserKey     = "current_user"
	BouquetKey  = "main"
	ProgressKey = "main"
)

type base struct {
	db  store.DB
	now func() time.Time
}

// Option configures the repositories returned by New.
type Option func(*base)

// WithClock replaces the clock used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// Repos bundles the repository of every collection.
type Repos struct {
	Sessions    *Sessions
	Flowers     *Flowers
	Bouquets    *Bouquets
	Progress    *Progress
	Consecutive *Consecutive
	Users       *Users
}

// New returns repositories backed by db.
func New(db store.DB, opts ...Option) *Repos {
	b := &base{
		db:  db,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return &Repos{
		Sessions:    &Sessions{b},
		Flowers:     &Flowers{b},
		Bouquets:    &Bouquets{b},
		Progress:    &Progress{b},
		Consecutive: &Consecutive{b},
		Users:       &Users{b},
	}
}

// Now returns the current time according to the repositories' clock.
func (r *Repos) Now() time.Time {
	return r.Sessions.now()
}
