package repo

import (
	"context"
	"errors"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/store"
)

const defaultVolume = 0.7

// Users stores the local user profile.
type Users struct {
	*base
}

// SettingsPatch lists the user settings an update may change.
type SettingsPatch struct {
	SoundOn       *bool
	AudioSettings *models.AudioSettings
}

// DefaultAudioSettings are applied to profiles without audio settings.
func DefaultAudioSettings() *models.AudioSettings {
	return &models.AudioSettings{
		SoundsEnabled: true,
		MusicEnabled:  true,
		Volume:        defaultVolume,
	}
}

// Get returns the user profile or store.ErrNotFound before onboarding.
func (r *Users) Get(ctx context.Context) (*models.User, error) {
	return get[models.User](ctx, r.db, store.Users, UserKey)
}

func (p SettingsPatch) apply(s *models.UserSettings) {
	if p.SoundOn != nil {
		s.SoundOn = *p.SoundOn
	}

	if p.AudioSettings != nil {
		audio := *p.AudioSettings
		s.AudioSettings = &audio
	}

	if s.AudioSettings == nil {
		s.AudioSettings = DefaultAudioSettings()
	}
}

// CreateOrUpdate sets the username of the profile, creating the profile
// with default settings if it does not exist yet.
func (r *Users) CreateOrUpdate(
	ctx context.Context,
	username string,
	patch SettingsPatch,
) (*models.User, error) {
	u, err := r.Get(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if u == nil {
		now := r.now()

		u = &models.User{
			UserID:    NewID(UserPrefix, now),
			CreatedAt: now.UTC(),
			Settings:  models.UserSettings{SoundOn: true},
		}
	}

	u.Username = username
	patch.apply(&u.Settings)

	err = put(ctx, r.db, store.Users, UserKey, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// UpdateSettings merges patch into the profile's settings. It does nothing
// before onboarding.
func (r *Users) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	u, err := r.Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	patch.apply(&u.Settings)

	return put(ctx, r.db, store.Users, UserKey, u)
}
