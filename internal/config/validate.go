package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
)

var (
	// Minimum and maximum duration constraints.
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSessionConfig(c.Pomodoro, "pomodoro"); err != nil {
		return err
	}

	if err := c.validateSessionConfig(c.ShortBreak, "short break"); err != nil {
		return err
	}

	if err := c.validateSessionConfig(c.LongBreak, "long break"); err != nil {
		return err
	}

	if err := c.validateSessionRelationships(); err != nil {
		return err
	}

	return c.validateSettings()
}

// validateSessionConfig validates an individual SessionConfig.
func (c *Config) validateSessionConfig(
	sc SessionConfig,
	sessionType string,
) error {
	if sc.Duration < minSessionDuration || sc.Duration > maxSessionDuration {
		return errInvalidDuration.Fmt(
			sessionType,
			minSessionDuration,
			maxSessionDuration,
		)
	}

	if strings.TrimSpace(sc.Message) == "" {
		return errEmptyMsg.Fmt(sessionType)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(sessionType, sc.Color)
	}

	return nil
}

// validateSessionRelationships validates logical relationships between sessions.
func (c *Config) validateSessionRelationships() error {
	if c.ShortBreak.Duration >= c.Pomodoro.Duration {
		return errShortBreakTooLong.Fmt(c.ShortBreak.Duration, c.Pomodoro.Duration)
	}

	if c.LongBreak.Duration < c.ShortBreak.Duration {
		return errLongBreakTooShort.Fmt(
			c.LongBreak.Duration,
			c.ShortBreak.Duration,
		)
	}

	return nil
}

// validateSettings validates the selected flower and storage driver.
func (c *Config) validateSettings() error {
	if c.Settings.Flower != "" && !models.FlowerType(c.Settings.Flower).Valid() {
		names := make([]string, 0, len(models.Flowers))
		for _, f := range models.Flowers {
			names = append(names, string(f))
		}

		return errUnknownFlower.Fmt(c.Settings.Flower, strings.Join(names, ", "))
	}

	switch c.Storage.Driver {
	case "", DriverBolt, DriverSQLite, DriverMemory:
		return nil
	default:
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}
}
