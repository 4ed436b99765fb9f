// Package config loads doro's settings from the config file, command-line
// flags and the first-run prompts
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/doro/internal/models"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Pomodoro   SessionConfig  `mapstructure:"pomodoro"`
		ShortBreak SessionConfig  `mapstructure:"short_break"`
		LongBreak  SessionConfig  `mapstructure:"long_break"`
		Settings   SettingsConfig `mapstructure:"settings"`
		Display    DisplayConfig  `mapstructure:"display"`
		Storage    StorageConfig  `mapstructure:"storage"`
		// Path is the location of the config file
		Path string `mapstructure:"-"`
	}

	// SessionConfig holds the settings of one kind of run.
	SessionConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Duration time.Duration `mapstructure:"-"`
	}

	// SettingsConfig holds behavioural settings.
	SettingsConfig struct {
		Flower         string `mapstructure:"flower"`
		Cmd            string `mapstructure:"cmd"`
		AutoStartBreak bool   `mapstructure:"auto_start_break"`
		RecordBreaks   bool   `mapstructure:"record_breaks"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// StorageConfig selects the database backend.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.1.0"

// Storage drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

func (c *Config) session(t models.SessionType) *SessionConfig {
	switch t {
	case models.Pomo:
		return &c.Pomodoro
	case models.ShortBreak:
		return &c.ShortBreak
	case models.LongBreak:
		return &c.LongBreak
	}

	return &c.Pomodoro
}

// Duration returns the configured length of runs of type t.
func (c *Config) Duration(t models.SessionType) time.Duration {
	return c.session(t).Duration
}

// Message returns the message shown during runs of type t.
func (c *Config) Message(t models.SessionType) string {
	return c.session(t).Message
}

// Color returns the accent color of runs of type t.
func (c *Config) Color(t models.SessionType) string {
	return c.session(t).Color
}

// Flower returns the selected flower.
func (c *Config) Flower() models.FlowerType {
	return models.ParseFlower(c.Settings.Flower)
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"pomodoro=%s short_break=%s long_break=%s flower=%s driver=%s",
		c.Pomodoro.Duration,
		c.ShortBreak.Duration,
		c.LongBreak.Duration,
		c.Flower(),
		c.Storage.Driver,
	)
}
