package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/osutil"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyPomodoroDuration   = "pomodoro.duration"
	keyPomodoroMessage    = "pomodoro.message"
	keyPomodoroColor      = "pomodoro.color"
	keyShortBreakDuration = "short_break.duration"
	keyShortBreakMessage  = "short_break.message"
	keyShortBreakColor    = "short_break.color"
	keyLongBreakDuration  = "long_break.duration"
	keyLongBreakMessage   = "long_break.message"
	keyLongBreakColor     = "long_break.color"
	keyFlower             = "settings.flower"
	keyAutoStartBreak     = "settings.auto_start_break"
	keyRecordBreaks       = "settings.record_breaks"
	keySessionCmd         = "settings.cmd"
	keyTwentyFourHour     = "settings.24hr_clock"
	keyDarkTheme          = "display.dark_theme"
	keyStorageDriver      = "storage.driver"
)

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	return v
}

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A missing file is created with the defaults and any
// values already set on the Config.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := newViper(configPath)

		setupViper(v, c)

		c.Path = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		err = os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission)
		if err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyPomodoroDuration, "25m")
	v.SetDefault(keyPomodoroMessage, "Grow your flower")
	v.SetDefault(keyPomodoroColor, "#B0DB43")
	v.SetDefault(keyShortBreakDuration, "5m")
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyLongBreakDuration, "15m")
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyFlower, string(models.DefaultFlower))
	v.SetDefault(keyAutoStartBreak, false)
	v.SetDefault(keyRecordBreaks, false)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyStorageDriver, DriverBolt)

	// answers from the first-run prompts
	if c.Pomodoro.Duration > 0 {
		v.SetDefault(keyPomodoroDuration, c.Pomodoro.Duration.String())
	}

	if c.ShortBreak.Duration > 0 {
		v.SetDefault(keyShortBreakDuration, c.ShortBreak.Duration.String())
	}

	if c.LongBreak.Duration > 0 {
		v.SetDefault(keyLongBreakDuration, c.LongBreak.Duration.String())
	}

	if c.Settings.Flower != "" {
		v.SetDefault(keyFlower, c.Settings.Flower)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	if err := loadDurations(v, c); err != nil {
		return fmt.Errorf("loading durations failed: %w", err)
	}

	return nil
}

// loadDurations handles parsing duration strings from Viper.
func loadDurations(v *viper.Viper, c *Config) error {
	durations := []struct {
		key  string
		name string
		dst  *time.Duration
	}{
		{keyPomodoroDuration, "pomodoro", &c.Pomodoro.Duration},
		{keyShortBreakDuration, "short break", &c.ShortBreak.Duration},
		{keyLongBreakDuration, "long break", &c.LongBreak.Duration},
	}

	for _, d := range durations {
		dur, err := parseDuration(v.GetString(d.key))
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %w", d.name, err)
		}

		*d.dst = dur
	}

	return nil
}

// parseDuration accepts Go duration strings and bare numbers of minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}

// SaveFlower stores the selected flower in the config file at configPath.
func SaveFlower(configPath string, flower models.FlowerType) error {
	v := newViper(configPath)

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errReadConfig.Wrap(err)
	}

	v.Set(keyFlower, string(flower))

	if err := v.WriteConfig(); err != nil {
		return errWriteConfig.Wrap(err)
	}

	return nil
}
