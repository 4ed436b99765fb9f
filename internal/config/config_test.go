package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/doro/internal/models"
)

func defaultConfig(path string) *Config {
	return &Config{
		Pomodoro: SessionConfig{
			Message:  "Grow your flower",
			Color:    "#B0DB43",
			Duration: 25 * time.Minute,
		},
		ShortBreak: SessionConfig{
			Message:  "Take a breather",
			Color:    "#12EAEA",
			Duration: 5 * time.Minute,
		},
		LongBreak: SessionConfig{
			Message:  "Take a long break",
			Color:    "#C492B1",
			Duration: 15 * time.Minute,
		},
		Settings: SettingsConfig{
			Flower: "rose",
		},
		Display: DisplayConfig{
			DarkTheme: true,
		},
		Storage: StorageConfig{
			Driver: DriverBolt,
		},
		Path: path,
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "doro", "config.yml")

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	if diff := cmp.Diff(defaultConfig(configPath), cfg); diff != "" {
		t.Fatalf("default config mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(configPath)
	assert.NoError(t, err)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	yml := `pomodoro:
  duration: 50
  message: Deep work
  color: "#FF0000"
short_break:
  duration: 10m
  message: Stretch
  color: "#00FF00"
long_break:
  duration: 30m
  message: Walk
  color: "#0000FF"
settings:
  flower: orchid
  record_breaks: true
  cmd: "notify-send done"
storage:
  driver: sqlite
`

	require.NoError(t, os.WriteFile(configPath, []byte(yml), 0o600))

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, 50*time.Minute, cfg.Duration(models.Pomo))
	assert.Equal(t, 10*time.Minute, cfg.Duration(models.ShortBreak))
	assert.Equal(t, "Walk", cfg.Message(models.LongBreak))
	assert.Equal(t, models.Orchid, cfg.Flower())
	assert.True(t, cfg.Settings.RecordBreaks)
	assert.Equal(t, "notify-send done", cfg.Settings.Cmd)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.True(t, cfg.Display.DarkTheme)
}

func TestCLIOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	f := flag.NewFlagSet("doro", flag.ContinueOnError)
	_ = f.String("pomodoro", "", "")
	_ = f.String("flower", "", "")
	_ = f.String("short-break", "", "")
	_ = f.Bool("record-breaks", false, "")

	require.NoError(t, f.Parse([]string{
		"--pomodoro", "45m",
		"--flower", " Lily ",
		"--record-breaks",
	}))

	ctx := cli.NewContext(&cli.App{}, f, nil)

	cfg, err := New(WithViperConfig(configPath), WithCLIConfig(ctx))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.Pomodoro.Duration)
	assert.Equal(t, 5*time.Minute, cfg.ShortBreak.Duration)
	assert.Equal(t, models.Lily, cfg.Flower())
	assert.True(t, cfg.Settings.RecordBreaks)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "short break must be shorter than a pomodoro",
			mutate: func(c *Config) {
				c.ShortBreak.Duration = c.Pomodoro.Duration
			},
			want: errShortBreakTooLong,
		},
		{
			name: "long break cannot be shorter than a short break",
			mutate: func(c *Config) {
				c.LongBreak.Duration = time.Minute
			},
			want: errLongBreakTooShort,
		},
		{
			name: "durations are bounded",
			mutate: func(c *Config) {
				c.Pomodoro.Duration = 13 * time.Hour
			},
			want: errInvalidDuration,
		},
		{
			name: "colors must be hex codes",
			mutate: func(c *Config) {
				c.Pomodoro.Color = "green"
			},
			want: errInvalidColor,
		},
		{
			name: "flower must be in the catalog",
			mutate: func(c *Config) {
				c.Settings.Flower = "tulip"
			},
			want: errUnknownFlower,
		},
		{
			name: "storage driver must be known",
			mutate: func(c *Config) {
				c.Storage.Driver = "postgres"
			},
			want: errUnknownDriver,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig("")
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSaveFlower(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	_, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	require.NoError(t, SaveFlower(configPath, models.Peony))

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, models.Peony, cfg.Flower())
	assert.Equal(t, 25*time.Minute, cfg.Pomodoro.Duration)
}
