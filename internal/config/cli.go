package config

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Pomodoro     string
	ShortBreak   string
	LongBreak    string
	Flower       string
	SessionCmd   string
	Driver       string
	RecordBreaks bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Pomodoro:     ctx.String("pomodoro"),
			ShortBreak:   ctx.String("short-break"),
			LongBreak:    ctx.String("long-break"),
			Flower:       ctx.String("flower"),
			SessionCmd:   ctx.String("cmd"),
			Driver:       ctx.String("storage"),
			RecordBreaks: ctx.Bool("record-breaks"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return fmt.Errorf("applying CLI durations: %w", err)
	}

	if opts.Flower != "" {
		c.Settings.Flower = strings.ToLower(strings.TrimSpace(opts.Flower))
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.Driver != "" {
		c.Storage.Driver = opts.Driver
	}

	if opts.RecordBreaks {
		c.Settings.RecordBreaks = true
	}

	return nil
}

// applyCLIDurations handles parsing and applying duration settings from CLI.
func applyCLIDurations(c *Config, opts CLIOptions) error {
	durations := []struct {
		value string
		name  string
		dst   *SessionConfig
	}{
		{opts.Pomodoro, "pomodoro", &c.Pomodoro},
		{opts.ShortBreak, "short break", &c.ShortBreak},
		{opts.LongBreak, "long break", &c.LongBreak},
	}

	for _, d := range durations {
		if d.value == "" {
			continue
		}

		dur, err := parseDuration(d.value)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.name, err)
		}

		d.dst.Duration = dur
	}

	return nil
}
