package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/doro/internal/config"
	"github.com/ayoisaiah/doro/internal/logger"
	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/osutil"
	"github.com/ayoisaiah/doro/internal/pathutil"
	"github.com/ayoisaiah/doro/internal/timeutil"
	"github.com/ayoisaiah/doro/repo"
	"github.com/ayoisaiah/doro/report"
	"github.com/ayoisaiah/doro/store"
	"github.com/ayoisaiah/doro/timer"
)

const (
	envNoColor     = "NO_COLOR"
	envDoroNoColor = "DORO_NO_COLOR"
	recentFlowers  = 10
)

var logFile io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// onboard asks for a username the first time doro runs.
func onboard(ctx *cli.Context, e *env) error {
	_, err := e.repos.Users.Get(ctx.Context)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return err
	}

	var username string

	err = huh.NewInput().
		Title("What should we call you?").
		Value(&username).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errEmptyUsername
			}

			return nil
		}).
		Run()
	if err != nil {
		return err
	}

	u, err := e.repos.Users.CreateOrUpdate(
		ctx.Context,
		strings.TrimSpace(username),
		repo.SettingsPatch{},
	)
	if err != nil {
		return err
	}

	report.Welcome(u.Username)

	return nil
}

// runTimer opens the countdown in the terminal starting with a run of
// type first.
func runTimer(ctx *cli.Context, first models.SessionType) error {
	return withEnv(ctx, func(e *env) error {
		if err := onboard(ctx, e); err != nil {
			return err
		}

		engine, err := timer.New(
			ctx.Context,
			e.ledger,
			timer.WithFlower(e.cfg.Flower()),
			timer.OnComplete(func(c *timer.Completion) {
				slog.InfoContext(ctx.Context, "run completed",
					slog.String("type", string(c.SessionType)),
					slog.Bool("big", c.Big),
					slog.Int("consecutive", c.ConsecutiveCount),
				)
			}),
		)
		if err != nil {
			return err
		}

		slog.DebugContext(ctx.Context, "starting timer",
			slog.String("config", e.cfg.String()),
		)

		m := timer.NewModel(ctx.Context, engine, e.cfg, first)

		_, err = tea.NewProgram(m).Run()
		if err != nil {
			return err
		}

		return m.Err()
	})
}

// defaultAction starts the Pomodoro and break cycle.
func defaultAction(ctx *cli.Context) error {
	return runTimer(ctx, models.Pomo)
}

// breakAction starts with a break instead of a Pomodoro.
func breakAction(ctx *cli.Context) error {
	if ctx.Bool("long") {
		return runTimer(ctx, models.LongBreak)
	}

	return runTimer(ctx, models.ShortBreak)
}

// bouquetAction lists the flowers grown so far.
func bouquetAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		n := recentFlowers
		if ctx.Bool("all") {
			n = 0
		}

		flowers, err := e.repos.Flowers.Recent(ctx.Context, n)
		if err != nil {
			return err
		}

		progress, err := e.repos.Progress.Get(ctx.Context)
		if err != nil {
			return err
		}

		b := newBouquetView(flowers, progress.WrapperEarned)

		if ctx.Bool("json") {
			return b.writeJSON(os.Stdout)
		}

		return b.render(os.Stdout, e.cfg.Settings.TwentyFourHour)
	})
}

// progressAction prints the progress report of a day.
func progressAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		day, err := timeutil.FromStr(ctx.String("date"), e.repos.Now())
		if err != nil {
			return errInvalidDate.Fmt(ctx.String("date")).Wrap(err)
		}

		r, err := e.stats.Report(ctx.Context, day)
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			b, err := r.JSON()
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, string(b))

			return nil
		}

		r.Render(os.Stdout)

		return nil
	})
}

// parseFlowerArg resolves an explicitly typed flower name. Unlike
// models.ParseFlower it rejects unknown names.
func parseFlowerArg(name string) (models.FlowerType, error) {
	f := models.FlowerType(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return "", errUnknownFlower.Fmt(name)
	}

	return f, nil
}

// flowerAction selects the flower grown by the next Pomodoros.
func flowerAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	var flower models.FlowerType

	if name := ctx.Args().First(); name != "" {
		flower, err = parseFlowerArg(name)
		if err != nil {
			return err
		}
	} else {
		flower = cfg.Flower()

		err = huh.NewSelect[models.FlowerType]().
			Title("Which flower would you like to grow?").
			Options(config.FlowerOptions(flower)...).
			Value(&flower).
			Run()
		if err != nil {
			return err
		}
	}

	if err = config.SaveFlower(cfg.Path, flower); err != nil {
		return err
	}

	report.FlowerSelected(flower)

	return nil
}

// settingsPatch builds the settings change requested by the user flags.
func settingsPatch(
	ctx *cli.Context,
	current *models.UserSettings,
) (repo.SettingsPatch, bool, error) {
	var (
		patch   repo.SettingsPatch
		changed bool
	)

	switch sound := strings.ToLower(ctx.String("sound")); sound {
	case "":
	case "on", "off":
		on := sound == "on"
		patch.SoundOn = &on
		changed = true
	default:
		return patch, false, errInvalidSound.Fmt(sound)
	}

	if ctx.IsSet("volume") {
		v := ctx.Float64("volume")
		if v < 0 || v > 1 {
			return patch, false, errInvalidVolume.Fmt(v)
		}

		audio := *repo.DefaultAudioSettings()
		if current != nil && current.AudioSettings != nil {
			audio = *current.AudioSettings
		}

		audio.Volume = v
		patch.AudioSettings = &audio
		changed = true
	}

	return patch, changed, nil
}

// userAction shows or updates the profile.
func userAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		u, err := e.repos.Users.Get(ctx.Context)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		var current *models.UserSettings
		if u != nil {
			current = &u.Settings
		}

		patch, changed, err := settingsPatch(ctx, current)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(ctx.String("name"))

		switch {
		case name != "":
			u, err = e.repos.Users.CreateOrUpdate(ctx.Context, name, patch)
		case u == nil:
			return errNoProfile
		case changed:
			if err = e.repos.Users.UpdateSettings(ctx.Context, patch); err == nil {
				u, err = e.repos.Users.Get(ctx.Context)
			}
		}

		if err != nil {
			return err
		}

		if name != "" || changed {
			report.SettingsSaved()
		}

		return printUser(os.Stdout, u)
	})
}

// editConfigAction handles the edit-config command which opens the doro
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, cfg.Path)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envDoroNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	closer, err := logger.Init(pathutil.LogFilePath(), ctx.Bool("debug"))
	if err != nil {
		return err
	}

	logFile = closer

	slog.InfoContext(ctx.Context, "starting doro",
		slog.String("version", config.Version),
		slog.Any("args", ctx.Args().Slice()),
	)

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting doro")

	if logFile == nil {
		return nil
	}

	return logFile.Close()
}
