package timer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/doro/internal/config"
	"github.com/ayoisaiah/doro/internal/models"
)

const (
	padding  = 2
	maxWidth = 80
)

type styles struct {
	base       lipgloss.Style
	main       lipgloss.Style
	secondary  lipgloss.Style
	hint       lipgloss.Style
	reward     lipgloss.Style
	pomodoro   lipgloss.Style
	shortBreak lipgloss.Style
	longBreak  lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	text := lipgloss.Color("#1A1B26")
	muted := lipgloss.Color("#666666")

	if cfg.Display.DarkTheme {
		text = lipgloss.Color("#C0CAF5")
		muted = lipgloss.Color("#9AA5CE")
	}

	label := func(t models.SessionType) lipgloss.Style {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1B26")).
			Background(lipgloss.Color(cfg.Color(t))).
			Padding(0, 1).
			MarginRight(1)
	}

	return styles{
		base:       lipgloss.NewStyle().Padding(1, padding),
		main:       lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary:  lipgloss.NewStyle().Foreground(text),
		hint:       lipgloss.NewStyle().Foreground(muted),
		reward:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F39C12")),
		pomodoro:   label(models.Pomo),
		shortBreak: label(models.ShortBreak),
		longBreak:  label(models.LongBreak),
	}
}

func (s styles) label(t models.SessionType) lipgloss.Style {
	switch t {
	case models.Pomo:
		return s.pomodoro
	case models.ShortBreak:
		return s.shortBreak
	case models.LongBreak:
		return s.longBreak
	}

	return s.pomodoro
}
