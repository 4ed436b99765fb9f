package timer

import (
	"context"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/doro/internal/config"
	"github.com/ayoisaiah/doro/internal/models"
)

type view int

const (
	timerView view = iota
	confirmQuitView
	completedView
)

type (
	// tickMsg carries the run it was scheduled for so that ticks from a
	// cancelled run can be told apart.
	tickMsg struct {
		run int
	}

	sessionCmdMsg struct {
		err error
	}
)

// Model drives an Engine from the terminal.
type Model struct {
	ctx      context.Context
	engine   *Engine
	cfg      *config.Config
	last     *Completion
	err      error
	help     help.Model
	progress progress.Model
	styles   styles
	first    models.SessionType
	view     view
}

// NewModel returns a model that starts a run of type first.
func NewModel(
	ctx context.Context,
	engine *Engine,
	cfg *config.Config,
	first models.SessionType,
) *Model {
	return &Model{
		ctx:      ctx,
		engine:   engine,
		cfg:      cfg,
		first:    first,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		styles:   newStyles(cfg),
	}
}

// Err returns the error that stopped the model, if any.
func (m *Model) Err() error {
	return m.err
}

func tick(run int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{run: run}
	})
}

func (m *Model) start(t models.SessionType) tea.Cmd {
	err := m.engine.Start(m.cfg.Duration(t), t)
	if err != nil {
		m.err = err
		return tea.Quit
	}

	m.last = nil
	m.view = timerView

	return tick(m.engine.Snapshot().Run)
}

// runSessionCmd executes the command configured in settings.cmd.
func runSessionCmd(sessionCmd string) tea.Cmd {
	if sessionCmd == "" {
		return nil
	}

	return func() tea.Msg {
		cmdSlice, err := shellquote.Split(sessionCmd)
		if err != nil {
			return sessionCmdMsg{err: errParseSessionCmd.Wrap(err)}
		}

		if len(cmdSlice) == 0 {
			return sessionCmdMsg{}
		}

		//nolint:gosec // the command comes from the user's own config
		cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)

		return sessionCmdMsg{err: cmd.Run()}
	}
}

// Init starts the first run.
func (m *Model) Init() tea.Cmd {
	return m.start(m.first)
}
