package timer

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/doro/internal/models"
)

// next returns the type of run offered after the last completion.
func (m *Model) next() models.SessionType {
	if m.last == nil || m.last.SessionType.IsBreak() {
		return models.Pomo
	}

	return m.last.NextBreak
}

// handleTick processes countdown ticks.
func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	c, done := m.engine.Tick(m.ctx, msg.run)
	if !done {
		snap := m.engine.Snapshot()
		if snap.Running && snap.Run == msg.run {
			return m, tick(msg.run)
		}

		return m, nil
	}

	m.last = c
	m.view = completedView

	cmds := []tea.Cmd{runSessionCmd(m.cfg.Settings.Cmd)}

	if c.SessionType == models.Pomo && m.cfg.Settings.AutoStartBreak {
		last := m.last
		cmds = append(cmds, m.start(c.NextBreak))
		m.last = last
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.confirm):
		m.engine.Quit(m.ctx)

		return m, tea.Quit
	case key.Matches(msg, defaultKeymap.cancel):
		m.view = timerView
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, defaultKeymap.exit) {
		m.engine.Quit(m.ctx)

		return m, tea.Quit
	}

	if m.view == confirmQuitView {
		return m.handleConfirmQuit(msg)
	}

	snap := m.engine.Snapshot()

	switch {
	case key.Matches(msg, defaultKeymap.enter):
		if snap.Occupied() {
			return m, nil
		}

		return m, m.start(m.next())

	case key.Matches(msg, defaultKeymap.togglePlay):
		if !snap.Occupied() {
			return m, nil
		}

		if snap.Paused {
			m.engine.Resume()

			return m, tick(m.engine.Snapshot().Run)
		}

		m.engine.Pause()

		return m, nil

	case key.Matches(msg, defaultKeymap.restart):
		if !snap.Occupied() {
			return m, nil
		}

		if err := m.engine.Restart(); err != nil {
			return m, nil
		}

		return m, tick(m.engine.Snapshot().Run)

	case key.Matches(msg, defaultKeymap.skip):
		if !snap.Occupied() || snap.Type != TypeBreak {
			return m, nil
		}

		m.engine.Skip(m.ctx)
		m.last = &Completion{SessionType: snap.SessionType}
		m.view = completedView

		return m, nil

	case key.Matches(msg, defaultKeymap.quit):
		if snap.Occupied() && snap.Type == TypePomo {
			m.view = confirmQuitView
			return m, nil
		}

		m.engine.Quit(m.ctx)

		return m, tea.Quit
	}

	return m, nil
}

// Update handles ticks, key presses and window resizes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg)

	case sessionCmdMsg:
		if msg.err != nil {
			slog.ErrorContext(m.ctx, "session command failed",
				slog.Any("error", msg.err),
				slog.String("cmd", m.cfg.Settings.Cmd),
			)
		}

		return m, nil

	case tea.KeyMsg:
		slog.DebugContext(m.ctx, spew.Sdump(msg))

		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil
	}

	return m, nil
}
