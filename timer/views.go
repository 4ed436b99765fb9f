package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/timeutil"
	"github.com/ayoisaiah/doro/streak"
)

func sessionName(t models.SessionType) string {
	switch t {
	case models.Pomo:
		return "Pomodoro"
	case models.ShortBreak:
		return "Short break"
	case models.LongBreak:
		return "Long break"
	}

	return string(t)
}

// rewardView describes what the last Pomodoro earned.
func (m *Model) rewardView() string {
	c := m.last
	if c == nil || c.SessionType != models.Pomo {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.styles.reward.Render(
		fmt.Sprintf("+1 %s added to your bouquet", c.FlowerType.Label()),
	))

	switch c.Bonus {
	case models.BonusWrapper:
		s.WriteString("\n" + m.styles.reward.Render(
			"Three in a row! You earned a bouquet wrapper",
		))
	case models.BonusFlower:
		s.WriteString("\n" + m.styles.reward.Render(
			fmt.Sprintf("Three in a row! Bonus %s earned", c.FlowerType.Label()),
		))
	}

	return s.String()
}

func (m *Model) completedPromptView() string {
	var s strings.Builder

	title := "Your break is over"
	msg := "It's time to grow another flower!"

	if m.last != nil && m.last.SessionType == models.Pomo {
		title = "Your Pomodoro is complete"
		msg = "It's time to take a well-deserved break!"

		if m.last.Big {
			msg = "You finished a full cycle. Enjoy a long break!"
		}
	}

	s.WriteString(m.styles.main.Render(title))

	if reward := m.rewardView(); reward != "" {
		s.WriteString("\n\n" + reward)
	}

	s.WriteString("\n\n" + m.styles.secondary.Render(msg))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.enter,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) confirmQuitPromptView() string {
	var s strings.Builder

	s.WriteString(m.styles.main.Render("Quit this Pomodoro?"))
	s.WriteString("\n\n" + m.styles.secondary.Render(
		"No flower will grow and your streak will reset.",
	))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.confirm,
		defaultKeymap.cancel,
	}))

	return s.String()
}

func (m *Model) runningView(snap Snapshot) string {
	var s strings.Builder

	s.WriteString(m.styles.label(snap.SessionType).Render(sessionName(snap.SessionType)))

	timeFormat := "03:04:05 PM"
	if m.cfg.Settings.TwentyFourHour {
		timeFormat = "15:04:05"
	}

	if snap.Paused {
		s.WriteString(m.styles.secondary.Render("[Paused]"))
	} else {
		end := m.engine.now().Add(time.Duration(snap.TimeRemaining) * time.Second)
		s.WriteString(m.styles.hint.Render("until " + end.Format(timeFormat)))
	}

	if snap.Type == TypePomo {
		s.WriteString(m.styles.hint.Render(fmt.Sprintf(
			" (%d/%d) %s",
			snap.ConsecutiveCount+1,
			streak.CycleLength,
			snap.Flower.Label(),
		)))
	}

	s.WriteString("\n\n" + m.styles.secondary.Render(m.cfg.Message(snap.SessionType)))

	if reward := m.rewardView(); reward != "" && snap.Type == TypeBreak {
		s.WriteString("\n" + reward)
	}

	var percent float64
	if snap.Duration > 0 {
		percent = float64(snap.TimeRemaining) / float64(snap.Duration)
	}

	s.WriteString("\n\n")
	s.WriteString(m.styles.main.Render(timeutil.FormatClock(snap.TimeRemaining)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(1 - percent))
	s.WriteString(m.sessionHelpView(snap))

	return s.String()
}

func (m *Model) sessionHelpView(snap Snapshot) string {
	if snap.Type == TypePomo {
		return "\n\n" + m.help.ShortHelpView([]key.Binding{
			defaultKeymap.togglePlay,
			defaultKeymap.restart,
			defaultKeymap.quit,
		})
	}

	return "\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.skip,
		defaultKeymap.quit,
	})
}

// View renders the current screen.
func (m *Model) View() string {
	snap := m.engine.Snapshot()

	switch m.view {
	case confirmQuitView:
		return m.styles.base.Render(m.confirmQuitPromptView())
	case completedView:
		if !snap.Occupied() {
			return m.styles.base.Render(m.completedPromptView())
		}
	case timerView:
	}

	if !snap.Occupied() {
		return ""
	}

	return m.styles.base.Render(m.runningView(snap))
}
