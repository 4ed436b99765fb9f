package timer

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/doro/internal/config"
	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Pomodoro: config.SessionConfig{
			Message:  "Grow your flower",
			Color:    "#B0DB43",
			Duration: 25 * time.Minute,
		},
		ShortBreak: config.SessionConfig{
			Message:  "Take a breather",
			Color:    "#12EAEA",
			Duration: 5 * time.Minute,
		},
		LongBreak: config.SessionConfig{
			Message:  "Take a long break",
			Color:    "#C492B1",
			Duration: 15 * time.Minute,
		},
		Settings: config.SettingsConfig{
			Flower: string(models.Rose),
		},
	}
}

func newTestModel(t *testing.T, cfg *config.Config) (*Model, *fixture) {
	t.Helper()

	f := newFixture(t, store.NewMemory(), 0)
	m := NewModel(context.Background(), f.engine, cfg, models.Pomo)

	require.NotNil(t, m.Init())

	return m, f
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelInitStartsFirstRun(t *testing.T) {
	m, f := newTestModel(t, testConfig())

	snap := f.engine.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, models.Pomo, snap.SessionType)
	assert.Equal(t, 1500, snap.TimeRemaining)
	assert.Contains(t, m.View(), "Pomodoro")
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m, f := newTestModel(t, testConfig())

	stale := f.engine.Snapshot().Run

	_, cmd := m.Update(keyPress('r'))
	require.NotNil(t, cmd)

	_, cmd = m.Update(tickMsg{run: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, 1500, f.engine.Snapshot().TimeRemaining)
}

func TestModelTickCountsDown(t *testing.T) {
	m, f := newTestModel(t, testConfig())

	_, cmd := m.Update(tickMsg{run: f.engine.Snapshot().Run})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1499, f.engine.Snapshot().TimeRemaining)
}

func TestModelQuitNeedsConfirmation(t *testing.T) {
	m, f := newTestModel(t, testConfig())

	_, cmd := m.Update(keyPress('q'))
	assert.Nil(t, cmd)
	assert.Equal(t, confirmQuitView, m.view)
	assert.True(t, f.engine.Snapshot().Running)

	_, _ = m.Update(keyPress('n'))
	assert.Equal(t, timerView, m.view)

	_, _ = m.Update(keyPress('q'))
	_, cmd = m.Update(keyPress('y'))
	require.NotNil(t, cmd)
	assert.False(t, f.engine.Snapshot().Occupied())

	sessions := f.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.StatusQuit, sessions[0].Status)
}

func TestModelCompletionShowsReward(t *testing.T) {
	m, f := newTestModel(t, testConfig())

	f.engine.SetTimeRemaining(1)

	_, _ = m.Update(tickMsg{run: f.engine.Snapshot().Run})
	require.NotNil(t, m.last)
	assert.Equal(t, completedView, m.view)
	assert.Equal(t, models.ShortBreak, m.next())
	assert.Contains(t, m.View(), "added to your bouquet")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, models.ShortBreak, f.engine.Snapshot().SessionType)
}

func TestModelAutoStartBreak(t *testing.T) {
	cfg := testConfig()
	cfg.Settings.AutoStartBreak = true

	m, f := newTestModel(t, cfg)

	f.engine.SetTimeRemaining(1)

	_, _ = m.Update(tickMsg{run: f.engine.Snapshot().Run})

	snap := f.engine.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, models.ShortBreak, snap.SessionType)
	require.NotNil(t, m.last)
	assert.Contains(t, m.View(), "added to your bouquet")
}

func TestModelSkipOnlyAppliesToBreaks(t *testing.T) {
	m, f := newTestModel(t, testConfig())

	_, _ = m.Update(keyPress('s'))
	assert.True(t, f.engine.Snapshot().Running)

	require.NoError(t, f.engine.Start(5*time.Minute, models.ShortBreak))

	_, _ = m.Update(keyPress('s'))
	assert.False(t, f.engine.Snapshot().Occupied())
	assert.Equal(t, completedView, m.view)
	assert.Equal(t, models.Pomo, m.next())
}
