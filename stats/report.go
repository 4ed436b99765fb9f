package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/timeutil"
	"github.com/ayoisaiah/doro/internal/ui"
)

const barChartChar = "▇"

// Report is everything shown by the progress command.
type Report struct {
	Day     TodaySummary       `json:"day"`
	Overall OverallSummary     `json:"overall"`
	Week    []models.DailyStat `json:"week"`
}

// Report collects the progress of day, refreshing today's stat first so
// that it reflects every recorded session.
func (a *Aggregator) Report(ctx context.Context, day time.Time) (*Report, error) {
	if timeutil.DateKey(day) == timeutil.DateKey(a.repos.Now()) {
		if _, err := a.RefreshToday(ctx); err != nil {
			return nil, err
		}
	}

	var (
		r   Report
		err error
	)

	r.Day, err = a.Day(ctx, day)
	if err != nil {
		return nil, err
	}

	r.Overall, err = a.Overall(ctx)
	if err != nil {
		return nil, err
	}

	r.Week, err = a.Week(ctx, day)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// JSON encodes the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func (r *Report) summary() string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary for "+r.Day.Date))

	pomos := fmt.Sprintln(
		"Pomodoros completed:",
		ui.Green(r.Day.PomodorosCompleted),
	)

	focus := fmt.Sprintln(
		"Focus time:",
		ui.Green(timeutil.Human(r.Day.FocusMinutes)),
	)

	breaks := fmt.Sprintln(
		"Break time:",
		ui.Green(timeutil.Human(r.Day.BreakMinutes)),
	)

	streak := fmt.Sprintln(
		"Day streak:",
		ui.Green(r.Day.CurrentStreak),
	)

	return header + pomos + focus + breaks + streak
}

func (r *Report) overall() string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Overall"))

	pomos := fmt.Sprintln(
		"Pomodoros completed:",
		ui.Green(r.Overall.TotalPomodoros),
	)

	focus := fmt.Sprintln(
		"Focus time:",
		ui.Green(timeutil.Human(r.Overall.FocusMinutes)),
	)

	bonus := fmt.Sprintln(
		"Bonus flowers:",
		ui.Green(r.Overall.BonusFlowers),
	)

	wrapper := "no"
	if r.Overall.WrapperEarned {
		wrapper = "yes"
	}

	wrapped := fmt.Sprintln("Bouquet wrapper:", ui.Green(wrapper))

	return header + pomos + focus + bonus + wrapped
}

func (r *Report) weekChart() string {
	if len(r.Week) == 0 {
		return ""
	}

	header := ui.Blue("\nLast 7 days (focus minutes)")

	bars := make(pterm.Bars, 0, len(r.Week))

	for _, stat := range r.Week {
		label := stat.Date

		if d, err := time.Parse(timeutil.DateLayout, stat.Date); err == nil {
			label = d.Format("Mon Jan 02")
		}

		bars = append(bars, pterm.Bar{
			Value: stat.FocusMinutes,
			Label: label,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// Render writes the report for humans.
func (r *Report) Render(w io.Writer) {
	output := fmt.Sprint(
		r.summary(),
		r.overall(),
		r.weekChart(),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}
