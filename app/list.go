package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/timeutil"
	"github.com/ayoisaiah/doro/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified day"
)

func statusText(s models.SessionStatus) string {
	switch s {
	case models.StatusCompleted:
		return ui.Green("completed")
	case models.StatusQuit:
		return ui.Red("quit")
	case models.StatusReset:
		return ui.Yellow("reset")
	case models.StatusPaused, models.StatusActive:
		return ui.Blue(string(s))
	}

	return string(s)
}

// sessionRows lays out sessions as a table with a header row.
func sessionRows(sessions []models.Session, twentyFour bool) [][]string {
	layout := "03:04 PM"
	if twentyFour {
		layout = "15:04"
	}

	data := [][]string{{"#", "TYPE", "START", "END", "FLOWER", "STATUS"}}

	for i := range sessions {
		sess := sessions[i]

		var end string
		if sess.EndTime != nil {
			end = sess.EndTime.Local().Format(layout)
		}

		var flower string
		if sess.Type == models.Pomo {
			flower = sess.FlowerType.Label()
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			sessionLabel(sess.Type),
			sess.StartTime.Local().Format(layout),
			end,
			flower,
			statusText(sess.Status),
		})
	}

	return data
}

func sessionLabel(t models.SessionType) string {
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

// listSessions prints out a table of sessions.
func listSessions(w io.Writer, sessions []models.Session, twentyFour bool) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	return ui.PrintTable(sessionRows(sessions, twentyFour), w)
}

// sessionsAction lists the sessions started on a day.
func sessionsAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		day, err := timeutil.FromStr(ctx.String("date"), e.repos.Now())
		if err != nil {
			return errInvalidDate.Fmt(ctx.String("date")).Wrap(err)
		}

		from, to := timeutil.DayBounds(day)

		sessions, err := e.repos.Sessions.Between(ctx.Context, from, to)
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			if sessions == nil {
				sessions = []models.Session{}
			}

			b, err := json.MarshalIndent(sessions, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, string(b))

			return nil
		}

		return listSessions(os.Stdout, sessions, e.cfg.Settings.TwentyFourHour)
	})
}
