package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug records to the log file",
	}

	pomodoroFlag = &cli.StringFlag{
		Name:    "pomodoro",
		Aliases: []string{"p"},
		Usage:   "Pomodoro duration in minutes or as a Go duration (default: 25)",
	}

	shortBreakFlag = &cli.StringFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration in minutes (default: 5)",
	}

	longBreakFlag = &cli.StringFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration in minutes (default: 15)",
	}

	flowerFlag = &cli.StringFlag{
		Name:    "flower",
		Aliases: []string{"f"},
		Usage:   "Flower to grow in this run: rose, lily, carnation, daisy, peony, orchid",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:  "cmd",
		Usage: "Execute an arbitrary command after each completed session",
	}

	storageFlag = &cli.StringFlag{
		Name:  "storage",
		Usage: "Storage driver: bolt, sqlite or memory (default: bolt)",
	}

	recordBreaksFlag = &cli.BoolFlag{
		Name:  "record-breaks",
		Usage: "Store a session for every finished break",
	}

	longFlag = &cli.BoolFlag{
		Name:  "long",
		Usage: "Start a long break instead of a short one",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "List every flower instead of the most recent ones",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Day to report on (e.g. 'yesterday', '3 days ago', '2026-10-01')",
	}

	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Set your username",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Turn sounds 'on' or 'off'",
	}

	volumeFlag = &cli.Float64Flag{
		Name:  "volume",
		Usage: "Playback volume between 0 and 1",
		Value: -1,
	}
)

// timerFlags are accepted by every command that runs the timer.
var timerFlags = []cli.Flag{
	pomodoroFlag,
	shortBreakFlag,
	longBreakFlag,
	flowerFlag,
	sessionCmdFlag,
	storageFlag,
	recordBreaksFlag,
}
