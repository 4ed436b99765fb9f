// Package app defines the doro command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/doro/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the doro app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "doro",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		doro is a Pomodoro timer for the command-line that grows a flower for
		every Pomodoro you finish. Complete three in a row to earn a bonus and
		watch your bouquet grow.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "break",
				Usage:  "Start a break right away",
				Flags:  append([]cli.Flag{longFlag}, timerFlags...),
				Action: breakAction,
			},
			{
				Name:   "bouquet",
				Usage:  "Show the flowers you have grown",
				Flags:  []cli.Flag{allFlag, jsonFlag, storageFlag},
				Action: bouquetAction,
			},
			{
				Name:   "progress",
				Usage:  "Show your daily and overall progress",
				Flags:  []cli.Flag{dateFlag, jsonFlag, storageFlag},
				Action: progressAction,
			},
			{
				Name:   "sessions",
				Usage:  "List the sessions of a day",
				Flags:  []cli.Flag{dateFlag, jsonFlag, storageFlag},
				Action: sessionsAction,
			},
			{
				Name:      "flower",
				Usage:     "Select the flower grown by your next Pomodoros",
				ArgsUsage: "[NAME]",
				Action:    flowerAction,
			},
			{
				Name:   "user",
				Usage:  "Show or change your profile and sound settings",
				Flags:  []cli.Flag{nameFlag, soundFlag, volumeFlag, storageFlag},
				Action: userAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  append([]cli.Flag{noColorFlag, debugFlag}, timerFlags...),
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
