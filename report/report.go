// Package report prints one-line outcomes of doro commands
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/osutil"
)

func FlowerSelected(f models.FlowerType) {
	pterm.Success.Printfln("%s selected for your next Pomodoro", f.Label())
}

func Welcome(username string) {
	pterm.Info.Printfln("Welcome to doro, %s! Grow your first flower.", username)
}

func SettingsSaved() {
	pterm.Success.Println("settings saved")
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}
