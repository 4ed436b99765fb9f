// Package ui holds the terminal colors and tables shared by doro's
// non-interactive commands
package ui

import (
	"github.com/pterm/pterm"
)

// darkTheme selects the light variants of each color, which read better on
// dark terminals. It is set from display.dark_theme.
var darkTheme = true

// SetDarkTheme switches between the dark and light palettes.
func SetDarkTheme(dark bool) {
	darkTheme = dark
}

func pick(dark, light pterm.Color) pterm.Color {
	if darkTheme {
		return dark
	}

	return light
}

func Green(a any) string {
	return pick(pterm.FgLightGreen, pterm.FgGreen).Sprint(a)
}

func Blue(a any) string {
	return pick(pterm.FgLightBlue, pterm.FgBlue).Sprint(a)
}

func Magenta(a any) string {
	return pick(pterm.FgLightMagenta, pterm.FgMagenta).Sprint(a)
}

func Yellow(a any) string {
	return pick(pterm.FgLightYellow, pterm.FgYellow).Sprint(a)
}

// Highlight renders a in the terminal's strongest foreground.
func Highlight(a any) string {
	return pick(pterm.FgLightWhite, pterm.FgBlack).Sprint(a)
}

func Red(a any) string {
	return pick(pterm.FgLightRed, pterm.FgRed).Sprint(a)
}
