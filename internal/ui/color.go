// Package ui holds the pterm helpers shared by the command-line output
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the lighter variants of each colour.
var DarkTheme bool

func pick(light, dark pterm.Color) pterm.Color {
	if DarkTheme {
		return dark
	}

	return light
}

// Green renders a in green.
func Green(a any) string {
	return pick(pterm.FgGreen, pterm.FgLightGreen).Sprint(a)
}

// Cyan renders a in cyan.
func Cyan(a any) string {
	return pick(pterm.FgCyan, pterm.FgLightCyan).Sprint(a)
}

// Yellow renders a in yellow.
func Yellow(a any) string {
	return pick(pterm.FgYellow, pterm.FgLightYellow).Sprint(a)
}

// Highlight renders a in the strongest foreground colour of the theme.
func Highlight(a any) string {
	return pick(pterm.FgBlack, pterm.FgLightWhite).Sprint(a)
}
