package app

import (
	"fmt"

	"github.com/pterm/pterm"
)

func helpText() string {
	description := fmt.Sprintf(
		"%s\n\t\t{{.Usage}}\n\n",
		pterm.Yellow("DESCRIPTION"),
	)

	usage := fmt.Sprintf(
		"%s\n\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}\n\n",
		pterm.Yellow("USAGE"),
	)

	version := fmt.Sprintf(
		"{{if .Version}}%s\n\t\t{{.Version}}{{end}}\n\n",
		pterm.Yellow("VERSION"),
	)

	commands := fmt.Sprintf(
		"%s\n{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}\n\n",
		pterm.Yellow("COMMANDS"),
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"%s\n{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		pterm.Yellow("OPTIONS"),
		pterm.Green("-{{$element}}"),
		pterm.Green("--{{.Name}} {{.DefaultText}}"),
	)

	controls := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("CONTROLS"),
		controlsHelp(),
	)

	env := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("ENVIRONMENTAL VARIABLES"),
		envHelp(),
	)

	website := fmt.Sprintf(
		"%s\n\t\thttps://github.com/ayoisaiah/focusring\n",
		pterm.Yellow("WEBSITE"),
	)

	return description + usage + version + commands + options + controls + env + website
}

func controlsHelp() string {
	return `
drag the ring, ←/→: set the countdown duration while idle
enter, space: start a session
esc: cancel during the grace period (nothing is recorded)
s: stop the running session
m: switch between countdown and stopwatch
ctrl+z: suspend; the session is corrected from the wall clock on resume`
}

func envHelp() string {
	return `
FOCUS_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

FOCUS_ENV: keep a separate config, database and log for the named environment.

FOCUS_UPLOAD_URL, FOCUS_UPLOAD_TOKEN, FOCUS_UPLOAD_TIMEOUT: upload finished sessions to a remote endpoint.`
}
