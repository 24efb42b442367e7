// Package app is the focusring command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusring/internal/config"
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

// Get retrieves the focusring app instance.
func Get() *cli.App {
	filterFlags := []cli.Flag{
		sinceFlag,
		untilFlag,
		periodFlag,
		filterTagFlag,
	}

	return &cli.App{
		Name: "focusring",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		focusring is a focus timer for the command-line. Drag the ring (or use
		the arrow keys) to pick a duration, start a session, and collect coins
		and xp for every minute you stay with it.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "list",
				Usage:  "List recorded sessions. Defaults to sessions from today",
				Flags:  append(filterFlags, jsonFlag),
				Action: listAction,
			},
			{
				Name:   "stats",
				Usage:  "Summarise focus time, coins and xp for a period. Defaults to today",
				Flags:  append(filterFlags, jsonFlag),
				Action: statsAction,
			},
			{
				Name:   "delete",
				Usage:  "Delete recorded sessions within a period",
				Flags:  filterFlags,
				Action: deleteAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running session",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			modeFlag,
			durationFlag,
			graceFlag,
			tagFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			noColorFlag,
			debugFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
