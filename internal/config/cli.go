package config

import (
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Mode          string
	Duration      string
	Tag           string
	Grace         string
	SessionCmd    string
	DisableNotify bool
	NoColor       bool
	Debug         bool
}

// WithCLIConfig returns an Option that applies command-line flags on top of
// the file configuration.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Mode:          ctx.String("mode"),
			Duration:      ctx.String("duration"),
			Tag:           ctx.String("tag"),
			Grace:         ctx.String("grace"),
			SessionCmd:    ctx.String("session-cmd"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoColor:       ctx.Bool("no-color"),
			Debug:         ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Mode != "" {
		c.Timer.DefaultMode = opts.Mode
	}

	if opts.Duration != "" {
		dur, err := parseDuration(opts.Duration)
		if err != nil {
			return errInvalidCLIDuration.Fmt("duration", err)
		}

		c.Timer.DefaultDuration = dur
	}

	if opts.Grace != "" {
		dur, err := parseDuration(opts.Grace)
		if err != nil {
			return errInvalidCLIDuration.Fmt("grace", err)
		}

		c.Timer.Grace = dur
	}

	if opts.Tag != "" {
		c.Session.Tag = opts.Tag
	}

	if opts.SessionCmd != "" {
		c.Session.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	c.CLI.NoColor = opts.NoColor
	c.CLI.Debug = opts.Debug

	return nil
}

// parseDuration accepts Go duration strings as well as bare numbers, which
// are read as minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, errInvalidDurationFormat.Fmt(s)
	}

	return mins, nil
}
