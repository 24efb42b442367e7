package config

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var (
	maxGrace = 5 * time.Minute

	minSession = 1 * time.Minute
	maxSession = 12 * time.Hour

	modes = []string{"countdown", "stopwatch"}

	soundExts = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTimer(); err != nil {
		return err
	}

	if err := c.validateDial(); err != nil {
		return err
	}

	return c.validateSession()
}

func (c *Config) validateTimer() error {
	t := c.Timer

	if t.Grace < 0 || t.Grace > maxGrace {
		return errInvalidDuration.Fmt("grace", time.Duration(0), maxGrace)
	}

	if t.MaxSession < minSession || t.MaxSession > maxSession {
		return errInvalidDuration.Fmt("max session", minSession, maxSession)
	}

	if !slices.Contains(modes, strings.ToLower(t.DefaultMode)) {
		return errInvalidMode.Fmt(t.DefaultMode)
	}

	return nil
}

func (c *Config) validateDial() error {
	d := c.Dial

	if d.MaxDuration <= 0 || d.MaxDuration > c.Timer.MaxSession {
		return errInvalidDialMax.Fmt(d.MaxDuration, c.Timer.MaxSession)
	}

	if d.SnapInterval <= 0 || d.SnapInterval > d.MaxDuration {
		return errInvalidSnap.Fmt(d.SnapInterval, d.MaxDuration)
	}

	if c.Timer.DefaultDuration <= 0 || c.Timer.DefaultDuration > d.MaxDuration {
		return errInvalidDuration.Fmt(
			"default",
			time.Duration(0),
			d.MaxDuration,
		)
	}

	return nil
}

func (c *Config) validateSession() error {
	if c.Session.Timezone != "" {
		_, err := time.LoadLocation(c.Session.Timezone)
		if err != nil {
			return errInvalidTimezone.Fmt(c.Session.Timezone)
		}
	}

	sound := c.Notifications.Sound
	if sound != "" &&
		!slices.Contains(soundExts, strings.ToLower(filepath.Ext(sound))) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	return nil
}
