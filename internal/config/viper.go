package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyGrace                = "timer.grace"
	keyMaxSession           = "timer.max_session"
	keyDefaultDuration      = "timer.default_duration"
	keyDefaultMode          = "timer.default_mode"
	keyDialMaxDuration      = "dial.max_duration"
	keyDialSnapInterval     = "dial.snap_interval"
	keySessionTag           = "session.tag"
	keySessionCmd           = "session.cmd"
	keySessionTimezone      = "session.timezone"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationSound    = "notifications.sound"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A missing file is created with the defaults.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// WithDefaults returns an Option that applies the default settings without
// touching the filesystem.
func WithDefaults() Option {
	return func(c *Config) error {
		v := viper.New()

		setDefaults(v)

		return loadViperConfig(v, c)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyGrace, "10s")
	v.SetDefault(keyMaxSession, "3h")
	v.SetDefault(keyDefaultDuration, "25m")
	v.SetDefault(keyDefaultMode, "countdown")
	v.SetDefault(keyDialMaxDuration, "2h")
	v.SetDefault(keyDialSnapInterval, "5m")
	v.SetDefault(keySessionTag, "")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keySessionTimezone, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationSound, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	err := v.Unmarshal(c)
	if err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
