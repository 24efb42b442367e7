// Package config loads the focusring settings from the config file and the
// command line, and locates the files the application keeps on disk
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Timer         TimerConfig        `mapstructure:"timer"`
		Dial          DialConfig         `mapstructure:"dial"`
		Session       SessionConfig      `mapstructure:"session"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// TimerConfig holds the session policy.
	TimerConfig struct {
		DefaultMode     string        `mapstructure:"default_mode"`
		Grace           time.Duration `mapstructure:"grace"`
		MaxSession      time.Duration `mapstructure:"max_session"`
		DefaultDuration time.Duration `mapstructure:"default_duration"`
	}

	// DialConfig holds the duration dial settings.
	DialConfig struct {
		MaxDuration  time.Duration `mapstructure:"max_duration"`
		SnapInterval time.Duration `mapstructure:"snap_interval"`
	}

	// SessionConfig holds per-session settings.
	SessionConfig struct {
		// Tag is the activity tag recorded with each session
		Tag string `mapstructure:"tag"`
		// Cmd runs after each recorded session
		Cmd string `mapstructure:"cmd"`
		// Timezone is the IANA zone reported with sessions. Empty means
		// the local zone.
		Timezone string `mapstructure:"timezone"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Sound   string `mapstructure:"sound"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// CLIConfig holds settings that only come from the command line.
	CLIConfig struct {
		NoColor bool
		Debug   bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	configDir      = "focusring"
	configFileName = "config.yml"
	dbFileName     = "focusring.db"
	statusFileName = "status.json"
	logFileName    = "focusring.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths computes the location of every file focusring reads or
// writes. Setting FOCUS_ENV keeps a separate set of files per environment.
func InitializePaths() error {
	focusEnv := strings.TrimSpace(os.Getenv("FOCUS_ENV"))
	if focusEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", focusEnv)
		dbFileName = fmt.Sprintf("focusring_%s.db", focusEnv)
		statusFileName = fmt.Sprintf("status_%s.json", focusEnv)
		logFileName = fmt.Sprintf("focusring_%s.log", focusEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	// xdg.DataFile creates the parent directories of each file
	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	statusFilePath, err = xdg.DataFile(filepath.Join(configDir, statusFileName))
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	logFilePath, err = xdg.DataFile(filepath.Join(configDir, "log", logFileName))
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	return nil
}

// New creates a new Config and applies options in order. The result is
// validated.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location returns the zone sessions are reported in.
func (c *Config) Location() *time.Location {
	if c.Session.Timezone == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}
