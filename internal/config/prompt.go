package config

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/viper"
)

const asciiLogo = `
█▀▀ █▀█ █▀▀ █ █ █▀▀ █▀█ █ █▄ █ █▀▀
█▀  █▄█ █▄▄ █▄█ ▄▄█ █▀▄ █ █ ▀█ █▄█`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Mode            string
	DefaultDuration int
	Grace           int
}

// WithPromptConfig returns an Option that asks for the basic settings and
// writes them to configPath when no config file exists yet. It must come
// before WithViperConfig.
func WithPromptConfig(configPath string) Option {
	return func(_ *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		return writePromptOptions(configPath, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure focusring for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'focusring edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Timer mode").
				Options(
					huh.NewOption("Countdown", "countdown").Selected(true),
					huh.NewOption("Stopwatch", "stopwatch"),
				).
				Value(&opts.Mode),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default session length").
				Options(
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("35 minutes", 35),
					huh.NewOption("50 minutes", 50),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
				).
				Value(&opts.DefaultDuration),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Grace period before a session counts").
				Options(
					huh.NewOption("No grace period", 0),
					huh.NewOption("5 seconds", 5),
					huh.NewOption("10 seconds", 10).Selected(true),
					huh.NewOption("30 seconds", 30),
				).
				Value(&opts.Grace),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// writePromptOptions saves the prompt responses together with the defaults
// for everything that was not asked.
func writePromptOptions(configPath string, opts PromptOptions) error {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	v.Set(keyDefaultMode, opts.Mode)
	v.Set(
		keyDefaultDuration,
		(time.Duration(opts.DefaultDuration) * time.Minute).String(),
	)
	v.Set(keyGrace, (time.Duration(opts.Grace) * time.Second).String())

	err := v.WriteConfig()
	if err != nil {
		return errWriteConfig.Wrap(err)
	}

	return nil
}
